package sfe

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/sfegridgo/internal/lattice"
)

func record(comp string, v lattice.Variant, temp, pe, area float64) Record {
	return Record{
		Composition: comp,
		Variant:     v,
		Temperature: temp,
		NAtoms:      864,
		PEPerAtom:   pe,
		Volume:      14000,
		Lx:          24, Ly: 24, Lz: 24,
		Area: area,
	}
}

func TestEvaluate_HandComputedFixture(t *testing.T) {
	t.Parallel()

	// E_fcc=-3.00, E_hcp=-2.90, E_dhcp=-2.95, A_fcc=100:
	//  γ_ISF  = 4·0.05/100 · 16021.766 = 32.043532
	//  γ_ESF  = (0.10+2·0.05)/100 · 16021.766 = 32.043532
	//  γ_Twin = 2·0.05/100 · 16021.766 = 16.021766
	records := []Record{
		record("Comp01_Al100_Fe00_Ni00", lattice.FCC, 400, -3.00, 100),
		record("Comp01_Al100_Fe00_Ni00", lattice.HCP, 400, -2.90, 37),
		record("Comp01_Al100_Fe00_Ni00", lattice.DHCP, 400, -2.95, 37),
	}

	results := Evaluate(context.Background(), records)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "Comp01_Al100_Fe00_Ni00", r.Composition)
	assert.Equal(t, 400.0, r.Temperature)
	assert.InDelta(t, 32.043532, r.GammaISF, 1e-6)
	assert.InDelta(t, 32.043532, r.GammaESF, 1e-6)
	assert.InDelta(t, 16.021766, r.GammaTwin, 1e-6)
	assert.Equal(t, 100.0, r.AreaFCC, "normalization must use the FCC area")
}

func TestEvaluate_SkipsIncompleteGroups(t *testing.T) {
	t.Parallel()

	records := []Record{
		record("CompA", lattice.FCC, 400, -3.0, 100),
		record("CompA", lattice.HCP, 400, -2.9, 37),
		// DHCP missing at 400K; 200K complete.
		record("CompA", lattice.FCC, 200, -3.1, 100),
		record("CompA", lattice.HCP, 200, -3.0, 37),
		record("CompA", lattice.DHCP, 200, -3.05, 37),
	}

	results := Evaluate(context.Background(), records)
	require.Len(t, results, 1)
	assert.Equal(t, 200.0, results[0].Temperature)
}

func TestEvaluate_SortedOutput(t *testing.T) {
	t.Parallel()

	var records []Record
	for _, comp := range []string{"CompB", "CompA"} {
		for _, temp := range []float64{650, 200} {
			records = append(records,
				record(comp, lattice.FCC, temp, -3.0, 100),
				record(comp, lattice.HCP, temp, -2.9, 37),
				record(comp, lattice.DHCP, temp, -2.95, 37),
			)
		}
	}

	results := Evaluate(context.Background(), records)
	require.Len(t, results, 4)
	assert.Equal(t, "CompA", results[0].Composition)
	assert.Equal(t, 200.0, results[0].Temperature)
	assert.Equal(t, "CompA", results[1].Composition)
	assert.Equal(t, 650.0, results[1].Temperature)
	assert.Equal(t, "CompB", results[2].Composition)
}

func TestParseSummary(t *testing.T) {
	t.Parallel()

	in := `FCC 400 864 -3.3601 14311.9 24.279 24.279 24.279 589.47

HCP 400 864 -3.3415 14305.2 17.168 29.735 28.021 510.50
DHCP 400 864 -3.3522 14307.8 17.168 29.735 28.021 510.50
`
	records, err := ParseSummary(strings.NewReader(in), "Comp01_Al100_Fe00_Ni00")
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, lattice.FCC, records[0].Variant)
	assert.Equal(t, 400.0, records[0].Temperature)
	assert.Equal(t, 864, records[0].NAtoms)
	assert.InDelta(t, -3.3601, records[0].PEPerAtom, 1e-12)
	assert.InDelta(t, 589.47, records[0].Area, 1e-12)
	assert.Equal(t, "Comp01_Al100_Fe00_Ni00", records[2].Composition)
}

func TestParseSummary_Errors(t *testing.T) {
	t.Parallel()

	t.Run("short line", func(t *testing.T) {
		_, err := ParseSummary(strings.NewReader("FCC 400 864\n"), "c")
		assert.Error(t, err)
	})

	t.Run("unknown structure", func(t *testing.T) {
		_, err := ParseSummary(strings.NewReader("BCC 400 864 -3 1 1 1 1 1\n"), "c")
		assert.Error(t, err)
	})

	t.Run("bad number", func(t *testing.T) {
		_, err := ParseSummary(strings.NewReader("FCC x 864 -3 1 1 1 1 1\n"), "c")
		assert.Error(t, err)
	})
}
