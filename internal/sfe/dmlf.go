package sfe

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/sfegridgo/internal/ctxlog"
	"github.com/vk/sfegridgo/internal/lattice"
)

// EVPerA2ToMJPerM2 converts stacking-fault energies from eV/Å² to mJ/m².
const EVPerA2ToMJPerM2 = 16021.766

// Result holds the DMLF stacking-fault energies for one
// (composition, temperature) pair. Gamma values are in mJ/m².
type Result struct {
	Composition string
	Temperature float64

	EFCC    float64
	EHCP    float64
	EDHCP   float64
	AreaFCC float64

	GammaISF  float64
	GammaESF  float64
	GammaTwin float64
}

// dmlf applies the DMLF model to the three per-atom energies and the FCC
// reference area:
//
//	γ_ISF  = 4(E_dhcp − E_fcc) / A_fcc
//	γ_ESF  = (E_hcp + 2·E_dhcp − 3·E_fcc) / A_fcc
//	γ_Twin = 2(E_dhcp − E_fcc) / A_fcc
func dmlf(eFCC, eHCP, eDHCP, areaFCC float64) (isf, esf, twin float64) {
	dDHCP := eDHCP - eFCC
	dHCP := eHCP - eFCC
	isf = 4 * dDHCP / areaFCC * EVPerA2ToMJPerM2
	esf = (dHCP + 2*dDHCP) / areaFCC * EVPerA2ToMJPerM2
	twin = 2 * dDHCP / areaFCC * EVPerA2ToMJPerM2
	return isf, esf, twin
}

// key groups records by (composition, temperature).
type key struct {
	composition string
	temperature float64
}

// Evaluate computes DMLF results for every (composition, temperature)
// pair that has all three variants present. Incomplete pairs are logged
// and skipped, not fatal: partial engine output is routine while a study
// is still running. Results come back sorted by composition then
// temperature.
func Evaluate(ctx context.Context, records []Record) []Result {
	logger := ctxlog.FromContext(ctx)

	groups := make(map[key]map[lattice.Variant]Record)
	for _, r := range records {
		k := key{r.Composition, r.Temperature}
		if groups[k] == nil {
			groups[k] = make(map[lattice.Variant]Record)
		}
		groups[k][r.Variant] = r
	}

	results := make([]Result, 0, len(groups))
	for k, g := range groups {
		if len(g) < len(lattice.Variants) {
			logger.Warn("Skipping incomplete result group.",
				"composition", k.composition, "temperature", k.temperature, "variants", len(g))
			continue
		}

		fcc, hcp, dhcp := g[lattice.FCC], g[lattice.HCP], g[lattice.DHCP]
		isf, esf, twin := dmlf(fcc.PEPerAtom, hcp.PEPerAtom, dhcp.PEPerAtom, fcc.Area)
		results = append(results, Result{
			Composition: k.composition,
			Temperature: k.temperature,
			EFCC:        fcc.PEPerAtom,
			EHCP:        hcp.PEPerAtom,
			EDHCP:       dhcp.PEPerAtom,
			AreaFCC:     fcc.Area,
			GammaISF:    isf,
			GammaESF:    esf,
			GammaTwin:   twin,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Composition != results[j].Composition {
			return results[i].Composition < results[j].Composition
		}
		return results[i].Temperature < results[j].Temperature
	})
	return results
}

// String renders a one-line human-readable form of the result.
func (r Result) String() string {
	return fmt.Sprintf("%s T=%gK γ_ISF=%.2f γ_ESF=%.2f γ_Twin=%.2f mJ/m²",
		r.Composition, r.Temperature, r.GammaISF, r.GammaESF, r.GammaTwin)
}
