package app

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/sfegridgo/internal/alloy"
	"github.com/vk/sfegridgo/internal/lammps"
	"github.com/vk/sfegridgo/internal/lattice"
)

// smallStudyConfig keeps the generated cells tiny so the full 63-task run
// stays fast: 32 FCC atoms, 16 HCP atoms, 32 DHCP atoms.
const smallStudyConfig = `
grid {
  seed    = 7
  workers = 2
}

variant "FCC" {
  replication = [2, 2, 2]
}

variant "HCP" {
  replication = [2, 2, 2]
}

variant "DHCP" {
  replication = [2, 2, 4]
}

simulation {
  temperatures = [400]
}
`

func writeStudyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "study.hcl")
	require.NoError(t, os.WriteFile(path, []byte(smallStudyConfig), 0o644))
	return path
}

func runGeneration(t *testing.T, cfg *Config) {
	t.Helper()
	a, err := New(io.Discard, cfg)
	require.NoError(t, err)
	require.NoError(t, a.Run(context.Background()))
}

// readStructureFiles returns every LAMMPS data file under root, keyed by
// its path relative to root.
func readStructureFiles(t *testing.T, root string) map[string][]byte {
	t.Helper()
	files := make(map[string][]byte)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".data") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[rel] = content
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestAppGeneration(t *testing.T) {
	configPath := writeStudyConfig(t)
	outDir := filepath.Join(t.TempDir(), "runs")

	runGeneration(t, &Config{
		ConfigPath: configPath,
		OutputDir:  outDir,
		Scripts:    true,
		LogFormat:  "text",
		LogLevel:   "error",
	})

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)

	var compDirs []string
	for _, e := range entries {
		if e.IsDir() {
			compDirs = append(compDirs, e.Name())
		}
	}
	require.Len(t, compDirs, len(alloy.Grid()), "one directory per grid point")

	for _, dir := range compDirs {
		for _, v := range lattice.Variants {
			assert.FileExists(t, filepath.Join(outDir, dir, lammps.StructureFileName(v)))
		}
		assert.FileExists(t, filepath.Join(outDir, dir, GeometrySummaryFileName))
		assert.FileExists(t, filepath.Join(outDir, dir, "in.FCC_400K.lammps"))
		assert.FileExists(t, filepath.Join(outDir, dir, "run_all.sh"))
	}
	assert.FileExists(t, filepath.Join(outDir, "run_all_compositions.sh"))

	t.Run("pure Al geometry summary", func(t *testing.T) {
		content, err := os.ReadFile(
			filepath.Join(outDir, "Comp01_Al100_Fe00_Ni00", GeometrySummaryFileName))
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		require.Len(t, lines, 3)

		// FCC at a=4.0465 replicated 2x2x2: cubic box of edge 8.0930.
		fields := strings.Fields(lines[0])
		require.Len(t, fields, 7)
		assert.Equal(t, "FCC", fields[0])
		assert.Equal(t, "32", fields[1])
		assert.Equal(t, "8.093000", fields[2])
		assert.Equal(t, "8.093000", fields[3])
		assert.Equal(t, "8.093000", fields[4])

		assert.Equal(t, "HCP", strings.Fields(lines[1])[0])
		assert.Equal(t, "DHCP", strings.Fields(lines[2])[0])
	})

	t.Run("structure files parse back consistently", func(t *testing.T) {
		path := filepath.Join(outDir, "Comp13_Al50_Fe25_Ni25", lammps.StructureFileName(lattice.FCC))
		data, err := lammps.ReadDataFile(path)
		require.NoError(t, err)
		assert.Equal(t, 32, data.NAtoms)
		assert.Equal(t, 3, data.NTypes)
		assert.Len(t, data.Atoms, 32)
	})
}

func TestAppGeneration_Determinism(t *testing.T) {
	configPath := writeStudyConfig(t)

	outA := filepath.Join(t.TempDir(), "a")
	outB := filepath.Join(t.TempDir(), "b")
	outC := filepath.Join(t.TempDir(), "c")

	runGeneration(t, &Config{ConfigPath: configPath, OutputDir: outA, LogLevel: "error"})
	runGeneration(t, &Config{ConfigPath: configPath, OutputDir: outB, LogLevel: "error"})
	runGeneration(t, &Config{ConfigPath: configPath, OutputDir: outC, Seed: 8, SeedSet: true, LogLevel: "error"})

	filesA := readStructureFiles(t, outA)
	filesB := readStructureFiles(t, outB)
	filesC := readStructureFiles(t, outC)
	require.NotEmpty(t, filesA)
	require.Len(t, filesB, len(filesA))
	require.Len(t, filesC, len(filesA))

	for rel, content := range filesA {
		assert.Equal(t, content, filesB[rel], "same seed must reproduce %s byte for byte", rel)
	}

	diverged := 0
	for rel, content := range filesA {
		if string(content) != string(filesC[rel]) {
			diverged++
		}
	}
	assert.Positive(t, diverged, "a different seed must change at least one mixed-composition file")
}

func TestAppEvaluation(t *testing.T) {
	root := t.TempDir()
	compDir := filepath.Join(root, "Comp20_Al33_Fe34_Ni33")
	require.NoError(t, os.MkdirAll(compDir, 0o755))

	summary := strings.Join([]string{
		"FCC 400 864 -3.500000 15000.0 24.3 24.3 24.3 590.49",
		"HCP 400 864 -3.498000 15000.0 17.2 29.8 29.3 512.56",
		"DHCP 400 864 -3.499000 15000.0 17.2 29.8 29.3 512.56",
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(
		filepath.Join(compDir, "results_summary.txt"), []byte(summary), 0o644))

	cfg := &Config{SFEDir: root, LogLevel: "error", LogFormat: "text"}
	a, err := New(io.Discard, cfg)
	require.NoError(t, err)
	require.NoError(t, a.Run(context.Background()))

	results, err := os.ReadFile(filepath.Join(root, "sfe_results.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(results), "Comp20_Al33_Fe34_Ni33")
	assert.Contains(t, string(results), "400")

	assert.FileExists(t, filepath.Join(root, "sfe_summary.csv"))
}

func TestAppEvaluation_NoResults(t *testing.T) {
	cfg := &Config{SFEDir: t.TempDir(), LogLevel: "error", LogFormat: "text"}
	a, err := New(io.Discard, cfg)
	require.NoError(t, err)
	assert.Error(t, a.Run(context.Background()))
}
