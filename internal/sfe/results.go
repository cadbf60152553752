// Package sfe evaluates the DMLF (diffuse multi-layer fault) model over
// the per-composition results_summary.txt files the MD engine appends to.
// It consumes engine-produced scalars only; it never reads trajectories
// or structure files.
package sfe

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vk/sfegridgo/internal/fsutil"
	"github.com/vk/sfegridgo/internal/lattice"
)

// SummaryFileName is the per-composition results file the MD input
// scripts append one line per completed run to.
const SummaryFileName = "results_summary.txt"

// Record is one completed MD run: `structure temp natoms pe vol lx ly lz
// area`, as printed by the generated input scripts.
type Record struct {
	Composition string
	Variant     lattice.Variant
	Temperature float64
	NAtoms      int
	PEPerAtom   float64
	Volume      float64
	Lx, Ly, Lz  float64
	Area        float64
}

// ParseSummary reads one results_summary.txt. Lines with fewer than nine
// fields are rejected; blank lines are skipped. The composition label is
// attached by the caller.
func ParseSummary(r io.Reader, composition string) ([]Record, error) {
	var records []Record
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 9 {
			return nil, fmt.Errorf("line %d: %d fields, want 9", lineNo, len(fields))
		}

		variant, err := lattice.ParseVariant(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		vals := make([]float64, 8)
		for i, f := range fields[1:9] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: field %d: %w", lineNo, i+2, err)
			}
			vals[i] = v
		}

		records = append(records, Record{
			Composition: composition,
			Variant:     variant,
			Temperature: vals[0],
			NAtoms:      int(vals[1]),
			PEPerAtom:   vals[2],
			Volume:      vals[3],
			Lx:          vals[4],
			Ly:          vals[5],
			Lz:          vals[6],
			Area:        vals[7],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Collect walks root for per-composition results_summary.txt files and
// parses them all. The composition label is the containing directory's
// base name (e.g. Comp07_Al75_Fe00_Ni25).
func Collect(root string) ([]Record, error) {
	paths, err := fsutil.FindFilesNamed(root, SummaryFileName)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", root, err)
	}

	var all []Record
	for _, path := range paths {
		composition := filepath.Base(filepath.Dir(path))
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		records, err := ParseSummary(f, composition)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		all = append(all, records...)
	}
	return all, nil
}
