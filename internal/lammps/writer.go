// Package lammps serializes labeled supercells into the LAMMPS data-file
// format (atom_style atomic, metal units: Å, eV, ps) and parses it back.
// The field order and number formats are fixed; the downstream engine's
// read_data parser depends on them.
package lammps

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/sfegridgo/internal/alloy"
	"github.com/vk/sfegridgo/internal/assign"
)

// ErrWriteInconsistency reports an assignment result whose label list
// disagrees with its own site list or realized counts. It is checked
// before any byte is written.
var ErrWriteInconsistency = errors.New("write inconsistency")

// Masses maps each element to its atomic mass (g/mol), indexed by
// alloy.Element.
type Masses [3]float64

// DefaultMasses returns the fixed atomic-mass table: Al 26.98, Fe 55.85,
// Ni 58.69.
func DefaultMasses() Masses {
	return Masses{26.98, 55.85, 58.69}
}

// WriteData writes the structure as a LAMMPS data file. Atom ids are
// 1-based in site-index order; atom types are 1=Al, 2=Fe, 3=Ni. The box
// is orthogonal, so the tilt factors are written as zeros.
func WriteData(w io.Writer, res *assign.Result, masses Masses, comment string) error {
	if err := verify(res); err != nil {
		return err
	}
	cell := res.Cell

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n\n", comment)
	fmt.Fprintf(bw, "%d atoms\n", cell.NumSites())
	fmt.Fprintf(bw, "%d atom types\n\n", len(alloy.Elements))
	fmt.Fprintf(bw, "%.6f %.6f xlo xhi\n", 0.0, cell.Lx)
	fmt.Fprintf(bw, "%.6f %.6f ylo yhi\n", 0.0, cell.Ly)
	fmt.Fprintf(bw, "%.6f %.6f zlo zhi\n", 0.0, cell.Lz)
	fmt.Fprintf(bw, "%.6f %.6f %.6f xy xz yz\n\n", 0.0, 0.0, 0.0)

	fmt.Fprintf(bw, "Masses\n\n")
	for _, e := range alloy.Elements {
		fmt.Fprintf(bw, "%d %.4f # %s\n", int(e)+1, masses[e], e)
	}

	fmt.Fprintf(bw, "\nAtoms # atomic\n\n")
	for _, s := range cell.Sites {
		fmt.Fprintf(bw, "%d %d %.6f %.6f %.6f\n", s.Index+1, int(res.Labels[s.Index])+1, s.X, s.Y, s.Z)
	}

	return bw.Flush()
}

// WriteDataFile writes the structure to path, creating or truncating it.
func WriteDataFile(path string, res *assign.Result, masses Masses, comment string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating structure file: %w", err)
	}
	if err := WriteData(f, res, masses, comment); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing structure file: %w", err)
	}
	return nil
}

// verify checks the result before any byte is written: one label per site and
// realized counts matching the recorded ones.
func verify(res *assign.Result) error {
	n := res.Cell.NumSites()
	if len(res.Labels) != n {
		return fmt.Errorf("%w: %d labels for %d sites", ErrWriteInconsistency, len(res.Labels), n)
	}

	var realized [3]int
	for _, e := range res.Labels {
		if e < 0 || int(e) >= len(realized) {
			return fmt.Errorf("%w: unknown element label %d", ErrWriteInconsistency, e)
		}
		realized[e]++
	}
	if realized != res.Counts {
		return fmt.Errorf("%w: realized counts %v differ from recorded %v", ErrWriteInconsistency, realized, res.Counts)
	}
	return nil
}
