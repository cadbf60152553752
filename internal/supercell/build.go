package supercell

import (
	"fmt"
	"math"

	"github.com/vk/sfegridgo/internal/lattice"
)

// fccBasis is the conventional 4-atom FCC basis in fractional cell
// coordinates.
var fccBasis = [4][3]float64{
	{0, 0, 0},
	{0.5, 0.5, 0},
	{0.5, 0, 0.5},
	{0, 0.5, 0.5},
}

// hexLayer is a close-packed layer's two-atom motif in fractional
// coordinates of the orthorhombic cell (a, sqrt(3)·a). The three stacking
// positions A, B, C are the standard offsets of the triangular lattice.
var hexLayer = map[byte][2][2]float64{
	'A': {{0, 0}, {0.5, 0.5}},
	'B': {{0.5, 1.0 / 6.0}, {0, 2.0 / 3.0}},
	'C': {{0, 1.0 / 3.0}, {0.5, 5.0 / 6.0}},
}

// stackingSequence returns the layer letters of one stacking repeat.
func stackingSequence(variant lattice.Variant) []byte {
	if variant == lattice.DHCP {
		return []byte{'A', 'B', 'A', 'C'}
	}
	return []byte{'A', 'B'}
}

// Build generates the unlabeled supercell for the given lattice spec and
// replication counts. Site order is deterministic: cells in row-major
// (i1, i2, i3) order for FCC, layers bottom-up for the hexagonal
// variants. It fails with ErrBadReplication on incompatible counts and
// ErrGeometryInvariant if the generated sites violate the bounds or
// minimum-distance invariants.
func Build(spec lattice.Spec, rep Replication) (*Supercell, error) {
	if err := rep.Validate(spec.Variant); err != nil {
		return nil, err
	}

	var cell *Supercell
	if spec.Variant.Hexagonal() {
		cell = buildHexagonal(spec, rep)
	} else {
		cell = buildCubic(spec, rep)
	}

	if got, want := cell.NumSites(), ExpectedSites(spec.Variant, rep); got != want {
		return nil, fmt.Errorf("%w: generated %d sites, closed form gives %d", ErrGeometryInvariant, got, want)
	}
	if err := checkInvariants(cell); err != nil {
		return nil, err
	}
	return cell, nil
}

// buildCubic replicates the 4-atom FCC cell n1×n2×n3.
func buildCubic(spec lattice.Spec, rep Replication) *Supercell {
	a := spec.A
	cell := &Supercell{
		Spec: spec,
		Rep:  rep,
		Lx:   float64(rep[0]) * a,
		Ly:   float64(rep[1]) * a,
		Lz:   float64(rep[2]) * a,
	}
	cell.Sites = make([]Site, 0, ExpectedSites(spec.Variant, rep))

	for i1 := 0; i1 < rep[0]; i1++ {
		for i2 := 0; i2 < rep[1]; i2++ {
			for i3 := 0; i3 < rep[2]; i3++ {
				for _, b := range fccBasis {
					cell.appendSite(
						(float64(i1)+b[0])*a,
						(float64(i2)+b[1])*a,
						(float64(i3)+b[2])*a,
					)
				}
			}
		}
	}
	return cell
}

// buildHexagonal stacks n3 close-packed layers along z in the variant's
// repeat sequence, each layer an n1×n2 tiling of the two-atom
// orthorhombic motif.
func buildHexagonal(spec lattice.Spec, rep Replication) *Supercell {
	a := spec.A
	by := math.Sqrt(3) * a
	d := spec.LayerSpacing()
	seq := stackingSequence(spec.Variant)

	cell := &Supercell{
		Spec: spec,
		Rep:  rep,
		Lx:   float64(rep[0]) * a,
		Ly:   float64(rep[1]) * by,
		Lz:   float64(rep[2]) * d,
	}
	cell.Sites = make([]Site, 0, ExpectedSites(spec.Variant, rep))

	for layer := 0; layer < rep[2]; layer++ {
		motif := hexLayer[seq[layer%len(seq)]]
		z := float64(layer) * d
		for i1 := 0; i1 < rep[0]; i1++ {
			for i2 := 0; i2 < rep[1]; i2++ {
				for _, m := range motif {
					cell.appendSite(
						(float64(i1)+m[0])*a,
						(float64(i2)+m[1])*by,
						z,
					)
				}
			}
		}
	}
	return cell
}

// appendSite wraps the position into [0, L) on each axis and appends it
// with the next index.
func (c *Supercell) appendSite(x, y, z float64) {
	c.Sites = append(c.Sites, Site{
		Index: len(c.Sites),
		X:     wrap(x, c.Lx),
		Y:     wrap(y, c.Ly),
		Z:     wrap(z, c.Lz),
	})
}

// wrap maps x into the half-open interval [0, l).
func wrap(x, l float64) float64 {
	w := math.Mod(x, l)
	if w < 0 {
		w += l
	}
	return w
}
