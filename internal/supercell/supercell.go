package supercell

import (
	"errors"
	"fmt"

	"github.com/vk/sfegridgo/internal/lattice"
)

var (
	// ErrGeometryInvariant reports a duplicate or out-of-bounds site. It
	// indicates an internal defect, never bad user input.
	ErrGeometryInvariant = errors.New("geometry invariant violated")

	// ErrBadReplication reports replication counts incompatible with the
	// requested variant.
	ErrBadReplication = errors.New("bad replication counts")
)

// MinSiteDistance is the hard lower bound (Å) on the periodic
// minimum-image separation of any two generated sites. Nearest neighbours
// in these lattices sit near a/sqrt(2) ≈ 2.5 Å, so anything below this
// means a duplicated site.
const MinSiteDistance = 0.5

// Replication holds the supercell repeat counts along the three cell
// vectors. For the hexagonal variants N3 counts close-packed layers along
// the stacking axis, not basis cells.
type Replication [3]int

// Validate checks positivity and that N3 is commensurate with the
// variant's stacking period.
func (r Replication) Validate(variant lattice.Variant) error {
	for i, n := range r {
		if n < 1 {
			return fmt.Errorf("%w: n%d = %d, want >= 1", ErrBadReplication, i+1, n)
		}
	}
	if p := variant.StackingPeriod(); r[2]%p != 0 {
		return fmt.Errorf("%w: n3 = %d is not a multiple of the %s stacking period %d",
			ErrBadReplication, r[2], variant, p)
	}
	return nil
}

// Site is one lattice position within the supercell. Index is zero-based
// and stable across re-runs; element labels live in assign.Result, not
// here, so a built Supercell is immutable.
type Site struct {
	Index   int
	X, Y, Z float64
}

// Supercell is the ordered, unlabeled site list for one
// (composition, variant) pair together with its orthogonal box.
type Supercell struct {
	Spec  lattice.Spec
	Rep   Replication
	Lx    float64
	Ly    float64
	Lz    float64
	Sites []Site
}

// NumSites returns the total site count.
func (c *Supercell) NumSites() int { return len(c.Sites) }

// Volume returns the box volume in Å³.
func (c *Supercell) Volume() float64 { return c.Lx * c.Ly * c.Lz }

// Area returns the cross-sectional area Lx·Ly (Ų) of the plane spanned
// by the first two cell vectors, perpendicular to the stacking axis. The
// FCC value is the reference area the downstream DMLF normalization
// divides by, so the convention must stay fixed across compositions.
func (c *Supercell) Area() float64 { return c.Lx * c.Ly }

// sitesPerCell returns the atom count of one replicated unit: 4 for the
// cubic FCC cell, 2 per layer for the orthorhombic hexagonal setting.
func sitesPerCell(variant lattice.Variant) int {
	if variant.Hexagonal() {
		return 2
	}
	return 4
}

// ExpectedSites returns the closed-form site count for the variant and
// replication: 4·n1·n2·n3 for FCC, 2·n1·n2·n3 for HCP/DHCP (n3 counting
// layers).
func ExpectedSites(variant lattice.Variant, rep Replication) int {
	return sitesPerCell(variant) * rep[0] * rep[1] * rep[2]
}
