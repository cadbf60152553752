package supercell

import (
	"fmt"
	"math"
)

// checkInvariants enforces the hard geometry invariants on a freshly
// built supercell: every coordinate in [0, L) and no two sites closer
// than MinSiteDistance under the periodic minimum image. A violation is
// an internal defect, reported as ErrGeometryInvariant.
func checkInvariants(c *Supercell) error {
	for _, s := range c.Sites {
		if !inBounds(s.X, c.Lx) || !inBounds(s.Y, c.Ly) || !inBounds(s.Z, c.Lz) {
			return fmt.Errorf("%w: site %d at (%g, %g, %g) outside box (%g, %g, %g)",
				ErrGeometryInvariant, s.Index, s.X, s.Y, s.Z, c.Lx, c.Ly, c.Lz)
		}
	}

	// Site counts stay below ~2k for the study's replications, so the
	// quadratic pair scan is cheap enough for a hard invariant.
	min2 := MinSiteDistance * MinSiteDistance
	for i := range c.Sites {
		for j := i + 1; j < len(c.Sites); j++ {
			if d2 := c.minImageDist2(c.Sites[i], c.Sites[j]); d2 < min2 {
				return fmt.Errorf("%w: sites %d and %d separated by %.4f Å, want >= %g Å",
					ErrGeometryInvariant, i, j, math.Sqrt(d2), MinSiteDistance)
			}
		}
	}
	return nil
}

func inBounds(x, l float64) bool {
	return x >= 0 && x < l
}

// minImageDist2 returns the squared distance between two sites under the
// periodic minimum-image convention.
func (c *Supercell) minImageDist2(a, b Site) float64 {
	dx := minImage(a.X-b.X, c.Lx)
	dy := minImage(a.Y-b.Y, c.Ly)
	dz := minImage(a.Z-b.Z, c.Lz)
	return dx*dx + dy*dy + dz*dz
}

// minImage folds a coordinate delta into [-l/2, l/2].
func minImage(d, l float64) float64 {
	d -= l * math.Round(d/l)
	return d
}
