// Package supercell generates periodic supercell site lists for the FCC,
// HCP, and DHCP stacking variants. FCC uses the conventional 4-atom cubic
// cell; the hexagonal variants use the orthorhombic setting of the
// close-packed lattice, stacking layers AB (HCP) or ABAC (DHCP) along z.
// Every build runs a hard invariant check: all wrapped sites inside the
// box and no two sites closer than the minimum-distance tolerance under
// the periodic minimum image.
package supercell
