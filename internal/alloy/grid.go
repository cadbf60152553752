package alloy

import "fmt"

// GridPoint is one entry of the fixed composition grid. ID is the 1-based
// ordinal used in output directory names (Comp01..Comp21).
type GridPoint struct {
	ID   int
	Comp Composition
}

// Label renders the point's output-directory name, e.g. Comp07_Al75_Fe25_Ni00.
func (p GridPoint) Label() string {
	return fmt.Sprintf("Comp%02d_%s", p.ID, p.Comp.Label())
}

// gridFractions lists the 21 grid compositions in their canonical order:
// pure elements first, then the three binary edges at quarter splits, then
// the interior points (element-rich 50/25/25 rotations, 40/40/20
// rotations, and the near-equiatomic 33/34/33 rotations).
var gridFractions = [21][3]float64{
	// Pure elements.
	{1.00, 0.00, 0.00},
	{0.00, 1.00, 0.00},
	{0.00, 0.00, 1.00},
	// Al-Fe edge.
	{0.75, 0.25, 0.00},
	{0.50, 0.50, 0.00},
	{0.25, 0.75, 0.00},
	// Al-Ni edge.
	{0.75, 0.00, 0.25},
	{0.50, 0.00, 0.50},
	{0.25, 0.00, 0.75},
	// Fe-Ni edge.
	{0.00, 0.75, 0.25},
	{0.00, 0.50, 0.50},
	{0.00, 0.25, 0.75},
	// Interior: one element rich.
	{0.50, 0.25, 0.25},
	{0.25, 0.50, 0.25},
	{0.25, 0.25, 0.50},
	// Interior: one element lean.
	{0.40, 0.40, 0.20},
	{0.40, 0.20, 0.40},
	{0.20, 0.40, 0.40},
	// Interior: near-equiatomic.
	{0.34, 0.33, 0.33},
	{0.33, 0.34, 0.33},
	{0.33, 0.33, 0.34},
}

// Grid returns the fixed 21-point composition grid. The returned slice is
// freshly allocated; callers may reorder it freely.
func Grid() []GridPoint {
	points := make([]GridPoint, 0, len(gridFractions))
	for i, f := range gridFractions {
		points = append(points, GridPoint{
			ID:   i + 1,
			Comp: Composition{Al: f[0], Fe: f[1], Ni: f[2]},
		})
	}
	return points
}
