package task

// Report carries the derived geometry a completed task exposes across the
// boundary to downstream consumers: the realized atom counts, the box,
// and the cross-sectional area the SFE normalization needs (meaningful
// for the FCC variant, reported for all three for symmetry).
type Report struct {
	Task   Task
	NAtoms int
	Counts [3]int
	Lx     float64
	Ly     float64
	Lz     float64
	Volume float64
	Area   float64
	Path   string
}
