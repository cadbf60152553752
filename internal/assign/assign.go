// Package assign labels supercell sites with elements so that the
// realized per-element counts match the target composition exactly under
// the documented rounding policy, using a seeded uniform permutation.
package assign

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/vk/sfegridgo/internal/alloy"
	"github.com/vk/sfegridgo/internal/supercell"
)

// ErrInfeasibleComposition reports a target-count split that is
// impossible for the site count. The rounding policy cannot produce one
// for a valid composition, so hitting this means a logic defect upstream.
var ErrInfeasibleComposition = errors.New("infeasible composition")

// pcgStream is the fixed second PCG seed word. Per-task variation enters
// entirely through the first word so that one uint64 fully identifies a
// labeling.
const pcgStream = 0x9e3779b97f4a7c15

// Result is the labeled supercell: the immutable site list, the element
// label per site index, and the realized counts (always equal to the
// targets by construction, re-verified by the writer).
type Result struct {
	Cell   *supercell.Supercell
	Labels []alloy.Element
	Counts [3]int
}

// TargetCounts splits n sites into per-element integer counts for the
// composition. Policy: Al and Fe get their fractions rounded to nearest
// (half away from zero), Ni absorbs the remainder so the counts always
// sum to n. It fails with ErrInfeasibleComposition if any count falls
// outside [0, n].
func TargetCounts(n int, comp alloy.Composition) ([3]int, error) {
	if err := comp.Validate(); err != nil {
		return [3]int{}, err
	}

	var counts [3]int
	counts[alloy.Al] = int(math.Round(comp.Al * float64(n)))
	counts[alloy.Fe] = int(math.Round(comp.Fe * float64(n)))
	counts[alloy.Ni] = n - counts[alloy.Al] - counts[alloy.Fe]

	for _, e := range alloy.Elements {
		if counts[e] < 0 || counts[e] > n {
			return [3]int{}, fmt.Errorf("%w: %s count %d for %d sites", ErrInfeasibleComposition, e, counts[e], n)
		}
	}
	return counts, nil
}

// Assign labels every site of the supercell with an element. It builds a
// label pool holding exactly the target counts, applies a seeded uniform
// shuffle, and assigns pool entries to sites in site-index order. The
// random source is local to the call: identical (site count, composition,
// seed) inputs always produce an identical labeling regardless of what
// else the process is doing.
func Assign(cell *supercell.Supercell, comp alloy.Composition, seed uint64) (*Result, error) {
	n := cell.NumSites()
	counts, err := TargetCounts(n, comp)
	if err != nil {
		return nil, err
	}

	labels := make([]alloy.Element, 0, n)
	for _, e := range alloy.Elements {
		for i := 0; i < counts[e]; i++ {
			labels = append(labels, e)
		}
	}

	rng := rand.New(rand.NewPCG(seed, pcgStream))
	rng.Shuffle(len(labels), func(i, j int) {
		labels[i], labels[j] = labels[j], labels[i]
	})

	return &Result{Cell: cell, Labels: labels, Counts: counts}, nil
}
