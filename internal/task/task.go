// Package task enumerates the study's generation tasks (the cross
// product of the 21-point composition grid and the three stacking
// variants) and derives each task's private random seed.
package task

import (
	"fmt"
	"hash/fnv"

	"github.com/vk/sfegridgo/internal/alloy"
	"github.com/vk/sfegridgo/internal/lattice"
)

// Task identifies one independent structure-generation unit.
type Task struct {
	Point   alloy.GridPoint
	Variant lattice.Variant
}

// Key returns the stable task identifier, e.g. Comp07_Al75_Fe00_Ni25/FCC.
// It names the output file's directory and feeds the per-task seed.
func (t Task) Key() string {
	return fmt.Sprintf("%s/%s", t.Point.Label(), t.Variant)
}

// Grid enumerates all 63 tasks in grid order, variants innermost.
func Grid() []Task {
	points := alloy.Grid()
	tasks := make([]Task, 0, len(points)*len(lattice.Variants))
	for _, p := range points {
		for _, v := range lattice.Variants {
			tasks = append(tasks, Task{Point: p, Variant: v})
		}
	}
	return tasks
}

// Seed derives the task's random seed from the global seed and the task
// key. The derivation is a pure function, so a task's labeling never
// depends on which worker ran it or in what order.
func Seed(globalSeed uint64, t Task) uint64 {
	h := fnv.New64a()
	h.Write([]byte(t.Key()))
	return globalSeed ^ h.Sum64()
}
