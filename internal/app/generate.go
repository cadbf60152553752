package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vk/sfegridgo/internal/assign"
	"github.com/vk/sfegridgo/internal/executor"
	"github.com/vk/sfegridgo/internal/lammps"
	"github.com/vk/sfegridgo/internal/mdscript"
	"github.com/vk/sfegridgo/internal/supercell"
	"github.com/vk/sfegridgo/internal/task"
)

// GeometrySummaryFileName is the per-composition file recording the
// generated box geometry, one line per variant: variant, atom count, box
// lengths, volume, cross-sectional area. The FCC line's area is the
// normalization area the downstream DMLF evaluation divides by.
const GeometrySummaryFileName = "geometry_summary.txt"

// runGeneration builds all 63 structures on the worker pool and writes
// the per-composition geometry summaries (and, optionally, MD scripts).
func (a *App) runGeneration(ctx context.Context) error {
	tasks := task.Grid()
	a.logger.Info("🚀 Starting structure generation.",
		"tasks", len(tasks), "workers", a.study.Workers, "seed", a.study.Seed)

	if err := os.MkdirAll(a.study.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	pool := executor.New(a.study.Workers)
	outcomes := pool.Run(ctx, tasks, a.generateTask)

	failed := 0
	byComp := make(map[string][]*task.Report)
	for _, o := range outcomes {
		if o.Failed() {
			failed++
			continue
		}
		label := o.Task.Point.Label()
		byComp[label] = append(byComp[label], o.Report)
	}

	if err := a.writeCompositionFiles(byComp); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d generation tasks failed", failed, len(tasks))
	}
	a.logger.Info("🏁 Structure generation finished.", "tasks", len(tasks))
	return nil
}

// generateTask is the four-stage pipeline one worker runs to completion:
// lattice parameters, supercell build, site assignment, structure write.
func (a *App) generateTask(ctx context.Context, t task.Task) (*task.Report, error) {
	spec, err := a.model.For(t.Point.Comp, t.Variant)
	if err != nil {
		return nil, err
	}

	cell, err := supercell.Build(spec, a.study.Replication[t.Variant])
	if err != nil {
		return nil, err
	}

	seed := task.Seed(a.study.Seed, t)
	res, err := assign.Assign(cell, t.Point.Comp, seed)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(a.study.OutputDir, t.Point.Label())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating composition directory: %w", err)
	}

	path := filepath.Join(dir, lammps.StructureFileName(t.Variant))
	comment := fmt.Sprintf("%s %s seed=%d", t.Point.Label(), t.Variant, seed)
	if err := lammps.WriteDataFile(path, res, a.masses, comment); err != nil {
		return nil, err
	}

	return &task.Report{
		Task:   t,
		NAtoms: cell.NumSites(),
		Counts: res.Counts,
		Lx:     cell.Lx,
		Ly:     cell.Ly,
		Lz:     cell.Lz,
		Volume: cell.Volume(),
		Area:   cell.Area(),
		Path:   path,
	}, nil
}

// writeCompositionFiles writes each composition's geometry summary and,
// when enabled, its MD script set plus the top-level driver.
func (a *App) writeCompositionFiles(byComp map[string][]*task.Report) error {
	labels := make([]string, 0, len(byComp))
	for label := range byComp {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		dir := filepath.Join(a.study.OutputDir, label)
		if err := writeGeometrySummary(filepath.Join(dir, GeometrySummaryFileName), byComp[label]); err != nil {
			return err
		}
		if a.cfg.Scripts {
			if err := mdscript.Generate(dir, a.study.Simulation); err != nil {
				return err
			}
		}
	}

	if a.cfg.Scripts && len(labels) > 0 {
		if err := mdscript.GenerateMaster(a.study.OutputDir, labels); err != nil {
			return err
		}
	}
	return nil
}

// writeGeometrySummary records the boundary geometry for one composition
// directory, variants in canonical order.
func writeGeometrySummary(path string, reports []*task.Report) error {
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Task.Variant < reports[j].Task.Variant
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating geometry summary: %w", err)
	}
	for _, r := range reports {
		fmt.Fprintf(f, "%s %d %.6f %.6f %.6f %.6f %.6f\n",
			r.Task.Variant, r.NAtoms, r.Lx, r.Ly, r.Lz, r.Volume, r.Area)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing geometry summary: %w", err)
	}
	return nil
}
