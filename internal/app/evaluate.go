package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/sfegridgo/internal/sfe"
)

// runEvaluation collects the MD engine's results_summary files under the
// configured directory and writes the DMLF result tables next to them.
func (a *App) runEvaluation(ctx context.Context) error {
	root := a.cfg.SFEDir
	a.logger.Info("🚀 Starting DMLF evaluation.", "dir", root)

	records, err := sfe.Collect(root)
	if err != nil {
		return fmt.Errorf("collecting results: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no %s files found under %s", sfe.SummaryFileName, root)
	}
	a.logger.Info("Results collected.", "records", len(records))

	results := sfe.Evaluate(ctx, records)
	if len(results) == 0 {
		return fmt.Errorf("no (composition, temperature) group had all three variants")
	}
	for _, r := range results {
		a.logger.Info(r.String())
	}

	if err := writeCSVFile(filepath.Join(root, "sfe_results.csv"), func(f *os.File) error {
		return sfe.WriteCSV(f, results)
	}); err != nil {
		return err
	}
	if err := writeCSVFile(filepath.Join(root, "sfe_summary.csv"), func(f *os.File) error {
		return sfe.WriteSummaryCSV(f, sfe.Summarize(results))
	}); err != nil {
		return err
	}

	a.logger.Info("🏁 DMLF evaluation finished.", "results", len(results))
	return nil
}

func writeCSVFile(path string, fill func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := fill(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
