package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/vk/sfegridgo/internal/ctxlog"
	"github.com/vk/sfegridgo/internal/hclcfg"
	"github.com/vk/sfegridgo/internal/lammps"
	"github.com/vk/sfegridgo/internal/lattice"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cfg    *Config
	study  *hclcfg.Config
	model  *lattice.Model
	masses lammps.Masses
}

// New constructs the application: it builds the isolated logger, loads
// the study configuration (built-in defaults layered under the optional
// HCL file), and applies the CLI overrides.
func New(outW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	study, err := hclcfg.Load(ctx, cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	// Flag overrides beat the file; the file beats the defaults.
	if cfg.OutputDir != "" {
		study.OutputDir = cfg.OutputDir
	}
	if cfg.SeedSet {
		study.Seed = cfg.Seed
	}
	if cfg.Workers > 0 {
		study.Workers = cfg.Workers
	}
	if study.Workers < 1 {
		study.Workers = runtime.NumCPU()
	}
	logger.Debug("Study configuration resolved.",
		"seed", study.Seed, "output", study.OutputDir, "workers", study.Workers)

	return &App{
		outW:   outW,
		logger: logger,
		cfg:    cfg,
		study:  study,
		model:  lattice.NewModel(study.LatticeConstants()),
		masses: study.Masses(),
	}, nil
}

// Study exposes the resolved study configuration. This is primarily for
// testing.
func (a *App) Study() *hclcfg.Config {
	return a.study
}

// Run executes the selected mode: DMLF evaluation when SFEDir is set,
// structure generation otherwise.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	var err error
	if a.cfg.SFEDir != "" {
		err = a.runEvaluation(ctx)
	} else {
		err = a.runGeneration(ctx)
	}

	a.logger.Debug("App.Run method finished.")
	return err
}
