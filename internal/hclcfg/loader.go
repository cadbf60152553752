package hclcfg

import (
	"context"
	"fmt"
	"math"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/sfegridgo/internal/alloy"
	"github.com/vk/sfegridgo/internal/ctxlog"
	"github.com/vk/sfegridgo/internal/lattice"
	"github.com/vk/sfegridgo/internal/supercell"
)

// fileRoot is the raw shape of a configuration file. Every block is
// optional; anything absent keeps its default.
type fileRoot struct {
	Grid       *gridBlock       `hcl:"grid,block"`
	Elements   []*elementBlock  `hcl:"element,block"`
	Variants   []*variantBlock  `hcl:"variant,block"`
	Simulation *simulationBlock `hcl:"simulation,block"`
}

type gridBlock struct {
	Seed    *int64  `hcl:"seed"`
	Output  *string `hcl:"output"`
	Workers *int    `hcl:"workers"`
}

type elementBlock struct {
	Name string  `hcl:"name,label"`
	Mass float64 `hcl:"mass"`
	FCCA float64 `hcl:"fcc_a"`
}

type variantBlock struct {
	Name        string   `hcl:"name,label"`
	CARatio     *float64 `hcl:"ca_ratio"`
	Replication []int    `hcl:"replication,optional"`
}

type simulationBlock struct {
	Temperatures       []int `hcl:"temperatures,optional"`
	MPIRanks           *int  `hcl:"mpi_ranks"`
	OMPThreads         *int  `hcl:"omp_threads"`
	EquilibrationSteps *int  `hcl:"equilibration_steps"`
	ProductionSteps    *int  `hcl:"production_steps"`
}

// evalContext exposes the named constants configuration expressions may
// reference, e.g. `ca_ratio = ideal_ca`.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"pi":       cty.NumberFloatVal(math.Pi),
			"ideal_ca": cty.NumberFloatVal(lattice.IdealCA),
		},
	}
}

// Load returns the study configuration: the built-in defaults when path
// is empty, otherwise the defaults overridden by the HCL file at path.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := Default()

	if path == "" {
		logger.Debug("No config file given, using built-in defaults.")
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing config %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &root); diags.HasErrors() {
		return nil, fmt.Errorf("decoding config %s: %w", path, diags)
	}
	logger.Debug("Config file decoded.", "path", path,
		"elements", len(root.Elements), "variants", len(root.Variants))

	if err := apply(cfg, &root); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// apply overlays the decoded file onto the defaults.
func apply(cfg *Config, root *fileRoot) error {
	if g := root.Grid; g != nil {
		if g.Seed != nil {
			if *g.Seed < 0 {
				return fmt.Errorf("grid seed must be non-negative, got %d", *g.Seed)
			}
			cfg.Seed = uint64(*g.Seed)
		}
		if g.Output != nil {
			cfg.OutputDir = *g.Output
		}
		if g.Workers != nil {
			cfg.Workers = *g.Workers
		}
	}

	for _, b := range root.Elements {
		e, err := alloy.ParseElement(b.Name)
		if err != nil {
			return err
		}
		cfg.Elements[e] = ElementParams{Mass: b.Mass, FCCConstant: b.FCCA}
	}

	for _, b := range root.Variants {
		v, err := lattice.ParseVariant(b.Name)
		if err != nil {
			return err
		}
		if b.CARatio != nil {
			if !v.Hexagonal() {
				return fmt.Errorf("variant %s does not take a c/a ratio", v)
			}
			cfg.CARatio[v] = *b.CARatio
		}
		if b.Replication != nil {
			if len(b.Replication) != 3 {
				return fmt.Errorf("variant %s replication needs 3 counts, got %d", v, len(b.Replication))
			}
			cfg.Replication[v] = supercell.Replication{b.Replication[0], b.Replication[1], b.Replication[2]}
		}
	}

	if s := root.Simulation; s != nil {
		if s.Temperatures != nil {
			cfg.Simulation.Temperatures = s.Temperatures
		}
		if s.MPIRanks != nil {
			cfg.Simulation.MPIRanks = *s.MPIRanks
		}
		if s.OMPThreads != nil {
			cfg.Simulation.OMPThreads = *s.OMPThreads
		}
		if s.EquilibrationSteps != nil {
			cfg.Simulation.EquilibrationSteps = *s.EquilibrationSteps
		}
		if s.ProductionSteps != nil {
			cfg.Simulation.ProductionSteps = *s.ProductionSteps
		}
	}
	return nil
}
