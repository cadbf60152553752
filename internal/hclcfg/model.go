// Package hclcfg loads the study configuration from an optional HCL file
// layered over built-in defaults: the pure-element reference table, the
// per-variant replication counts and c/a ratios, the run parameters, and
// the MD-engine knobs used by script generation.
package hclcfg

import (
	"fmt"

	"github.com/vk/sfegridgo/internal/alloy"
	"github.com/vk/sfegridgo/internal/lammps"
	"github.com/vk/sfegridgo/internal/lattice"
	"github.com/vk/sfegridgo/internal/supercell"
)

// ElementParams is the configurable per-element reference data.
type ElementParams struct {
	// Mass is the atomic mass (g/mol) written to the Masses section.
	Mass float64
	// FCCConstant is the pure-element FCC lattice constant (Å) the
	// Vegard's-law model interpolates from.
	FCCConstant float64
}

// Simulation carries the MD-engine parameters consumed by LAMMPS input
// and job script generation. The core generator ignores them.
type Simulation struct {
	// Temperatures are the production temperatures (K), one input script
	// per (variant, temperature).
	Temperatures []int
	// MPIRanks and OMPThreads parameterize the generated job scripts.
	MPIRanks   int
	OMPThreads int
	// EquilibrationSteps and ProductionSteps are the NPT stage lengths.
	EquilibrationSteps int
	ProductionSteps    int
}

// Config is the fully resolved study configuration.
type Config struct {
	Seed      uint64
	OutputDir string
	Workers   int

	Elements    map[alloy.Element]ElementParams
	CARatio     map[lattice.Variant]float64
	Replication map[lattice.Variant]supercell.Replication

	Simulation Simulation
}

// Default returns the built-in configuration: the reference constants
// from lattice.DefaultConstants, masses Al 26.98 / Fe 55.85 / Ni 58.69,
// FCC replicated 6×6×6 and the hexagonal variants 6×6×12 (all three give
// 864 atoms), seed 42, and the group-6 temperature set 400/200/650 K.
func Default() *Config {
	constants := lattice.DefaultConstants()
	masses := lammps.DefaultMasses()

	elements := make(map[alloy.Element]ElementParams, len(alloy.Elements))
	for _, e := range alloy.Elements {
		elements[e] = ElementParams{
			Mass:        masses[e],
			FCCConstant: constants.FCCA[e],
		}
	}

	return &Config{
		Seed:      42,
		OutputDir: "runs",
		Elements:  elements,
		CARatio: map[lattice.Variant]float64{
			lattice.HCP:  constants.CARatio[lattice.HCP],
			lattice.DHCP: constants.CARatio[lattice.DHCP],
		},
		Replication: map[lattice.Variant]supercell.Replication{
			lattice.FCC:  {6, 6, 6},
			lattice.HCP:  {6, 6, 12},
			lattice.DHCP: {6, 6, 12},
		},
		Simulation: Simulation{
			Temperatures:       []int{400, 200, 650},
			MPIRanks:           1,
			OMPThreads:         8,
			EquilibrationSteps: 20000,
			ProductionSteps:    50000,
		},
	}
}

// LatticeConstants assembles the lattice.Constants view of the config.
func (c *Config) LatticeConstants() lattice.Constants {
	fcca := make(map[alloy.Element]float64, len(c.Elements))
	for e, p := range c.Elements {
		fcca[e] = p.FCCConstant
	}
	return lattice.Constants{FCCA: fcca, CARatio: c.CARatio}
}

// Masses assembles the atomic-mass table of the config.
func (c *Config) Masses() lammps.Masses {
	var m lammps.Masses
	for e, p := range c.Elements {
		m[e] = p.Mass
	}
	return m
}

// Validate checks the resolved configuration for values the pipeline
// cannot run with.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	for _, e := range alloy.Elements {
		p, ok := c.Elements[e]
		if !ok {
			return fmt.Errorf("element %s missing from configuration", e)
		}
		if p.Mass <= 0 || p.FCCConstant <= 0 {
			return fmt.Errorf("element %s needs positive mass and fcc_a, got %v and %v", e, p.Mass, p.FCCConstant)
		}
	}
	for _, v := range lattice.Variants {
		rep, ok := c.Replication[v]
		if !ok {
			return fmt.Errorf("variant %s missing replication counts", v)
		}
		if err := rep.Validate(v); err != nil {
			return fmt.Errorf("variant %s: %w", v, err)
		}
		if v.Hexagonal() && c.CARatio[v] <= 0 {
			return fmt.Errorf("variant %s needs a positive c/a ratio", v)
		}
	}
	if len(c.Simulation.Temperatures) == 0 {
		return fmt.Errorf("at least one simulation temperature is required")
	}
	for _, t := range c.Simulation.Temperatures {
		if t <= 0 {
			return fmt.Errorf("temperatures must be positive, got %d", t)
		}
	}
	return nil
}
