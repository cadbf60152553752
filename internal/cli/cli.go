package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/sfegridgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly,
// or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("sfegridgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
sfegridgo - periodic supercell builder for ternary-alloy SFE studies.

Generates size- and stoichiometry-exact FCC/HCP/DHCP supercells for the
21-point Al-Fe-Ni composition grid and writes them as LAMMPS data files,
or evaluates the DMLF stacking-fault energies over collected MD results.

Usage:
  sfegridgo [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an optional HCL study-configuration file.")
	outFlag := flagSet.String("out", "", "Output directory for composition folders (default from config: 'runs').")
	seedFlag := flagSet.Int64("seed", -1, "Global random seed; -1 keeps the configured value.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent workers; 0 means one per CPU.")
	scriptsFlag := flagSet.Bool("scripts", false, "Also generate LAMMPS input and job scripts per composition.")
	sfeFlag := flagSet.String("sfe", "", "Evaluate DMLF energies over results_summary files under this directory instead of generating structures.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *workersFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "workers must not be negative"}
	}

	config := &app.Config{
		ConfigPath: *configFlag,
		OutputDir:  *outFlag,
		Workers:    *workersFlag,
		Scripts:    *scriptsFlag,
		SFEDir:     *sfeFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	}
	if *seedFlag >= 0 {
		config.Seed = uint64(*seedFlag)
		config.SeedSet = true
	}

	return config, false, nil
}
