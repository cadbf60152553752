package app

// Config holds the process-level settings the CLI resolves before the
// App starts. Zero/empty values mean "use the study configuration's
// default" so that flags only override what the user actually set.
type Config struct {
	// ConfigPath is the optional HCL study-configuration file.
	ConfigPath string

	// OutputDir overrides the study config's output directory when set.
	OutputDir string

	// Seed overrides the global seed when SeedSet is true.
	Seed    uint64
	SeedSet bool

	// Workers overrides the pool size when positive.
	Workers int

	// Scripts enables MD input/job script generation alongside the
	// structure files.
	Scripts bool

	// SFEDir switches the App into evaluation mode: collect
	// results_summary files under the directory and compute DMLF
	// energies instead of generating structures.
	SFEDir string

	LogFormat string
	LogLevel  string
}
