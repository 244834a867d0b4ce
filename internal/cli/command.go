package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/wipe/internal/config"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// flags holds the raw command-line values before they are layered over the config.
type flags struct {
	config   string
	factor   int
	threads  int
	logLevel string
	output   string
	yes      bool
}

func (f *flags) bind(set *pflag.FlagSet) {
	defaults := config.Default()

	set.BoolVarP(&f.yes, "yes", "y", defaults.Yes, "Delete without asking for confirmation")
	set.IntVarP(&f.factor, "factor", "f", defaults.Factor, "Worker threads per logical CPU")
	set.IntVarP(&f.threads, "threads", "t", defaults.Threads, "Explicit number of worker threads (overrides --factor)")
	set.StringVarP(&f.logLevel, "log-level", "l", defaults.LogLevel, "Log level: debug, info, warn or error")
	set.StringVarP(&f.output, "output", "o", defaults.Output, "Timing report format: table or json")
	set.StringVarP(&f.config, "config", "c", "", "Configuration file (.yaml/.yml, otherwise dotenv)")

	set.SortFlags = false
}

// resolve layers defaults, the config file, the environment and explicitly set flags.
func (f *flags) resolve(set *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()

	if f.config != "" {
		if err := cfg.Load(f.config); err != nil {
			return cfg, err
		}
	}

	if err := cfg.Apply(config.Environ()); err != nil {
		return cfg, err
	}

	if set.Changed("yes") {
		cfg.Yes = f.yes
	}

	if set.Changed("factor") {
		cfg.Factor = f.factor
	}

	if set.Changed("threads") {
		cfg.Threads = f.threads
	}

	if set.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}

	if set.Changed("output") {
		cfg.Output = f.output
	}

	return cfg, cfg.Validate()
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "wipe [flags] <dir> [dirs...]",
		Short: "Delete directory trees, fast",
		Long: heredoc.Doc(`
			wipe empties each given directory as fast as the filesystem allows.

			Files and symlinks are removed by a large pool of parallel workers while
			the tree is being walked. Directories are then removed level by level,
			deepest first. Read-only entries are made writable before removal and
			junctions are removed without being followed.

			The given directories themselves are kept, empty.

			Settings are read, in increasing priority, from the built-in defaults,
			the --config file, WIPE_* environment variables and the flags below.
		`),
		Example: heredoc.Doc(`
			wipe node_modules
			wipe -y build dist .cache
			wipe --threads 64 --output json /tmp/scratch
		`),
		Version:       c.version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd.Flags())
			if err != nil {
				return err
			}

			return logic(cmd, cfg, args)
		},
	}

	f.bind(cmd.Flags())
	cmd.SetVersionTemplate("{{.Version}}\n")

	return cmd
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}
