package config

import (
	"flag"
	"fmt"
	"io"
	"regexp"
	"runtime"
	"time"

	apperrors "github.com/agbru/bcollect/internal/errors"
)

// EnvPrefix is the prefix of every environment variable read by the tool.
const EnvPrefix = "BCOLLECT_"

// Output formats.
const (
	FormatYAML = "yaml"
	FormatEnv  = "env"
)

// Default values for the configurable parameters.
const (
	DefaultMaxValueLen = 4096
	DefaultTimeout     = 1 * time.Minute
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Inputs lists the files to read; empty means standard input.
	Inputs []string
	// Format selects how the collected entries are written (yaml or env).
	Format string
	// OutputFile is the path to write the collected entries to (empty for stdout).
	OutputFile string
	// Workers bounds the number of entries validated concurrently.
	Workers int
	// MaxValueLen rejects values longer than this many bytes (0 disables the check).
	MaxValueLen int
	// KeyPattern, when set, is a regular expression every key must match.
	KeyPattern string
	// MetricsFile, when set, receives the run's metrics in Prometheus text format.
	MetricsFile string
	// Timeout bounds the whole run, reading the inputs included.
	Timeout time.Duration
	// Progress shows a spinner on the error writer while validating.
	Progress bool
	// Verbose enables debug logging.
	Verbose bool
	// Quiet disables logging entirely.
	Quiet bool
	// NoColor disables colored output.
	NoColor bool
	// ShowVersion prints the version banner instead of collecting.
	ShowVersion bool
}

// ParseConfig parses the command-line arguments into an AppConfig. Values not
// given on the command line are taken from BCOLLECT_* environment variables,
// then from the defaults.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The arguments, without the program name.
//   - errWriter: Destination for usage and parse errors.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when help was requested, a ConfigError for invalid
//     values, or the flag package's parse error.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] [file ...]\n\n", programName)
		fmt.Fprintf(errWriter, "Validates key=value lines and collects them, reporting every rejected line at once.\n\n")
		fs.PrintDefaults()
	}

	cfg := AppConfig{}
	fs.StringVar(&cfg.Format, "format", FormatYAML, "Output format: yaml or env.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the collected entries to this file instead of stdout.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for --output.")
	fs.IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "Number of entries validated concurrently.")
	fs.IntVar(&cfg.MaxValueLen, "max-value-len", DefaultMaxValueLen, "Maximum value length in bytes (0 disables the check).")
	fs.StringVar(&cfg.KeyPattern, "key-pattern", "", "Regular expression every key must match.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file.")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum duration of the run.")
	fs.BoolVar(&cfg.Progress, "progress", false, "Show a spinner while validating.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Disable logging.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version information and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	cfg.Inputs = fs.Args()

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistent or out-of-range values.
func (c AppConfig) Validate() error {
	if c.Format != FormatYAML && c.Format != FormatEnv {
		return apperrors.NewConfigError("unknown format %q (expected %s or %s)", c.Format, FormatYAML, FormatEnv)
	}
	if c.Workers < 1 {
		return apperrors.NewConfigError("workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxValueLen < 0 {
		return apperrors.NewConfigError("max-value-len must not be negative, got %d", c.MaxValueLen)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Verbose && c.Quiet {
		return apperrors.NewConfigError("verbose and quiet are mutually exclusive")
	}
	if c.KeyPattern != "" {
		if _, err := regexp.Compile(c.KeyPattern); err != nil {
			return apperrors.NewConfigError("invalid key-pattern: %v", err)
		}
	}
	return nil
}
