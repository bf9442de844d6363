package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bcollect/internal/cli"
	"github.com/agbru/bcollect/internal/config"
	apperrors "github.com/agbru/bcollect/internal/errors"
	"github.com/agbru/bcollect/internal/logging"
	"github.com/agbru/bcollect/internal/metrics"
	"github.com/agbru/bcollect/internal/ui"
)

const tracerName = "github.com/agbru/bcollect"

// Application represents the bcollect application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Stdin     io.Reader
	Logger    logging.Logger
	Metrics   *metrics.Recorder
	Tracer    trace.Tracer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithStdin sets the reader used when no input file is given.
func WithStdin(r io.Reader) AppOption {
	return func(a *Application) { a.Stdin = r }
}

// WithLogger replaces the logger derived from the configuration.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithTracer replaces the global OpenTelemetry tracer.
func WithTracer(t trace.Tracer) AppOption {
	return func(a *Application) { a.Tracer = t }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "bcollect"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{
		Config:    cfg,
		ErrWriter: errWriter,
		Stdin:     os.Stdin,
		Metrics:   metrics.NewRecorder(),
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = newLogger(cfg, errWriter)
	}
	if app.Tracer == nil {
		app.Tracer = otel.Tracer(tracerName)
	}
	return app, nil
}

func newLogger(cfg config.AppConfig, w io.Writer) logging.Logger {
	if cfg.Quiet {
		return logging.NewNopLogger()
	}
	level := zerolog.WarnLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	return logging.NewZerologAdapter(zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: cfg.NoColor}).
		Level(level).With().Timestamp().Str("component", "bcollect").Logger())
}

// Run validates and collects the configured inputs, writes the result and
// returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	ui.InitTheme(a.Config.NoColor)

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	stats, err := a.runCollect(ctx, out)
	if err != nil {
		cli.DisplayFailures(a.ErrWriter, err)
	}
	if a.Config.Verbose && stats.validated {
		cli.DisplaySummary(a.ErrWriter, stats.successes, stats.failures, time.Since(stats.start))
	}
	return apperrors.ExitCodeFor(err)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
