package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agbru/bcollect"
	"github.com/agbru/bcollect/internal/cli"
	"github.com/agbru/bcollect/internal/config"
	"github.com/agbru/bcollect/internal/entries"
	apperrors "github.com/agbru/bcollect/internal/errors"
	"github.com/agbru/bcollect/internal/logging"
	"github.com/agbru/bcollect/internal/parallel"
	"github.com/agbru/bcollect/yamlmap"
)

// sourcedLine is an input line together with the file it came from.
type sourcedLine struct {
	source string
	line   entries.Line
}

// runStats summarizes a run that got as far as validation.
type runStats struct {
	validated bool
	successes int
	failures  int
	start     time.Time
}

// runCollect reads, validates, collects and writes the entries. The returned
// error is nil on success, an *bcollect.AggregateError when entries were
// rejected, or the first input, configuration or output error.
func (a *Application) runCollect(ctx context.Context, out io.Writer) (stats runStats, err error) {
	ctx, span := a.Tracer.Start(ctx, "bcollect.collect")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "collection failed")
		}
		span.End()
	}()

	stats.start = time.Now()
	lines, err := a.readInputs(ctx)
	if err != nil {
		return stats, err
	}
	a.Logger.Debug("inputs read", logging.Int("lines", len(lines)), logging.Int("files", len(a.Config.Inputs)))

	validator, err := newValidator(a.Config)
	if err != nil {
		return stats, err
	}

	outcomes := a.validate(ctx, validator, lines)
	successes := 0
	for _, o := range outcomes {
		if o.IsOk() {
			successes++
		}
	}
	failures := len(outcomes) - successes
	elapsed := time.Since(stats.start)
	stats.validated, stats.successes, stats.failures = true, successes, failures

	span.SetAttributes(
		attribute.Int("bcollect.lines", len(lines)),
		attribute.Int("bcollect.successes", successes),
		attribute.Int("bcollect.failures", failures),
		attribute.String("bcollect.format", a.Config.Format),
	)
	a.recordMetrics(successes, failures, elapsed)
	a.Logger.Info("validation finished",
		logging.Int("successes", successes),
		logging.Int("failures", failures),
		logging.Duration("elapsed", elapsed))

	return stats, a.emit(outcomes, out)
}

// readInputs reads every input, giving up when ctx is done. A reader blocked
// on a source that never reaches EOF is abandoned; its goroutine ends with
// the process.
func (a *Application) readInputs(ctx context.Context) ([]sourcedLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.InputError{Path: a.inputLabel(), Cause: err}
	}

	type result struct {
		lines []sourcedLine
		err   error
	}
	done := make(chan result, 1)
	go func() {
		lines, err := a.readAll()
		done <- result{lines, err}
	}()

	select {
	case res := <-done:
		return res.lines, res.err
	case <-ctx.Done():
		return nil, apperrors.InputError{Path: a.inputLabel(), Cause: ctx.Err()}
	}
}

func (a *Application) inputLabel() string {
	if len(a.Config.Inputs) == 0 {
		return "-"
	}
	return strings.Join(a.Config.Inputs, ", ")
}

func (a *Application) readAll() ([]sourcedLine, error) {
	if len(a.Config.Inputs) == 0 {
		lines, err := entries.ReadLines(a.Stdin)
		if err != nil {
			return nil, apperrors.InputError{Path: "-", Cause: err}
		}
		return withSource("", lines), nil
	}

	var all []sourcedLine
	for _, path := range a.Config.Inputs {
		lines, err := readFile(path)
		if err != nil {
			return nil, apperrors.InputError{Path: path, Cause: err}
		}
		all = append(all, withSource(path, lines)...)
	}
	return all, nil
}

func readFile(path string) ([]entries.Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return entries.ReadLines(f)
}

func withSource(source string, lines []entries.Line) []sourcedLine {
	out := make([]sourcedLine, len(lines))
	for i, l := range lines {
		out[i] = sourcedLine{source: source, line: l}
	}
	return out
}

func newValidator(cfg config.AppConfig) (*entries.Validator, error) {
	rules := []entries.Rule{entries.NonEmptyKey()}
	if cfg.MaxValueLen > 0 {
		rules = append(rules, entries.MaxValueLength(cfg.MaxValueLen))
	}
	if cfg.KeyPattern != "" {
		re, err := regexp.Compile(cfg.KeyPattern)
		if err != nil {
			return nil, apperrors.NewConfigError("invalid key-pattern: %v", err)
		}
		rules = append(rules, entries.KeyPattern(re))
	}
	return entries.NewValidator(rules...), nil
}

// validate checks every line concurrently, reporting progress when enabled.
func (a *Application) validate(ctx context.Context, v *entries.Validator, lines []sourcedLine) []bcollect.Outcome[bcollect.Pair[string, string]] {
	var (
		wg       sync.WaitGroup
		progress chan struct{}
	)
	if a.Config.Progress && !a.Config.Quiet {
		progress = make(chan struct{}, len(lines))
		wg.Add(1)
		go cli.DisplayProgress(&wg, progress, len(lines), a.ErrWriter)
	}

	outcomes := parallel.Map(ctx, lines, a.Config.Workers,
		func(ctx context.Context, sl sourcedLine) (bcollect.Pair[string, string], error) {
			pair, err := v.Check(ctx, sl.line)
			if progress != nil {
				progress <- struct{}{}
			}
			if err != nil && sl.source != "" {
				err = fmt.Errorf("%s: %w", sl.source, err)
			}
			return pair, err
		})

	if progress != nil {
		close(progress)
		wg.Wait()
	}

	// Entries skipped once ctx was done never reached Check; give them the
	// same line and file context as checked entries.
	for i, o := range outcomes {
		if o.Err == nil || !apperrors.IsContextError(o.Err) {
			continue
		}
		var entryErr *entries.EntryError
		if errors.As(o.Err, &entryErr) {
			continue
		}
		var err error = &entries.EntryError{Line: lines[i].line.Number, Err: o.Err}
		if lines[i].source != "" {
			err = fmt.Errorf("%s: %w", lines[i].source, err)
		}
		outcomes[i] = bcollect.Fail[bcollect.Pair[string, string]](err)
	}
	return outcomes
}

// emit collects outcomes into the configured container and writes it.
func (a *Application) emit(outcomes []bcollect.Outcome[bcollect.Pair[string, string]], out io.Writer) error {
	switch a.Config.Format {
	case config.FormatEnv:
		m, err := bcollect.Collect(slices.Values(outcomes), bcollect.Map[string, string]())
		if err != nil {
			return err
		}
		return cli.WriteOutput(a.Config.OutputFile, out, func(w io.Writer) error {
			_, err := io.WriteString(w, cli.FormatEnv(m))
			return err
		})
	default:
		node, err := bcollect.Collect(yamlOutcomes(outcomes), yamlmap.Builder())
		if err != nil {
			return err
		}
		return cli.WriteOutput(a.Config.OutputFile, out, func(w io.Writer) error {
			return yamlmap.Encode(w, node)
		})
	}
}

// yamlOutcomes converts validated pairs into YAML node pairs. Failures pass
// through unchanged.
func yamlOutcomes(outcomes []bcollect.Outcome[bcollect.Pair[string, string]]) iter.Seq[bcollect.Outcome[yamlmap.Pair]] {
	return func(yield func(bcollect.Outcome[yamlmap.Pair]) bool) {
		for _, o := range outcomes {
			var next bcollect.Outcome[yamlmap.Pair]
			if o.IsOk() {
				next = bcollect.Ok(yamlmap.Entry(o.Value.Key, o.Value.Value))
			} else {
				next = bcollect.Fail[yamlmap.Pair](o.Err)
			}
			if !yield(next) {
				return
			}
		}
	}
}

func (a *Application) recordMetrics(successes, failures int, elapsed time.Duration) {
	a.Metrics.Observe(successes, failures, elapsed)
	if a.Config.MetricsFile == "" {
		return
	}
	if err := a.Metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
		a.Logger.Error("failed to write metrics file", err, logging.String("path", a.Config.MetricsFile))
	}
}
