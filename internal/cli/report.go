// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayFailures], [DisplaySummary], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatEnv], [FormatExecutionDuration].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteOutput].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/agbru/bcollect"
	"github.com/agbru/bcollect/internal/ui"
)

// DisplayFailures writes the text of err to out, one failure per line, in the
// error style. When err aggregates several failures a dim header with their
// count comes first.
func DisplayFailures(out io.Writer, err error) {
	if err == nil {
		return
	}
	theme := ui.GetCurrentTheme()
	if agg, ok := bcollect.AsAggregate(err); ok && agg.Len() > 1 {
		fmt.Fprintln(out, theme.Dim.Render(fmt.Sprintf("%d entries rejected:", agg.Len())))
	}
	for line := range strings.SplitSeq(err.Error(), "\n") {
		fmt.Fprintln(out, theme.Error.Render(line))
	}
}

// DisplaySummary writes a one-line summary of a finished run.
func DisplaySummary(out io.Writer, successes, failures int, elapsed time.Duration) {
	theme := ui.GetCurrentTheme()
	status := theme.Success.Render("collected")
	if failures > 0 {
		status = theme.Error.Render("rejected")
	}
	fmt.Fprintf(out, "%s %s (%d ok, %d failed)\n",
		status,
		theme.Dim.Render("in "+FormatExecutionDuration(elapsed)),
		successes, failures)
}

// FormatEnv renders m as key=value lines sorted by key.
func FormatEnv(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(m[k])
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteOutput calls write with stdout when path is empty, otherwise with a
// newly created file at path. Missing parent directories are created. When
// write fails the partial file is removed.
func WriteOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(file); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
