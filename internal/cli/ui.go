//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() {
	rs.s.Start()
}

func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState counts validated entries against the expected total.
type ProgressState struct {
	done  int
	total int
}

// NewProgressState creates a ProgressState expecting total entries.
func NewProgressState(total int) *ProgressState {
	return &ProgressState{total: total}
}

// Advance records one more validated entry. Extra calls are ignored once the
// total is reached.
func (ps *ProgressState) Advance() {
	if ps.done < ps.total {
		ps.done++
	}
}

// Fraction returns the completed share in [0, 1].
func (ps *ProgressState) Fraction() float64 {
	if ps.total == 0 {
		return 1.0
	}
	return float64(ps.done) / float64(ps.total)
}

// String renders the state as a progress bar followed by the counts.
func (ps *ProgressState) String() string {
	return fmt.Sprintf(" %s %d/%d", progressBar(ps.Fraction(), ProgressBarWidth), ps.done, ps.total)
}

// DisplayProgress shows a spinner and progress bar while entries are
// validated. Each value received on progressChan counts as one finished
// entry; the display stops when progressChan is closed.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan struct{}, total int, out io.Writer) {
	defer wg.Done()
	if total <= 0 {
		for range progressChan {
		}
		return
	}

	state := NewProgressState(total)
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(state.String())
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case _, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(state.String())
				s.Stop()
				fmt.Fprintf(out, "Validated %d/%d entries\n", state.done, state.total)
				return
			}
			state.Advance()
		case <-ticker.C:
			s.UpdateSuffix(state.String())
		}
	}
}

// progressBar generates a string representing a textual progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
