package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/bcollect/internal/cli/mocks"
)

// MockSpinner for testing
type MockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffix = suffix
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{42 * time.Millisecond, "42ms"},
		{1500 * time.Millisecond, "1.5s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	// Just verify these methods don't panic
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestProgressState(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(4)
	if ps.Fraction() != 0 {
		t.Errorf("expected 0, got %v", ps.Fraction())
	}
	for range 6 {
		ps.Advance()
	}
	if ps.Fraction() != 1 {
		t.Errorf("Advance should stop at the total, got %v", ps.Fraction())
	}
	if !strings.HasSuffix(ps.String(), " 4/4") {
		t.Errorf("unexpected rendering %q", ps.String())
	}
	if NewProgressState(0).Fraction() != 1 {
		t.Error("an empty state is complete")
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		want     string
	}{
		{0, "░░░░"},
		{0.5, "██░░"},
		{1, "████"},
		{2, "████"},
		{-1, "░░░░"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.progress, 4); got != tt.want {
			t.Errorf("progressBar(%v) = %q, want %q", tt.progress, got, tt.want)
		}
	}
}

func TestDisplayProgress(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan struct{})
	var out bytes.Buffer

	go func() {
		for range 3 {
			progressChan <- struct{}{}
		}
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 3, &out)
	wg.Wait()

	if !mockS.started {
		t.Error("Spinner should have started")
	}
	if !mockS.stopped {
		t.Error("Spinner should have stopped")
	}
	if !strings.HasSuffix(mockS.suffix, " 3/3") {
		t.Errorf("final suffix should report completion, got %q", mockS.suffix)
	}
	if !strings.Contains(out.String(), "Validated 3/3 entries") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestDisplayProgress_CallOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := mocks.NewMockSpinner(ctrl)
	gomock.InOrder(
		mockS.EXPECT().UpdateSuffix(gomock.Any()),
		mockS.EXPECT().Start(),
		mockS.EXPECT().UpdateSuffix(gomock.Any()).MinTimes(1),
		mockS.EXPECT().Stop(),
	)
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan struct{}, 1)
	progressChan <- struct{}{}
	close(progressChan)

	DisplayProgress(&wg, progressChan, 1, io.Discard)
	wg.Wait()
}

func TestDisplayProgress_ZeroTotal(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()
	newSpinner = func(options ...spinner.Option) Spinner {
		t.Error("no spinner expected for an empty input")
		return &MockSpinner{}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan struct{})
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}
