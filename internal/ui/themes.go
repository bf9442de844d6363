package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme groups the lipgloss styles used by the command-line output.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Accent highlights keys and counts.
	Accent lipgloss.Style
	// Success marks collected output.
	Success lipgloss.Style
	// Error marks rejected entries.
	Error lipgloss.Style
	// Dim is used for summaries and secondary text.
	Dim lipgloss.Style
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:    "dark",
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}

	// NoColorTheme renders every style as plain text.
	// Used when NO_COLOR is set or --no-color flag is provided.
	NoColorTheme = Theme{
		Name:    "none",
		Accent:  lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Dim:     lipgloss.NewStyle(),
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme initializes the theme based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/).
// If noColor is true or NO_COLOR is set, colors are disabled.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}
