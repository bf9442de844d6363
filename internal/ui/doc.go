// Package ui provides the lipgloss styles shared by the command-line output.
// It keeps color decisions (the --no-color flag and the NO_COLOR variable)
// out of the packages that render reports.
package ui
