package report

import (
	"github.com/fatih/color"

	"github.com/wesleyorama2/loadcurve/internal/analysis"
)

// ColorScheme defines the colors used for different elements in the
// console report
type ColorScheme struct {
	Header        *color.Color
	APIName       *color.Color
	Equation      *color.Color
	Value         *color.Color
	Good          *color.Color
	Warn          *color.Color
	Bad           *color.Color
	Indeterminate *color.Color
	Failure       *color.Color
	Highlight     *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Header:        color.New(color.FgCyan, color.Bold),
		APIName:       color.New(color.FgBlue, color.Bold),
		Equation:      color.New(color.FgMagenta),
		Value:         color.New(color.FgWhite),
		Good:          color.New(color.FgGreen, color.Bold),
		Warn:          color.New(color.FgYellow, color.Bold),
		Bad:           color.New(color.FgRed, color.Bold),
		Indeterminate: color.New(color.FgWhite, color.Faint),
		Failure:       color.New(color.FgRed),
		Highlight:     color.New(color.FgMagenta, color.Bold),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	// Disable all colors
	scheme.Header.DisableColor()
	scheme.APIName.DisableColor()
	scheme.Equation.DisableColor()
	scheme.Value.DisableColor()
	scheme.Good.DisableColor()
	scheme.Warn.DisableColor()
	scheme.Bad.DisableColor()
	scheme.Indeterminate.DisableColor()
	scheme.Failure.DisableColor()
	scheme.Highlight.DisableColor()

	return scheme
}

// resilienceColor picks the color for a resilience label: low degradation
// reads green, high reads red, indeterminate is dimmed.
func (s *ColorScheme) resilienceColor(label analysis.ResilienceLabel) *color.Color {
	switch label {
	case analysis.ResilienceLow:
		return s.Good
	case analysis.ResilienceHigh:
		return s.Bad
	case analysis.ResilienceMedium:
		return s.Warn
	default:
		return s.Indeterminate
	}
}
