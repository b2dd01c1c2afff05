// Package ui renders the plain, non-interactive CLI output: status marks and
// tables for the status command.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/healthdash/internal/health"
)

// ANSI colours, so output follows the user's terminal theme.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow

	ColorPrimary lipgloss.Color = "7" // White/default
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

// Status marks.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
)

// VariantColor maps a colour class to an ANSI colour.
func VariantColor(v health.Variant) lipgloss.Color {
	switch v {
	case health.VariantSuccess:
		return ColorSuccess
	case health.VariantWarning:
		return ColorWarning
	case health.VariantDanger:
		return ColorError
	default:
		return ColorMuted
	}
}

// Symbol is the uncoloured tick or cross for a status.
func Symbol(s health.Status) string {
	if s == health.StatusSuccess {
		return SymbolSuccess
	}
	return SymbolFail
}

// Mark renders a check's status as a coloured tick or cross.
func Mark(s health.Status) string {
	if s == health.StatusSuccess {
		return lipgloss.NewStyle().Foreground(ColorSuccess).Render(SymbolSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorError).Render(SymbolFail)
}

// Percent renders an uptime figure in its three-tier colour.
func Percent(f health.Figure) string {
	v := health.VariantMuted
	if f.Reported {
		v = health.UptimeVariant(f.Percent)
	}
	return lipgloss.NewStyle().Foreground(VariantColor(v)).Render(health.DisplayPercent(f))
}
