package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/healthdash/internal/health"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	// Bootstrap-like semantic colours, matching the web dashboard's buttons
	ColorSuccess = lipgloss.Color("#28A745")
	ColorWarning = lipgloss.Color("#FFC107")
	ColorDanger  = lipgloss.Color("#DC3545")
	ColorMuted   = lipgloss.Color("#6C757D")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")
	ColorTextDark      = lipgloss.Color("#111111")

	ColorAccent    = lipgloss.Color("#FF2E97")
	ColorAccentDim = lipgloss.Color("#BF40FF")

	// Chart datasets
	ColorPublic   = lipgloss.Color(health.PublicColor)
	ColorInternal = lipgloss.Color(health.InternalColor)
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	HostNameStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	SelectedRowStyle = lipgloss.NewStyle().
				Background(ColorSurfaceBg)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ErrorPanelStyle = PanelStyle.
			BorderForeground(ColorDanger)
)

// VariantColor maps a colour class to its palette entry.
func VariantColor(v health.Variant) lipgloss.Color {
	switch v {
	case health.VariantSuccess:
		return ColorSuccess
	case health.VariantWarning:
		return ColorWarning
	case health.VariantDanger:
		return ColorDanger
	default:
		return ColorMuted
	}
}

// ButtonStyle renders a solid, button-like chip in the variant colour.
func ButtonStyle(v health.Variant) lipgloss.Style {
	fg := ColorTextPrimary
	if v == health.VariantWarning {
		fg = ColorTextDark
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Background(VariantColor(v)).
		Padding(0, 1)
}

// RenderButton draws one per-check button, e.g. " HTTP 98% ".
func RenderButton(b health.ButtonView) string {
	return ButtonStyle(b.Variant).Render(b.Label + " " + b.Text)
}

// RenderButtonCompact draws the label only, for narrow terminals.
func RenderButtonCompact(b health.ButtonView) string {
	return ButtonStyle(b.Variant).Render(b.Label)
}

// RenderButtonGroup joins a scope's buttons with a one-cell gap.
func RenderButtonGroup(buttons []health.ButtonView, compact bool) string {
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		if compact {
			parts = append(parts, RenderButtonCompact(b))
		} else {
			parts = append(parts, RenderButton(b))
		}
	}
	return strings.Join(parts, " ")
}

// RenderBadge draws an uptime badge in the three-tier colour.
func RenderBadge(b health.BadgeView) string {
	text := b.Label + " " + b.Text
	return lipgloss.NewStyle().
		Foreground(VariantColor(b.Variant)).
		Bold(true).
		Render(text)
}

// SectionHeader renders a section header with the title on the left and value on the right.
// Format: ╭─ Title ────────────────────────────────────── Value ╮
func SectionHeader(title, value string, width int) string {
	if width < 10 {
		width = 10
	}

	leftWidth := 3 + lipgloss.Width(title) + 1
	rightWidth := 1 + lipgloss.Width(value) + 2

	fillWidth := width - leftWidth - rightWidth
	if fillWidth < 1 {
		fillWidth = 1
	}
	middle := strings.Repeat("─", fillWidth)

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	titleStyle := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(ColorTextSecondary)

	return borderStyle.Render("╭─ ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+middle+" ") +
		valueStyle.Render(value) +
		borderStyle.Render(" ╮")
}

// SectionFooter renders the bottom border of a section.
func SectionFooter(width int) string {
	if width < 2 {
		width = 2
	}
	return lipgloss.NewStyle().Foreground(ColorBorder).Render("╰" + strings.Repeat("─", width-2) + "╯")
}

// SectionContentLine renders a content line with left and right borders, padded to width.
func SectionContentLine(content string, width int) string {
	if width < 4 {
		width = 4
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	padding := width - 4 - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}

	return borderStyle.Render("│") + " " + content + strings.Repeat(" ", padding) + " " + borderStyle.Render("│")
}
