package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/healthdash/internal/errors"
	"github.com/rileyhilliard/healthdash/internal/route"
	"github.com/rileyhilliard/healthdash/internal/util"
)

// LayoutMode picks the responsive layout for the current width.
func (m Model) LayoutMode() LayoutMode {
	switch {
	case m.width >= BreakpointWide:
		return LayoutWide
	case m.width >= BreakpointStandard:
		return LayoutStandard
	case m.width >= BreakpointCompact:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	switch m.phase {
	case PhaseLoading:
		return m.renderLoading()
	case PhaseFailed:
		return m.renderFailed()
	}

	var body string
	if m.pickerOpen {
		body = m.picker.View()
	} else {
		body = m.renderRoute()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	if m.gotoOpen {
		b.WriteString(m.gotoInput.View())
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderRoute dispatches on the route. Route is sealed, so the default
// branch is unreachable.
func (m Model) renderRoute() string {
	switch r := m.route.(type) {
	case route.Overview:
		return m.renderOverview()
	case route.HostDetail:
		return m.renderDetail(r)
	case route.NotFound:
		return m.renderNotFound(r)
	default:
		return m.renderNotFound(route.NotFound{Raw: r.Path()})
	}
}

// renderHeader shows the current host and fleet freshness on every route.
func (m Model) renderHeader() string {
	title := TitleStyle.Render("healthdash")

	current := m.fleet.summary.Current.Title()
	if current == "" {
		current = "unknown"
	}

	parts := []string{
		"current " + current,
		fmt.Sprintf("%d %s", len(m.fleet.summary.Hosts), util.Pluralize(len(m.fleet.summary.Hosts), "host", "hosts")),
		"updated " + m.ago(m.fleet.updatedAt),
	}
	if m.LayoutMode() >= LayoutStandard {
		parts = append(parts, "sort "+m.sortOrder.String())
	}

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(" | " + strings.Join(parts, " | "))

	return HeaderStyle.Render(title + stats)
}

// renderFooter renders the key hints and, when the last poll failed, the
// error and how long ago it happened.
func (m Model) renderFooter() string {
	var hints []string
	switch {
	case m.gotoOpen:
		hints = []string{"enter go", "esc cancel"}
	case m.pickerOpen:
		hints = []string{"enter open", "/ filter", "esc close"}
	default:
		hints = []string{"q quit", "r refresh"}
		switch m.route.(type) {
		case route.Overview:
			hints = append(hints, "↑↓ select", "enter open", "s sort")
		case route.HostDetail:
			hints = append(hints, "↑↓ scroll", "esc back")
		default:
			hints = append(hints, "esc back")
		}
		hints = append(hints, "h hosts", "g goto", "? help")
	}

	line := FooterStyle.Render(strings.Join(hints, " | "))

	var errs []string
	if m.fleet.err != nil {
		errs = append(errs, m.staleError("fleet", m.fleet.err, m.fleet.errAt))
	}
	if _, ok := m.route.(route.HostDetail); ok && m.detail.loaded && m.detail.err != nil {
		errs = append(errs, m.staleError("host", m.detail.err, m.detail.errAt))
	}
	if len(errs) > 0 {
		line = strings.Join(errs, "  ") + "\n" + line
	}
	return line
}

func (m Model) staleError(what string, err error, at time.Time) string {
	return WarnStyle.Render(fmt.Sprintf("⚠ %s refresh failed: %s", what, errors.Summary(err))) +
		MutedStyle.Render(" ("+m.ago(at)+", showing last good data)")
}

// ago is a humanized age relative to the model clock.
func (m Model) ago(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	now := m.now()
	if now.Sub(t) < time.Second {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func (m Model) renderLoading() string {
	content := m.spinner.View() + " " + LabelStyle.Render("Loading fleet…")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderFailed is the blocking error view for a failed first load.
func (m Model) renderFailed() string {
	msg := "unknown error"
	if m.fleet.err != nil {
		msg = strings.TrimSpace(m.fleet.err.Error())
	}

	boxWidth := m.width - 8
	if boxWidth > 90 {
		boxWidth = 90
	}
	if boxWidth < 20 {
		boxWidth = 20
	}

	content := strings.Join([]string{
		ErrorStyle.Render("Could not load the dashboard"),
		"",
		ValueStyle.Render(msg),
		"",
		MutedStyle.Render("r retry | q quit"),
	}, "\n")

	box := ErrorPanelStyle.Width(boxWidth).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderNotFound(r route.NotFound) string {
	return strings.Join([]string{
		ErrorStyle.Render("Page not found"),
		"",
		LabelStyle.Render("Nothing lives at ") + ValueStyle.Render(r.Raw),
		MutedStyle.Render("esc for the overview, h to pick a host"),
	}, "\n")
}
