package dashboard

import (
	"strings"

	"github.com/rileyhilliard/healthdash/internal/errors"
	"github.com/rileyhilliard/healthdash/internal/health"
	"github.com/rileyhilliard/healthdash/internal/route"
)

// renderDetail renders the HostDetail route: a spinner until the first
// response, the unavailable state if it failed, else the scrollable detail.
func (m Model) renderDetail(r route.HostDetail) string {
	switch {
	case m.detail.Unavailable():
		return m.renderUnavailable(r)
	case !m.detail.loaded:
		title := r.HostID
		if h, ok := m.fleet.summary.Find(r.HostID); ok {
			title = h.Title()
		}
		return m.spinner.View() + " " + LabelStyle.Render("Loading ") + HostNameStyle.Render(title) + LabelStyle.Render("…")
	}
	return m.viewport.View()
}

func (m Model) renderUnavailable(r route.HostDetail) string {
	reason := "The backend did not return this host."
	if m.detail.err != nil && !errors.IsCode(m.detail.err, errors.ErrNotFound) {
		reason = errors.Summary(m.detail.err)
	}

	width := m.width - 4
	if width > 80 {
		width = 80
	}
	if width < 20 {
		width = 20
	}

	content := strings.Join([]string{
		ErrorStyle.Render("Host unavailable"),
		"",
		LabelStyle.Render("Host ") + ValueStyle.Render(r.HostID),
		ValueStyle.Render(reason),
		"",
		MutedStyle.Render("r retry | esc overview | h pick another host"),
	}, "\n")

	return ErrorPanelStyle.Width(width).Render(content)
}

// renderDetailContent builds the full detail page for the viewport.
func (m Model) renderDetailContent(h health.Host) string {
	width := m.width
	table := health.Aggregate(h)

	var sections []string
	sections = append(sections, m.renderBanner("Host", h))

	idLines := []string{SectionHeader("Identity", h.ID, width)}
	field := func(label, value string) string {
		return SectionContentLine(LabelStyle.Width(20).Render(label)+ValueStyle.Render(value), width)
	}
	idLines = append(idLines,
		field("Public IP", orDash(h.PublicIP)),
		field("Internal IP", orDash(h.InternalIP)),
		field("First seen", m.stamp(h.FirstSeenAt)),
		field("Last seen", m.stamp(h.LastSeenAt)),
		SectionFooter(width),
	)
	sections = append(sections, strings.Join(idLines, "\n"))

	var badges []string
	for _, b := range health.Badges(h.Uptime) {
		text := RenderBadge(b)
		if b.Detail != "" {
			text += MutedStyle.Render(" " + b.Detail)
		}
		badges = append(badges, text)
	}
	compact := m.LayoutMode() == LayoutMinimal
	checkLines := []string{
		SectionHeader("Checks", "updated "+m.ago(m.detail.updatedAt), width),
		SectionContentLine(strings.Join(badges, "   "), width),
	}
	for _, s := range health.Scopes {
		checkLines = append(checkLines, SectionContentLine(
			LabelStyle.Width(9).Render(s.Title())+RenderButtonGroup(table.Buttons(s), compact), width))
	}
	checkLines = append(checkLines, SectionFooter(width))
	sections = append(sections, strings.Join(checkLines, "\n"))

	if !h.HasHistory {
		sections = append(sections, MutedStyle.Render("No check history in the response."))
		return strings.Join(sections, "\n\n")
	}

	graphHeight := 3
	switch m.LayoutMode() {
	case LayoutMinimal:
		graphHeight = 2
	case LayoutWide:
		graphHeight = 4
	}
	for _, chart := range health.BuildCharts(h) {
		sections = append(sections, renderChart(chart, width, graphHeight))
	}

	return strings.Join(sections, "\n\n")
}
