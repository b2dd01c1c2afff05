package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/healthdash/internal/health"
)

// linesPerHost is the height of one overview row block.
const linesPerHost = 3

// renderOverview renders the current-host banner and the fleet table.
func (m Model) renderOverview() string {
	banner := m.renderBanner("Current host", m.fleet.summary.Current)

	if len(m.rows) == 0 {
		return banner + "\n\n" + LabelStyle.Render("No hosts reported yet")
	}

	avail := m.height - headerHeight - footerHeight - lipgloss.Height(banner) - 2
	capacity := avail / linesPerHost
	if capacity < 1 {
		capacity = 1
	}
	start, end := visibleRange(len(m.rows), m.selected, capacity)

	var blocks []string
	for i := start; i < end; i++ {
		blocks = append(blocks, m.renderHostRow(m.rows[i], i == m.selected))
	}

	table := strings.Join(blocks, "\n")
	if start > 0 || end < len(m.rows) {
		table += "\n" + MutedStyle.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(m.rows)))
	}
	return banner + "\n\n" + table
}

// visibleRange returns the window of rows to draw so that selected stays
// on screen.
func visibleRange(total, selected, capacity int) (start, end int) {
	if total <= capacity {
		return 0, total
	}
	if selected < 0 {
		selected = 0
	}
	start = selected - capacity/2
	if start < 0 {
		start = 0
	}
	end = start + capacity
	if end > total {
		end = total
		start = end - capacity
	}
	return start, end
}

// renderBanner shows a host's service lifecycle figures.
func (m Model) renderBanner(title string, h health.Host) string {
	width := m.width
	lines := []string{SectionHeader(title, h.Title(), width)}

	field := func(label, value string) string {
		return LabelStyle.Width(20).Render(label) + ValueStyle.Render(value)
	}

	lines = append(lines,
		SectionContentLine(field("Service restarts", fmt.Sprintf("%d", h.ServiceRestarts)), width),
		SectionContentLine(field("Service first start", m.stamp(h.ServiceFirstStart)), width),
		SectionContentLine(field("Host uptime", health.FormatDuration(h.HostUptime)), width),
		SectionContentLine(field("Service uptime", health.FormatDuration(h.ServiceUptime)), width),
		SectionContentLine(field("Service last start", m.stamp(h.ServiceLastStart)), width),
	)

	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// stamp formats an absolute UTC timestamp with its humanized age.
func (m Model) stamp(t time.Time) string {
	s := health.FormatTimestamp(t)
	if t.IsZero() || m.LayoutMode() == LayoutMinimal {
		return s
	}
	return s + MutedStyle.Render(" ("+m.ago(t)+")")
}

// renderHostRow renders one host: identity and badges, then a button group
// per scope.
func (m Model) renderHostRow(h health.Host, selected bool) string {
	mode := m.LayoutMode()
	table := health.Aggregate(h)

	marker := "  "
	if selected {
		marker = TitleStyle.Render("▸ ")
	}

	nameWidth := 24
	if mode == LayoutMinimal {
		nameWidth = 18
	}
	name := HostNameStyle.Width(nameWidth).MaxWidth(nameWidth).Render(h.Title())

	head := marker + name
	if mode >= LayoutCompact {
		head += LabelStyle.Render(fmt.Sprintf("%-16s %-16s", orDash(h.PublicIP), orDash(h.InternalIP)))
	}
	if mode >= LayoutStandard {
		var badges []string
		for _, b := range health.Badges(h.Uptime) {
			badges = append(badges, RenderBadge(b))
		}
		head += "  " + strings.Join(badges, "  ")
	}
	if mode >= LayoutWide {
		head += MutedStyle.Render("  seen " + m.ago(h.LastSeenAt))
	}
	if failing := table.Failing(); failing > 0 {
		head += "  " + ErrorStyle.Render(fmt.Sprintf("%d failing", failing))
	}

	compact := mode == LayoutMinimal
	scopeLine := func(s health.Scope) string {
		return "    " + LabelStyle.Width(9).Render(s.Title()) + RenderButtonGroup(table.Buttons(s), compact)
	}

	var body string
	if mode == LayoutWide {
		body = scopeLine(health.ScopePublic) + "  " + scopeLine(health.ScopeInternal) + "\n"
	} else {
		body = scopeLine(health.ScopePublic) + "\n" + scopeLine(health.ScopeInternal)
	}

	block := head + "\n" + body
	if selected {
		return SelectedRowStyle.Render(block)
	}
	return block
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
