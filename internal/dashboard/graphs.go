package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/healthdash/internal/health"
)

// Braille character rendering for high-resolution terminal graphs.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '\u2800'

// brailleDots maps [row][col] to the bit offset for a braille dot.
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// gapMarker is drawn on the baseline under a sample with no measurement.
const gapMarker = '·'

// yRange returns the plotting bounds. With beginAtZero the floor is 0,
// otherwise the smallest measured value.
func yRange(points []health.Point, beginAtZero bool) (lo, hi int64, ok bool) {
	for _, p := range points {
		if p.Y == nil {
			continue
		}
		if !ok {
			lo, hi, ok = *p.Y, *p.Y, true
			continue
		}
		if *p.Y < lo {
			lo = *p.Y
		}
		if *p.Y > hi {
			hi = *p.Y
		}
	}
	if beginAtZero {
		lo = 0
	}
	return lo, hi, ok
}

// resamplePoints picks target points spread evenly over the input, keeping
// the most recent sample last. Gaps survive resampling.
func resamplePoints(points []health.Point, target int) []health.Point {
	if len(points) <= target || target <= 0 {
		return points
	}
	out := make([]health.Point, target)
	step := float64(len(points)-1) / float64(target-1)
	for i := range out {
		idx := int(float64(i)*step + 0.5)
		if idx >= len(points) {
			idx = len(points) - 1
		}
		out[i] = points[idx]
	}
	return out
}

// RenderLatencyGraph draws one dataset as a braille area graph. Each
// character holds two samples; samples without a measurement leave the
// column empty and put a gap marker on the bottom row instead of dropping
// to zero.
func RenderLatencyGraph(points []health.Point, width, height int, color lipgloss.Color, lo, hi int64) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	totalDots := height * 4
	targetPoints := width * 2
	resampled := resamplePoints(points, targetPoints)

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = brailleBase
		}
	}
	gaps := make([]bool, width)

	// Right-align so the newest sample is always at the right edge
	offset := targetPoints - len(resampled)
	if offset < 0 {
		offset = 0
	}

	for i, p := range resampled {
		col := (i + offset) / 2
		if col >= width {
			continue
		}
		if p.Y == nil {
			gaps[col] = true
			continue
		}

		dotHeight := 1
		if hi > lo {
			frac := float64(*p.Y-lo) / float64(hi-lo)
			dotHeight = int(frac*float64(totalDots-1)) + 1
		}
		if dotHeight > totalDots {
			dotHeight = totalDots
		}

		subCol := (i + offset) % 2
		for dot := 0; dot < dotHeight; dot++ {
			row := height - 1 - dot/4
			subRow := 3 - dot%4
			grid[row][col] |= rune(1 << brailleDots[subRow][subCol])
		}
	}

	style := lipgloss.NewStyle().Foreground(color)
	gapStyle := lipgloss.NewStyle().Foreground(ColorDanger)

	lines := make([]string, 0, height)
	for r, row := range grid {
		var b strings.Builder
		for c, ch := range row {
			if r == height-1 && ch == brailleBase && gaps[c] {
				b.WriteString(gapStyle.Render(string(gapMarker)))
				continue
			}
			b.WriteString(style.Render(string(ch)))
		}
		lines = append(lines, b.String())
	}

	return strings.Join(lines, "\n")
}

// latencyStats summarizes the measured values of a dataset.
func latencyStats(points []health.Point) string {
	vals := health.Values(points)
	if len(vals) == 0 {
		return "no data"
	}
	lo, hi, sum := vals[0], vals[0], int64(0)
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		sum += v
	}
	failed := len(points) - len(vals)
	s := fmt.Sprintf("min %dms  avg %dms  max %dms", lo, sum/int64(len(vals)), hi)
	if failed > 0 {
		s += fmt.Sprintf("  %d failed", failed)
	}
	return s
}

// xAxisLabel renders the first and last sample times at the chart's unit.
func xAxisLabel(points []health.Point, cfg health.ChartConfig, width int) string {
	if len(points) == 0 {
		return ""
	}
	layout := "15:04"
	if cfg.XUnit == "second" {
		layout = "15:04:05"
	}
	left := points[0].T.Format(layout)
	right := points[len(points)-1].T.Format(layout)
	pad := width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		return right
	}
	return left + strings.Repeat(" ", pad) + right
}

// renderChart draws a protocol's chart: a header, then one graph per
// dataset sharing a y scale so public and internal latencies compare.
func renderChart(chart health.Chart, width, graphHeight int) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	labelWidth := 9
	graphWidth := inner - labelWidth
	if graphWidth < 4 {
		graphWidth = 4
	}

	var all []health.Point
	for _, d := range chart.Datasets {
		all = append(all, d.Points...)
	}
	lo, hi, ok := yRange(all, chart.Config.YBeginZero)

	scale := "no samples yet"
	if ok {
		scale = fmt.Sprintf("%d–%d ms", lo, hi)
	}

	var lines []string
	lines = append(lines, SectionHeader(chart.Config.Title, scale, width))

	for _, d := range chart.Datasets {
		color := lipgloss.Color(d.Color)
		label := lipgloss.NewStyle().Foreground(color).Bold(true).Width(labelWidth).Render(d.Label)

		if len(d.Points) == 0 {
			lines = append(lines, SectionContentLine(label+MutedStyle.Render("no checks yet"), width))
			continue
		}

		graph := RenderLatencyGraph(d.Points, graphWidth, graphHeight, color, lo, hi)
		for i, gl := range strings.Split(graph, "\n") {
			prefix := strings.Repeat(" ", labelWidth)
			if i == 0 {
				prefix = label
			}
			lines = append(lines, SectionContentLine(prefix+gl, width))
		}
		lines = append(lines, SectionContentLine(
			strings.Repeat(" ", labelWidth)+MutedStyle.Render(xAxisLabel(d.Points, chart.Config, graphWidth)), width))
		lines = append(lines, SectionContentLine(
			strings.Repeat(" ", labelWidth)+LabelStyle.Render(latencyStats(d.Points)), width))
	}

	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}
