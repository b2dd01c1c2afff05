package health

import "time"

// Chart colours, as hex, for the two datasets.
const (
	PublicColor   = "#3e95cd"
	InternalColor = "#cc3e95"
)

// Point is one chart sample. A nil Y means no measurement: the check failed,
// so the chart shows a gap rather than a zero-latency dip.
type Point struct {
	T time.Time `json:"t"`
	Y *int64    `json:"y"`
}

// HasValue reports whether the point carries a latency.
func (p Point) HasValue() bool {
	return p.Y != nil
}

// Series converts results to points. The output has exactly one point per
// input result; a nil input yields an empty, non-nil series.
func Series(results []CheckResult) []Point {
	points := make([]Point, 0, len(results))
	for _, r := range results {
		p := Point{T: time.Unix(r.CheckedAt.Unix(), 0).UTC()}
		if r.Succeeded() {
			ms := int64(r.ResponseTime / time.Millisecond)
			p.Y = &ms
		}
		points = append(points, p)
	}
	return points
}

// BuildSeries builds the public and internal series for one protocol.
func BuildSeries(public, internal []CheckResult) (pub, in []Point) {
	return Series(public), Series(internal)
}

// Dataset is one line on a chart.
type Dataset struct {
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// ChartConfig is handed to the graph renderer unchanged.
type ChartConfig struct {
	Title      string `json:"title"`
	XUnit      string `json:"xUnit"`
	YBeginZero bool   `json:"yBeginAtZero"`
}

// Chart is the config plus the two datasets for one protocol.
type Chart struct {
	Protocol Protocol    `json:"protocol"`
	Config   ChartConfig `json:"config"`
	Datasets []Dataset   `json:"datasets"`
}

// NewChartConfig returns the config for a protocol's chart.
func NewChartConfig(p Protocol) ChartConfig {
	return ChartConfig{
		Title:      string(p) + " checks",
		XUnit:      "minute",
		YBeginZero: true,
	}
}

// BuildChart assembles the chart for one protocol from a host's history.
func BuildChart(h Host, p Protocol) Chart {
	pub, in := BuildSeries(h.History.Get(ScopePublic, p), h.History.Get(ScopeInternal, p))
	return Chart{
		Protocol: p,
		Config:   NewChartConfig(p),
		Datasets: []Dataset{
			{Label: ScopePublic.Title(), Color: PublicColor, Points: pub},
			{Label: ScopeInternal.Title(), Color: InternalColor, Points: in},
		},
	}
}

// BuildCharts returns one chart per protocol in display order.
func BuildCharts(h Host) []Chart {
	charts := make([]Chart, 0, len(Protocols))
	for _, p := range Protocols {
		charts = append(charts, BuildChart(h, p))
	}
	return charts
}

// Values extracts the measured latencies, skipping gaps. Used for min/max/avg
// summaries next to a graph.
func Values(points []Point) []int64 {
	out := make([]int64, 0, len(points))
	for _, p := range points {
		if p.Y != nil {
			out = append(out, *p.Y)
		}
	}
	return out
}
