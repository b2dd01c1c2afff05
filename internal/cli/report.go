package cli

import (
	"time"

	"github.com/rileyhilliard/healthdash/internal/health"
)

// StatusReport is the machine-readable form of a fleet snapshot.
type StatusReport struct {
	Current HostReport   `json:"current" yaml:"current"`
	Hosts   []HostReport `json:"hosts" yaml:"hosts"`
}

// HostReport is one host with its derived check table.
type HostReport struct {
	ID                string        `json:"id" yaml:"id"`
	Hostname          string        `json:"hostname" yaml:"hostname"`
	PublicIP          string        `json:"publicIp,omitempty" yaml:"public_ip,omitempty"`
	InternalIP        string        `json:"internalIp,omitempty" yaml:"internal_ip,omitempty"`
	ServiceRestarts   int           `json:"serviceRestarts" yaml:"service_restarts"`
	ServiceFirstStart string        `json:"serviceFirstStart" yaml:"service_first_start"`
	ServiceLastStart  string        `json:"serviceLastStart" yaml:"service_last_start"`
	HostUptime        string        `json:"hostUptime" yaml:"host_uptime"`
	ServiceUptime     string        `json:"serviceUptime" yaml:"service_uptime"`
	Uptime            []BadgeReport `json:"uptime" yaml:"uptime"`
	Failing           int           `json:"failing" yaml:"failing"`
	Checks            []CheckReport `json:"checks" yaml:"checks"`
	Charts            []ChartReport `json:"charts,omitempty" yaml:"charts,omitempty"`
}

// BadgeReport is an aggregate uptime figure.
type BadgeReport struct {
	Label   string `json:"label" yaml:"label"`
	Percent string `json:"percent" yaml:"percent"`
	Variant string `json:"variant" yaml:"variant"`
}

// CheckReport is one (scope, protocol) cell.
type CheckReport struct {
	Scope    string   `json:"scope" yaml:"scope"`
	Protocol string   `json:"protocol" yaml:"protocol"`
	Status   string   `json:"status" yaml:"status"`
	Uptime   *float64 `json:"uptime" yaml:"uptime"`
	Display  string   `json:"display" yaml:"display"`
	Variant  string   `json:"variant" yaml:"variant"`
}

// ChartReport is a protocol's latency series, as the dashboard plots it.
type ChartReport struct {
	Title    string          `json:"title" yaml:"title"`
	XUnit    string          `json:"xUnit" yaml:"x_unit"`
	Datasets []DatasetReport `json:"datasets" yaml:"datasets"`
}

// DatasetReport is one scope's series. Y is null for failed checks.
type DatasetReport struct {
	Label  string        `json:"label" yaml:"label"`
	Color  string        `json:"color" yaml:"color"`
	Points []PointReport `json:"points" yaml:"points"`
}

// PointReport is a single sample in milliseconds.
type PointReport struct {
	T time.Time `json:"t" yaml:"t"`
	Y *int64    `json:"y" yaml:"y"`
}

func newStatusReport(fleet health.FleetSummary) StatusReport {
	r := StatusReport{
		Current: newHostReport(fleet.Current),
		Hosts:   make([]HostReport, 0, len(fleet.Hosts)),
	}
	for _, h := range fleet.Hosts {
		r.Hosts = append(r.Hosts, newHostReport(h))
	}
	return r
}

func newHostReport(h health.Host) HostReport {
	table := health.Aggregate(h)

	r := HostReport{
		ID:                h.ID,
		Hostname:          h.Hostname,
		PublicIP:          h.PublicIP,
		InternalIP:        h.InternalIP,
		ServiceRestarts:   h.ServiceRestarts,
		ServiceFirstStart: health.FormatTimestamp(h.ServiceFirstStart),
		ServiceLastStart:  health.FormatTimestamp(h.ServiceLastStart),
		HostUptime:        health.FormatDuration(h.HostUptime),
		ServiceUptime:     health.FormatDuration(h.ServiceUptime),
		Failing:           table.Failing(),
	}

	for _, b := range health.Badges(h.Uptime) {
		r.Uptime = append(r.Uptime, BadgeReport{Label: b.Label, Percent: b.Text, Variant: string(b.Variant)})
	}

	for _, c := range table {
		cr := CheckReport{
			Scope:    string(c.Scope),
			Protocol: string(c.Protocol),
			Status:   string(c.Status),
			Display:  health.DisplayPercent(c.Uptime),
			Variant:  string(health.ButtonVariant(c.Status)),
		}
		if c.Uptime.Reported {
			pct := c.Uptime.Percent
			cr.Uptime = &pct
		}
		r.Checks = append(r.Checks, cr)
	}

	if h.HasHistory {
		for _, chart := range health.BuildCharts(h) {
			r.Charts = append(r.Charts, newChartReport(chart))
		}
	}
	return r
}

func newChartReport(c health.Chart) ChartReport {
	r := ChartReport{Title: c.Config.Title, XUnit: c.Config.XUnit}
	for _, d := range c.Datasets {
		dr := DatasetReport{Label: d.Label, Color: d.Color, Points: make([]PointReport, 0, len(d.Points))}
		for _, p := range d.Points {
			dr.Points = append(dr.Points, PointReport{T: p.T, Y: p.Y})
		}
		r.Datasets = append(r.Datasets, dr)
	}
	return r
}
