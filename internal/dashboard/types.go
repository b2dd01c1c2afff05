package dashboard

import (
	"context"
	"time"

	"github.com/rileyhilliard/healthdash/internal/health"
	"github.com/rileyhilliard/healthdash/internal/poll"
)

// Source is where the dashboard gets its data. *api.Client satisfies it.
type Source interface {
	Fleet(ctx context.Context) (health.FleetSummary, error)
	Host(ctx context.Context, id string) (*health.Host, error)
}

// Recorder receives poll instrumentation. *metrics.Recorder satisfies it.
type Recorder interface {
	DropStale(target string)
	SetFleet(hosts, failing int)
	MarkSuccess(target string, at time.Time)
}

type nopRecorder struct{}

func (nopRecorder) DropStale(string)              {}
func (nopRecorder) SetFleet(int, int)             {}
func (nopRecorder) MarkSuccess(string, time.Time) {}

// Phase is the dashboard's load state, ahead of any route.
type Phase int

const (
	// PhaseLoading: no fleet snapshot yet.
	PhaseLoading Phase = iota
	// PhaseReady: a fleet snapshot exists; routes render.
	PhaseReady
	// PhaseFailed: the first fleet load failed. Polling is stopped until
	// the user remounts with r.
	PhaseFailed
)

// String returns a human-readable phase.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LayoutMode represents the responsive layout mode based on terminal size.
type LayoutMode int

const (
	// LayoutMinimal is for terminals < 80 columns: no IP columns, label-only buttons
	LayoutMinimal LayoutMode = iota
	// LayoutCompact is for terminals 80-120 columns: IPs and buttons with uptime
	LayoutCompact
	// LayoutStandard is for terminals 120-160 columns: adds the uptime badge column
	LayoutStandard
	// LayoutWide is for terminals 160+ columns: adds last-seen times
	LayoutWide
)

// Width breakpoints for layout modes
const (
	BreakpointCompact  = 80
	BreakpointStandard = 120
	BreakpointWide     = 160
)

// fleetMsg carries the result of one fleet fetch.
type fleetMsg struct {
	stamp poll.Stamp
	fleet health.FleetSummary
	err   error
	at    time.Time
}

// hostMsg carries the result of one host detail fetch.
type hostMsg struct {
	stamp poll.Stamp
	id    string
	host  *health.Host
	err   error
	at    time.Time
}

// fleetState is the fleet slice: owned by the fleet poll and replaced
// wholesale on every successful fetch.
type fleetState struct {
	summary   health.FleetSummary
	loaded    bool
	updatedAt time.Time
	err       error
	errAt     time.Time
}

// detailState is the host slice for the active HostDetail route.
type detailState struct {
	hostID    string
	host      *health.Host
	loaded    bool
	updatedAt time.Time
	err       error
	errAt     time.Time
}

// Unavailable reports whether the detail view should show its "host
// unavailable" state: the first fetch for this host failed.
func (d detailState) Unavailable() bool {
	return !d.loaded && d.err != nil
}
