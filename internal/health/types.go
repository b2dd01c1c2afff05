// Package health holds the canonical host-health model and the pure
// derivations the dashboard renders from it: the per-check status table,
// uptime colouring and latency series.
//
// Nothing in this package performs I/O. Snapshots are built by the api
// package's adapter and treated as read-only afterwards.
package health

import "time"

// Scope is the network vantage point a check ran from.
type Scope string

// Protocol is the kind of probe.
type Protocol string

// Status is the outcome of a single check.
type Status string

const (
	ScopePublic   Scope = "public"
	ScopeInternal Scope = "internal"

	ProtoHTTP Protocol = "http"
	ProtoICMP Protocol = "icmp"
	ProtoTCP  Protocol = "tcp"
	ProtoUDP  Protocol = "udp"

	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Scopes lists scopes in display order.
var Scopes = []Scope{ScopePublic, ScopeInternal}

// Protocols lists protocols in display order.
var Protocols = []Protocol{ProtoHTTP, ProtoICMP, ProtoTCP, ProtoUDP}

// Label returns the upper-case name used on buttons, e.g. "HTTP".
func (p Protocol) Label() string {
	switch p {
	case ProtoHTTP:
		return "HTTP"
	case ProtoICMP:
		return "ICMP"
	case ProtoTCP:
		return "TCP"
	case ProtoUDP:
		return "UDP"
	}
	return string(p)
}

// Title returns "Public" or "Internal".
func (s Scope) Title() string {
	switch s {
	case ScopePublic:
		return "Public"
	case ScopeInternal:
		return "Internal"
	}
	return string(s)
}

// CheckResult is one probe outcome. ResponseTime is only meaningful when
// Status is success.
type CheckResult struct {
	CheckedAt    time.Time
	Status       Status
	ResponseTime time.Duration
	StatusCode   int
	Message      string
}

// Succeeded reports whether the check passed.
func (c CheckResult) Succeeded() bool {
	return c.Status == StatusSuccess
}

// Checks groups results by scope and protocol. Lookups on a nil or partial
// Checks return nil rather than panicking.
type Checks map[Scope]map[Protocol][]CheckResult

// NewChecks returns a Checks with all eight buckets present and empty.
func NewChecks() Checks {
	c := make(Checks, len(Scopes))
	for _, s := range Scopes {
		c[s] = make(map[Protocol][]CheckResult, len(Protocols))
		for _, p := range Protocols {
			c[s][p] = []CheckResult{}
		}
	}
	return c
}

// Get returns the results for one bucket.
func (c Checks) Get(s Scope, p Protocol) []CheckResult {
	if c == nil {
		return nil
	}
	return c[s][p]
}

// Figure is a backend-computed uptime ratio. Percent is kept exactly as
// received; rounding happens only when rendering.
type Figure struct {
	Percent      float64
	TotalSuccess uint64
	TotalChecks  uint64
	Reported     bool
}

// Uptime carries the overall, per-scope and per-check uptime figures.
type Uptime struct {
	Overall Figure
	Scope   map[Scope]Figure
	Check   map[Scope]map[Protocol]Figure
}

// ForScope returns the aggregate figure for a scope.
func (u Uptime) ForScope(s Scope) Figure {
	return u.Scope[s]
}

// For returns the figure for one (scope, protocol) pair.
func (u Uptime) For(s Scope, p Protocol) Figure {
	return u.Check[s][p]
}

// Host is a monitored machine as the dashboard sees it.
type Host struct {
	ID         string
	Hostname   string
	PublicIP   string
	InternalIP string

	HostUptime        time.Duration
	ServiceUptime     time.Duration
	ServiceRestarts   int
	ServiceFirstStart time.Time
	ServiceLastStart  time.Time
	FirstSeenAt       time.Time
	LastSeenAt        time.Time

	// Latest has the most recent result first in every bucket.
	Latest Checks
	// History is chronological, oldest first. Only detail responses fill it.
	History    Checks
	HasHistory bool

	Uptime Uptime
}

// Title is the best human label for the host.
func (h Host) Title() string {
	switch {
	case h.Hostname != "":
		return h.Hostname
	case h.PublicIP != "":
		return h.PublicIP
	}
	return h.ID
}

// PublicURL is the link target shown next to a host in the picker.
func (h Host) PublicURL() string {
	if h.PublicIP == "" {
		return ""
	}
	return "http://" + h.PublicIP
}

// FleetSummary is the current host plus every known host, fetched together.
type FleetSummary struct {
	Current Host
	Hosts   []Host
}

// Find returns the host with the given ID.
func (f FleetSummary) Find(id string) (Host, bool) {
	for _, h := range f.Hosts {
		if h.ID == id {
			return h, true
		}
	}
	if f.Current.ID == id && id != "" {
		return f.Current, true
	}
	return Host{}, false
}
