package api

import (
	"sort"
	"time"

	"github.com/rileyhilliard/healthdash/internal/health"
)

// normalizeHost converts either wire schema into the canonical host. All
// eight buckets of Latest and History exist afterwards; History is sorted
// oldest first and Latest newest first.
func normalizeHost(w wireHost) health.Host {
	h := health.Host{
		ID:                w.ID,
		Hostname:          w.Hostname,
		PublicIP:          w.PublicIP,
		InternalIP:        w.InternalIP,
		HostUptime:        w.HostUptime,
		ServiceUptime:     w.ServiceUptime,
		ServiceRestarts:   w.ServiceRestarts,
		ServiceFirstStart: w.ServiceFirstStart,
		ServiceLastStart:  w.ServiceLastStart,
		FirstSeenAt:       w.FirstSeenAt,
		LastSeenAt:        w.LastSeenAt,
		Latest:            health.NewChecks(),
		History:           health.NewChecks(),
		HasHistory:        w.Checks != nil,
		Uptime:            normalizeUptime(w.CheckUptime),
	}

	switch {
	case w.LatestChecks != nil:
		fill(h.Latest, w.LatestChecks)
	case w.LatestStatus != nil:
		fillStatus(h.Latest, w.LatestStatus)
	}
	if w.Checks != nil {
		fill(h.History, w.Checks)
	}

	for _, s := range health.Scopes {
		for _, p := range health.Protocols {
			sortNewestFirst(h.Latest[s][p])
			sortOldestFirst(h.History[s][p])
		}
	}

	return h
}

func normalizeHosts(ws []wireHost) []health.Host {
	hosts := make([]health.Host, 0, len(ws))
	for _, w := range ws {
		hosts = append(hosts, normalizeHost(w))
	}
	return hosts
}

func (t *wireCheckTypes) bucket(p health.Protocol) []wireCheck {
	switch p {
	case health.ProtoHTTP:
		return t.HTTP
	case health.ProtoICMP:
		return t.ICMP
	case health.ProtoTCP:
		return t.TCP
	case health.ProtoUDP:
		return t.UDP
	}
	return nil
}

func (s *wireServiceChecks) scope(sc health.Scope) *wireCheckTypes {
	if sc == health.ScopeInternal {
		return &s.Internal
	}
	return &s.Public
}

func fill(dst health.Checks, src *wireServiceChecks) {
	for _, s := range health.Scopes {
		types := src.scope(s)
		for _, p := range health.Protocols {
			wcs := types.bucket(p)
			out := make([]health.CheckResult, 0, len(wcs))
			for _, wc := range wcs {
				out = append(out, health.CheckResult{
					CheckedAt:    wc.CheckedAt,
					Status:       health.Status(wc.Status),
					ResponseTime: time.Duration(wc.ResponseTime),
					StatusCode:   wc.StatusCode,
					Message:      wc.CheckErrorMessage,
				})
			}
			dst[s][p] = out
		}
	}
}

func (t wireStatusTypes) status(p health.Protocol) string {
	switch p {
	case health.ProtoHTTP:
		return t.HTTP
	case health.ProtoICMP:
		return t.ICMP
	case health.ProtoTCP:
		return t.TCP
	case health.ProtoUDP:
		return t.UDP
	}
	return ""
}

// fillStatus turns schema v1 status strings into single-entry buckets. An
// empty string means no check has run yet, so the bucket stays empty.
func fillStatus(dst health.Checks, src *wireLatestStatus) {
	for _, s := range health.Scopes {
		types := src.Public
		if s == health.ScopeInternal {
			types = src.Internal
		}
		for _, p := range health.Protocols {
			if st := types.status(p); st != "" {
				dst[s][p] = []health.CheckResult{{Status: health.Status(st)}}
			}
		}
	}
}

func figure(w *wireUptime) health.Figure {
	if w == nil || w.Percent == nil {
		return health.Figure{}
	}
	return health.Figure{
		Percent:      *w.Percent,
		TotalSuccess: w.TotalSuccess,
		TotalChecks:  w.TotalChecks,
		Reported:     true,
	}
}

func (n *wireNetworkUptime) byType(p health.Protocol) *wireUptime {
	switch p {
	case health.ProtoHTTP:
		return n.HTTP
	case health.ProtoICMP:
		return n.ICMP
	case health.ProtoTCP:
		return n.TCP
	case health.ProtoUDP:
		return n.UDP
	}
	return nil
}

func normalizeUptime(w *wireCheckUptime) health.Uptime {
	u := health.Uptime{
		Scope: make(map[health.Scope]health.Figure, len(health.Scopes)),
		Check: make(map[health.Scope]map[health.Protocol]health.Figure, len(health.Scopes)),
	}
	for _, s := range health.Scopes {
		u.Check[s] = make(map[health.Protocol]health.Figure, len(health.Protocols))
	}
	if w == nil {
		return u
	}

	u.Overall = figure(&w.wireUptime)
	for _, s := range health.Scopes {
		net := w.Public
		if s == health.ScopeInternal {
			net = w.Internal
		}
		if net == nil {
			continue
		}
		u.Scope[s] = figure(&net.wireUptime)
		for _, p := range health.Protocols {
			u.Check[s][p] = figure(net.byType(p))
		}
	}
	return u
}

func sortOldestFirst(cs []health.CheckResult) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].CheckedAt.Before(cs[j].CheckedAt)
	})
}

func sortNewestFirst(cs []health.CheckResult) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].CheckedAt.After(cs[j].CheckedAt)
	})
}
