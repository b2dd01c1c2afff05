package health

import (
	"fmt"
	"math"
)

// Variant is the colour class a renderer applies to a button or badge.
type Variant string

const (
	VariantSuccess Variant = "success"
	VariantWarning Variant = "warning"
	VariantDanger  Variant = "danger"

	// VariantMuted marks a badge with no figure behind it.
	VariantMuted Variant = "muted"
)

// Uptime badge thresholds, in percent.
const (
	DangerBelow  = 50.0
	WarningBelow = 90.0
)

// Cell is one (scope, protocol) entry of the status table.
type Cell struct {
	Scope    Scope
	Protocol Protocol
	Status   Status
	Uptime   Figure
}

// StatusTable holds all eight cells, scopes outer and protocols inner, in
// display order.
type StatusTable [8]Cell

// Aggregate derives the current status and uptime of every check type.
// An empty Latest bucket yields StatusError; it never fails.
func Aggregate(h Host) StatusTable {
	var t StatusTable
	i := 0
	for _, s := range Scopes {
		for _, p := range Protocols {
			status := StatusError
			if latest := h.Latest.Get(s, p); len(latest) > 0 {
				status = latest[0].Status
			}
			t[i] = Cell{
				Scope:    s,
				Protocol: p,
				Status:   status,
				Uptime:   h.Uptime.For(s, p),
			}
			i++
		}
	}
	return t
}

// Cell returns the entry for one pair.
func (t StatusTable) Cell(s Scope, p Protocol) Cell {
	for _, c := range t {
		if c.Scope == s && c.Protocol == p {
			return c
		}
	}
	return Cell{Scope: s, Protocol: p, Status: StatusError}
}

// Scope returns the four cells of one scope in protocol order.
func (t StatusTable) Scope(s Scope) []Cell {
	cells := make([]Cell, 0, len(Protocols))
	for _, c := range t {
		if c.Scope == s {
			cells = append(cells, c)
		}
	}
	return cells
}

// Failing counts cells whose status is not success.
func (t StatusTable) Failing() int {
	n := 0
	for _, c := range t {
		if c.Status != StatusSuccess {
			n++
		}
	}
	return n
}

// ButtonVariant is the binary per-check colouring: success is green,
// anything else is danger.
func ButtonVariant(s Status) Variant {
	if s == StatusSuccess {
		return VariantSuccess
	}
	return VariantDanger
}

// UptimeVariant is the three-tier colouring used for uptime badges.
func UptimeVariant(percent float64) Variant {
	switch {
	case percent < DangerBelow:
		return VariantDanger
	case percent < WarningBelow:
		return VariantWarning
	default:
		return VariantSuccess
	}
}

// Round rounds half away from zero. Round(Round(x)) == Round(x).
func Round(percent float64) int {
	return int(math.Round(percent))
}

// DisplayPercent renders a figure as "98%", or "n/a" when the backend did
// not report it.
func DisplayPercent(f Figure) string {
	if !f.Reported {
		return "n/a"
	}
	return fmt.Sprintf("%d%%", Round(f.Percent))
}

// ButtonView is what a renderer needs to draw one per-check button.
type ButtonView struct {
	Label   string
	Text    string
	Variant Variant
}

// Buttons returns the four buttons of a scope's button group.
func (t StatusTable) Buttons(s Scope) []ButtonView {
	cells := t.Scope(s)
	out := make([]ButtonView, 0, len(cells))
	for _, c := range cells {
		out = append(out, ButtonView{
			Label:   c.Protocol.Label(),
			Text:    DisplayPercent(c.Uptime),
			Variant: ButtonVariant(c.Status),
		})
	}
	return out
}

// BadgeView is an aggregate uptime badge.
type BadgeView struct {
	Label   string
	Text    string
	Variant Variant
	// Detail is "<success>/<total>" when the backend reported counts.
	Detail string
}

func badge(label string, f Figure) BadgeView {
	b := BadgeView{Label: label, Text: DisplayPercent(f), Variant: VariantMuted}
	if f.Reported {
		b.Variant = UptimeVariant(f.Percent)
	}
	if f.TotalChecks > 0 {
		b.Detail = fmt.Sprintf("%d/%d", f.TotalSuccess, f.TotalChecks)
	}
	return b
}

// Badges returns the overall badge followed by one per scope.
func Badges(u Uptime) []BadgeView {
	out := []BadgeView{badge("Uptime", u.Overall)}
	for _, s := range Scopes {
		out = append(out, badge(s.Title(), u.ForScope(s)))
	}
	return out
}
