package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func latest(status Status) []CheckResult {
	return []CheckResult{{CheckedAt: time.Now(), Status: status}}
}

func TestAggregate_EmptyBucketsAreError(t *testing.T) {
	tests := []struct {
		name string
		host Host
	}{
		{name: "zero host", host: Host{}},
		{name: "all buckets present but empty", host: Host{Latest: NewChecks()}},
		{name: "partial scope map", host: Host{Latest: Checks{ScopePublic: {ProtoHTTP: latest(StatusSuccess)}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var table StatusTable
			require.NotPanics(t, func() { table = Aggregate(tt.host) })

			for _, c := range table {
				if c.Scope == ScopePublic && c.Protocol == ProtoHTTP && tt.name == "partial scope map" {
					assert.Equal(t, StatusSuccess, c.Status)
					continue
				}
				assert.Equal(t, StatusError, c.Status, "%s/%s", c.Scope, c.Protocol)
			}
		})
	}
}

func TestAggregate_UsesFirstLatestEntry(t *testing.T) {
	c := NewChecks()
	now := time.Now()
	c[ScopeInternal][ProtoTCP] = []CheckResult{
		{CheckedAt: now, Status: StatusError},
		{CheckedAt: now.Add(-10 * time.Second), Status: StatusSuccess},
	}

	table := Aggregate(Host{Latest: c})
	assert.Equal(t, StatusError, table.Cell(ScopeInternal, ProtoTCP).Status)
}

func TestAggregate_Order(t *testing.T) {
	table := Aggregate(Host{})

	assert.Equal(t, ScopePublic, table[0].Scope)
	assert.Equal(t, ProtoHTTP, table[0].Protocol)
	assert.Equal(t, ProtoUDP, table[3].Protocol)
	assert.Equal(t, ScopeInternal, table[4].Scope)
	assert.Len(t, table.Scope(ScopeInternal), 4)
}

func TestButtons_PublicHTTPGreenWithRoundedUptime(t *testing.T) {
	c := NewChecks()
	c[ScopePublic][ProtoHTTP] = latest(StatusSuccess)

	host := Host{
		Hostname: "h1",
		Latest:   c,
		Uptime: Uptime{
			Check: map[Scope]map[Protocol]Figure{
				ScopePublic: {ProtoHTTP: {Percent: 97.6, Reported: true}},
			},
		},
	}

	buttons := Aggregate(host).Buttons(ScopePublic)
	require.Len(t, buttons, 4)
	assert.Equal(t, ButtonView{Label: "HTTP", Text: "98%", Variant: VariantSuccess}, buttons[0])
	assert.Equal(t, ButtonView{Label: "ICMP", Text: "n/a", Variant: VariantDanger}, buttons[1])

	// raw value is untouched by rendering
	assert.Equal(t, 97.6, host.Uptime.For(ScopePublic, ProtoHTTP).Percent)
}

func TestButtonVariant(t *testing.T) {
	assert.Equal(t, VariantSuccess, ButtonVariant(StatusSuccess))
	assert.Equal(t, VariantDanger, ButtonVariant(StatusError))
	assert.Equal(t, VariantDanger, ButtonVariant(""))
	assert.Equal(t, VariantDanger, ButtonVariant("timeout"))
}

func TestUptimeVariant(t *testing.T) {
	tests := []struct {
		percent float64
		want    Variant
	}{
		{0, VariantDanger},
		{49.99, VariantDanger},
		{50, VariantWarning},
		{89.9, VariantWarning},
		{90, VariantSuccess},
		{100, VariantSuccess},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, UptimeVariant(tt.percent), "percent %v", tt.percent)
	}
}

func TestRound_Idempotent(t *testing.T) {
	for _, x := range []float64{0, 0.4, 0.5, 49.5, 89.49, 97.6, 99.5, 100} {
		once := Round(x)
		assert.Equal(t, once, Round(float64(once)), "x=%v", x)
	}
	assert.Equal(t, 98, Round(97.6))
	assert.Equal(t, 100, Round(99.5))
}

func TestDisplayPercent(t *testing.T) {
	assert.Equal(t, "n/a", DisplayPercent(Figure{}))
	assert.Equal(t, "0%", DisplayPercent(Figure{Reported: true}))
	assert.Equal(t, "50%", DisplayPercent(Figure{Percent: 49.5, Reported: true}))
}

func TestFailing(t *testing.T) {
	c := NewChecks()
	for _, p := range Protocols {
		c[ScopePublic][p] = latest(StatusSuccess)
	}
	c[ScopeInternal][ProtoHTTP] = latest(StatusSuccess)

	assert.Equal(t, 3, Aggregate(Host{Latest: c}).Failing())
	assert.Equal(t, 8, Aggregate(Host{}).Failing())
}

func TestBadges(t *testing.T) {
	u := Uptime{
		Overall: Figure{Percent: 95.2, TotalSuccess: 952, TotalChecks: 1000, Reported: true},
		Scope: map[Scope]Figure{
			ScopePublic:   {Percent: 72, Reported: true},
			ScopeInternal: {Percent: 12.4, Reported: true},
		},
	}

	badges := Badges(u)
	require.Len(t, badges, 3)

	assert.Equal(t, BadgeView{Label: "Uptime", Text: "95%", Variant: VariantSuccess, Detail: "952/1000"}, badges[0])
	assert.Equal(t, VariantWarning, badges[1].Variant)
	assert.Equal(t, "Public", badges[1].Label)
	assert.Equal(t, VariantDanger, badges[2].Variant)
	assert.Equal(t, "12%", badges[2].Text)

	missing := Badges(Uptime{})
	assert.Equal(t, VariantMuted, missing[0].Variant)
	assert.Equal(t, "n/a", missing[0].Text)
}

func TestFleetSummary_Find(t *testing.T) {
	f := FleetSummary{
		Current: Host{ID: "self", Hostname: "me"},
		Hosts:   []Host{{ID: "a", Hostname: "alpha"}, {ID: "b"}},
	}

	h, ok := f.Find("a")
	assert.True(t, ok)
	assert.Equal(t, "alpha", h.Title())

	h, ok = f.Find("self")
	assert.True(t, ok)
	assert.Equal(t, "me", h.Hostname)

	_, ok = f.Find("")
	assert.False(t, ok)
	_, ok = f.Find("zzz")
	assert.False(t, ok)
}

func TestHostTitle(t *testing.T) {
	assert.Equal(t, "web", Host{ID: "1", Hostname: "web", PublicIP: "1.2.3.4"}.Title())
	assert.Equal(t, "1.2.3.4", Host{ID: "1", PublicIP: "1.2.3.4"}.Title())
	assert.Equal(t, "1", Host{ID: "1"}.Title())
	assert.Equal(t, "http://1.2.3.4", Host{PublicIP: "1.2.3.4"}.PublicURL())
	assert.Empty(t, Host{}.PublicURL())
}
