package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/healthdash/internal/errors"
	"github.com/rileyhilliard/healthdash/internal/health"
	"github.com/rileyhilliard/healthdash/internal/ui"
	"github.com/rileyhilliard/healthdash/internal/util"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats for status.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	statusHost   string
	statusFormat string
)

// statusCmd prints a one-shot snapshot
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print a one-shot fleet or host snapshot",
	Long: `Fetch the fleet once and print it, without the interactive dashboard.
Works in scripts and pipes.

With --host, prints that host's checks plus its latency series.

Examples:
  healthdash status
  healthdash status --host web-1
  healthdash status --format json | jq '.data.hosts[].failing'
  healthdash status --format yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusCommand(cmd.Context(), cmd.OutOrStdout(), statusHost, statusFormat)
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusHost, "host", "", "show a single host by ID")
	statusCmd.Flags().StringVarP(&statusFormat, "format", "o", FormatText, "output format: text, json or yaml")
	rootCmd.AddCommand(statusCmd)
}

// fleetSource is the part of the API client status needs.
type fleetSource interface {
	Fleet(ctx context.Context) (health.FleetSummary, error)
	Host(ctx context.Context, id string) (*health.Host, error)
}

func checkFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("'%s' isn't an output format", format),
		"Use --format text, json or yaml.")
}

func statusCommand(ctx context.Context, w io.Writer, hostID, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	return writeStatus(ctx, w, s.client, hostID, format)
}

// writeStatus fetches and prints. JSON output always gets an envelope, even
// on failure, so scripts can parse it.
func writeStatus(ctx context.Context, w io.Writer, src fleetSource, hostID, format string) error {
	var (
		data interface{}
		err  error
		text string
	)

	if hostID != "" {
		var h *health.Host
		h, err = src.Host(ctx, hostID)
		if errors.IsCode(err, errors.ErrNotFound) {
			err = unknownHost(ctx, src, hostID, err)
		}
		if err == nil {
			data = newHostReport(*h)
			text = renderHostText(*h)
		}
	} else {
		var fleet health.FleetSummary
		fleet, err = src.Fleet(ctx)
		if err == nil {
			data = newStatusReport(fleet)
			text = renderFleetText(fleet)
		}
	}

	if err != nil {
		if format == FormatJSON {
			_ = WriteJSONFromError(w, err)
		}
		return err
	}

	switch format {
	case FormatJSON:
		return WriteJSONSuccess(w, data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := io.WriteString(w, text)
		return err
	}
}

// unknownHost turns a 404 into an error that names the hosts the backend
// does know about.
func unknownHost(ctx context.Context, src fleetSource, id string, cause error) error {
	suggestion := "Run 'healthdash status' to list hosts."
	if fleet, err := src.Fleet(ctx); err == nil {
		ids := make([]string, 0, len(fleet.Hosts))
		for _, h := range fleet.Hosts {
			ids = append(ids, h.ID)
		}
		if similar := util.SuggestSimilar(id, ids, 3); len(similar) > 0 {
			suggestion = "Did you mean " + util.JoinOrNone(similar) + "?"
		} else {
			suggestion = "Known hosts: " + util.JoinOrNone(ids)
		}
	}
	return errors.WrapWithCode(cause, errors.ErrNotFound, "No host with ID "+id, suggestion)
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(ui.ColorMuted)
)

// scopeMarks renders a scope's four checks as e.g. "HTTP✓ ICMP✗ TCP✓ UDP✓".
// Table cells are truncated by width, so they stay uncoloured.
func scopeMarks(t health.StatusTable, s health.Scope) string {
	var parts []string
	for _, c := range t.Scope(s) {
		parts = append(parts, c.Protocol.Label()+ui.Symbol(c.Status))
	}
	return strings.Join(parts, " ")
}

func renderFleetText(fleet health.FleetSummary) string {
	var b strings.Builder

	cur := fleet.Current
	b.WriteString(headingStyle.Render("Current host: "+cur.Title()) + "\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("  %d restarts | host up %s | service up %s | last start %s",
		cur.ServiceRestarts,
		health.FormatDuration(cur.HostUptime),
		health.FormatDuration(cur.ServiceUptime),
		health.FormatTimestamp(cur.ServiceLastStart))) + "\n\n")

	if len(fleet.Hosts) == 0 {
		b.WriteString("No hosts reported yet.\n")
		return b.String()
	}

	columns := []ui.TableColumn{
		{Title: "ID", Width: 12},
		{Title: "Host", Width: 20},
		{Title: "Public IP", Width: 16},
		{Title: "Uptime", Width: 7},
		{Title: "Public", Width: 24},
		{Title: "Internal", Width: 24},
		{Title: "Failing", Width: 7},
	}

	failingTotal := 0
	rows := make([][]string, 0, len(fleet.Hosts))
	for _, h := range fleet.Hosts {
		t := health.Aggregate(h)
		failingTotal += t.Failing()
		rows = append(rows, []string{
			h.ID,
			h.Title(),
			h.PublicIP,
			health.DisplayPercent(h.Uptime.Overall),
			scopeMarks(t, health.ScopePublic),
			scopeMarks(t, health.ScopeInternal),
			fmt.Sprintf("%d", t.Failing()),
		})
	}

	b.WriteString(ui.RenderTable(columns, rows))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s, %s %s failing\n",
		humanize.Comma(int64(len(fleet.Hosts))), util.Pluralize(len(fleet.Hosts), "host", "hosts"),
		humanize.Comma(int64(failingTotal)), util.Pluralize(failingTotal, "check", "checks")))
	return b.String()
}

func renderHostText(h health.Host) string {
	var b strings.Builder
	t := health.Aggregate(h)

	overall := health.StatusSuccess
	if t.Failing() > 0 {
		overall = health.StatusError
	}
	b.WriteString(ui.Mark(overall) + " " + headingStyle.Render(h.Title()) + labelStyle.Render("  ("+h.ID+")") + "\n")
	field := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  %-20s", label)) + value + "\n")
	}
	field("Public IP", h.PublicIP)
	field("Internal IP", h.InternalIP)
	field("Service restarts", fmt.Sprintf("%d", h.ServiceRestarts))
	field("Service first start", health.FormatTimestamp(h.ServiceFirstStart))
	field("Service last start", health.FormatTimestamp(h.ServiceLastStart))
	field("Host uptime", health.FormatDuration(h.HostUptime))
	field("Service uptime", health.FormatDuration(h.ServiceUptime))

	uptime := []string{"overall " + ui.Percent(h.Uptime.Overall)}
	for _, s := range health.Scopes {
		uptime = append(uptime, strings.ToLower(s.Title())+" "+ui.Percent(h.Uptime.ForScope(s)))
	}
	field("Uptime", strings.Join(uptime, ", "))
	b.WriteString("\n")

	columns := []ui.TableColumn{
		{Title: "Scope", Width: 10},
		{Title: "Check", Width: 6},
		{Title: "Status", Width: 10},
		{Title: "Uptime", Width: 7},
	}
	var rows [][]string
	for _, c := range t {
		rows = append(rows, []string{c.Scope.Title(), c.Protocol.Label(), string(c.Status), health.DisplayPercent(c.Uptime)})
	}
	b.WriteString(ui.RenderTable(columns, rows))
	b.WriteString("\n")

	if !h.HasHistory {
		return b.String()
	}

	b.WriteString("\n" + headingStyle.Render("Latency") + "\n")
	for _, chart := range health.BuildCharts(h) {
		for _, d := range chart.Datasets {
			vals := health.Values(d.Points)
			summary := "no data"
			if len(vals) > 0 {
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
				summary = fmt.Sprintf("min %dms avg %dms max %dms", lo, sum/int64(len(vals)), hi)
			}
			field(chart.Config.Title+" "+strings.ToLower(d.Label),
				fmt.Sprintf("%s, %d samples, %d failed", summary, len(d.Points), len(d.Points)-len(vals)))
		}
	}
	return b.String()
}
