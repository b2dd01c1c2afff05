package dashboard

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/healthdash/internal/health"
	"github.com/rileyhilliard/healthdash/internal/logger"
	"github.com/rileyhilliard/healthdash/internal/poll"
	"github.com/rileyhilliard/healthdash/internal/route"
	"golang.org/x/time/rate"
)

// Default terminal size until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
)

// Chrome height reserved around the route body.
const (
	headerHeight = 2
	footerHeight = 2
)

// Options configures a dashboard Model.
type Options struct {
	Source    Source
	StartPath string
	Logger    logger.Logger
	Metrics   Recorder

	// Interval overrides poll.Interval. Tests use it; the CLI does not.
	Interval time.Duration
	// RefreshBurst caps manual refreshes: one token per second, this many
	// stored. Zero means 3.
	RefreshBurst int

	// Context is the parent of every poll handle context.
	Context context.Context
	// Now is the clock used for ages in the chrome.
	Now func() time.Time
}

// Model is the Bubble Tea model for the health dashboard.
type Model struct {
	src     Source
	log     logger.Logger
	rec     Recorder
	sched   *poll.Scheduler
	ctx     context.Context
	limiter *rate.Limiter
	now     func() time.Time

	route  route.Route
	phase  Phase
	fleet  fleetState
	detail detailState

	rows      []health.Host // fleet hosts in display order
	selected  int
	sortOrder SortOrder

	width    int
	height   int
	viewport viewport.Model
	spinner  spinner.Model

	picker     list.Model
	pickerOpen bool
	gotoInput  textinput.Model
	gotoOpen   bool

	showHelp bool
	quitting bool
}

// New creates a dashboard positioned at opts.StartPath. Nothing is fetched
// until Init.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}
	rec := opts.Metrics
	if rec == nil {
		rec = nopRecorder{}
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	burst := opts.RefreshBurst
	if burst <= 0 {
		burst = 3
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = TitleStyle

	m := Model{
		src:       opts.Source,
		log:       log,
		rec:       rec,
		sched:     poll.NewScheduler(opts.Interval),
		ctx:       ctx,
		limiter:   rate.NewLimiter(rate.Every(time.Second), burst),
		now:       now,
		route:     route.Parse(opts.StartPath),
		phase:     PhaseLoading,
		width:     defaultWidth,
		height:    defaultHeight,
		viewport:  viewport.New(defaultWidth, defaultHeight-headerHeight-footerHeight),
		spinner:   sp,
		picker:    newPicker(defaultWidth, defaultHeight-headerHeight-footerHeight),
		gotoInput: newGotoInput(),
	}
	if d, ok := m.route.(route.HostDetail); ok {
		m.detail = detailState{hostID: d.HostID}
	}
	return m
}

// Init mounts the fleet poll and, when starting on a host, the detail poll.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.startFleet()}
	if d, ok := m.route.(route.HostDetail); ok {
		cmds = append(cmds, m.startHost(d.HostID))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case poll.TickMsg:
		return m, m.handleTick(msg)

	case fleetMsg:
		m.handleFleet(msg)

	case hostMsg:
		m.handleHost(msg)
	}

	if m.pickerOpen {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// Route is the active route.
func (m Model) Route() route.Route { return m.route }

// Phase is the load phase.
func (m Model) Phase() Phase { return m.phase }

// SelectedHost returns the ID of the selected overview row.
func (m Model) SelectedHost() string {
	if m.selected >= 0 && m.selected < len(m.rows) {
		return m.rows[m.selected].ID
	}
	return ""
}

func (m Model) busy() bool {
	if m.phase == PhaseLoading {
		return true
	}
	_, onDetail := m.route.(route.HostDetail)
	return onDetail && !m.detail.loaded && m.detail.err == nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	bodyHeight := height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = bodyHeight
	m.picker.SetSize(width, bodyHeight)
	m.gotoInput.Width = width - 10
	m.refreshDetail()
}

// startFleet acquires the fleet handle and fetches immediately.
func (m Model) startFleet() tea.Cmd {
	h := m.sched.Acquire(m.ctx, poll.TargetFleet, "")
	return tea.Batch(m.fetchFleet(h), h.Tick())
}

// startHost acquires the detail handle for id, releasing any previous one.
func (m Model) startHost(id string) tea.Cmd {
	h := m.sched.Acquire(m.ctx, poll.TargetHost, id)
	return tea.Batch(m.fetchHost(h), h.Tick())
}

func (m Model) fetchFleet(h *poll.Handle) tea.Cmd {
	src, ctx, stamp, now := m.src, h.Context(), h.Stamp(), m.now
	return func() tea.Msg {
		fleet, err := src.Fleet(ctx)
		return fleetMsg{stamp: stamp, fleet: fleet, err: err, at: now()}
	}
}

func (m Model) fetchHost(h *poll.Handle) tea.Cmd {
	src, ctx, stamp, id, now := m.src, h.Context(), h.Stamp(), h.Key(), m.now
	return func() tea.Msg {
		host, err := src.Host(ctx, id)
		return hostMsg{stamp: stamp, id: id, host: host, err: err, at: now()}
	}
}

func (m *Model) dropStale(stamp poll.Stamp) {
	m.log.Debug("dropping stale %s message (gen %d)", stamp.Target, stamp.Gen)
	m.rec.DropStale(string(stamp.Target))
}

func (m *Model) handleTick(msg poll.TickMsg) tea.Cmd {
	h := m.sched.Current(msg.Stamp.Target)
	if !h.Owns(msg.Stamp) {
		m.dropStale(msg.Stamp)
		return nil
	}

	switch msg.Stamp.Target {
	case poll.TargetFleet:
		return tea.Batch(h.Tick(), m.fetchFleet(h))
	case poll.TargetHost:
		return tea.Batch(h.Tick(), m.fetchHost(h))
	}
	return nil
}

func (m *Model) handleFleet(msg fleetMsg) {
	if !m.sched.Owns(msg.stamp) {
		m.dropStale(msg.stamp)
		return
	}

	if msg.err != nil {
		m.fleet.err = msg.err
		m.fleet.errAt = msg.at
		if !m.fleet.loaded {
			m.log.Error("initial fleet load failed: %v", msg.err)
			m.phase = PhaseFailed
			m.sched.ReleaseAll()
			return
		}
		m.log.Warn("fleet refresh failed, keeping previous snapshot: %v", msg.err)
		return
	}

	m.fleet = fleetState{summary: msg.fleet, loaded: true, updatedAt: msg.at}
	m.phase = PhaseReady
	m.sortRows()

	failing := 0
	for _, h := range msg.fleet.Hosts {
		failing += health.Aggregate(h).Failing()
	}
	m.rec.SetFleet(len(msg.fleet.Hosts), failing)
	m.rec.MarkSuccess(string(poll.TargetFleet), msg.at)
	m.picker.SetItems(hostItems(msg.fleet.Hosts))
	m.log.Debug("fleet updated: %d hosts, %d failing checks", len(msg.fleet.Hosts), failing)

	m.refreshDetail()
}

func (m *Model) handleHost(msg hostMsg) {
	if !m.sched.Owns(msg.stamp) || msg.id != m.detail.hostID {
		m.dropStale(msg.stamp)
		return
	}

	if msg.err != nil {
		m.detail.err = msg.err
		m.detail.errAt = msg.at
		if !m.detail.loaded {
			// Nothing to show and nothing to keep polling for; r remounts.
			m.log.Warn("host %s unavailable: %v", msg.id, msg.err)
			m.sched.Release(poll.TargetHost)
		} else {
			m.log.Warn("host %s refresh failed, keeping previous snapshot: %v", msg.id, msg.err)
		}
		m.refreshDetail()
		return
	}

	m.detail.host = msg.host
	m.detail.loaded = true
	m.detail.updatedAt = msg.at
	m.detail.err = nil
	m.detail.errAt = time.Time{}
	m.rec.MarkSuccess(string(poll.TargetHost), msg.at)
	m.refreshDetail()
}

// navigate switches routes, releasing the detail poll when leaving a host
// and acquiring a fresh one when entering a different host.
func (m *Model) navigate(r route.Route) tea.Cmd {
	if r == m.route {
		return nil
	}
	prev := m.route
	m.route = r
	m.log.Debug("route %s -> %s", prev.Path(), r.Path())

	if _, ok := prev.(route.HostDetail); ok {
		m.sched.Release(poll.TargetHost)
		m.detail = detailState{}
	}

	if d, ok := r.(route.HostDetail); ok {
		return m.enterDetail(d.HostID)
	}
	return nil
}

func (m *Model) enterDetail(id string) tea.Cmd {
	m.detail = detailState{hostID: id}
	m.viewport.GotoTop()
	m.refreshDetail()
	return tea.Batch(m.spinner.Tick, m.startHost(id))
}

// remount restarts every poll from scratch, as if the dashboard had just
// been opened on the current route.
func (m *Model) remount() tea.Cmd {
	m.sched.ReleaseAll()
	m.phase = PhaseLoading
	m.fleet = fleetState{}
	cmds := []tea.Cmd{m.spinner.Tick, m.startFleet()}
	if d, ok := m.route.(route.HostDetail); ok {
		cmds = append(cmds, m.enterDetail(d.HostID))
	}
	return tea.Batch(cmds...)
}

// refresh is the r key: remount whatever stopped polling, otherwise fetch
// now without disturbing the tick schedule.
func (m *Model) refresh() tea.Cmd {
	switch m.phase {
	case PhaseFailed:
		return m.remount()
	case PhaseLoading:
		return nil
	}

	if d, ok := m.route.(route.HostDetail); ok && m.detail.Unavailable() {
		return m.enterDetail(d.HostID)
	}

	if !m.limiter.Allow() {
		m.log.Debug("manual refresh throttled")
		return nil
	}

	var cmds []tea.Cmd
	if h := m.sched.Current(poll.TargetFleet); h != nil {
		cmds = append(cmds, m.fetchFleet(h))
	}
	if h := m.sched.Current(poll.TargetHost); h != nil {
		cmds = append(cmds, m.fetchHost(h))
	}
	return tea.Batch(cmds...)
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.sched.ReleaseAll()
	return tea.Quit
}

// sortRows rebuilds the display order, keeping the selected host selected.
func (m *Model) sortRows() {
	selectedID := m.SelectedHost()

	rows := make([]health.Host, len(m.fleet.summary.Hosts))
	copy(rows, m.fleet.summary.Hosts)

	switch m.sortOrder {
	case SortByName:
		sort.SliceStable(rows, func(i, j int) bool {
			return strings.ToLower(rows[i].Title()) < strings.ToLower(rows[j].Title())
		})
	case SortByUptime:
		// Worst first; hosts without a reported figure sink to the bottom
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := rows[i].Uptime.Overall, rows[j].Uptime.Overall
			if a.Reported != b.Reported {
				return a.Reported
			}
			return a.Percent < b.Percent
		})
	case SortByFailing:
		failing := make(map[string]int, len(rows))
		for _, h := range rows {
			failing[h.ID] = health.Aggregate(h).Failing()
		}
		sort.SliceStable(rows, func(i, j int) bool {
			return failing[rows[i].ID] > failing[rows[j].ID]
		})
	}
	m.rows = rows

	m.selected = 0
	for i, h := range rows {
		if h.ID == selectedID {
			m.selected = i
			break
		}
	}
	if len(rows) == 0 {
		m.selected = -1
	}
}

// refreshDetail re-renders the detail viewport content.
func (m *Model) refreshDetail() {
	if _, ok := m.route.(route.HostDetail); !ok || m.detail.host == nil {
		return
	}
	m.viewport.SetContent(m.renderDetailContent(*m.detail.host))
}
