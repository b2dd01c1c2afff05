package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/healthdash/internal/dashboard"
	"github.com/rileyhilliard/healthdash/internal/errors"
	"github.com/rileyhilliard/healthdash/internal/ui"
	"github.com/spf13/cobra"
)

var dashboardPath string

// interactive is swapped out in tests.
var interactive = ui.Interactive

// dashboardCmd starts the TUI dashboard
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive health dashboard",
	Long: `Open the interactive dashboard. It shows the current host and every
host the backend knows about, refreshing every 10 seconds.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  r           Refresh now (retry after a failed load)
  s           Cycle sort order (backend/name/uptime/failing)
  up/k        Select previous host
  down/j      Select next host
  Enter       Open selected host
  Esc         Back to the overview
  h           Host picker
  g           Go to a path
  ?           Show help

Examples:
  healthdash
  healthdash dashboard --path /hosts/web-1
  healthdash --api http://monitor.internal:8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context(), dashboardPath)
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardPath, "path", "", "route to open, e.g. / or /hosts/web-1")
	rootCmd.AddCommand(dashboardCmd)
}

func errNoTTY() error {
	return errors.New(errors.ErrTTY,
		"The dashboard needs an interactive terminal",
		"Use 'healthdash status' for plain output in scripts and pipes.")
}

// dashboardCommand opens the dashboard at path, or at ui.start_path when
// path is empty.
func dashboardCommand(ctx context.Context, path string) error {
	if !interactive() {
		return errNoTTY()
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if path == "" {
		path = s.cfg.UI.StartPath
	}
	return runDashboard(ctx, s, path)
}

// runDashboard runs the Bubble Tea program until the user quits, serving
// /metrics alongside it when configured.
func runDashboard(ctx context.Context, s *session, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if addr := s.cfg.Metrics.Listen; addr != "" {
		bound, done, err := s.metrics.Serve(ctx, addr)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Can't serve metrics on "+addr,
				"Pick a free host:port for metrics.listen, or leave it empty to disable.")
		}
		s.log.Info("metrics listening on %s", bound)
		defer func() {
			cancel()
			if err := <-done; err != nil {
				s.log.Warn("metrics server: %v", err)
			}
		}()
	}

	model := dashboard.New(dashboard.Options{
		Source:       s.client,
		StartPath:    path,
		Logger:       s.log,
		Metrics:      s.metrics,
		RefreshBurst: s.cfg.UI.RefreshBurst,
		Context:      ctx,
	})

	s.log.Info("dashboard opened at %s", path)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrTTY,
			"The dashboard stopped unexpectedly",
			"Check healthdash.log in your log directory for details.")
	}
	return nil
}
