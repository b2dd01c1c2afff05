package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/healthdash/internal/errors"
	"github.com/rileyhilliard/healthdash/internal/health"
	"github.com/rileyhilliard/healthdash/internal/route"
	"github.com/spf13/cobra"
)

// openCmd picks a host with a prompt, then opens its detail page
var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Pick a host and open its detail page",
	Long: `Fetch the host list, choose one from a prompt, and open the dashboard
on that host's detail page.

Examples:
  healthdash open
  healthdash open --api http://monitor.internal:8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return openCommand(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func openCommand(ctx context.Context) error {
	if !interactive() {
		return errNoTTY()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	fleet, err := s.client.Fleet(ctx)
	if err != nil {
		return err
	}

	id, err := pickHost(fleet.Hosts, runSelect)
	if err != nil || id == "" {
		return err
	}
	return runDashboard(ctx, s, route.HostDetail{HostID: id}.Path())
}

// selectFunc shows a prompt and returns the chosen value.
type selectFunc func(title string, options []huh.Option[string]) (string, error)

func runSelect(title string, options []huh.Option[string]) (string, error) {
	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}

// pickHost asks which host to open. It returns "" when the user cancels.
func pickHost(hosts []health.Host, prompt selectFunc) (string, error) {
	if len(hosts) == 0 {
		return "", errors.New(errors.ErrNotFound,
			"The backend isn't reporting any hosts yet",
			"Check that the monitoring service is running, or open the dashboard and wait for the first checks.")
	}
	if len(hosts) == 1 {
		return hosts[0].ID, nil
	}

	id, err := prompt("Open which host?", hostOptions(hosts))
	if stderrors.Is(err, huh.ErrUserAborted) {
		return "", nil
	}
	return id, err
}

func hostOptions(hosts []health.Host) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(hosts))
	for _, h := range hosts {
		label := h.Title()
		if url := h.PublicURL(); url != "" {
			label += "  " + url
		}
		if failing := health.Aggregate(h).Failing(); failing > 0 {
			label += fmt.Sprintf("  (%d failing)", failing)
		}
		options = append(options, huh.NewOption(label, h.ID))
	}
	return options
}
