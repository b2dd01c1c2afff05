package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile  string
	apiURL   string
	noColor  bool
	logDir   string
	debugLog bool
)

var rootCmd = &cobra.Command{
	Use:   "healthdash",
	Short: "Terminal dashboard for host health checks",
	Long: `healthdash shows the health of every host reported by a monitoring
backend: per-check status and uptime for public and internal HTTP, ICMP,
TCP and UDP probes, refreshed every 10 seconds.

Run without a subcommand to open the interactive dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			disableColor()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context(), dashboardPath)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./.healthdash.yaml, then ~/.config/healthdash/config.yaml)")
	pf.StringVar(&apiURL, "api", "", "backend base URL (overrides api.base_url)")
	pf.BoolVar(&noColor, "no-color", false, "disable colours")
	pf.StringVar(&logDir, "log-dir", "", "directory for healthdash.log (overrides log.dir)")
	pf.BoolVar(&debugLog, "debug", false, "log at debug level")

	rootCmd.Flags().StringVar(&dashboardPath, "path", "", "route to open, e.g. / or /hosts/web-1")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimRight(err.Error(), "\n"))
		os.Exit(1)
	}
}

func disableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
