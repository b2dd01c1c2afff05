// Package cli implements the healthdash command-line interface.
//
// The root command is "healthdash"; run without a subcommand it opens the
// dashboard:
//
//	healthdash [dashboard] [--path /hosts/web-1]  - Interactive dashboard
//	healthdash status [--host ID] [--format F]    - One-shot snapshot (text, json, yaml)
//	healthdash open                               - Pick a host, then open its page
//	healthdash version                            - Build information
//
// Global flags (--config, --api, --no-color, --log-dir, --debug) override the
// config file and HEALTHDASH_* environment variables.
package cli
