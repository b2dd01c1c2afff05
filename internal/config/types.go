package config

import "time"

// Config represents the complete healthdash configuration.
type Config struct {
	API     APIConfig     `yaml:"api" mapstructure:"api"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	UI      UIConfig      `yaml:"ui" mapstructure:"ui"`
}

// APIConfig points the dashboard at the health backend.
type APIConfig struct {
	// BaseURL is the scheme and host serving /api/health and /api/hosts.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// Timeout bounds a single HTTP request. Must stay below the poll interval.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0,lte=10s"`
}

// LogConfig controls the rotating file logger.
type LogConfig struct {
	// Dir holds healthdash.log. Supports ~, ${HOME} and ${USER}.
	Dir string `yaml:"dir" mapstructure:"dir" validate:"required"`

	Debug bool `yaml:"debug" mapstructure:"debug"`
}

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	// Listen is a host:port for /metrics. Empty disables the listener.
	Listen string `yaml:"listen" mapstructure:"listen" validate:"omitempty,hostname_port"`
}

// UIConfig controls the terminal dashboard.
type UIConfig struct {
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`

	// StartPath is the route the dashboard opens on, e.g. "/" or "/hosts/web-1".
	StartPath string `yaml:"start_path" mapstructure:"start_path" validate:"startswith=/"`

	// RefreshBurst caps how many manual refreshes may fire back to back.
	RefreshBurst int `yaml:"refresh_burst" mapstructure:"refresh_burst" validate:"min=1,max=10"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost",
			Timeout: 5 * time.Second,
		},
		Log: LogConfig{
			Dir: "~/.local/state/healthdash",
		},
		UI: UIConfig{
			StartPath:    "/",
			RefreshBurst: 3,
		},
	}
}
