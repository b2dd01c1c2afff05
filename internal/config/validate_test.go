package config

import (
	"testing"
	"time"

	"github.com/rileyhilliard/healthdash/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errKey  string
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "empty base url",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: true,
			errKey:  "api.base_url",
		},
		{
			name:    "base url without scheme",
			mutate:  func(c *Config) { c.API.BaseURL = "localhost" },
			wantErr: true,
			errKey:  "api.base_url",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.API.Timeout = 0 },
			wantErr: true,
			errKey:  "api.timeout",
		},
		{
			name:    "timeout longer than the poll interval",
			mutate:  func(c *Config) { c.API.Timeout = 30 * time.Second },
			wantErr: true,
			errKey:  "api.timeout",
		},
		{
			name:    "metrics listen must be host:port",
			mutate:  func(c *Config) { c.Metrics.Listen = "not a port" },
			wantErr: true,
			errKey:  "metrics.listen",
		},
		{
			name:    "metrics listen accepted",
			mutate:  func(c *Config) { c.Metrics.Listen = "localhost:9101" },
			wantErr: false,
		},
		{
			name:    "relative start path",
			mutate:  func(c *Config) { c.UI.StartPath = "hosts/1" },
			wantErr: true,
			errKey:  "ui.start_path",
		},
		{
			name:    "refresh burst zero",
			mutate:  func(c *Config) { c.UI.RefreshBurst = 0 },
			wantErr: true,
			errKey:  "ui.refresh_burst",
		},
		{
			name:    "empty log dir",
			mutate:  func(c *Config) { c.Log.Dir = "" },
			wantErr: true,
			errKey:  "log.dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.errKey)
		})
	}
}

func TestValidate_SuggestsEnvOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.BaseURL = ""

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HEALTHDASH_API_BASE_URL")
}
