package cli

import (
	"strings"

	"github.com/rileyhilliard/healthdash/internal/api"
	"github.com/rileyhilliard/healthdash/internal/config"
	"github.com/rileyhilliard/healthdash/internal/errors"
	"github.com/rileyhilliard/healthdash/internal/logger"
	"github.com/rileyhilliard/healthdash/internal/metrics"
)

// loadSettings loads the config and layers the global flags on top.
func loadSettings() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}

	if apiURL != "" {
		cfg.API.BaseURL = strings.TrimRight(apiURL, "/")
	}
	if logDir != "" {
		cfg.Log.Dir = config.Expand(logDir)
	}
	if debugLog {
		cfg.Log.Debug = true
	}
	if noColor {
		cfg.UI.NoColor = true
	}

	// Flags can break what the file got right
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	if cfg.UI.NoColor {
		disableColor()
	}
	return cfg, nil
}

// session is what every backend-facing command shares: settings, the file
// logger, the metrics recorder and an API client wired to both.
type session struct {
	cfg      *config.Config
	log      logger.Logger
	metrics  *metrics.Recorder
	client   *api.Client
	closeLog func() error
}

func openSession() (*session, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logger.NewFileLogger(cfg.Log.Dir, cfg.Log.Debug)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't write logs to "+cfg.Log.Dir,
			"Point log.dir (or --log-dir) at a writable directory.")
	}
	logger.SetDefault(log)

	rec := metrics.New()
	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(log),
		api.WithObserver(rec),
	)

	log.Info("session started: api=%s", cfg.API.BaseURL)
	return &session{
		cfg:      cfg,
		log:      log,
		metrics:  rec,
		client:   client,
		closeLog: closeLog,
	}, nil
}

// Close flushes and closes the log file.
func (s *session) Close() {
	if s == nil || s.closeLog == nil {
		return
	}
	logger.SetDefault(logger.Noop())
	_ = s.closeLog()
}
