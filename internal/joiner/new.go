package joiner

import (
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

// Config holds the timings and identity used while joining.
type Config struct {
	DisplayName      string
	IdleTimeout      time.Duration
	SettleDelay      time.Duration
	ControlWait      time.Duration
	ControlPoll      time.Duration
	AdmissionTimeout time.Duration
	AdmissionPoll    time.Duration
	CaptionAttempts  int
	CaptionPause     time.Duration
	OverlayAttempts  int
	OverlayPause     time.Duration
	ScreenshotDir    string
}

// ConfigFrom maps the application config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		DisplayName:      cfg.Bot.DisplayName,
		IdleTimeout:      cfg.Browser.IdleTimeout,
		SettleDelay:      cfg.Browser.SettleDelay,
		ControlWait:      cfg.Join.ControlWait,
		AdmissionTimeout: cfg.Join.AdmissionTimeout,
		AdmissionPoll:    cfg.Join.AdmissionPollInterval,
		CaptionAttempts:  cfg.Join.CaptionAttempts,
		OverlayAttempts:  cfg.Join.OverlayAttempts,
		ScreenshotDir:    cfg.Paths.Screenshots,
	}
}

type implJoiner struct {
	cfg    Config
	logger logger.Logger
	now    func() time.Time
}

// New creates a Joiner. Zero pauses and poll intervals fall back to defaults.
func New(cfg Config, log logger.Logger) Joiner {
	if cfg.ControlPoll == 0 {
		cfg.ControlPoll = 500 * time.Millisecond
	}
	if cfg.AdmissionPoll == 0 {
		cfg.AdmissionPoll = 3 * time.Second
	}
	if cfg.CaptionAttempts == 0 {
		cfg.CaptionAttempts = 5
	}
	if cfg.CaptionPause == 0 {
		cfg.CaptionPause = 1500 * time.Millisecond
	}
	if cfg.OverlayAttempts == 0 {
		cfg.OverlayAttempts = 5
	}
	if cfg.OverlayPause == 0 {
		cfg.OverlayPause = time.Second
	}
	return &implJoiner{
		cfg:    cfg,
		logger: log,
		now:    time.Now,
	}
}
