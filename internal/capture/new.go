package capture

import (
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

type Config struct {
	PollInterval time.Duration
	ErrorBackoff time.Duration
	// ProgressEvery logs buffer size every N iterations.
	ProgressEvery int
}

type implCapturer struct {
	cfg    Config
	logger logger.Logger
	now    func() time.Time
}

func New(cfg Config, log logger.Logger) Capturer {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 300 * time.Millisecond
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = time.Second
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = 200
	}
	return &implCapturer{
		cfg:    cfg,
		logger: log,
		now:    time.Now,
	}
}
