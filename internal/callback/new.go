package callback

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

type Config struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Timeout        time.Duration
}

// ConfigFrom maps the callback section of the config.
func ConfigFrom(cfg config.CallbackConfig) Config {
	return Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxBackoff:     cfg.MaxBackoff,
		Timeout:        cfg.Timeout,
	}
}

type implDispatcher struct {
	cfg    Config
	client *http.Client
	logger logger.Logger

	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Dispatcher. A nil client gets one with cfg.Timeout.
func New(cfg Config, client *http.Client, log logger.Logger) Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	base, cancel := context.WithCancel(context.Background())
	return &implDispatcher{
		cfg:    cfg,
		client: client,
		logger: log,
		base:   base,
		cancel: cancel,
	}
}
