package scheduler

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

const defaultHistory = 256

type Config struct {
	MaxConcurrent int
	Grace         time.Duration
	// History bounds how many finished sessions stay visible to Status.
	History int
}

type entry struct {
	session *meeting.Session
	timer   *time.Timer
}

type implScheduler struct {
	cfg    Config
	runner Runner
	logger logger.Logger
	now    func() time.Time

	mu       sync.Mutex
	active   map[string]*entry
	finished *history
	closed   bool

	sem    *semaphore.Weighted
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Scheduler. Sessions run with a context that is cancelled
// only if Shutdown's deadline passes.
func New(cfg Config, runner Runner, log logger.Logger) Scheduler {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 10
	}
	if cfg.Grace <= 0 {
		cfg.Grace = 30 * time.Second
	}
	if cfg.History <= 0 {
		cfg.History = defaultHistory
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &implScheduler{
		cfg:      cfg,
		runner:   runner,
		logger:   log,
		now:      time.Now,
		active:   make(map[string]*entry),
		finished: newHistory(cfg.History),
		sem:      semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		ctx:      ctx,
		cancel:   cancel,
	}
}
