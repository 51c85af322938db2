package processor

import (
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/callback"
	"github.com/nguyentantai21042004/meetscribe/internal/capture"
	"github.com/nguyentantai21042004/meetscribe/internal/driver"
	"github.com/nguyentantai21042004/meetscribe/internal/exporter"
	"github.com/nguyentantai21042004/meetscribe/internal/joiner"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/summarizer"
)

// Deps are the collaborators of a Processor. Summarizer may be nil.
type Deps struct {
	Drivers    driver.Factory
	Joiner     joiner.Joiner
	Capturer   capture.Capturer
	Exporter   exporter.Exporter
	Summarizer summarizer.Summarizer
	Dispatcher callback.Dispatcher
}

type implProcessor struct {
	deps   Deps
	logger logger.Logger
	now    func() time.Time
}

// New creates a new Processor instance
func New(deps Deps, log logger.Logger) Processor {
	return &implProcessor{
		deps:   deps,
		logger: log,
		now:    time.Now,
	}
}
