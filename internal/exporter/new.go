package exporter

import (
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

type implExporter struct {
	dir    string
	docx   bool
	logger logger.Logger
	now    func() time.Time
}

// New creates an Exporter writing into dir.
func New(dir string, withDocx bool, log logger.Logger) Exporter {
	return &implExporter{
		dir:    dir,
		docx:   withDocx,
		logger: log,
		now:    time.Now,
	}
}
