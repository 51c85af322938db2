package watcher

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

// Watcher monitors the intake directory for schedule-request files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Scheduler accepts decoded requests.
type Scheduler interface {
	Schedule(req meeting.Request) (meeting.Snapshot, error)
}
