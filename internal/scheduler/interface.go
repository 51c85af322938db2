package scheduler

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

// Scheduler owns the registry of active sessions and runs each one at its
// start time on a bounded worker pool.
type Scheduler interface {
	// Schedule validates req and registers a SCHEDULED session.
	Schedule(req meeting.Request) (meeting.Snapshot, error)
	// Cancel stops a session. It returns false for unknown or finished ids.
	Cancel(id string) bool
	// Status returns the latest snapshot of an active or recently finished session.
	Status(id string) (meeting.Snapshot, bool)
	// ActiveCount returns the number of sessions that have not finished.
	ActiveCount() int
	// Shutdown stops pending triggers, asks running sessions to stop and
	// waits for them until ctx ends.
	Shutdown(ctx context.Context) error
}

// Runner executes one session on the calling goroutine.
type Runner interface {
	Process(ctx context.Context, s *meeting.Session) error
}
