package capture

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/driver"
	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

// Capturer polls a joined driver for caption text until the session ends.
type Capturer interface {
	Capture(ctx context.Context, d driver.Driver, s *meeting.Session) Result
}

// StopReason says why a capture loop exited.
type StopReason string

const (
	StopRequested StopReason = "stop-requested"
	StopEndTime   StopReason = "end-time"
	StopContext   StopReason = "context-done"
	StopEnded     StopReason = "meeting-ended"
)

// Result is the raw caption buffer and loop statistics.
type Result struct {
	Text         string
	Reason       StopReason
	Iterations   int
	// Observations counts non-empty caption surfaces seen.
	Observations int
	Errors       int
}
