package joiner

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/driver"
)

// Joiner brings a freshly opened driver into a meeting with captions on.
type Joiner interface {
	// Join navigates to url and returns once the bot is inside the meeting.
	// Failing to enable captions is not an error.
	Join(ctx context.Context, d driver.Driver, sessionID, url string) error
	// DismissOverlays clicks through consent and notification dialogs and
	// reports whether anything was dismissed.
	DismissOverlays(ctx context.Context, d driver.Driver) bool
	// Leave hangs up. It is best-effort.
	Leave(ctx context.Context, d driver.Driver)
}
