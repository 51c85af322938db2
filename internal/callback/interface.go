package callback

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

// Dispatcher delivers session outcomes to the caller's webhook. Delivery is
// asynchronous and never reports failure to the caller.
type Dispatcher interface {
	// Deliver sends the merged transcript of a finished session.
	Deliver(ctx context.Context, snap meeting.Snapshot, exportPath string)
	// DeliverFailure sends the error variant for a FAILED session.
	DeliverFailure(ctx context.Context, snap meeting.Snapshot)
	// Shutdown waits for in-flight deliveries. When ctx ends first, pending
	// retries are abandoned.
	Shutdown(ctx context.Context) error
}
