package processor

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

// Processor runs one session end to end on the calling goroutine.
type Processor interface {
	Process(ctx context.Context, s *meeting.Session) error
}
