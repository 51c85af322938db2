package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

// Summarizer produces an LLM-generated markdown summary of a transcript.
type Summarizer interface {
	Enabled() bool
	Summarize(ctx context.Context, entries []meeting.Entry) (string, error)
}
