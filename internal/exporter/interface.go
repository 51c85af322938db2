package exporter

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

// Exporter writes a finished session's transcript to disk.
type Exporter interface {
	// Export writes the text transcript, plus a .docx copy when enabled,
	// and returns the text file's path.
	Export(ctx context.Context, snap meeting.Snapshot) (string, error)
}
