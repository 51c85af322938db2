package httpapi

import (
	"net/http"

	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

// Scheduler is the part of the session scheduler the API needs.
type Scheduler interface {
	Schedule(req meeting.Request) (meeting.Snapshot, error)
	Cancel(id string) bool
	Status(id string) (meeting.Snapshot, bool)
	ActiveCount() int
}

// API exposes the REST surface as an http.Handler.
type API interface {
	Handler() http.Handler
}
