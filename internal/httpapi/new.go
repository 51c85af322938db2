package httpapi

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

const maxBodyBytes = 1 << 20

type implAPI struct {
	scheduler Scheduler
	logger    logger.Logger
	now       func() time.Time
	mux       *http.ServeMux
}

// New creates the API and registers its routes.
func New(sched Scheduler, log logger.Logger) API {
	a := &implAPI{
		scheduler: sched,
		logger:    log,
		now:       time.Now,
		mux:       http.NewServeMux(),
	}
	a.routes()
	return a
}

func (a *implAPI) routes() {
	a.mux.HandleFunc("POST /api/join-meeting", a.joinMeeting)
	a.mux.HandleFunc("GET /api/meeting/{uuid}", a.meetingStatus)
	a.mux.HandleFunc("DELETE /api/meeting/{uuid}", a.cancelMeeting)
	a.mux.HandleFunc("POST /api/test-callback", a.testCallback)
	a.mux.HandleFunc("GET /api/health", a.health)
}

func (a *implAPI) Handler() http.Handler {
	return a.withRequestID(a.mux)
}
