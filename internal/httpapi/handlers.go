package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/callback"
	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

func (a *implAPI) joinMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req meeting.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		a.fail(ctx, w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	snap, err := a.scheduler.Schedule(req)
	if err != nil {
		a.logger.Warn(ctx, "[%s] Schedule rejected for %q: %v", requestID(ctx), req.UUID, err)
		a.fail(ctx, w, statusFor(err), err.Error())
		return
	}

	a.logger.Info(ctx, "[%s] Meeting %s scheduled for %s", requestID(ctx), snap.ID, snap.Start.Format(time.RFC3339))
	a.ok(ctx, w, "Meeting scheduled successfully", snap)
}

func (a *implAPI) meetingStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("uuid")

	snap, ok := a.scheduler.Status(id)
	if !ok {
		a.fail(ctx, w, http.StatusNotFound, fmt.Sprintf("meeting %s not found", id))
		return
	}
	a.ok(ctx, w, "Meeting found", snap)
}

func (a *implAPI) cancelMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("uuid")

	if !a.scheduler.Cancel(id) {
		a.fail(ctx, w, http.StatusNotFound, fmt.Sprintf("meeting %s not found or already finished", id))
		return
	}

	a.logger.Info(ctx, "[%s] Meeting %s cancelled", requestID(ctx), id)
	snap, _ := a.scheduler.Status(id)
	a.ok(ctx, w, "Meeting cancelled", snap)
}

// testCallback accepts a callback payload and logs it, so a deployment can
// point a session at itself.
func (a *implAPI) testCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var p callback.Payload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&p); err != nil {
		a.fail(ctx, w, http.StatusBadRequest, fmt.Sprintf("invalid payload: %v", err))
		return
	}

	a.logger.Info(ctx, "[%s] Test callback received: uuid=%s status=%s entries=%d delivery=%s",
		requestID(ctx), p.UUID, p.Status, p.TotalEntries, r.Header.Get("X-Delivery-Id"))
	for _, e := range p.Transcripts {
		a.logger.Debug(ctx, "  %s: %s", e.Speaker, e.Text)
	}
	if p.ErrorMessage != "" {
		a.logger.Warn(ctx, "[%s] Callback carries error: %s", requestID(ctx), p.ErrorMessage)
	}

	a.ok(ctx, w, "Callback received", map[string]any{
		"uuid":         p.UUID,
		"status":       p.Status,
		"totalEntries": p.TotalEntries,
	})
}

// Health is the body of GET /api/health.
type Health struct {
	Status         string    `json:"status"`
	ActiveMeetings int       `json:"activeMeetings"`
	Timestamp      time.Time `json:"timestamp"`
}

func (a *implAPI) health(w http.ResponseWriter, r *http.Request) {
	a.ok(r.Context(), w, "OK", Health{
		Status:         "UP",
		ActiveMeetings: a.scheduler.ActiveCount(),
		Timestamp:      a.now(),
	})
}
