package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
	"github.com/nguyentantai21042004/meetscribe/internal/scheduler"
)

type requestIDKey struct{}

// Envelope wraps every response body.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (a *implAPI) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (a *implAPI) writeJSON(ctx context.Context, w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Warn(ctx, "[%s] Failed to write response: %v", requestID(ctx), err)
	}
}

func (a *implAPI) ok(ctx context.Context, w http.ResponseWriter, msg string, data any) {
	a.writeJSON(ctx, w, http.StatusOK, Envelope{Success: true, Message: msg, Data: data})
}

func (a *implAPI) fail(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	a.writeJSON(ctx, w, status, Envelope{Success: false, Message: msg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, meeting.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, meeting.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, scheduler.ErrShuttingDown):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
