package scheduler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meetscribe/internal/callback"
	"github.com/nguyentantai21042004/meetscribe/internal/capture"
	"github.com/nguyentantai21042004/meetscribe/internal/driver"
	"github.com/nguyentantai21042004/meetscribe/internal/driver/drivertest"
	"github.com/nguyentantai21042004/meetscribe/internal/exporter"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
	"github.com/nguyentantai21042004/meetscribe/internal/processor"
)

type admitAll struct{}

func (admitAll) Join(ctx context.Context, d driver.Driver, id, url string) error { return nil }

func (admitAll) DismissOverlays(ctx context.Context, d driver.Driver) bool { return false }

func (admitAll) Leave(ctx context.Context, d driver.Driver) {}

// TestCancelInProgressDeliversTranscript runs a session through the real
// processor, capture loop and callback dispatcher, cancels it mid-capture
// and expects a CANCELLED callback carrying what was captured.
func TestCancelInProgressDeliversTranscript(t *testing.T) {
	received := make(chan callback.Payload, 1)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p callback.Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err == nil {
			received <- p
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer hook.Close()

	d := drivertest.NewDriver()
	d.SetEval(func(js string) (string, error) {
		return `[{"speaker":"Alice","text":"hello everyone and welcome"}]`, nil
	})

	log := logger.NewNop()
	dispatcher := callback.New(callback.Config{MaxRetries: 0, InitialBackoff: 10 * time.Millisecond, Timeout: time.Second}, nil, log)
	proc := processor.New(processor.Deps{
		Drivers:    &drivertest.Factory{New: func() *drivertest.Driver { return d }},
		Joiner:     admitAll{},
		Capturer:   capture.New(capture.Config{PollInterval: 10 * time.Millisecond}, log),
		Exporter:   exporter.New(t.TempDir(), false, log),
		Dispatcher: dispatcher,
	}, log)
	s := New(Config{MaxConcurrent: 1}, proc, log)

	req := request("m-1", 0, time.Hour)
	req.CallbackURL = hook.URL
	_, err := s.Schedule(req)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snap, ok := s.Status("m-1")
		return ok && snap.Status == meeting.StatusInProgress
	}, 2*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	require.True(t, s.Cancel("m-1"))

	select {
	case p := <-received:
		assert.Equal(t, "m-1", p.UUID)
		assert.Equal(t, meeting.StatusCancelled, p.Status)
		require.Len(t, p.Transcripts, 1)
		assert.Equal(t, "Alice", p.Transcripts[0].Speaker)
		assert.Equal(t, "hello everyone and welcome", p.Transcripts[0].Text)
		assert.NotEmpty(t, p.ExportPath)
	case <-time.After(3 * time.Second):
		t.Fatal("callback not delivered")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	require.NoError(t, dispatcher.Shutdown(ctx))
	assert.True(t, d.Closed())
}
