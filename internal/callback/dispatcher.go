package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

func (d *implDispatcher) Deliver(ctx context.Context, snap meeting.Snapshot, exportPath string) {
	d.dispatch(snap.ID, snap.CallbackURL, NewPayload(snap, exportPath))
}

func (d *implDispatcher) DeliverFailure(ctx context.Context, snap meeting.Snapshot) {
	d.dispatch(snap.ID, snap.CallbackURL, NewFailurePayload(snap))
}

func (d *implDispatcher) dispatch(sessionID, url string, payload Payload) {
	ctx := logger.WithSession(d.base, sessionID)

	body, err := json.Marshal(payload)
	if err != nil {
		d.logger.Error(ctx, "Failed to encode callback payload: %v", err)
		return
	}

	deliveryID := uuid.NewString()
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.send(ctx, url, body, deliveryID); err != nil {
			d.logger.Error(ctx, "Callback delivery %s to %s abandoned: %v", deliveryID, url, err)
			return
		}
		d.logger.Info(ctx, "Callback delivered to %s (status %s, %d entries)", url, payload.Status, payload.TotalEntries)
	}()
}

// send posts body with up to MaxRetries retries after the first attempt.
func (d *implDispatcher) send(ctx context.Context, url string, body []byte, deliveryID string) error {
	attempts := d.cfg.MaxRetries + 1
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			wait := withJitter(expBackoff(attempt-1, d.cfg.InitialBackoff, d.cfg.MaxBackoff))
			d.logger.Warn(ctx, "Callback attempt %d/%d failed: %v (retrying in %s)", attempt, attempts, lastErr, wait)
			if !sleepWithContext(ctx, wait) {
				return fmt.Errorf("shutdown during retry: %w", lastErr)
			}
		}

		err := d.post(ctx, url, body, deliveryID)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("%d attempts failed: %w", attempts, lastErr)
}

func (d *implDispatcher) post(ctx context.Context, url string, body []byte, deliveryID string) error {
	reqCtx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-Id", deliveryID)

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(respBody))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("status %d: %w", resp.StatusCode, errors.New(msg))
	}
	return nil
}

func (d *implDispatcher) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}
