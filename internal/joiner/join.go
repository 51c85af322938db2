package joiner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/driver"
)

// Join runs the join sequence. Any fatal failure is returned with the path of
// a screenshot taken at the moment of failure.
func (j *implJoiner) Join(ctx context.Context, d driver.Driver, sessionID, url string) (err error) {
	defer func() {
		if err != nil && ctx.Err() == nil {
			if path, ok := j.screenshot(ctx, d, "join-failed", sessionID); ok {
				err = fmt.Errorf("%w (screenshot: %s)", err, path)
			}
		}
	}()

	// Step 1: Load the meeting page
	j.logger.Info(ctx, "Navigating to %s", url)
	if err := d.Navigate(ctx, url); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}
	if err := d.WaitIdle(ctx, j.cfg.IdleTimeout); err != nil {
		j.logger.Warn(ctx, "Network did not go idle: %v", err)
	}
	if err := sleep(ctx, j.cfg.SettleDelay); err != nil {
		return err
	}

	// Step 2: Mute devices and set the display name
	j.prepare(ctx, d)

	// Step 3: Click a join control
	if j.pageContains(ctx, d, blockedTexts) {
		return ErrBlocked
	}
	path, err := j.clickJoin(ctx, d)
	if err != nil {
		return err
	}
	j.logger.Info(ctx, "Clicked join control (%s path)", path)

	j.DismissOverlays(ctx, d)
	if err := sleep(ctx, j.cfg.SettleDelay); err != nil {
		return err
	}

	// Step 4: Wait for the host when the request path was taken, or when a
	// direct join landed in the waiting room anyway
	if path == pathRequest || j.pageContains(ctx, d, waitingTexts) {
		if err := j.awaitAdmission(ctx, d); err != nil {
			return err
		}
	}

	// Step 5: Overlays often appear a moment after admission
	j.DismissOverlays(ctx, d)

	// Step 6: Captions
	if !j.enableCaptions(ctx, d, sessionID) {
		j.logger.Warn(ctx, "Captions could not be enabled, capture will continue without them")
	}

	j.logger.Info(ctx, "Inside the meeting")
	return nil
}

func (j *implJoiner) prepare(ctx context.Context, d driver.Driver) {
	if el, err := d.Find(ctx, cameraOffQuery); err == nil {
		if err := el.Click(ctx); err != nil {
			j.logger.Debug(ctx, "Camera toggle click failed: %v", err)
		} else {
			j.logger.Debug(ctx, "Camera turned off")
		}
	}
	if el, err := d.Find(ctx, micOffQuery); err == nil {
		if err := el.Click(ctx); err != nil {
			j.logger.Debug(ctx, "Microphone toggle click failed: %v", err)
		} else {
			j.logger.Debug(ctx, "Microphone turned off")
		}
	}
	if el, err := d.Find(ctx, nameInputQuery); err == nil {
		if err := el.Fill(ctx, j.cfg.DisplayName); err != nil {
			j.logger.Debug(ctx, "Name input failed: %v", err)
		} else {
			j.logger.Debug(ctx, "Display name set to %s", j.cfg.DisplayName)
		}
	}
}

// clickJoin polls the probe cascade, main document then frames, until a
// control is clicked or the control wait elapses.
func (j *implJoiner) clickJoin(ctx context.Context, d driver.Driver) (joinPath, error) {
	deadline := j.now().Add(j.cfg.ControlWait)
	for {
		docs := []driver.Document{d}
		if frames, err := d.Frames(ctx); err == nil {
			docs = append(docs, frames...)
		}

		for _, doc := range docs {
			path, ok, err := j.tryJoinProbes(ctx, doc)
			if err != nil {
				return 0, err
			}
			if ok {
				return path, nil
			}
		}

		if j.pageContains(ctx, d, blockedTexts) {
			return 0, ErrBlocked
		}
		if !j.now().Before(deadline) {
			return 0, ErrNoJoinControl
		}
		if err := sleep(ctx, j.cfg.ControlPoll); err != nil {
			return 0, err
		}
	}
}

func (j *implJoiner) tryJoinProbes(ctx context.Context, doc driver.Document) (joinPath, bool, error) {
	for _, p := range joinProbes {
		el, err := doc.Find(ctx, p.query)
		if err != nil {
			if ctx.Err() != nil {
				return 0, false, ctx.Err()
			}
			if !errors.Is(err, driver.ErrNotFound) {
				j.logger.Debug(ctx, "Probe %q failed: %v", p.name, err)
			}
			continue
		}

		path := p.path
		if path == pathInfer {
			text, _ := el.Text(ctx)
			path = inferPath(text)
		}

		if err := el.Click(ctx); err != nil {
			j.logger.Debug(ctx, "Probe %q matched but click failed: %v", p.name, err)
			continue
		}
		j.logger.Debug(ctx, "Join control matched by %q", p.name)
		return path, true, nil
	}
	return 0, false, nil
}

func inferPath(text string) joinPath {
	t := strings.ToLower(text)
	if strings.Contains(t, "ask") || strings.Contains(t, "request") {
		return pathRequest
	}
	return pathDirect
}

func (j *implJoiner) pageContains(ctx context.Context, doc driver.Document, texts []string) bool {
	body, err := doc.BodyText(ctx)
	if err != nil || body == "" {
		return false
	}
	return containsAny(body, texts)
}

func containsAny(body string, texts []string) bool {
	lower := strings.ToLower(body)
	for _, t := range texts {
		if strings.Contains(lower, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

func anyFound(ctx context.Context, doc driver.Document, queries []driver.Query) bool {
	for _, q := range queries {
		if _, err := doc.Find(ctx, q); err == nil {
			return true
		}
	}
	return false
}

func (j *implJoiner) screenshot(ctx context.Context, d driver.Driver, prefix, sessionID string) (string, bool) {
	name := fmt.Sprintf("%s_%s_%d.png", prefix, sessionID, j.now().UnixMilli())
	path := filepath.Join(j.cfg.ScreenshotDir, name)
	if err := d.Screenshot(ctx, path); err != nil {
		j.logger.Warn(ctx, "Failed to capture screenshot: %v", err)
		return "", false
	}
	j.logger.Info(ctx, "Screenshot saved: %s", path)
	return path, true
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
