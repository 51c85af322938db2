package capture

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/caption"
	"github.com/nguyentantai21042004/meetscribe/internal/driver"
	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

// stopCheck is how often a sleeping loop looks at the stop flag.
const stopCheck = 20 * time.Millisecond

type candidate struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Capture keeps the longest caption surface seen until a stop condition.
func (c *implCapturer) Capture(ctx context.Context, d driver.Driver, s *meeting.Session) Result {
	var acc caption.Accumulator
	res := Result{}

	c.logger.Info(ctx, "Capturing captions until %s", s.End.Format(time.RFC3339))

	for {
		if reason, stop := c.shouldStop(ctx, d, s); stop {
			res.Reason = reason
			break
		}
		res.Iterations++

		wait := c.cfg.PollInterval
		text, err := c.probe(ctx, d)
		if err != nil {
			res.Errors++
			c.logger.Debug(ctx, "Caption probe failed: %v", err)
			wait = c.cfg.ErrorBackoff
		} else if text != "" && acc.Offer(text) {
			c.logger.Debug(ctx, "Caption buffer grew to %d chars", acc.Len())
		}

		if res.Iterations%c.cfg.ProgressEvery == 0 {
			c.logger.Info(ctx, "Capture running: %d iterations, %d chars buffered", res.Iterations, acc.Len())
		}

		pause(ctx, s, wait)
	}

	res.Text = acc.Text()
	res.Observations = acc.Observations()
	c.logger.Info(ctx, "Capture finished (%s): %d chars after %d iterations, %d observations, %d probe errors",
		res.Reason, len(res.Text), res.Iterations, res.Observations, res.Errors)
	return res
}

func (c *implCapturer) shouldStop(ctx context.Context, d driver.Driver, s *meeting.Session) (StopReason, bool) {
	if s.StopRequested() {
		return StopRequested, true
	}
	if ctx.Err() != nil {
		return StopContext, true
	}
	if !c.now().Before(s.End) {
		return StopEndTime, true
	}
	if body, err := d.BodyText(ctx); err == nil && containsAny(body, endedTexts) {
		return StopEnded, true
	}
	return "", false
}

// probe runs the strategies over the main document and then every frame. The
// first strategy yielding a caption wins; its valid candidates are joined.
// A document whose scripts all fail counts as empty; probe only fails when
// every document failed.
func (c *implCapturer) probe(ctx context.Context, d driver.Driver) (string, error) {
	docs := []driver.Document{d}
	if frames, err := d.Frames(ctx); err == nil {
		docs = append(docs, frames...)
	}

	var firstErr error
	failed := 0
	for _, doc := range docs {
		answered := false
		for _, st := range strategies {
			raw, err := doc.Eval(ctx, st.script)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			answered = true
			if blob := render(raw); blob != "" {
				return blob, nil
			}
		}
		if !answered {
			failed++
		}
	}
	if failed < len(docs) {
		return "", nil
	}
	return "", firstErr
}

func render(raw string) string {
	if raw == "" {
		return ""
	}
	var cands []candidate
	if err := json.Unmarshal([]byte(raw), &cands); err != nil {
		return ""
	}

	var parts []string
	for _, cand := range cands {
		text := strings.TrimSpace(cand.Text)
		if !caption.IsCaption(text) {
			continue
		}
		speaker := strings.TrimSpace(cand.Speaker)
		if speaker != "" && !caption.IsNoise(speaker) {
			parts = append(parts, speaker+"\n"+text)
		} else {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

func containsAny(body string, texts []string) bool {
	for _, t := range texts {
		if strings.Contains(body, t) {
			return true
		}
	}
	return false
}

// pause waits d, returning early once the session is asked to stop or ctx
// ends.
func pause(ctx context.Context, s *meeting.Session, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	tick := time.NewTicker(stopCheck)
	defer tick.Stop()

	for !s.StopRequested() {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			return
		case <-tick.C:
		}
	}
}
