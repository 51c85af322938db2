package joiner

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/driver"
)

const lastResortPresses = 3

// enableCaptions turns live captions on and reports whether it succeeded.
func (j *implJoiner) enableCaptions(ctx context.Context, d driver.Driver, sessionID string) bool {
	if anyFound(ctx, d, captionsOnProbes) {
		j.logger.Info(ctx, "Captions already on")
		return true
	}

	if _, err := d.Eval(ctx, focusScript); err != nil {
		j.logger.Debug(ctx, "Focus failed: %v", err)
	}

	for attempt := 1; attempt <= j.cfg.CaptionAttempts; attempt++ {
		if j.pressCaptionKey(ctx, d) {
			j.logger.Info(ctx, "Captions enabled by shortcut (attempt %d)", attempt)
			return true
		}
		if attempt == 2 {
			j.DismissOverlays(ctx, d)
		}
		if ctx.Err() != nil {
			return false
		}
	}

	if j.clickCaptionControl(ctx, d) {
		j.logger.Info(ctx, "Captions enabled by control")
		return true
	}

	j.DismissOverlays(ctx, d)
	for i := 0; i < lastResortPresses; i++ {
		if j.pressCaptionKey(ctx, d) {
			j.logger.Info(ctx, "Captions enabled after overlay cleanup")
			return true
		}
	}
	if j.clickCaptionControl(ctx, d) {
		j.logger.Info(ctx, "Captions enabled by control after overlay cleanup")
		return true
	}

	j.screenshot(ctx, d, "captions-failed", sessionID)
	return false
}

func (j *implJoiner) pressCaptionKey(ctx context.Context, d driver.Driver) bool {
	if err := d.PressKey(ctx, 'c'); err != nil {
		j.logger.Debug(ctx, "Caption shortcut failed: %v", err)
		return false
	}
	if err := sleep(ctx, j.cfg.CaptionPause); err != nil {
		return false
	}
	return anyFound(ctx, d, captionsOnProbes)
}

func (j *implJoiner) clickCaptionControl(ctx context.Context, d driver.Driver) bool {
	for _, q := range captionControlProbes {
		el, err := d.Find(ctx, q)
		if err != nil {
			continue
		}
		if err := el.Click(ctx); err != nil {
			continue
		}
		if err := sleep(ctx, j.cfg.CaptionPause); err != nil {
			return false
		}
		if anyFound(ctx, d, captionsOnProbes) {
			return true
		}
	}
	return false
}
