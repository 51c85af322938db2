package joiner

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/driver"
)

func (j *implJoiner) DismissOverlays(ctx context.Context, d driver.Driver) bool {
	dismissed := false
	for attempt := 1; attempt <= j.cfg.OverlayAttempts; attempt++ {
		res, err := d.Eval(ctx, overlayScript)
		if err != nil {
			j.logger.Debug(ctx, "Overlay check failed: %v", err)
			return dismissed
		}
		if res != "clicked" {
			return dismissed
		}
		dismissed = true
		j.logger.Info(ctx, "Dismissed overlay (attempt %d)", attempt)
		if err := sleep(ctx, j.cfg.OverlayPause); err != nil {
			return dismissed
		}
	}
	return dismissed
}
