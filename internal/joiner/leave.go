package joiner

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/driver"
)

func (j *implJoiner) Leave(ctx context.Context, d driver.Driver) {
	res, err := d.Eval(ctx, leaveScript)
	if err != nil {
		j.logger.Debug(ctx, "Leave click failed: %v", err)
		return
	}
	if res != "clicked" {
		j.logger.Debug(ctx, "No leave control found")
		return
	}
	if err := sleep(ctx, j.cfg.OverlayPause); err != nil {
		return
	}
	if res, err := d.Eval(ctx, leaveConfirmScript); err == nil && res == "clicked" {
		j.logger.Debug(ctx, "Leave confirmed")
	}
	j.logger.Info(ctx, "Left the meeting")
}
