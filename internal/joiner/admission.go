package joiner

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/driver"
)

// awaitAdmission polls until the host lets the bot in, denies it, or the
// admission timeout elapses.
func (j *implJoiner) awaitAdmission(ctx context.Context, d driver.Driver) error {
	j.logger.Info(ctx, "Waiting to be admitted (timeout %s)", j.cfg.AdmissionTimeout)
	deadline := j.now().Add(j.cfg.AdmissionTimeout)

	for poll := 1; ; poll++ {
		if j.pageContains(ctx, d, deniedTexts) {
			return ErrBlocked
		}
		if anyFound(ctx, d, inMeetingProbes) {
			j.logger.Info(ctx, "Admitted after %d polls", poll)
			return nil
		}

		if j.pageContains(ctx, d, waitingTexts) {
			if poll%5 == 0 {
				j.logger.Info(ctx, "Still waiting for the host (%d polls)", poll)
			}
		} else {
			j.DismissOverlays(ctx, d)
		}

		if !j.now().Before(deadline) {
			return ErrAdmissionTimeout
		}
		if err := sleep(ctx, j.cfg.AdmissionPoll); err != nil {
			return err
		}
	}
}
