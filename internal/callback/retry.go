package callback

import (
	"context"
	"math/rand"
	"time"
)

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// expBackoff doubles initial per attempt, capped at max.
func expBackoff(attempt int, initial, max time.Duration) time.Duration {
	if attempt <= 0 {
		return initial
	}
	d := initial << attempt
	if d <= 0 {
		return max
	}
	if max > 0 && d > max {
		return max
	}
	return d
}

// withJitter spreads d by +/-20%.
func withJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	j := 0.8 + rand.Float64()*0.4
	return time.Duration(float64(d) * j)
}
