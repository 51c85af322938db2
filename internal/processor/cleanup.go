package processor

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/driver"
)

// closeDriver tears down the browser, logs warning if fails
func (p *implProcessor) closeDriver(ctx context.Context, d driver.Driver) {
	if err := d.Close(); err != nil {
		p.logger.Warn(ctx, "Failed to close browser: %v", err)
	} else {
		p.logger.Debug(ctx, "Browser closed")
	}
}
