package driver

import (
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
)

// Options controls how a browser is launched.
type Options struct {
	Bin            string
	Headless       bool
	UserAgent      string
	Locale         string
	ViewportWidth  int
	ViewportHeight int
	NavTimeout     time.Duration
	SlowMotion     time.Duration
}

// OptionsFromConfig maps the browser section of the config.
func OptionsFromConfig(cfg config.BrowserConfig) Options {
	return Options{
		Bin:            cfg.Bin,
		Headless:       !cfg.Headful,
		UserAgent:      cfg.UserAgent,
		Locale:         cfg.Locale,
		ViewportWidth:  cfg.ViewportWidth,
		ViewportHeight: cfg.ViewportHeight,
		NavTimeout:     cfg.NavigationTimeout,
		SlowMotion:     cfg.SlowMotion,
	}
}

// Flags passed to every launched browser. Fake media devices let the bot pass
// the pre-join device check; the automation flag hides the webdriver banner.
var launchFlags = []string{
	"use-fake-ui-for-media-stream",
	"use-fake-device-for-media-stream",
	"disable-infobars",
	"no-first-run",
	"no-default-browser-check",
	"disable-gpu",
	"disable-dev-shm-usage",
	"no-sandbox",
}

const stealthScript = `(() => {
	Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
	Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
	Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3, 4, 5] });
	window.chrome = window.chrome || { runtime: {} };
})();`
