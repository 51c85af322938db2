package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
)

const (
	requestQuiet       = 500 * time.Millisecond
	defaultIdleTimeout = 20 * time.Second
)

type rodFactory struct {
	opts Options
}

// NewRodFactory returns a Factory that launches one Chrome process per Open.
func NewRodFactory(opts Options) Factory {
	return &rodFactory{opts: opts}
}

// LookPath reports the browser binary that would be used when none is configured.
func LookPath() (string, bool) {
	return launcher.LookPath()
}

type rodDriver struct {
	rodDocument
	launcher *launcher.Launcher
	browser  *rod.Browser
	opts     Options
}

func (f *rodFactory) Open(ctx context.Context) (Driver, error) {
	l := launcher.New().Headless(f.opts.Headless).
		Set(flags.Flag("disable-blink-features"), "AutomationControlled").
		Set(flags.Flag("lang"), f.opts.Locale)
	if f.opts.Bin != "" {
		l = l.Bin(f.opts.Bin)
	}
	for _, name := range launchFlags {
		l = l.Set(flags.Flag(name))
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if f.opts.SlowMotion > 0 {
		browser = browser.SlowMotion(f.opts.SlowMotion)
	}
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	d := &rodDriver{launcher: l, browser: browser, opts: f.opts}
	if err := d.setup(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

// mediaGrant grants mic, camera and notifications inside one browser context.
func mediaGrant(contextID proto.BrowserBrowserContextID) proto.BrowserGrantPermissions {
	return proto.BrowserGrantPermissions{
		Permissions: []proto.BrowserPermissionType{
			proto.BrowserPermissionTypeAudioCapture,
			proto.BrowserPermissionTypeVideoCapture,
			proto.BrowserPermissionTypeNotifications,
		},
		BrowserContextID: contextID,
	}
}

func (d *rodDriver) setup() error {
	incognito, err := d.browser.Incognito()
	if err != nil {
		return fmt.Errorf("create incognito context: %w", err)
	}
	if err := mediaGrant(incognito.BrowserContextID).Call(d.browser); err != nil {
		return fmt.Errorf("grant permissions: %w", err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             d.opts.ViewportWidth,
		Height:            d.opts.ViewportHeight,
		DeviceScaleFactor: 1,
	}).Call(page); err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      d.opts.UserAgent,
		AcceptLanguage: d.opts.Locale,
	}); err != nil {
		return fmt.Errorf("set user agent: %w", err)
	}
	if _, err := page.EvalOnNewDocument(stealthScript); err != nil {
		return fmt.Errorf("install init script: %w", err)
	}

	d.page = page
	return nil
}

func (d *rodDriver) Navigate(ctx context.Context, url string) error {
	p := d.page.Context(ctx)
	if d.opts.NavTimeout > 0 {
		p = p.Timeout(d.opts.NavTimeout)
		defer p.CancelTimeout()
	}
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}
	return nil
}

// WaitIdle waits until no request has been in flight for requestQuiet, or
// until timeout. Websockets, media and images are ignored.
func (d *rodDriver) WaitIdle(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultIdleTimeout
	}
	p := d.page.Context(ctx).Timeout(timeout)
	defer p.CancelTimeout()

	p.WaitRequestIdle(requestQuiet, nil, nil, nil)()
	return idleResult(ctx, p.GetContext(), timeout)
}

// idleResult turns the state of the bounded wait context into an error.
func idleResult(parent, bounded context.Context, timeout time.Duration) error {
	if err := parent.Err(); err != nil {
		return err
	}
	if bounded.Err() != nil {
		return fmt.Errorf("network not idle after %s", timeout)
	}
	return nil
}

func (d *rodDriver) Frames(ctx context.Context) ([]Document, error) {
	iframes, err := d.page.Context(ctx).Sleeper(rod.NotFoundSleeper).Elements("iframe")
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(iframes))
	for _, el := range iframes {
		frame, err := el.Frame()
		if err != nil {
			continue
		}
		docs = append(docs, rodDocument{page: frame})
	}
	return docs, nil
}

func (d *rodDriver) PressKey(ctx context.Context, key rune) error {
	return d.page.Context(ctx).Keyboard.Type(input.Key(key))
}

func (d *rodDriver) Screenshot(ctx context.Context, path string) error {
	data, err := d.page.Context(ctx).Screenshot(false, nil)
	if err != nil {
		return fmt.Errorf("capture screenshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (d *rodDriver) Close() error {
	var firstErr error
	if d.page != nil {
		if err := d.page.Close(); err != nil {
			firstErr = err
		}
	}
	if d.browser != nil {
		if err := d.browser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	d.launcher.Kill()
	d.launcher.Cleanup()
	return firstErr
}

type rodDocument struct {
	page *rod.Page
}

func (r rodDocument) Find(ctx context.Context, q Query) (Element, error) {
	els, err := r.page.Context(ctx).Sleeper(rod.NotFoundSleeper).Elements(q.Selector)
	if err != nil {
		return nil, err
	}

	var re *regexp.Regexp
	if q.Text != "" {
		re, err = regexp.Compile("(?i)" + q.Text)
		if err != nil {
			return nil, fmt.Errorf("text pattern %q: %w", q.Text, err)
		}
	}

	for _, el := range els {
		visible, err := el.Visible()
		if err != nil || !visible {
			continue
		}
		if re != nil {
			text, err := el.Text()
			if err != nil || !re.MatchString(strings.TrimSpace(text)) {
				continue
			}
		}
		return rodElement{el: el}, nil
	}
	return nil, ErrNotFound
}

func (r rodDocument) BodyText(ctx context.Context) (string, error) {
	res, err := r.page.Context(ctx).Eval(`() => document.body ? document.body.innerText : ""`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (r rodDocument) Eval(ctx context.Context, js string) (string, error) {
	res, err := r.page.Context(ctx).Eval(js)
	if err != nil {
		return "", err
	}
	if res.Value.Nil() {
		return "", nil
	}
	return res.Value.Str(), nil
}

type rodElement struct {
	el *rod.Element
}

func (e rodElement) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e rodElement) Fill(ctx context.Context, text string) error {
	el := e.el.Context(ctx)
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(text)
}

func (e rodElement) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}
