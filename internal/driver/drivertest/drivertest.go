// Package drivertest provides a scriptable in-memory driver.Driver.
package drivertest

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/driver"
)

// Element is a fake node. It matches a Query whose selector contains
// Selector and whose text pattern, if any, matches Label.
type Element struct {
	Selector string
	Label    string
	Hidden   bool
	OnClick  func()

	mu     sync.Mutex
	clicks int
	filled string
}

func (e *Element) Click(ctx context.Context) error {
	e.mu.Lock()
	e.clicks++
	fn := e.OnClick
	e.mu.Unlock()
	if fn != nil {
		fn()
	}
	return nil
}

func (e *Element) Fill(ctx context.Context, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filled = text
	return nil
}

func (e *Element) Text(ctx context.Context) (string, error) {
	return e.Label, nil
}

func (e *Element) Clicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clicks
}

func (e *Element) Filled() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filled
}

func (e *Element) matches(q driver.Query) bool {
	if e.Hidden || !strings.Contains(q.Selector, e.Selector) {
		return false
	}
	if q.Text == "" {
		return true
	}
	re, err := regexp.Compile("(?i)" + q.Text)
	return err == nil && re.MatchString(e.Label)
}

// Document is a fake page or frame.
type Document struct {
	mu       sync.Mutex
	elements []*Element
	body     string
	eval     func(js string) (string, error)
}

func NewDocument() *Document {
	return &Document{}
}

// Add registers elements and returns the first one for convenience.
func (d *Document) Add(els ...*Element) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements = append(d.elements, els...)
	if len(els) == 0 {
		return nil
	}
	return els[0]
}

// Remove drops every element whose Selector equals selector.
func (d *Document) Remove(selector string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	kept := d.elements[:0]
	for _, e := range d.elements {
		if e.Selector != selector {
			kept = append(kept, e)
		}
	}
	d.elements = kept
}

func (d *Document) SetBody(text string) {
	d.mu.Lock()
	d.body = text
	d.mu.Unlock()
}

// SetEval installs the script handler. Without one, Eval returns "".
func (d *Document) SetEval(fn func(js string) (string, error)) {
	d.mu.Lock()
	d.eval = fn
	d.mu.Unlock()
}

func (d *Document) Find(ctx context.Context, q driver.Query) (driver.Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range d.elements {
		if e.matches(q) {
			return e, nil
		}
	}
	return nil, driver.ErrNotFound
}

func (d *Document) BodyText(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.body, nil
}

func (d *Document) Eval(ctx context.Context, js string) (string, error) {
	d.mu.Lock()
	fn := d.eval
	d.mu.Unlock()
	if fn == nil {
		return "", nil
	}
	return fn(js)
}

// Driver is a fake browsing session built around a main Document.
type Driver struct {
	*Document

	NavigateErr error
	OnKey       func(key rune)

	mu        sync.Mutex
	frames    []*Document
	navigated []string
	keys      []rune
	shots     []string
	closed    bool
}

func NewDriver() *Driver {
	return &Driver{Document: NewDocument()}
}

func (d *Driver) AddFrame(doc *Document) {
	d.mu.Lock()
	d.frames = append(d.frames, doc)
	d.mu.Unlock()
}

func (d *Driver) Navigate(ctx context.Context, url string) error {
	d.mu.Lock()
	d.navigated = append(d.navigated, url)
	d.mu.Unlock()
	return d.NavigateErr
}

func (d *Driver) WaitIdle(ctx context.Context, timeout time.Duration) error {
	return ctx.Err()
}

func (d *Driver) Frames(ctx context.Context) ([]driver.Document, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	docs := make([]driver.Document, len(d.frames))
	for i, f := range d.frames {
		docs[i] = f
	}
	return docs, nil
}

func (d *Driver) PressKey(ctx context.Context, key rune) error {
	d.mu.Lock()
	d.keys = append(d.keys, key)
	fn := d.OnKey
	d.mu.Unlock()
	if fn != nil {
		fn(key)
	}
	return nil
}

func (d *Driver) Screenshot(ctx context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shots = append(d.shots, path)
	return nil
}

func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errors.New("driver already closed")
	}
	d.closed = true
	return nil
}

func (d *Driver) Navigated() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.navigated...)
}

func (d *Driver) Keys() []rune {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]rune(nil), d.keys...)
}

func (d *Driver) Screenshots() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.shots...)
}

func (d *Driver) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Factory hands out drivers built by New and counts how many were opened.
type Factory struct {
	New func() *Driver
	Err error

	mu     sync.Mutex
	opened []*Driver
}

func (f *Factory) Open(ctx context.Context) (driver.Driver, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	var d *Driver
	if f.New != nil {
		d = f.New()
	} else {
		d = NewDriver()
	}
	f.mu.Lock()
	f.opened = append(f.opened, d)
	f.mu.Unlock()
	return d, nil
}

func (f *Factory) Opened() []*Driver {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Driver(nil), f.opened...)
}
