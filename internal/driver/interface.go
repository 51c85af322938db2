package driver

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no visible element matches a Query.
var ErrNotFound = errors.New("element not found")

// Query locates an element by CSS selector, optionally narrowed to elements
// whose visible text matches Text (a case-insensitive regular expression).
type Query struct {
	Selector string
	Text     string
}

// Element is a located node in a rendered document.
type Element interface {
	Click(ctx context.Context) error
	Fill(ctx context.Context, text string) error
	Text(ctx context.Context) (string, error)
}

// Document is a script-capable rendered context: the page itself or an
// embedded frame.
type Document interface {
	// Find returns the first visible element matching q, or ErrNotFound.
	Find(ctx context.Context, q Query) (Element, error)
	// BodyText returns the document's rendered text.
	BodyText(ctx context.Context) (string, error)
	// Eval runs a function expression such as "() => ..." and returns its
	// result as a string. Scripts return JSON text for structured values.
	Eval(ctx context.Context, js string) (string, error)
}

// Driver is one scripted browsing session. It is not safe for concurrent use.
type Driver interface {
	Document
	Navigate(ctx context.Context, url string) error
	WaitIdle(ctx context.Context, timeout time.Duration) error
	Frames(ctx context.Context) ([]Document, error)
	PressKey(ctx context.Context, key rune) error
	Screenshot(ctx context.Context, path string) error
	Close() error
}

// Factory opens a fresh, isolated Driver.
type Factory interface {
	Open(ctx context.Context) (Driver, error)
}
