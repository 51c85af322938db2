package caption

import "strings"

// Accumulator keeps the longest caption text observed so far. The caption
// surface rolls rather than appends, so a longer observation is a superset of
// what came before while a turn continues.
type Accumulator struct {
	text string
	seen int
}

// Offer records an observation and reports whether it replaced the buffer.
func (a *Accumulator) Offer(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	a.seen++
	if len(text) < len(a.text) {
		return false
	}
	a.text = text
	return true
}

func (a *Accumulator) Text() string { return a.text }

func (a *Accumulator) Len() int { return len(a.text) }

// Observations returns how many non-empty texts were offered.
func (a *Accumulator) Observations() int { return a.seen }
