package caption

import (
	"strings"
	"testing"
)

func TestAccumulatorLongestWins(t *testing.T) {
	var acc Accumulator
	prev := 0
	for _, n := range []int{5, 12, 8, 20} {
		acc.Offer(strings.Repeat("x", n))
		if acc.Len() < prev {
			t.Fatalf("buffer shrank from %d to %d", prev, acc.Len())
		}
		prev = acc.Len()
	}
	if acc.Len() != 20 {
		t.Errorf("Len() = %d, want 20", acc.Len())
	}
	if acc.Observations() != 4 {
		t.Errorf("Observations() = %d, want 4", acc.Observations())
	}
}

func TestAccumulatorIgnoresBlank(t *testing.T) {
	var acc Accumulator
	if acc.Offer("   ") {
		t.Error("Offer() accepted blank text")
	}
	if !acc.Offer("hello") || acc.Text() != "hello" {
		t.Errorf("Text() = %q, want hello", acc.Text())
	}
	if !acc.Offer("world") {
		t.Error("Offer() should accept equal length text")
	}
}
