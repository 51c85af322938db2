package caption

import (
	"strings"
	"testing"
)

func TestIsCaption(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"speech", "we should ship on friday", true},
		{"too short", "a", false},
		{"clock", "7:19 PM", false},
		{"clock no suffix", "10:05", false},
		{"meeting code", "abc-defg-hij", false},
		{"ui label", "Turn off camera", false},
		{"language picker", "English (India)", false},
		{"settings", "Open caption settings", false},
		{"too long", strings.Repeat("word ", 200), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCaption(tt.text); got != tt.want {
				t.Errorf("IsCaption(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsNoiseAllowsLongSpeech(t *testing.T) {
	long := strings.Repeat("we talked about the roadmap ", 60)
	if IsNoise(long) {
		t.Errorf("IsNoise() rejected long speech")
	}
}
