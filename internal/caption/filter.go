package caption

import (
	"regexp"
	"strings"
)

const (
	minTextLen = 2
	// MaxCaptionLen bounds a single probed caption surface.
	MaxCaptionLen = 800
)

// Labels and widgets the meeting UI renders near the caption surface.
var junkPhrases = []string{
	"BETA", "Font size", "Font color", "format_size", "arrow_downward",
	"Jump to bottom", "Open caption settings", "settings", "language",
	"Afrikaans", "Albanian", "Amharic", "Arabic",
	"Default", "Tiny", "Small", "Medium", "Large", "Huge", "Jumbo", "circle",
	"(South Africa)", "(Spain)", "(Brazil)", "(India)", "BETAChinese",
	"Press Down Arrow", "hover tray", "Escape to close", "Press Enter to",
	"Press Tab to", "Use arrow keys", "Screen reader", "keyboard shortcut",
	"Click to", "Tap to", "Swipe to", "Double-click", "Right-click",
	"participants", "participant", "in this call",
	"You're presenting", "Present now", "Stop presenting",
	"Turn on microphone", "Turn off microphone", "Turn on camera", "Turn off camera",
	"Leave call", "End call", "More options", "Activities",
	"raised hand", "raise hand", "lower hand", "Reactions",
	"Send a message", "Chat with everyone", "Open chat",
}

var (
	reClock       = regexp.MustCompile(`^\d{1,2}:\d{2}\s*(AM|PM|am|pm)?$`)
	reMeetingCode = regexp.MustCompile(`^[a-z]{3}-[a-z]{4}-[a-z]{3}$`)
)

// IsNoise reports whether text is UI chrome rather than speech.
func IsNoise(text string) bool {
	t := strings.TrimSpace(text)
	if len(t) < minTextLen {
		return true
	}
	if reClock.MatchString(t) || reMeetingCode.MatchString(t) {
		return true
	}
	for _, junk := range junkPhrases {
		if strings.Contains(t, junk) {
			return true
		}
	}
	return false
}

// IsCaption reports whether a probed text is a plausible caption surface.
func IsCaption(text string) bool {
	return !IsNoise(text) && len(strings.TrimSpace(text)) <= MaxCaptionLen
}
