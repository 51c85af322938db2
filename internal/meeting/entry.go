package meeting

import "time"

// UnknownSpeaker is used when a caption span cannot be attributed.
const UnknownSpeaker = "Unknown"

// Entry is one speaker-attributed utterance.
type Entry struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntry builds an Entry, defaulting an empty speaker to UnknownSpeaker.
func NewEntry(speaker, text string, ts time.Time) Entry {
	if speaker == "" {
		speaker = UnknownSpeaker
	}
	return Entry{Speaker: speaker, Text: text, Timestamp: ts}
}
