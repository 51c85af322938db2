package caption

import "github.com/nguyentantai21042004/meetscribe/internal/meeting"

// MergeConsecutiveSpeakers joins runs of entries by the same speaker into one
// entry, keeping the first timestamp. The input is not modified.
func MergeConsecutiveSpeakers(entries []meeting.Entry) []meeting.Entry {
	if len(entries) <= 1 {
		return append([]meeting.Entry(nil), entries...)
	}

	merged := make([]meeting.Entry, 0, len(entries))
	current := entries[0]
	for _, e := range entries[1:] {
		if e.Speaker == current.Speaker {
			current.Text = current.Text + " " + e.Text
			continue
		}
		merged = append(merged, current)
		current = e
	}
	return append(merged, current)
}
