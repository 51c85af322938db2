package caption

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

const (
	minNameLen   = 3
	maxNameLen   = 39
	maxNameWords = 4
)

var (
	reNameWord   = regexp.MustCompile(`^[A-Z][A-Za-z'\-]*$`)
	reInlineName = regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`)
)

// Parse splits an accumulated caption blob into speaker-attributed entries.
// All entries are stamped with now.
func Parse(raw string, now time.Time) []meeting.Entry {
	text := normalize(raw)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	names := nameLines(text)
	if len(names) == 0 {
		names = inlineNames(text)
	}
	if len(names) == 0 {
		blob := collapse(text)
		if IsNoise(blob) {
			return nil
		}
		return []meeting.Entry{meeting.NewEntry(meeting.UnknownSpeaker, blob, now)}
	}

	return splitOnNames(text, names, now)
}

func normalize(raw string) string {
	s := strings.ReplaceAll(raw, `\n`, "\n")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// nameLines collects bare-name lines. A name line must introduce content, so
// the last line never qualifies, and a line right after an accepted name is
// treated as speech.
func nameLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = collapse(l); l != "" {
			lines = append(lines, l)
		}
	}

	var names []string
	seen := map[string]bool{}
	prevWasName := false
	for i, line := range lines {
		if prevWasName || i == len(lines)-1 || !looksLikeName(line) {
			prevWasName = false
			continue
		}
		prevWasName = true
		key := strings.ToLower(line)
		if !seen[key] {
			seen[key] = true
			names = append(names, line)
		}
	}
	return names
}

func looksLikeName(line string) bool {
	if len(line) < minNameLen || len(line) > maxNameLen {
		return false
	}
	words := strings.Fields(line)
	if len(words) > maxNameWords {
		return false
	}
	for _, w := range words {
		if !reNameWord.MatchString(w) {
			return false
		}
	}
	return !IsNoise(line)
}

func inlineNames(text string) []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range reInlineName.FindAllString(collapse(text), -1) {
		key := strings.ToLower(m)
		if seen[key] || IsNoise(m) {
			continue
		}
		seen[key] = true
		names = append(names, m)
	}
	return names
}

func splitOnNames(text string, names []string, now time.Time) []meeting.Entry {
	// Longer names first so "Jane Smith" wins over a shorter overlapping candidate.
	sorted := append([]string(nil), names...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	alts := make([]string, len(sorted))
	for i, n := range sorted {
		alts[i] = regexp.QuoteMeta(n)
	}
	re := regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)

	var entries []meeting.Entry
	speaker := meeting.UnknownSpeaker
	emit := func(span string) {
		span = collapse(span)
		if span == "" || IsNoise(span) {
			return
		}
		entries = append(entries, meeting.NewEntry(speaker, span, now))
	}

	pos := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		emit(text[pos:loc[0]])
		speaker = titleCase(text[loc[0]:loc[1]])
		pos = loc[1]
	}
	emit(text[pos:])

	return entries
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
