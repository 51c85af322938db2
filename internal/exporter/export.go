package exporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/caption"
	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

const (
	ruleWidth  = 80
	timeLayout = "2006-01-02 15:04:05 MST"
)

func (e *implExporter) Export(ctx context.Context, snap meeting.Snapshot) (string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("create transcripts dir: %w", err)
	}

	now := e.now()
	base := fmt.Sprintf("transcript_%s_%s", sanitize(snap.ID), now.Format("20060102_150405"))
	entries := caption.MergeConsecutiveSpeakers(snap.Transcript)

	txtPath := filepath.Join(e.dir, base+".txt")
	content := renderText(snap, entries, now)
	if err := os.WriteFile(txtPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	e.logger.Info(ctx, "Transcript saved: %s (%d entries)", txtPath, len(entries))

	if e.docx {
		docxPath := filepath.Join(e.dir, base+".docx")
		if err := transcriptToDocx(snap, entries, docxPath); err != nil {
			e.logger.Warn(ctx, "Failed to write docx transcript: %v", err)
		} else {
			e.logger.Info(ctx, "Docx transcript saved: %s", docxPath)
		}
	}

	return txtPath, nil
}

type participant struct {
	name     string
	messages int
}

// participants lists speakers in order of first appearance.
func participants(entries []meeting.Entry) []participant {
	index := map[string]int{}
	var out []participant
	for _, e := range entries {
		i, ok := index[e.Speaker]
		if !ok {
			i = len(out)
			index[e.Speaker] = i
			out = append(out, participant{name: e.Speaker})
		}
		out[i].messages++
	}
	return out
}

func wordCount(entries []meeting.Entry) int {
	n := 0
	for _, e := range entries {
		n += len(strings.Fields(e.Text))
	}
	return n
}

func renderText(snap meeting.Snapshot, entries []meeting.Entry, now time.Time) string {
	var b strings.Builder
	rule := strings.Repeat("=", ruleWidth)

	b.WriteString(rule + "\n")
	b.WriteString(center("MEETING TRANSCRIPT") + "\n")
	b.WriteString(rule + "\n\n")

	b.WriteString("MEETING DETAILS\n")
	b.WriteString("---------------\n")
	fmt.Fprintf(&b, "Meeting ID:   %s\n", snap.ID)
	fmt.Fprintf(&b, "Meeting URL:  %s\n", snap.MeetURL)
	fmt.Fprintf(&b, "Status:       %s\n", snap.Status)
	fmt.Fprintf(&b, "Scheduled:    %s - %s\n", snap.Start.Format(timeLayout), snap.End.Format(timeLayout))
	if !snap.ActualStart.IsZero() {
		fmt.Fprintf(&b, "Actual:       %s - %s\n", snap.ActualStart.Format(timeLayout), formatOptional(snap.ActualEnd))
	}
	fmt.Fprintf(&b, "Generated:    %s\n\n", now.Format(timeLayout))

	people := participants(entries)
	fmt.Fprintf(&b, "PARTICIPANTS (%d)\n", len(people))
	b.WriteString("----------------\n")
	for _, p := range people {
		fmt.Fprintf(&b, "  - %s (%d messages)\n", p.name, p.messages)
	}
	b.WriteString("\n")

	b.WriteString("STATISTICS\n")
	b.WriteString("----------\n")
	fmt.Fprintf(&b, "Total messages: %d\n", len(entries))
	fmt.Fprintf(&b, "Total words:    %d\n\n", wordCount(entries))

	if snap.Summary != "" {
		b.WriteString("SUMMARY\n")
		b.WriteString("-------\n")
		b.WriteString(strings.TrimSpace(snap.Summary) + "\n\n")
	}

	b.WriteString("TRANSCRIPT\n")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n\n")
	if len(entries) == 0 {
		b.WriteString("(no captions were captured)\n\n")
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "[%s] %s:\n", e.Timestamp.Format("15:04:05"), strings.ToUpper(e.Speaker))
		fmt.Fprintf(&b, "    %s\n\n", e.Text)
	}

	b.WriteString(rule + "\n")
	b.WriteString(center("END OF TRANSCRIPT") + "\n")
	b.WriteString(rule + "\n")
	return b.String()
}

func center(s string) string {
	pad := (ruleWidth - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

func formatOptional(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(timeLayout)
}

func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, id)
}
