package callback

import (
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/caption"
	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

// Payload is the document POSTed to the callback URL.
type Payload struct {
	UUID             string          `json:"uuid"`
	MeetURL          string          `json:"meetUrl"`
	Status           meeting.Status  `json:"status"`
	MeetingStartTime time.Time       `json:"meetingStartTime"`
	MeetingEndTime   time.Time       `json:"meetingEndTime"`
	ActualStartTime  time.Time       `json:"actualStartTime,omitzero"`
	ActualEndTime    time.Time       `json:"actualEndTime,omitzero"`
	Transcripts      []meeting.Entry `json:"transcripts"`
	TotalEntries     int             `json:"totalEntries"`
	ExportPath       string          `json:"exportPath,omitempty"`
	Summary          string          `json:"summary,omitempty"`
	ErrorMessage     string          `json:"errorMessage,omitempty"`
}

// NewPayload builds the success payload, merging consecutive speakers.
func NewPayload(snap meeting.Snapshot, exportPath string) Payload {
	entries := caption.MergeConsecutiveSpeakers(snap.Transcript)
	if entries == nil {
		entries = []meeting.Entry{}
	}
	return Payload{
		UUID:             snap.ID,
		MeetURL:          snap.MeetURL,
		Status:           snap.Status,
		MeetingStartTime: snap.Start,
		MeetingEndTime:   snap.End,
		ActualStartTime:  snap.ActualStart,
		ActualEndTime:    snap.ActualEnd,
		Transcripts:      entries,
		TotalEntries:     len(entries),
		ExportPath:       exportPath,
		Summary:          snap.Summary,
		ErrorMessage:     snap.Error,
	}
}

// NewFailurePayload builds the error variant. It carries no transcript.
func NewFailurePayload(snap meeting.Snapshot) Payload {
	return Payload{
		UUID:             snap.ID,
		MeetURL:          snap.MeetURL,
		Status:           meeting.StatusFailed,
		MeetingStartTime: snap.Start,
		MeetingEndTime:   snap.End,
		ActualStartTime:  snap.ActualStart,
		ActualEndTime:    snap.ActualEnd,
		Transcripts:      []meeting.Entry{},
		ErrorMessage:     snap.Error,
	}
}
