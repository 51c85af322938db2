package meeting

import (
	"sync"
	"sync/atomic"
	"time"
)

// Session is one scheduled attempt to join a meeting and capture its captions.
// The identity fields are fixed at creation; everything else is guarded.
type Session struct {
	ID          string
	MeetURL     string
	CallbackURL string
	Start       time.Time
	End         time.Time

	mu          sync.RWMutex
	status      Status
	transcript  []Entry
	errMsg      string
	actualStart time.Time
	actualEnd   time.Time
	summary     string

	stop atomic.Bool
}

// Snapshot is an immutable view of a Session.
type Snapshot struct {
	ID          string    `json:"uuid"`
	MeetURL     string    `json:"meetUrl"`
	CallbackURL string    `json:"callbackUrl"`
	Status      Status    `json:"status"`
	Start       time.Time `json:"startTime"`
	End         time.Time `json:"endTime"`
	ActualStart time.Time `json:"actualStartTime,omitzero"`
	ActualEnd   time.Time `json:"actualEndTime,omitzero"`
	Transcript  []Entry   `json:"transcripts"`
	Summary     string    `json:"summary,omitempty"`
	Error       string    `json:"errorMessage,omitempty"`
}

// NewSession returns a session in SCHEDULED state.
func NewSession(id, meetURL, callbackURL string, start, end time.Time) *Session {
	return &Session{
		ID:          id,
		MeetURL:     meetURL,
		CallbackURL: callbackURL,
		Start:       start,
		End:         end,
		status:      StatusScheduled,
	}
}

func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Begin moves SCHEDULED to JOINING. It returns false when the session was
// already picked up or cancelled.
func (s *Session) Begin(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusScheduled {
		return false
	}
	s.status = StatusJoining
	s.actualStart = now
	return true
}

// MarkInProgress moves JOINING to IN_PROGRESS.
func (s *Session) MarkInProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusJoining {
		return false
	}
	s.status = StatusInProgress
	return true
}

// TryCancelScheduled cancels a session that has not started yet.
func (s *Session) TryCancelScheduled(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusScheduled {
		return false
	}
	s.status = StatusCancelled
	s.actualEnd = now
	return true
}

// RequestStop raises the stop flag observed by the capture loop.
func (s *Session) RequestStop() {
	s.stop.Store(true)
}

func (s *Session) StopRequested() bool {
	return s.stop.Load()
}

// Append adds entries to the transcript.
func (s *Session) Append(entries ...Entry) {
	if len(entries) == 0 {
		return
	}
	s.mu.Lock()
	s.transcript = append(s.transcript, entries...)
	s.mu.Unlock()
}

func (s *Session) SetSummary(summary string) {
	s.mu.Lock()
	s.summary = summary
	s.mu.Unlock()
}

// Finish ends a running session as COMPLETED, or CANCELLED when a stop was
// requested. Terminal sessions are left untouched.
func (s *Session) Finish(now time.Time) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return s.status
	}
	if s.stop.Load() {
		s.status = StatusCancelled
	} else {
		s.status = StatusCompleted
	}
	s.actualEnd = now
	return s.status
}

// Fail ends the session as FAILED and records the diagnostic.
func (s *Session) Fail(now time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return
	}
	s.status = StatusFailed
	if err != nil {
		s.errMsg = err.Error()
	}
	s.actualEnd = now
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transcript := make([]Entry, len(s.transcript))
	copy(transcript, s.transcript)

	return Snapshot{
		ID:          s.ID,
		MeetURL:     s.MeetURL,
		CallbackURL: s.CallbackURL,
		Status:      s.status,
		Start:       s.Start,
		End:         s.End,
		ActualStart: s.actualStart,
		ActualEnd:   s.actualEnd,
		Transcript:  transcript,
		Summary:     s.summary,
		Error:       s.errMsg,
	}
}
