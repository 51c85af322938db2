package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

func (s *implScheduler) Schedule(req meeting.Request) (meeting.Snapshot, error) {
	now := s.now()
	start, end, err := req.Window(now, s.cfg.Grace)
	if err != nil {
		return meeting.Snapshot{}, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return meeting.Snapshot{}, ErrShuttingDown
	}
	if _, ok := s.active[req.UUID]; ok {
		s.mu.Unlock()
		return meeting.Snapshot{}, fmt.Errorf("%w: session %s is already active", meeting.ErrConflict, req.UUID)
	}

	e := &entry{session: meeting.NewSession(req.UUID, req.MeetURL, req.CallbackURL, start, end)}
	s.active[req.UUID] = e
	delay := start.Sub(now)
	if delay > 0 {
		e.timer = time.AfterFunc(delay, func() { s.trigger(e) })
	}
	snap := e.session.Snapshot()
	s.mu.Unlock()

	ctx := logger.WithSession(context.Background(), req.UUID)
	s.logger.Info(ctx, "Scheduled %s at %s (in %s), ends %s", req.MeetURL, start.Format(time.RFC3339), delay.Round(time.Second), end.Format(time.RFC3339))

	if delay <= 0 {
		s.trigger(e)
	}
	return snap, nil
}

// trigger hands e to a worker. Workers queue on the semaphore, so a full
// pool delays sessions instead of rejecting them.
func (s *implScheduler) trigger(e *entry) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go s.run(e)
}

func (s *implScheduler) run(e *entry) {
	defer s.wg.Done()
	defer s.retire(e)

	ctx := logger.WithSession(s.ctx, e.session.ID)
	if err := s.sem.Acquire(s.ctx, 1); err != nil {
		e.session.TryCancelScheduled(s.now())
		return
	}
	defer s.sem.Release(1)

	if !e.session.Begin(s.now()) {
		s.logger.Debug(ctx, "Session no longer scheduled (%s), skipping", e.session.Status())
		return
	}
	if err := s.runner.Process(s.ctx, e.session); err != nil {
		s.logger.Warn(ctx, "Session ended with error: %v", err)
	}
}

// retire removes e from the registry unless the id was reused since.
func (s *implScheduler) retire(e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.active[e.session.ID]; ok && cur == e {
		delete(s.active, e.session.ID)
	}
	s.finished.put(e.session.Snapshot())
}

func (s *implScheduler) Cancel(id string) bool {
	s.mu.Lock()
	e, ok := s.active[id]
	if !ok {
		s.mu.Unlock()
		return false
	}

	ctx := logger.WithSession(context.Background(), id)
	if e.session.TryCancelScheduled(s.now()) {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(s.active, id)
		s.finished.put(e.session.Snapshot())
		s.mu.Unlock()
		s.logger.Info(ctx, "Cancelled before start")
		return true
	}
	if e.session.Status().Terminal() {
		s.mu.Unlock()
		return false
	}
	e.session.RequestStop()
	s.mu.Unlock()

	s.logger.Info(ctx, "Stop requested while %s", e.session.Status())
	return true
}

func (s *implScheduler) Status(id string) (meeting.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.active[id]; ok {
		return e.session.Snapshot(), true
	}
	return s.finished.get(id)
}

func (s *implScheduler) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

func (s *implScheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	pending, running := 0, 0
	for id, e := range s.active {
		if e.timer != nil {
			e.timer.Stop()
		}
		if e.session.TryCancelScheduled(s.now()) {
			delete(s.active, id)
			s.finished.put(e.session.Snapshot())
			pending++
			continue
		}
		e.session.RequestStop()
		running++
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "Shutting down: %d pending cancelled, %d running asked to stop", pending, running)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancel()
		return nil
	case <-ctx.Done():
		s.logger.Warn(ctx, "Shutdown deadline reached, aborting running sessions")
		s.cancel()
		<-done
		return ctx.Err()
	}
}
