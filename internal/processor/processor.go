package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/caption"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

// Process drives one session: open a browser, join, capture until the end,
// then parse, export and deliver. The browser never outlives this call.
func (p *implProcessor) Process(ctx context.Context, s *meeting.Session) error {
	ctx = logger.WithSession(ctx, s.ID)
	startTime := p.now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting session %s: %s", s.ID, s.MeetURL)
	p.logger.Info(ctx, "========================================")

	// Step 1: Open an isolated browser
	d, err := p.deps.Drivers.Open(ctx)
	if err != nil {
		return p.fail(ctx, s, fmt.Errorf("open browser: %w", err))
	}
	defer p.closeDriver(ctx, d)

	// Step 2: Join the meeting and switch captions on
	if err := p.deps.Joiner.Join(ctx, d, s.ID, s.MeetURL); err != nil {
		return p.fail(ctx, s, fmt.Errorf("join: %w", err))
	}
	s.MarkInProgress()

	// Step 3: Capture until the end time or a stop
	res := p.deps.Capturer.Capture(ctx, d, s)

	// Step 4: Hang up before teardown
	p.deps.Joiner.Leave(ctx, d)

	// Step 5: Segment the caption buffer
	entries := caption.Parse(res.Text, p.now())
	s.Append(entries...)
	status := s.Finish(p.now())
	p.logger.Info(ctx, "Session %s: %d entries parsed from %d chars", status, len(entries), len(res.Text))

	// Step 6: Summarize when configured
	p.summarize(ctx, s)

	// Step 7: Export
	snap := s.Snapshot()
	exportPath, err := p.deps.Exporter.Export(ctx, snap)
	if err != nil {
		p.logger.Warn(ctx, "Failed to export transcript: %v", err)
	}

	// Step 8: Deliver
	p.deps.Dispatcher.Deliver(ctx, snap, exportPath)

	duration := time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Session finished: %s", status)
	p.logger.Info(ctx, "Transcript: %s", exportPath)
	p.logger.Info(ctx, "Duration: %s", duration)
	p.logger.Info(ctx, "========================================")

	return nil
}

func (p *implProcessor) summarize(ctx context.Context, s *meeting.Session) {
	if p.deps.Summarizer == nil || !p.deps.Summarizer.Enabled() {
		return
	}
	entries := caption.MergeConsecutiveSpeakers(s.Snapshot().Transcript)
	if len(entries) == 0 {
		return
	}
	summary, err := p.deps.Summarizer.Summarize(ctx, entries)
	if err != nil {
		p.logger.Warn(ctx, "Failed to summarize transcript: %v", err)
		return
	}
	s.SetSummary(summary)
}

// fail records err on the session and sends the failure callback.
func (p *implProcessor) fail(ctx context.Context, s *meeting.Session, err error) error {
	s.Fail(p.now(), err)
	p.logger.Error(ctx, "Session failed: %v", err)
	p.deps.Dispatcher.DeliverFailure(ctx, s.Snapshot())
	return err
}
