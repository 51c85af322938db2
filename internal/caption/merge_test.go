package caption

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

func TestMergeConsecutiveSpeakers(t *testing.T) {
	t0 := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Second)
	t2 := t0.Add(2 * time.Second)

	in := []meeting.Entry{
		{Speaker: "A", Text: "one", Timestamp: t0},
		{Speaker: "A", Text: "two", Timestamp: t1},
		{Speaker: "B", Text: "three", Timestamp: t2},
		{Speaker: "A", Text: "four", Timestamp: t2},
	}
	want := []meeting.Entry{
		{Speaker: "A", Text: "one two", Timestamp: t0},
		{Speaker: "B", Text: "three", Timestamp: t2},
		{Speaker: "A", Text: "four", Timestamp: t2},
	}

	got := MergeConsecutiveSpeakers(in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeConsecutiveSpeakers() mismatch (-want +got):\n%s", diff)
	}
	if in[0].Text != "one" {
		t.Errorf("input was modified: %q", in[0].Text)
	}

	again := MergeConsecutiveSpeakers(got)
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("merge is not idempotent (-once +twice):\n%s", diff)
	}
}

func TestMergeConsecutiveSpeakersTrivial(t *testing.T) {
	if got := MergeConsecutiveSpeakers(nil); len(got) != 0 {
		t.Errorf("MergeConsecutiveSpeakers(nil) = %v", got)
	}

	single := []meeting.Entry{{Speaker: "A", Text: "solo"}}
	if diff := cmp.Diff(single, MergeConsecutiveSpeakers(single)); diff != "" {
		t.Errorf("single entry changed:\n%s", diff)
	}
}
