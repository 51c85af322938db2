package scheduler

import "github.com/nguyentantai21042004/meetscribe/internal/meeting"

// history keeps the last n finished snapshots in insertion order.
type history struct {
	limit int
	order []string
	items map[string]meeting.Snapshot
}

func newHistory(limit int) *history {
	return &history{limit: limit, items: make(map[string]meeting.Snapshot)}
}

func (h *history) put(snap meeting.Snapshot) {
	if _, ok := h.items[snap.ID]; !ok {
		h.order = append(h.order, snap.ID)
	}
	h.items[snap.ID] = snap
	for len(h.order) > h.limit {
		delete(h.items, h.order[0])
		h.order = h.order[1:]
	}
}

func (h *history) get(id string) (meeting.Snapshot, bool) {
	snap, ok := h.items[id]
	return snap, ok
}
