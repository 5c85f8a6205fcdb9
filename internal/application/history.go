package application

import "github.com/oksasatya/go-portfolio-builder/internal/domain/entity"

// DefaultHistoryLimit covers a long editing session; older entries are
// dropped first.
const DefaultHistoryLimit = 100

// History is a linear undo/redo timeline of snapshots. pos always points at
// the snapshot that matches the live state.
type History struct {
	entries []entity.Snapshot
	pos     int
	limit   int
}

// NewHistory starts a timeline holding only initial. A limit below 2 is
// raised to 2 so a single step can always be undone.
func NewHistory(initial entity.Snapshot, limit int) *History {
	if limit < 2 {
		limit = 2
	}
	h := &History{limit: limit}
	h.Reset(initial)
	return h
}

// Record drops any redo branch, appends snap and moves to it.
func (h *History) Record(snap entity.Snapshot) {
	h.entries = append(h.entries[:h.pos+1], snap.Clone())
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append([]entity.Snapshot(nil), h.entries[over:]...)
	}
	h.pos = len(h.entries) - 1
}

// Undo steps back one entry. ok is false when there is nothing to undo.
func (h *History) Undo() (snap entity.Snapshot, ok bool) {
	if !h.CanUndo() {
		return entity.Snapshot{}, false
	}
	h.pos--
	return h.entries[h.pos].Clone(), true
}

// Redo steps forward one entry. ok is false when there is nothing to redo.
func (h *History) Redo() (snap entity.Snapshot, ok bool) {
	if !h.CanRedo() {
		return entity.Snapshot{}, false
	}
	h.pos++
	return h.entries[h.pos].Clone(), true
}

func (h *History) CanUndo() bool { return h.pos > 0 }

func (h *History) CanRedo() bool { return h.pos < len(h.entries)-1 }

// Reset replaces the timeline with a single entry. Import and reset use it
// since they are not incremental edits.
func (h *History) Reset(snap entity.Snapshot) {
	h.entries = []entity.Snapshot{snap.Clone()}
	h.pos = 0
}

func (h *History) Len() int { return len(h.entries) }

func (h *History) Position() int { return h.pos }

func (h *History) Limit() int { return h.limit }
