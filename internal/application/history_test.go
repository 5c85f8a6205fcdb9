package application

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/entity"
)

func namedSnapshot(name string) entity.Snapshot {
	s := entity.DefaultSnapshot()
	s.Content.Hero.Name = name
	return s
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory(namedSnapshot("0"), 10)
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	h.Record(namedSnapshot("1"))
	h.Record(namedSnapshot("2"))

	s, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "1", s.Content.Hero.Name)
	s, ok = h.Undo()
	require.True(t, ok)
	assert.Equal(t, "0", s.Content.Hero.Name)
	_, ok = h.Undo()
	assert.False(t, ok)

	s, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, "1", s.Content.Hero.Name)
	assert.True(t, h.CanRedo())
}

func TestHistoryRecordDropsRedoBranch(t *testing.T) {
	h := NewHistory(namedSnapshot("0"), 10)
	h.Record(namedSnapshot("1"))
	h.Record(namedSnapshot("2"))
	h.Undo()

	h.Record(namedSnapshot("x"))
	assert.False(t, h.CanRedo())
	assert.Equal(t, 3, h.Len())

	s, _ := h.Undo()
	assert.Equal(t, "1", s.Content.Hero.Name)
}

func TestHistoryCapDropsOldest(t *testing.T) {
	h := NewHistory(namedSnapshot("0"), 3)
	for i := 1; i <= 5; i++ {
		h.Record(namedSnapshot(strconv.Itoa(i)))
	}
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Position())

	var names []string
	for h.CanUndo() {
		s, _ := h.Undo()
		names = append(names, s.Content.Hero.Name)
	}
	assert.Equal(t, []string{"4", "3"}, names)
}

func TestHistoryMinimumLimit(t *testing.T) {
	h := NewHistory(namedSnapshot("0"), 0)
	assert.Equal(t, 2, h.Limit())
	h.Record(namedSnapshot("1"))
	assert.True(t, h.CanUndo())
}

func TestHistoryEntriesAreCopies(t *testing.T) {
	snap := namedSnapshot("0")
	h := NewHistory(snap, 5)
	snap.Content.About.Skills[0].Name = "mutated"

	h.Record(namedSnapshot("1"))
	s, _ := h.Undo()
	assert.NotEqual(t, "mutated", s.Content.About.Skills[0].Name)
	s.Content.About.Skills[0].Name = "again"

	h.Redo()
	s2, _ := h.Undo()
	assert.NotEqual(t, "again", s2.Content.About.Skills[0].Name)
}

func TestHistoryReset(t *testing.T) {
	h := NewHistory(namedSnapshot("0"), 5)
	h.Record(namedSnapshot("1"))
	h.Reset(namedSnapshot("r"))
	assert.Equal(t, 1, h.Len())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}
