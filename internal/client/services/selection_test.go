package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/geotracker/internal/client/models"
)

func TestSelection_ToggleTwiceRestores(t *testing.T) {
	s := NewSelection()
	s.Toggle(1)
	before := s.IDs()

	for _, id := range []int64{1, 2, 3} {
		s.Toggle(id)
		s.Toggle(id)
		assert.Equal(t, before, s.IDs(), "id %d", id)
	}
}

func TestSelection_Basics(t *testing.T) {
	s := NewSelection()
	assert.Equal(t, 0, s.Size())

	assert.True(t, s.Toggle(5))
	assert.True(t, s.Toggle(2))
	assert.True(t, s.Has(5))
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, []int64{2, 5}, s.IDs())

	assert.False(t, s.Toggle(5))
	assert.False(t, s.Has(5))

	s.Clear()
	assert.Equal(t, 0, s.Size())
	assert.Empty(t, s.IDs())
}

func TestSelection_PresentIgnoresInertIDs(t *testing.T) {
	s := NewSelection()
	s.Toggle(1)
	s.Toggle(3)
	s.Toggle(9)

	entries := []models.HistoryEntry{{ID: 3}, {ID: 2}, {ID: 1}}
	assert.Equal(t, []int64{3, 1}, s.Present(entries))
	assert.Equal(t, 3, s.Size(), "reload must not prune the selection")
}
