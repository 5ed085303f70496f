package slice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string
	Value int
}

func (i item) EntityID() string { return i.ID }

func TestSlice_UpsertReplacesOrAppendsAndSelects(t *testing.T) {
	s := New[item]()
	s.Replace([]item{{ID: "a", Value: 1}})

	s.Upsert(item{ID: "a", Value: 2})
	s.Upsert(item{ID: "b", Value: 3})

	assert.Equal(t, []item{{ID: "a", Value: 2}, {ID: "b", Value: 3}}, s.Items())
	selected, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", selected.ID)
}

func TestSlice_PutMutateRemove(t *testing.T) {
	s := New[item]()
	s.Replace([]item{{ID: "a"}, {ID: "b"}})

	assert.True(t, s.Put(item{ID: "b", Value: 9}))
	assert.False(t, s.Put(item{ID: "zz"}))

	assert.True(t, s.Mutate("a", func(i *item) { i.Value = 7 }))
	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 7, got.Value)

	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))
	assert.Equal(t, []item{{ID: "b", Value: 9}}, s.Items())
}

func TestSlice_RemoveClearsSelection(t *testing.T) {
	s := New[item]()
	s.Upsert(item{ID: "a"})

	s.Remove("a")

	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestSlice_StatusTracksOverlappingRequests(t *testing.T) {
	s := New[item]()

	s.Start()
	s.Start()
	assert.True(t, s.Status().Loading)

	s.Finish(nil)
	assert.True(t, s.Status().Loading)

	s.Finish(errors.New("boom"))
	assert.Equal(t, Status{Loading: false, Error: "boom"}, s.Status())

	s.Start()
	assert.Empty(t, s.Status().Error)
}

func TestSlice_ItemsIsACopy(t *testing.T) {
	s := New[item]()
	s.Replace([]item{{ID: "a"}})

	items := s.Items()
	items[0].Value = 100

	got, _ := s.Get("a")
	assert.Equal(t, 0, got.Value)
}
