package depot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceStore(t *testing.T) {
	store := newResourceStore()
	store.Add("a", 1)
	store.Add("b", 2)
	store.Add("c", 3)
	assert.True(t, store.hasUpdates())
	store.handleUpdates()
	assert.False(t, store.hasUpdates())

	store.Remove("a")
	assert.False(t, store.Has("a"))
	assert.Contains(t, store.updated(), Resource("a"))

	// the last value was swapped into the freed slot
	for name, want := range map[Resource]int{"b": 2, "c": 3} {
		got, ok := store.Get(name)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	store.Add("b", 20)
	got, _ := store.Get("b")
	assert.Equal(t, 20, got)
	assert.Len(t, store.items, 2)

	store.Remove("missing")
	assert.Len(t, store.items, 2)
}

func TestResourcesView(t *testing.T) {
	store := newResourceStore()
	store.Add("score", 10)
	store.Add("empty", nil)

	view := newResources(store, []Resource{"score", "empty", "absent"})
	assert.Equal(t, 1, view.Count())

	score, ok := ResourceAs[int](view, "score")
	assert.True(t, ok)
	assert.Equal(t, 10, score)

	_, ok = ResourceAs[string](view, "score")
	assert.False(t, ok, "wrong type must not assert")

	_, ok = ResourceAs[int](view, "absent")
	assert.False(t, ok)

	store.Add("absent", 1)
	view.rebuild(store, []Resource{"score", "empty", "absent"})
	assert.Equal(t, 2, view.Count())
}
