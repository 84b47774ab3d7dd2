package depot

import (
	"iter"
	"slices"
)

// EntityAccess walks the chunks matched by a query with a single reusable cursor
type EntityAccess struct {
	manager *EntityManager
	chunks  []*Chunk
	names   map[Component]int
	// columns[chunkPos][slot] is the column of bound name slot in that chunk, or -1
	columns [][]int
	cursor  cursor
}

var _ ComponentAccess = &cursor{}

type cursor struct {
	access   *EntityAccess
	chunkPos int
	rowPos   int
}

func newEntityAccess(manager *EntityManager, names []Component, chunks []*Chunk) *EntityAccess {
	a := &EntityAccess{
		manager: manager,
		names:   make(map[Component]int, len(names)),
	}
	for slot, name := range names {
		a.names[name] = slot
	}
	a.cursor.access = a
	a.bind(chunks)
	return a
}

// bind replaces the matched chunks and resolves every bound name against them
func (a *EntityAccess) bind(chunks []*Chunk) {
	a.chunks = chunks
	a.columns = make([][]int, len(chunks))
	for pos, chunk := range chunks {
		cols := make([]int, len(a.names))
		for name, slot := range a.names {
			col, ok := chunk.archetype.columns[name]
			if !ok {
				col = -1
			}
			cols[slot] = col
		}
		a.columns[pos] = cols
	}
	a.cursor.chunkPos = 0
	a.cursor.rowPos = 0
}

// Foreach calls fn once per live row of every matched chunk, in chunk order
func (a *EntityAccess) Foreach(fn func(ComponentAccess, Entity)) {
	for en, access := range a.All() {
		fn(access, en)
	}
}

// All is the range-over-func form of Foreach
func (a *EntityAccess) All() iter.Seq2[Entity, ComponentAccess] {
	return func(yield func(Entity, ComponentAccess) bool) {
		for chunkPos, chunk := range a.chunks {
			a.cursor.chunkPos = chunkPos
			for row := 0; row < chunk.Len(); row++ {
				a.cursor.rowPos = row
				if !yield(chunk.entities[row], &a.cursor) {
					return
				}
			}
		}
	}
}

// Count sums the live rows of the matched chunks
func (a *EntityAccess) Count() int {
	total := 0
	for _, chunk := range a.chunks {
		total += chunk.Len()
	}
	return total
}

func (a *EntityAccess) Chunks() []*Chunk {
	return slices.Clone(a.chunks)
}

// GetComponent reads a component through the entity's own record instead of the cursor
func (a *EntityAccess) GetComponent(e Entity, name Component) (any, bool) {
	return a.manager.GetComponent(e, name)
}

// SetComponent writes a component through the entity's own record. Adding a component
// the entity lacks migrates it, so inside a walk prefer Commands for that case.
func (a *EntityAccess) SetComponent(e Entity, name Component, value any) error {
	return a.manager.SetComponent(e, name, value)
}

func (c *cursor) Entity() Entity {
	return c.access.chunks[c.chunkPos].entities[c.rowPos]
}

func (c *cursor) Get(name Component) any {
	value, _ := c.Lookup(name)
	return value
}

func (c *cursor) Lookup(name Component) (any, bool) {
	col, ok := c.column(name)
	if !ok {
		return nil, false
	}
	return c.access.chunks[c.chunkPos].getColumn(col, c.rowPos), true
}

// Set writes name on the current row. It reports false when name is not bound or the
// current chunk does not store it.
func (c *cursor) Set(name Component, value any) bool {
	col, ok := c.column(name)
	if !ok {
		return false
	}
	c.access.chunks[c.chunkPos].setColumn(col, c.rowPos, value)
	return true
}

func (c *cursor) column(name Component) (int, bool) {
	slot, ok := c.access.names[name]
	if !ok {
		return 0, false
	}
	col := c.access.columns[c.chunkPos][slot]
	return col, col >= 0
}
