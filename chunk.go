package depot

// Chunk is the columnar storage of one archetype. Row i of every column belongs to
// entities[i]; rows [0, Len()) are live.
type Chunk struct {
	archetype *archetype
	entities  []Entity
	columns   [][]any
}

func newChunk(a *archetype) *Chunk {
	return &Chunk{
		archetype: a,
		columns:   make([][]any, len(a.components)),
	}
}

func (c *Chunk) Archetype() Archetype {
	return c.archetype
}

func (c *Chunk) Len() int {
	return len(c.entities)
}

// Entity returns the entity stored at row. The row is not bounds checked beyond the slice.
func (c *Chunk) Entity(row int) Entity {
	return c.entities[row]
}

func (c *Chunk) Has(name Component) bool {
	return c.archetype.Contains(name)
}

// Get reads the value of name at row. Rows are not validated; a name the archetype lacks
// reads as nil.
func (c *Chunk) Get(row int, name Component) any {
	col, ok := c.archetype.columns[name]
	if !ok {
		return nil
	}
	return c.columns[col][row]
}

// Set overwrites the value of name at row. A name the archetype lacks is ignored.
func (c *Chunk) Set(row int, name Component, value any) {
	col, ok := c.archetype.columns[name]
	if !ok {
		return
	}
	c.columns[col][row] = value
}

func (c *Chunk) getColumn(col, row int) any {
	return c.columns[col][row]
}

func (c *Chunk) setColumn(col, row int, value any) {
	c.columns[col][row] = value
}

// add appends a row for e; columns missing from values are left nil
func (c *Chunk) add(e Entity, values ComponentValues) int {
	row := len(c.entities)
	c.entities = append(c.entities, e)
	for col, name := range c.archetype.components {
		c.columns[col] = append(c.columns[col], values[name])
	}
	return row
}

// clone appends a row for e holding a copy of the values at row
func (c *Chunk) clone(row int, e Entity) int {
	dest := len(c.entities)
	c.entities = append(c.entities, e)
	for col := range c.columns {
		c.columns[col] = append(c.columns[col], c.columns[col][row])
	}
	return dest
}

// remove swaps the last row into row and shrinks the chunk by one. It returns the entity
// that now occupies row, which is the removed entity itself when row was last.
func (c *Chunk) remove(row int) Entity {
	last := len(c.entities) - 1
	moved := c.entities[last]

	c.entities[row] = moved
	c.entities[last] = Entity{}
	c.entities = c.entities[:last]

	for col := range c.columns {
		column := c.columns[col]
		column[row] = column[last]
		column[last] = nil
		c.columns[col] = column[:last]
	}
	return moved
}

// copyTo appends a row for e to other, copying only the columns both archetypes share.
// Columns unique to other are left nil.
func (c *Chunk) copyTo(row int, other *Chunk, e Entity) int {
	dest := len(other.entities)
	other.entities = append(other.entities, e)
	for col, name := range other.archetype.components {
		var value any
		if src, ok := c.archetype.columns[name]; ok {
			value = c.columns[src][row]
		}
		other.columns[col] = append(other.columns[col], value)
	}
	return dest
}

func (c *Chunk) clear() {
	clear(c.entities)
	c.entities = c.entities[:0]
	for col := range c.columns {
		clear(c.columns[col])
		c.columns[col] = c.columns[col][:0]
	}
}
