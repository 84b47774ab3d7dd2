package depot

import (
	"maps"
	"slices"

	"github.com/TheBitDrifter/mask"
	iter_util "github.com/TheBitDrifter/util/iter"
	"go.uber.org/zap"
)

// EntityManager owns the entity slots, the archetype registry and one chunk per
// archetype. It is not safe for concurrent use.
type EntityManager struct {
	schema        *schema
	archetypes    *archetypes
	chunks        []*Chunk
	entities      []entityRecord
	free          []uint32
	count         int
	newArchetypes []archetypeID
}

func newEntityManager() *EntityManager {
	m := &EntityManager{
		schema: newSchema(),
		archetypes: &archetypes{
			idsGroupedByMask: make(map[mask.Mask]archetypeID),
		},
	}
	m.createArchetype(mask.Mask{})
	m.ClearNewArchetypes()
	return m
}

// Count returns the number of live entities
func (m *EntityManager) Count() int {
	return m.count
}

// Exists reports whether e refers to the entity currently occupying its slot
func (m *EntityManager) Exists(e Entity) bool {
	if int(e.Index) >= len(m.entities) {
		return false
	}
	rec := m.entities[e.Index]
	return rec.alive && rec.version == e.Version
}

func (m *EntityManager) SpawnEmpty() Entity {
	chunk := m.chunks[emptyArchetypeID]
	en := m.allocate()
	row := chunk.add(en, nil)
	m.place(en, emptyArchetypeID, row)
	return en
}

// SpawnFromEntity creates a new entity holding a copy of src's components
func (m *EntityManager) SpawnFromEntity(src Entity) (Entity, error) {
	if !m.Exists(src) {
		return Entity{}, InvalidEntityError{Entity: src}
	}
	rec := m.entities[src.Index]
	chunk := m.chunks[rec.chunk]

	en := m.allocate()
	row := chunk.clone(rec.row, en)
	m.place(en, rec.chunk, row)
	return en, nil
}

// SpawnFromComponents creates an entity whose archetype is the key set of values
func (m *EntityManager) SpawnFromComponents(values ComponentValues) (Entity, error) {
	chunk, err := m.chunkFor(slices.Collect(maps.Keys(values))...)
	if err != nil {
		return Entity{}, err
	}
	en := m.allocate()
	row := chunk.add(en, values)
	m.place(en, chunk.archetype.id, row)
	return en, nil
}

// AddComponent migrates e to the archetype extended by comps. Components already present
// are left untouched; new ones start out nil.
func (m *EntityManager) AddComponent(e Entity, comps ...Component) error {
	if !m.Exists(e) {
		return InvalidEntityError{Entity: e}
	}
	origin := m.chunks[m.entities[e.Index].chunk]

	missing := false
	for _, c := range comps {
		if !origin.Has(c) {
			missing = true
			break
		}
	}
	if !missing {
		return nil
	}

	dest, err := m.chunkFor(slices.Concat(origin.archetype.components, comps)...)
	if err != nil {
		return err
	}
	m.migrate(e, dest)
	return nil
}

// SetComponent stores value under comp, adding the component first when e lacks it
func (m *EntityManager) SetComponent(e Entity, comp Component, value any) error {
	if err := m.AddComponent(e, comp); err != nil {
		return err
	}
	rec := m.entities[e.Index]
	m.chunks[rec.chunk].Set(rec.row, comp, value)
	return nil
}

func (m *EntityManager) SetComponents(e Entity, values ComponentValues) error {
	if err := m.AddComponent(e, slices.Collect(maps.Keys(values))...); err != nil {
		return err
	}
	rec := m.entities[e.Index]
	chunk := m.chunks[rec.chunk]
	for comp, value := range values {
		chunk.Set(rec.row, comp, value)
	}
	return nil
}

// RemoveComponent migrates e to the archetype without comps. Names e does not hold are
// ignored; when it holds none of them nothing happens.
func (m *EntityManager) RemoveComponent(e Entity, comps ...Component) error {
	if !m.Exists(e) {
		return InvalidEntityError{Entity: e}
	}
	origin := m.chunks[m.entities[e.Index].chunk]

	remaining := make([]Component, 0, origin.archetype.Len())
	for _, c := range origin.archetype.components {
		if !slices.Contains(comps, c) {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == origin.archetype.Len() {
		return nil
	}

	dest, err := m.chunkFor(remaining...)
	if err != nil {
		return err
	}
	m.migrate(e, dest)
	return nil
}

func (m *EntityManager) HasComponent(e Entity, comp Component) (bool, error) {
	if !m.Exists(e) {
		return false, InvalidEntityError{Entity: e}
	}
	return m.chunks[m.entities[e.Index].chunk].Has(comp), nil
}

// GetComponent reads comp from e. A missing component, like an entity that no longer
// exists, reads as absent rather than failing.
func (m *EntityManager) GetComponent(e Entity, comp Component) (any, bool) {
	if !m.Exists(e) {
		return nil, false
	}
	rec := m.entities[e.Index]
	chunk := m.chunks[rec.chunk]
	if !chunk.Has(comp) {
		return nil, false
	}
	return chunk.Get(rec.row, comp), true
}

// GetArchetype returns the sorted component names of e
func (m *EntityManager) GetArchetype(e Entity) ([]Component, error) {
	if !m.Exists(e) {
		return nil, InvalidEntityError{Entity: e}
	}
	arch := m.chunks[m.entities[e.Index].chunk].archetype
	return iter_util.Collect(arch.Components()), nil
}

// DestroyEntity removes e and recycles its slot. It reports false when e is already gone.
func (m *EntityManager) DestroyEntity(e Entity) bool {
	if m.count == 0 || !m.Exists(e) {
		return false
	}
	rec := m.entities[e.Index]

	moved := m.chunks[rec.chunk].remove(rec.row)
	m.entities[moved.Index].row = rec.row

	m.entities[e.Index] = entityRecord{version: rec.version + 1}
	m.free = append(m.free, e.Index)
	m.count--
	return true
}

// Clear destroys every live entity. Archetypes and their chunks are kept for reuse.
func (m *EntityManager) Clear() {
	for _, chunk := range m.chunks {
		for _, en := range chunk.entities {
			m.entities[en.Index] = entityRecord{version: en.Version + 1}
			m.free = append(m.free, en.Index)
		}
		chunk.clear()
	}
	m.count = 0
}

// GetChunks returns the chunks whose archetype holds every All component and no None
// component
func (m *EntityManager) GetChunks(q Query) []*Chunk {
	filter := compileQuery(&q, m.schema)
	if filter.empty {
		return nil
	}
	var matched []*Chunk
	for _, arch := range m.archetypes.asSlice {
		if filter.Evaluate(arch) {
			matched = append(matched, m.chunks[arch.id])
		}
	}
	return matched
}

func (m *EntityManager) Archetypes() []Archetype {
	result := make([]Archetype, len(m.archetypes.asSlice))
	for i, arch := range m.archetypes.asSlice {
		result[i] = arch
	}
	return result
}

// NewArchetypes returns the archetypes created since the last ClearNewArchetypes
func (m *EntityManager) NewArchetypes() []Archetype {
	result := make([]Archetype, len(m.newArchetypes))
	for i, id := range m.newArchetypes {
		result[i] = m.archetypes.asSlice[id]
	}
	return result
}

func (m *EntityManager) ClearNewArchetypes() {
	m.newArchetypes = m.newArchetypes[:0]
}

// newArchetypesMatch reports whether any archetype created since the last clear satisfies q
func (m *EntityManager) newArchetypesMatch(q *Query) bool {
	if len(m.newArchetypes) == 0 {
		return false
	}
	filter := compileQuery(q, m.schema)
	for _, id := range m.newArchetypes {
		if filter.Evaluate(m.archetypes.asSlice[id]) {
			return true
		}
	}
	return false
}

func (m *EntityManager) allocate() Entity {
	m.count++
	if len(m.free) > 0 {
		index := m.free[0]
		m.free = m.free[1:]
		return Entity{Index: index, Version: m.entities[index].version}
	}
	index := uint32(len(m.entities))
	m.entities = append(m.entities, entityRecord{})
	return Entity{Index: index}
}

func (m *EntityManager) place(e Entity, chunk archetypeID, row int) {
	m.entities[e.Index] = entityRecord{
		version: e.Version,
		alive:   true,
		chunk:   chunk,
		row:     row,
	}
}

// migrate moves e into dest, copying the columns both chunks share, and repairs the record
// of whichever entity the swap-remove moved into e's old row
func (m *EntityManager) migrate(e Entity, dest *Chunk) {
	rec := m.entities[e.Index]
	origin := m.chunks[rec.chunk]

	row := origin.copyTo(rec.row, dest, e)
	moved := origin.remove(rec.row)
	m.entities[moved.Index].row = rec.row

	m.entities[e.Index].chunk = dest.archetype.id
	m.entities[e.Index].row = row
}

// chunkFor finds or creates the chunk of the archetype holding exactly components
func (m *EntityManager) chunkFor(components ...Component) (*Chunk, error) {
	signature, err := m.schema.signature(components...)
	if err != nil {
		return nil, err
	}
	if id, found := m.archetypes.idsGroupedByMask[signature]; found {
		return m.chunks[id], nil
	}
	return m.createArchetype(signature, components...), nil
}

func (m *EntityManager) createArchetype(signature mask.Mask, components ...Component) *Chunk {
	id := archetypeID(len(m.archetypes.asSlice))
	created := newArchetype(id, signature, components...)
	chunk := newChunk(created)

	m.archetypes.asSlice = append(m.archetypes.asSlice, created)
	m.archetypes.idsGroupedByMask[signature] = id
	m.chunks = append(m.chunks, chunk)
	m.newArchetypes = append(m.newArchetypes, id)

	Config.logger.Debug("archetype created",
		zap.Uint32("id", uint32(id)),
		zap.Any("components", created.components),
	)
	return chunk
}
