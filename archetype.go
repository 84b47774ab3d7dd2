package depot

import (
	"iter"
	"slices"

	"github.com/TheBitDrifter/mask"
)

type archetypeID uint32

// emptyArchetypeID is the zero-component archetype every manager starts with
const emptyArchetypeID archetypeID = 0

var _ Archetype = &archetype{}

type archetype struct {
	id         archetypeID
	signature  mask.Mask
	components []Component
	columns    map[Component]int
}

// archetypes is the grow-only registry, indexed by id and deduplicated by signature
type archetypes struct {
	asSlice          []*archetype
	idsGroupedByMask map[mask.Mask]archetypeID
}

func newArchetype(id archetypeID, signature mask.Mask, components ...Component) *archetype {
	sorted := slices.Clone(components)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	columns := make(map[Component]int, len(sorted))
	for i, c := range sorted {
		columns[c] = i
	}
	return &archetype{
		id:         id,
		signature:  signature,
		components: sorted,
		columns:    columns,
	}
}

func (a *archetype) ID() uint32 {
	return uint32(a.id)
}

// Components yields the archetype's component names in sorted order
func (a *archetype) Components() iter.Seq[Component] {
	return slices.Values(a.components)
}

func (a *archetype) Contains(c Component) bool {
	_, ok := a.columns[c]
	return ok
}

func (a *archetype) Len() int {
	return len(a.components)
}
