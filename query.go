package depot

import (
	"slices"

	"github.com/TheBitDrifter/mask"
)

// Query declares which entities and resources a system reads.
//
// All and None gate which archetypes match. Any does not filter archetypes: it only adds
// names to the accessor bound by the resulting EntityAccess, so a query with only Any set
// matches every archetype. A query with All, Any and None empty matches no entities,
// which is how resource-only systems are declared.
type Query struct {
	All       []Component
	Any       []Component
	None      []Component
	Resources []Resource
}

// QueryResult is the cached resolution of a system's Query. The engine patches it in
// place, so a held pointer always reflects the latest binding.
type QueryResult struct {
	Resources *Resources
	Entities  *EntityAccess
}

// selectsEntities reports whether the query names any component at all
func (q *Query) selectsEntities() bool {
	return len(q.All) > 0 || len(q.Any) > 0 || len(q.None) > 0
}

// boundComponents returns All followed by Any without duplicates
func (q *Query) boundComponents() []Component {
	names := make([]Component, 0, len(q.All)+len(q.Any))
	for _, name := range slices.Concat(q.All, q.Any) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

func (q *Query) namesResource(names map[Resource]struct{}) bool {
	for _, res := range q.Resources {
		if _, ok := names[res]; ok {
			return true
		}
	}
	return false
}

// queryFilter is a Query compiled against the current schema
type queryFilter struct {
	all, none mask.Mask
	// unsatisfiable is set when an All component has never been registered, so no
	// archetype can hold it yet
	unsatisfiable bool
	empty         bool
}

func compileQuery(q *Query, s *schema) queryFilter {
	if !q.selectsEntities() {
		return queryFilter{empty: true}
	}
	all, known := s.knownSignature(q.All)
	none, _ := s.knownSignature(q.None)
	return queryFilter{
		all:           all,
		none:          none,
		unsatisfiable: !known,
	}
}

func (f queryFilter) Evaluate(a *archetype) bool {
	if f.empty || f.unsatisfiable {
		return false
	}
	if !a.signature.ContainsAll(f.all) {
		return false
	}
	// ContainsNone is false for an empty mask, so exclusion is tested as !ContainsAny
	return !a.signature.ContainsAny(f.none)
}
