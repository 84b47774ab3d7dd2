package depot

import (
	"slices"
	"sync/atomic"
)

// SystemFunc adapts a function to a System without a query
type SystemFunc func(*QueryResult)

func (f SystemFunc) Run(result *QueryResult) {
	f(result)
}

type querySystem struct {
	query Query
	run   func(*QueryResult)
}

// NewSystem builds a System that runs fn with the result of q
func NewSystem(q Query, fn func(*QueryResult)) System {
	return &querySystem{query: q, run: fn}
}

func (s *querySystem) Query() *Query {
	return &s.query
}

func (s *querySystem) Run(result *QueryResult) {
	s.run(result)
}

// SystemID is the stable handle of a registered system
type SystemID uint64

var systemIDs atomic.Uint64

// RunCondition gates a whole SystemGroup on the current resources
type RunCondition func(ResourceReader) bool

type systemNode struct {
	id     SystemID
	system System
	query  *Query
}

func newSystemNode(system System) *systemNode {
	node := &systemNode{
		id:     SystemID(systemIDs.Add(1)),
		system: system,
	}
	if querier, ok := system.(Querier); ok {
		node.query = querier.Query()
	}
	return node
}

// SystemGroup bundles systems that run in registration order when canRun allows it
type SystemGroup struct {
	canRun  RunCondition
	systems []*systemNode
}

// NewSystemGroup creates a group gated by canRun; a nil condition always runs
func NewSystemGroup(canRun RunCondition, systems ...System) *SystemGroup {
	g := &SystemGroup{canRun: canRun}
	for _, system := range systems {
		g.Add(system)
	}
	return g
}

func (g *SystemGroup) Add(system System) SystemID {
	node := newSystemNode(system)
	g.systems = append(g.systems, node)
	return node.id
}

// Remove drops the system with the given id. The group's slice is replaced rather than
// edited, so a walk already in progress finishes over the old list.
func (g *SystemGroup) Remove(id SystemID) bool {
	idx := slices.IndexFunc(g.systems, func(n *systemNode) bool { return n.id == id })
	if idx < 0 {
		return false
	}
	g.systems = slices.Delete(slices.Clone(g.systems), idx, idx+1)
	return true
}

func (g *SystemGroup) IDs() []SystemID {
	ids := make([]SystemID, len(g.systems))
	for i, node := range g.systems {
		ids[i] = node.id
	}
	return ids
}

func (g *SystemGroup) Len() int {
	return len(g.systems)
}

func (g *SystemGroup) CanRun(resources ResourceReader) bool {
	return g.canRun == nil || g.canRun(resources)
}

// SystemManager keeps the groups of every schedule. Each schedule has an implicit default
// group holding plainly registered systems; it always runs first.
type SystemManager struct {
	groups   map[Schedule][]*SystemGroup
	defaults map[Schedule]*SystemGroup
	order    []Schedule
}

func newSystemManager() *SystemManager {
	return &SystemManager{
		groups:   make(map[Schedule][]*SystemGroup),
		defaults: make(map[Schedule]*SystemGroup),
	}
}

func (sm *SystemManager) Add(schedule Schedule, system System) SystemID {
	group, ok := sm.defaults[schedule]
	if !ok {
		group = NewSystemGroup(nil)
		sm.defaults[schedule] = group
		sm.track(schedule)
		sm.groups[schedule] = append([]*SystemGroup{group}, sm.groups[schedule]...)
	}
	return group.Add(system)
}

func (sm *SystemManager) AddGroup(schedule Schedule, group *SystemGroup) {
	sm.track(schedule)
	sm.groups[schedule] = append(sm.groups[schedule], group)
}

func (sm *SystemManager) Groups(schedule Schedule) []*SystemGroup {
	return sm.groups[schedule]
}

// All returns the groups of every schedule, schedules in first-registration order
func (sm *SystemManager) All() []*SystemGroup {
	var all []*SystemGroup
	for _, schedule := range sm.order {
		all = append(all, sm.groups[schedule]...)
	}
	return all
}

func (sm *SystemManager) DefaultGroup(schedule Schedule) (*SystemGroup, bool) {
	group, ok := sm.defaults[schedule]
	return group, ok
}

// Remove drops id from group when group is registered under schedule
func (sm *SystemManager) Remove(schedule Schedule, group *SystemGroup, id SystemID) bool {
	if !slices.Contains(sm.groups[schedule], group) {
		return false
	}
	return group.Remove(id)
}

// Clear deregisters every group of schedule, the default group included
func (sm *SystemManager) Clear(schedule Schedule) {
	delete(sm.groups, schedule)
	delete(sm.defaults, schedule)
}

func (sm *SystemManager) track(schedule Schedule) {
	if !slices.Contains(sm.order, schedule) {
		sm.order = append(sm.order, schedule)
	}
}
