package depot

import (
	"iter"
	"time"
)

type Archetype interface {
	ID() uint32
	Components() iter.Seq[Component]
	Contains(Component) bool
	Len() int
}

// ComponentAccess reads and writes the components of the row an EntityAccess walk is
// positioned on. It is only valid inside the callback or loop body it was handed to.
type ComponentAccess interface {
	Entity() Entity
	Get(name Component) any
	Lookup(name Component) (any, bool)
	Set(name Component, value any) bool
}

// Command is a deferred mutation replayed against an EntityManager
type Command interface {
	Playback(*EntityManager) error
}

// System is per-tick logic. Systems implementing Querier receive the cached result of
// their query; all others receive nil and run unconditionally.
type System interface {
	Run(*QueryResult)
}

type Querier interface {
	Query() *Query
}

// FrameClock delivers ticks to the engine. Timestamps passed to onTick are measured from
// the call to Start and must be delivered one at a time.
type FrameClock interface {
	Start(onTick func(timestamp time.Duration))
	Stop()
}

type ResourceReader interface {
	Get(name Resource) (any, bool)
}

// ResourceStore holds named global singletons
type ResourceStore interface {
	ResourceReader
	Add(name Resource, value any)
	Remove(name Resource)
	Has(name Resource) bool
}
