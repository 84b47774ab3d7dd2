package depot

// Component names a data field an entity may carry. Entities sharing the same set of
// component names are stored together in one archetype chunk.
type Component string

// Resource names a global singleton value held by the engine
type Resource string

// ComponentValues maps component names to the values an entity stores under them
type ComponentValues map[Component]any
