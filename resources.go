package depot

// ResourceAs reads a resource and asserts it to T
func ResourceAs[T any](r ResourceReader, name Resource) (T, bool) {
	value, ok := r.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := value.(T)
	return typed, ok
}

var _ ResourceStore = &resourceStore{}

// resourceStore keeps values densely packed and indexed by name. Every Add and Remove
// marks the name pending until the engine consumes the change set.
type resourceStore struct {
	items       []any
	names       []Resource
	itemIndices map[Resource]int
	pending     map[Resource]struct{}
}

func newResourceStore() *resourceStore {
	return &resourceStore{
		itemIndices: make(map[Resource]int),
		pending:     make(map[Resource]struct{}),
	}
}

func (s *resourceStore) Add(name Resource, value any) {
	if idx, ok := s.itemIndices[name]; ok {
		s.items[idx] = value
	} else {
		s.itemIndices[name] = len(s.items)
		s.items = append(s.items, value)
		s.names = append(s.names, name)
	}
	s.pending[name] = struct{}{}
}

func (s *resourceStore) Get(name Resource) (any, bool) {
	idx, ok := s.itemIndices[name]
	if !ok {
		return nil, false
	}
	return s.items[idx], true
}

func (s *resourceStore) Has(name Resource) bool {
	_, ok := s.itemIndices[name]
	return ok
}

func (s *resourceStore) Remove(name Resource) {
	idx, ok := s.itemIndices[name]
	if !ok {
		return
	}
	last := len(s.items) - 1
	s.items[idx] = s.items[last]
	s.names[idx] = s.names[last]
	s.itemIndices[s.names[idx]] = idx

	s.items[last] = nil
	s.items = s.items[:last]
	s.names = s.names[:last]
	delete(s.itemIndices, name)

	s.pending[name] = struct{}{}
}

func (s *resourceStore) hasUpdates() bool {
	return len(s.pending) > 0
}

func (s *resourceStore) updated() map[Resource]struct{} {
	return s.pending
}

func (s *resourceStore) handleUpdates() {
	clear(s.pending)
}

// Resources is the view of the resources one query names. Names without a value are
// left out, so Count reports how many of them are currently available.
type Resources struct {
	values map[Resource]any
}

var _ ResourceReader = &Resources{}

func newResources(store *resourceStore, names []Resource) *Resources {
	r := &Resources{}
	r.rebuild(store, names)
	return r
}

func (r *Resources) rebuild(store *resourceStore, names []Resource) {
	r.values = make(map[Resource]any, len(names))
	for _, name := range names {
		if value, ok := store.Get(name); ok && value != nil {
			r.values[name] = value
		}
	}
}

func (r *Resources) Get(name Resource) (any, bool) {
	value, ok := r.values[name]
	return value, ok
}

func (r *Resources) Count() int {
	return len(r.values)
}
