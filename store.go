package depot

import "fmt"

// Revision counts structural changes (adds and removes) made to a store.
// It only ever grows.
type Revision uint64

var _ erasedStore = &Store[any]{}

// erasedStore is the kind-agnostic view of a Store used by the registry.
// The concrete Store[T] is recovered with a checked type assertion.
type erasedStore interface {
	Has(EntityID) bool
	Remove(EntityID) bool
	Len() int
	Owners() []EntityID
	Revision() Revision
	Kind() Kind
	addErased(EntityID, any) (bool, error)
	setHooks(storeHooks)
	validate() error
}

type storeHooks struct {
	onAdd    func(EntityID)
	onRemove func(EntityID)
}

// Store holds every component of a single kind. Values and their owners are
// kept in two parallel dense slices with a sparse id -> index map on the side.
//
// Iteration order of All and Owners is insertion order, reshuffled by every
// Remove; callers must not rely on it being sorted or stable.
type Store[T any] struct {
	kind     Kind
	values   []T
	owners   []EntityID
	index    map[EntityID]int
	revision Revision
	hooks    storeHooks
}

func newStore[T any](kind Kind, capacity int) *Store[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Store[T]{
		kind:   kind,
		values: make([]T, 0, capacity),
		owners: make([]EntityID, 0, capacity),
		index:  make(map[EntityID]int, capacity),
	}
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

// Add appends value for id. It is a no-op returning false if id already has a
// component in this store; the existing value is kept.
//
// Add does not check that id is alive. On a store owned by a Storage prefer
// AccessibleKind.Add; queries skip components held by dead ids.
func (s *Store[T]) Add(id EntityID, value T) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.values)
	s.values = append(s.values, value)
	s.owners = append(s.owners, id)
	s.revision++
	if s.hooks.onAdd != nil {
		s.hooks.onAdd(id)
	}
	return true
}

// Remove deletes id's component by moving the last dense element into its
// slot. Returns false if id had no component here.
func (s *Store[T]) Remove(id EntityID) bool {
	idx, ok := s.index[id]
	if !ok {
		return false
	}
	last := len(s.values) - 1
	moved := s.owners[last]

	s.values[idx] = s.values[last]
	s.owners[idx] = moved
	s.index[moved] = idx

	var zero T
	s.values[last] = zero
	s.values = s.values[:last]
	s.owners = s.owners[:last]
	// Must come after the moved entry is fixed: when id is the last element
	// moved == id and this erases it.
	delete(s.index, id)

	s.revision++
	if s.hooks.onRemove != nil {
		s.hooks.onRemove(id)
	}
	return true
}

// Get returns a pointer into the dense slice. It stays valid until the next
// Add or Remove on this store.
func (s *Store[T]) Get(id EntityID) (*T, bool) {
	idx, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.values[idx], true
}

// Value returns a copy of id's component.
func (s *Store[T]) Value(id EntityID) (T, bool) {
	idx, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.values[idx], true
}

// All returns the dense value slice. Writes through it are visible to the
// store; appending to it is not.
func (s *Store[T]) All() []T {
	return s.values
}

// Owners returns the dense owner slice, index-aligned with All.
func (s *Store[T]) Owners() []EntityID {
	return s.owners
}

func (s *Store[T]) Len() int {
	return len(s.values)
}

func (s *Store[T]) Revision() Revision {
	return s.revision
}

func (s *Store[T]) Kind() Kind {
	return s.kind
}

func (s *Store[T]) addErased(id EntityID, value any) (bool, error) {
	switch v := value.(type) {
	case T:
		return s.Add(id, v), nil
	case *T:
		if v != nil {
			return s.Add(id, *v), nil
		}
	}
	return false, ComponentTypeError{Kind: s.kind, Value: value}
}

func (s *Store[T]) setHooks(h storeHooks) {
	s.hooks = h
}

func (s *Store[T]) validate() error {
	if len(s.values) != len(s.owners) || len(s.owners) != len(s.index) {
		return fmt.Errorf("store size mismatch: values=%d owners=%d index=%d",
			len(s.values), len(s.owners), len(s.index))
	}
	for id, idx := range s.index {
		if idx < 0 || idx >= len(s.owners) {
			return fmt.Errorf("index for entity %d out of range: %d", id, idx)
		}
		if s.owners[idx] != id {
			return fmt.Errorf("owner mismatch at %d: have %d, want %d", idx, s.owners[idx], id)
		}
	}
	return nil
}
