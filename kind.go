package depot

import (
	"github.com/TheBitDrifter/table"
)

type kindID uint32

// Kind is a component category. Kinds are created with FactoryNewKind, once
// per payload type, and shared by every storage that uses them.
type Kind interface {
	table.ElementType
	id() kindID
	label() string
	newStore(capacity int) erasedStore
}

var _ Kind = AccessibleKind[struct{}]{}

// AccessibleKind is a Kind that knows its payload type T, giving typed access
// to the matching Store inside any Storage.
type AccessibleKind[T any] struct {
	table.ElementType
	kid  kindID
	name string
}

func (k AccessibleKind[T]) id() kindID {
	return k.kid
}

func (k AccessibleKind[T]) label() string {
	return k.name
}

func (k AccessibleKind[T]) newStore(capacity int) erasedStore {
	return newStore[T](k, capacity)
}

// Store recovers the typed store for this kind. It reports false if the kind
// is not registered with sto.
func (k AccessibleKind[T]) Store(sto Storage) (*Store[T], bool) {
	es, ok := sto.store(k)
	if !ok {
		return nil, false
	}
	s, ok := es.(*Store[T])
	return s, ok
}

// MustStore is the unchecked accessor: it panics with UnknownKindError if the
// kind is not registered. Callers are expected to have checked registration.
func (k AccessibleKind[T]) MustStore(sto Storage) *Store[T] {
	s, ok := k.Store(sto)
	if !ok {
		panic(UnknownKindError{Kind: k})
	}
	return s
}

func (k AccessibleKind[T]) Has(sto Storage, id EntityID) bool {
	return sto.Has(id, k)
}

// Add attaches value to the entity. Re-adding keeps the existing value and
// returns ComponentExistsError.
func (k AccessibleKind[T]) Add(sto Storage, id EntityID, value T) error {
	es, err := sto.writable(id, k)
	if err != nil {
		return err
	}
	s, ok := es.(*Store[T])
	if !ok {
		return ComponentTypeError{Kind: k, Value: value}
	}
	if !s.Add(id, value) {
		return ComponentExistsError{Kind: k, Entity: id}
	}
	return nil
}

// Set overwrites the entity's value in place, adding it if absent.
// Overwriting is not a structural change and leaves the revision alone.
func (k AccessibleKind[T]) Set(sto Storage, id EntityID, value T) error {
	if ptr, ok := k.Get(sto, id); ok {
		*ptr = value
		return nil
	}
	return k.Add(sto, id, value)
}

func (k AccessibleKind[T]) EnqueueAdd(sto Storage, id EntityID, value T) error {
	return sto.EnqueueAddComponent(id, k, value)
}

func (k AccessibleKind[T]) Remove(sto Storage, id EntityID) error {
	return sto.RemoveComponent(id, k)
}

func (k AccessibleKind[T]) EnqueueRemove(sto Storage, id EntityID) error {
	return sto.EnqueueRemoveComponent(id, k)
}

// Get borrows the entity's component mutably.
func (k AccessibleKind[T]) Get(sto Storage, id EntityID) (*T, bool) {
	s, ok := k.Store(sto)
	if !ok {
		return nil, false
	}
	return s.Get(id)
}

// Value returns a copy of the entity's component.
func (k AccessibleKind[T]) Value(sto Storage, id EntityID) (T, bool) {
	s, ok := k.Store(sto)
	if !ok {
		var zero T
		return zero, false
	}
	return s.Value(id)
}

// All returns the dense value slice of this kind, or nil if unregistered.
func (k AccessibleKind[T]) All(sto Storage) []T {
	s, ok := k.Store(sto)
	if !ok {
		return nil
	}
	return s.All()
}

func (k AccessibleKind[T]) Owners(sto Storage) []EntityID {
	return sto.Owners(k)
}

// GetFromCursor borrows the component of the entity the cursor is on.
func (k AccessibleKind[T]) GetFromCursor(cursor *Cursor) (*T, bool) {
	return k.Get(cursor.storage, cursor.CurrentEntity())
}
