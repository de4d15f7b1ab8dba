package depot

import "fmt"

type LockedStorageError struct{}

func (e LockedStorageError) Error() string {
	return "storage is currently locked"
}

type EntityNotFoundError struct {
	Entity EntityID
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d is not alive", e.Entity)
}

// UnknownKindError reports a kind that was never registered with the storage.
type UnknownKindError struct {
	Kind Kind
}

func (e UnknownKindError) Error() string {
	return fmt.Sprintf("component kind not registered: %s", kindLabel(e.Kind))
}

type ComponentExistsError struct {
	Kind   Kind
	Entity EntityID
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity %d: %s", e.Entity, kindLabel(e.Kind))
}

type ComponentNotFoundError struct {
	Kind   Kind
	Entity EntityID
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity %d: %s", e.Entity, kindLabel(e.Kind))
}

// ComponentTypeError is returned when an untyped value does not match the
// payload type of the kind it is added under.
type ComponentTypeError struct {
	Kind  Kind
	Value any
}

func (e ComponentTypeError) Error() string {
	return fmt.Sprintf("value of type %T cannot be stored as %s", e.Value, kindLabel(e.Kind))
}

// DuplicateKindError is raised (as a panic) when one split borrow names the
// same kind twice.
type DuplicateKindError struct {
	Kind Kind
}

func (e DuplicateKindError) Error() string {
	return fmt.Sprintf("kind requested twice in one borrow: %s", kindLabel(e.Kind))
}

// KindLimitError is raised (as a panic) by Register when a storage has no
// signature bit left for another kind.
type KindLimitError struct {
	Kind  Kind
	Limit int
}

func (e KindLimitError) Error() string {
	return fmt.Sprintf("cannot register %s: storage holds at most %d kinds", kindLabel(e.Kind), e.Limit)
}

type CacheFullError struct {
	Capacity int
}

func (e CacheFullError) Error() string {
	return fmt.Sprintf("cache at maximum capacity (%d)", e.Capacity)
}

type ConfigError struct {
	Field string
	Value any
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid config value for %s: %v", e.Field, e.Value)
}

func kindLabel(k Kind) string {
	if k == nil {
		return "<nil>"
	}
	return k.label()
}
