package depot

import (
	"reflect"
	"sync/atomic"

	"github.com/TheBitDrifter/table"
)

type factory struct{}

var Factory factory

var lastKindID atomic.Uint32

func (f factory) NewStorage(schema table.Schema) Storage {
	return newStorage(schema)
}

func (f factory) NewQuery(kinds ...Kind) Query {
	return newQuery(kinds...)
}

func (f factory) NewCursor(query Query, storage Storage) *Cursor {
	return newCursor(query, storage)
}

func (f factory) NewCachedCursor(query Query, cache *QueryCache) *Cursor {
	return newCachedCursor(query, cache)
}

func (f factory) NewQueryCache(storage Storage, capacity int) *QueryCache {
	return newQueryCache(storage, capacity)
}

func (f factory) NewWorld(schema table.Schema) *World {
	return newWorld(schema)
}

// FactoryNewKind creates a new kind for payload type T. Call it once per type
// and share the result; two calls for the same T yield two unrelated kinds.
func FactoryNewKind[T any]() AccessibleKind[T] {
	return AccessibleKind[T]{
		ElementType: table.FactoryNewElementType[T](),
		kid:         kindID(lastKindID.Add(1)),
		name:        reflect.TypeFor[T]().String(),
	}
}

// FactoryNewStore creates a standalone store not attached to any Storage.
func FactoryNewStore[T any](capacity int) *Store[T] {
	return newStore[T](nil, capacity)
}

func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
