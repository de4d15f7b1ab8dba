package depot

import (
	"iter"

	"github.com/TheBitDrifter/mask"
)

// Storage owns the entity registry and one component store per registered
// kind. It is not safe for concurrent use.
type Storage interface {
	Register(...Kind)
	Registered(Kind) bool
	Kinds() iter.Seq[Kind]

	NewEntity() EntityID
	NewEntities(int) []EntityID
	Alive(EntityID) bool
	EntityCount() int
	DestroyEntity(EntityID) error
	EnqueueDestroyEntity(EntityID) error

	Has(EntityID, Kind) bool
	AddComponent(EntityID, Kind, any) error
	EnqueueAddComponent(EntityID, Kind, any) error
	RemoveComponent(EntityID, Kind) error
	EnqueueRemoveComponent(EntityID, Kind) error
	RemoveAllFor(EntityID) error

	Len(Kind) int
	Revision(Kind) Revision
	Owners(Kind) []EntityID
	IDsMatchingAll(...Kind) []EntityID

	Locked() bool
	Lock()
	Unlock()

	store(Kind) (erasedStore, bool)
	writable(EntityID, Kind) (erasedStore, error)
	rowIndex(Kind) (uint32, bool)
	signature(EntityID) mask.Mask
}

// Query selects entities holding every kind in Kinds and none in Excluded.
type Query interface {
	Kinds() []Kind
	Excluded() []Kind
	Without(...Kind) Query
	Matches(Storage, EntityID) bool
	IDs(Storage) []EntityID
	appendIDs([]EntityID, Storage) []EntityID
	key() string
}

// System is one per-tick callback run by a World.
type System interface {
	Update(Storage, *QueryCache) error
}

type iCursor interface {
	Entities() iter.Seq[EntityID]
	Next() bool
}

type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	Register(string, T) (int, error)
	Len() int
	Clear()
}

// Cursor walks the entities matched by a query. The storage stays locked from
// the first Next until the cursor is exhausted or Reset.
type Cursor struct {
	query   Query
	storage Storage
	cache   *QueryCache

	ids         []EntityID
	index       int
	initialized bool
}

type SimpleCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}
