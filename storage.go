package depot

import (
	"iter"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
	"go.uber.org/zap"
)

var _ Storage = &storage{}

type storage struct {
	locks      int
	schema     table.Schema
	entities   entityRegistry
	stores     []erasedStore
	rows       []uint32
	slots      map[kindID]int
	signatures signatures
	opQueue    opQueue
}

func newStorage(schema table.Schema) Storage {
	return &storage{
		schema:  schema,
		slots:   make(map[kindID]int),
		opQueue: newOpQueue(),
	}
}

// Register creates an empty store for each kind not registered yet. It panics
// with KindLimitError once the storage holds as many kinds as a signature
// has bits.
func (sto *storage) Register(kinds ...Kind) {
	for _, k := range kinds {
		if _, ok := sto.slots[k.id()]; ok {
			continue
		}
		if uint32(len(sto.stores)) >= maxKinds {
			panic(KindLimitError{Kind: k, Limit: int(maxKinds)})
		}
		sto.schema.Register(k)
		row := sto.schema.RowIndexFor(k)
		if row >= maxKinds {
			panic(KindLimitError{Kind: k, Limit: int(maxKinds)})
		}

		es := k.newStore(Config.storeCapacity)
		es.setHooks(storeHooks{
			onAdd:    func(id EntityID) { sto.signatures.mark(id, row) },
			onRemove: func(id EntityID) { sto.signatures.unmark(id, row) },
		})

		sto.slots[k.id()] = len(sto.stores)
		sto.stores = append(sto.stores, es)
		sto.rows = append(sto.rows, row)

		Config.logger.Debug("registered kind",
			zap.String("kind", k.label()),
			zap.Uint32("row", row),
		)
	}
}

func (sto *storage) Registered(k Kind) bool {
	_, ok := sto.slots[k.id()]
	return ok
}

// Kinds yields the registered kinds in registration order.
func (sto *storage) Kinds() iter.Seq[Kind] {
	return func(yield func(Kind) bool) {
		for _, es := range sto.stores {
			if !yield(es.Kind()) {
				return
			}
		}
	}
}

// NewEntity is allowed while locked; a fresh entity holds no components.
func (sto *storage) NewEntity() EntityID {
	id := sto.entities.create()
	if !sto.signatures.empty(id) {
		// left behind by a direct Store.Add on a dead id
		sto.removeAll(id)
	}
	return id
}

func (sto *storage) NewEntities(n int) []EntityID {
	ids := make([]EntityID, n)
	for i := range ids {
		ids[i] = sto.NewEntity()
	}
	return ids
}

func (sto *storage) Alive(id EntityID) bool {
	return sto.entities.isAlive(id)
}

func (sto *storage) EntityCount() int {
	return sto.entities.count()
}

// DestroyEntity strips every component from id and frees the id for reuse.
func (sto *storage) DestroyEntity(id EntityID) error {
	if sto.locks > 0 {
		return LockedStorageError{}
	}
	if !sto.entities.isAlive(id) {
		return EntityNotFoundError{Entity: id}
	}
	sto.removeAll(id)
	sto.entities.destroy(id)
	return nil
}

func (sto *storage) EnqueueDestroyEntity(id EntityID) error {
	if sto.locks == 0 {
		return sto.DestroyEntity(id)
	}
	if !sto.entities.isAlive(id) {
		return EntityNotFoundError{Entity: id}
	}
	sto.opQueue.enqueueDestroy(id)
	return nil
}

func (sto *storage) Has(id EntityID, k Kind) bool {
	es, ok := sto.store(k)
	return ok && es.Has(id)
}

// AddComponent adds an untyped value; value must be the kind's payload type
// or a non-nil pointer to it.
func (sto *storage) AddComponent(id EntityID, k Kind, value any) error {
	es, err := sto.writable(id, k)
	if err != nil {
		return err
	}
	added, err := es.addErased(id, value)
	if err != nil {
		return err
	}
	if !added {
		return ComponentExistsError{Kind: k, Entity: id}
	}
	return nil
}

func (sto *storage) EnqueueAddComponent(id EntityID, k Kind, value any) error {
	if sto.locks == 0 {
		return sto.AddComponent(id, k, value)
	}
	if !sto.Registered(k) {
		return UnknownKindError{Kind: k}
	}
	if !sto.entities.isAlive(id) {
		return EntityNotFoundError{Entity: id}
	}
	sto.opQueue.enqueueComponentOp(operation{typ: opAddComponent, entity: id, kind: k, value: value})
	return nil
}

func (sto *storage) RemoveComponent(id EntityID, k Kind) error {
	if sto.locks > 0 {
		return LockedStorageError{}
	}
	es, ok := sto.store(k)
	if !ok {
		return UnknownKindError{Kind: k}
	}
	if !es.Remove(id) {
		return ComponentNotFoundError{Kind: k, Entity: id}
	}
	return nil
}

func (sto *storage) EnqueueRemoveComponent(id EntityID, k Kind) error {
	if sto.locks == 0 {
		return sto.RemoveComponent(id, k)
	}
	if !sto.Registered(k) {
		return UnknownKindError{Kind: k}
	}
	sto.opQueue.enqueueComponentOp(operation{typ: opRemoveComponent, entity: id, kind: k})
	return nil
}

// RemoveAllFor removes id from every store holding it. It does not touch the
// entity's liveness.
func (sto *storage) RemoveAllFor(id EntityID) error {
	if sto.locks > 0 {
		return LockedStorageError{}
	}
	sto.removeAll(id)
	return nil
}

func (sto *storage) removeAll(id EntityID) {
	for _, es := range sto.stores {
		es.Remove(id)
	}
}

func (sto *storage) Len(k Kind) int {
	if es, ok := sto.store(k); ok {
		return es.Len()
	}
	return 0
}

// Revision is zero for unregistered kinds, matching a freshly registered store.
func (sto *storage) Revision(k Kind) Revision {
	if es, ok := sto.store(k); ok {
		return es.Revision()
	}
	return 0
}

func (sto *storage) Owners(k Kind) []EntityID {
	if es, ok := sto.store(k); ok {
		return es.Owners()
	}
	return nil
}

// IDsMatchingAll recomputes, on every call, the ids present in all kinds'
// stores, in the first kind's dense order.
func (sto *storage) IDsMatchingAll(kinds ...Kind) []EntityID {
	q := query{all: kinds}
	return q.appendIDs(nil, sto)
}

func (sto *storage) Locked() bool {
	return sto.locks > 0
}

// Lock may be nested; queued operations run when the outermost lock is released.
func (sto *storage) Lock() {
	sto.locks++
}

func (sto *storage) Unlock() {
	if sto.locks == 0 {
		return
	}
	sto.locks--
	if sto.locks > 0 {
		return
	}
	if err := sto.processOperationQueue(); err != nil {
		panic(err)
	}
}

func (sto *storage) store(k Kind) (erasedStore, bool) {
	slot, ok := sto.slots[k.id()]
	if !ok {
		return nil, false
	}
	return sto.stores[slot], true
}

func (sto *storage) writable(id EntityID, k Kind) (erasedStore, error) {
	if sto.locks > 0 {
		return nil, LockedStorageError{}
	}
	es, ok := sto.store(k)
	if !ok {
		Config.logger.Warn("add to unregistered kind",
			zap.String("kind", k.label()),
			zap.Uint32("entity", uint32(id)),
		)
		return nil, UnknownKindError{Kind: k}
	}
	if !sto.entities.isAlive(id) {
		return nil, EntityNotFoundError{Entity: id}
	}
	return es, nil
}

func (sto *storage) rowIndex(k Kind) (uint32, bool) {
	slot, ok := sto.slots[k.id()]
	if !ok {
		return 0, false
	}
	return sto.rows[slot], true
}

func (sto *storage) signature(id EntityID) mask.Mask {
	return sto.signatures.get(id)
}
