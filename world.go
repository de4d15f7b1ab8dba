package depot

import (
	"fmt"

	"github.com/TheBitDrifter/table"
	iter_util "github.com/TheBitDrifter/util/iter"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Tick counts completed calls to World.Update.
type Tick uint64

// SystemFunc adapts a plain function to System.
type SystemFunc func(Storage, *QueryCache) error

func (f SystemFunc) Update(sto Storage, cache *QueryCache) error {
	return f(sto, cache)
}

// World owns a Storage, its QueryCache and an ordered list of systems, and
// runs them once per tick. Systems run one after another and may hold
// references into stores only for the duration of their own Update.
type World struct {
	id      string
	tick    Tick
	storage Storage
	cache   *QueryCache
	systems []System
	log     *zap.Logger
}

func newWorld(schema table.Schema) *World {
	sto := newStorage(schema)
	id := uuid.NewString()
	return &World{
		id:      id,
		storage: sto,
		cache:   newQueryCache(sto, Config.cacheCapacity),
		log:     Config.logger.With(zap.String("world", id)),
	}
}

// Register must precede adding components of the given kinds.
func (w *World) Register(kinds ...Kind) *World {
	w.storage.Register(kinds...)
	return w
}

func (w *World) NewEntity() EntityID {
	return w.storage.NewEntity()
}

func (w *World) DestroyEntity(id EntityID) error {
	return w.storage.DestroyEntity(id)
}

func (w *World) AddComponent(id EntityID, k Kind, value any) error {
	return w.storage.AddComponent(id, k, value)
}

// AddSystems appends systems; they run in the order added.
func (w *World) AddSystems(systems ...System) *World {
	w.systems = append(w.systems, systems...)
	return w
}

// Update advances the tick and runs every system. The first failing system
// aborts the rest of the tick.
func (w *World) Update() error {
	w.tick++
	for i, sys := range w.systems {
		if err := sys.Update(w.storage, w.cache); err != nil {
			w.log.Error("system failed",
				zap.Uint64("tick", uint64(w.tick)),
				zap.Int("system", i),
				zap.Error(err),
			)
			return fmt.Errorf("tick %d: system %d: %w", w.tick, i, err)
		}
	}
	w.log.Debug("tick complete",
		zap.Uint64("tick", uint64(w.tick)),
		zap.Int("entities", w.storage.EntityCount()),
	)
	return nil
}

func (w *World) Tick() Tick {
	return w.tick
}

func (w *World) ID() string {
	return w.id
}

func (w *World) Storage() Storage {
	return w.storage
}

func (w *World) Cache() *QueryCache {
	return w.cache
}

// Kinds lists the registered kinds in registration order.
func (w *World) Kinds() []Kind {
	return iter_util.Collect(w.storage.Kinds())
}
