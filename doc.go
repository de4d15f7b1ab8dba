/*
Package depot provides sparse-set component storage and queries for entity-component simulations.

Every component kind lives in its own dense store: values and owning entity ids sit in two
parallel slices, with a sparse id -> index map beside them, so add, remove and lookup are O(1)
and iterating a kind is a walk over contiguous memory. Removal swaps the last element into the
hole, so iteration order follows insertion and is reshuffled by removals.

Core Concepts:

  - Entity: A recycled integer id. Freed ids are reused oldest first.
  - Kind: A component category, created once per payload type with FactoryNewKind.
  - Store: The dense/sparse container for one kind, with a revision counter bumped on every add and remove.
  - Storage: The registry of stores, plus the entities that own their components.
  - Query: The ids holding every listed kind, ordered like the first kind's store.
  - QueryCache: Memoized query results, rebuilt when a revision they depend on moves.

Basic Usage:

	position := depot.FactoryNewKind[Position]()
	velocity := depot.FactoryNewKind[Velocity]()

	schema := table.Factory.NewSchema()
	storage := depot.Factory.NewStorage(schema)
	storage.Register(position, velocity)

	e := storage.NewEntity()
	position.Add(storage, e, Position{})
	velocity.Add(storage, e, Velocity{X: 1})

	cache := depot.Factory.NewQueryCache(storage, 64)
	for _, id := range cache.IDsMatchingAll(position, velocity) {
		pos, vel, _ := depot.BorrowMut2(storage, id, position, velocity)
		pos.X += vel.X
		pos.Y += vel.Y
	}

Each kind's signature bit comes from the storage's table.Schema, so one storage holds at most as
many kinds as a mask.Mask has bits; Register panics with KindLimitError past that.

Nothing here is safe for concurrent use except Cell.
*/
package depot
