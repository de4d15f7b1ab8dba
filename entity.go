package depot

// EntityID identifies an entity within a single Storage. Ids are recycled
// after destruction, so an id is only meaningful while the entity is alive.
type EntityID uint32

// entityRegistry issues and recycles entity ids.
// Freed ids are reused oldest first.
type entityRegistry struct {
	alive []bool
	free  []EntityID
	live  int
}

func (r *entityRegistry) create() EntityID {
	if len(r.free) > 0 {
		id := r.free[0]
		r.free = r.free[1:]
		r.alive[id] = true
		r.live++
		return id
	}
	id := EntityID(len(r.alive))
	r.alive = append(r.alive, true)
	r.live++
	return id
}

func (r *entityRegistry) isAlive(id EntityID) bool {
	return int(id) < len(r.alive) && r.alive[id]
}

// destroy marks id dead and queues it for reuse. Dead or unknown ids are ignored.
func (r *entityRegistry) destroy(id EntityID) bool {
	if !r.isAlive(id) {
		return false
	}
	r.alive[id] = false
	r.free = append(r.free, id)
	r.live--
	return true
}

func (r *entityRegistry) count() int {
	return r.live
}
