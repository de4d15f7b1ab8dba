package depot

import "iter"

var _ iCursor = &Cursor{}

func newCursor(query Query, storage Storage) *Cursor {
	return &Cursor{
		query:   query,
		storage: storage,
	}
}

func newCachedCursor(query Query, cache *QueryCache) *Cursor {
	return &Cursor{
		query:   query,
		storage: cache.storage,
		cache:   cache,
	}
}

func (c *Cursor) Next() bool {
	if !c.initialized {
		c.initialize()
	}
	if c.index < len(c.ids) {
		c.index++
		return true
	}
	c.Reset()
	return false
}

func (c *Cursor) Entities() iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		c.initialize()
		for c.index < len(c.ids) {
			id := c.ids[c.index]
			c.index++
			if !yield(id) {
				c.Reset()
				return
			}
		}
		c.Reset()
	}
}

func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	c.storage.Lock()
	if c.cache != nil {
		c.ids = c.cache.IDs(c.query)
	} else {
		c.ids = c.query.IDs(c.storage)
	}
	c.index = 0
	c.initialized = true
}

// Reset releases the storage lock; queued operations run if it was the last one.
func (c *Cursor) Reset() {
	if !c.initialized {
		return
	}
	c.ids = nil
	c.index = 0
	c.initialized = false
	c.storage.Unlock()
}

// CurrentEntity is the entity the last successful Next stopped on.
func (c *Cursor) CurrentEntity() EntityID {
	return c.ids[c.index-1]
}

func (c *Cursor) RemainingMatched() int {
	return len(c.ids) - c.index
}

func (c *Cursor) TotalMatched() int {
	if c.initialized {
		return len(c.ids)
	}
	if c.cache != nil {
		return len(c.cache.IDs(c.query))
	}
	return len(c.query.IDs(c.storage))
}
