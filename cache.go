package depot

import "go.uber.org/zap"

var _ Cache[any] = &SimpleCache[any]{}

func (c *SimpleCache[T]) GetIndex(key string) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

func (c *SimpleCache[T]) GetItem(index int) *T {
	return &c.items[index]
}

func (c *SimpleCache[T]) Register(key string, item T) (int, error) {
	if len(c.itemIndices) >= c.maxCapacity {
		return -1, CacheFullError{Capacity: c.maxCapacity}
	}
	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)
	return idx, nil
}

func (c *SimpleCache[T]) Len() int {
	return len(c.items)
}

func (c *SimpleCache[T]) Clear() {
	c.items = make([]T, 0, c.maxCapacity)
	c.itemIndices = make(map[string]int)
}

// QueryCache memoizes query results for one Storage. An entry is rebuilt
// lazily, on access, when the revision of any kind it involves has moved.
type QueryCache struct {
	storage Storage
	entries Cache[cacheEntry]
	stats   CacheStats
	warned  bool
}

type CacheStats struct {
	Hits     uint64
	Misses   uint64
	Rebuilds uint64
	Uncached uint64
}

type cacheEntry struct {
	kinds     []Kind
	revisions []Revision
	ids       []EntityID
}

func newQueryCache(sto Storage, capacity int) *QueryCache {
	return &QueryCache{
		storage: sto,
		entries: FactoryNewCache[cacheEntry](capacity),
	}
}

// IDsMatchingAll is the cached form of Storage.IDsMatchingAll.
func (qc *QueryCache) IDsMatchingAll(kinds ...Kind) []EntityID {
	return qc.IDs(newQuery(kinds...))
}

// IDs returns the ids matching q. The slice belongs to the cache and is
// overwritten by the next rebuild of the same query.
func (qc *QueryCache) IDs(q Query) []EntityID {
	sto := qc.storage
	for _, k := range q.Kinds() {
		if !sto.Registered(k) {
			return nil
		}
	}

	key := q.key()
	if idx, ok := qc.entries.GetIndex(key); ok {
		entry := qc.entries.GetItem(idx)
		if entry.fresh(sto) {
			qc.stats.Hits++
			return entry.ids
		}
		entry.rebuild(sto, q)
		qc.stats.Rebuilds++
		Config.logger.Debug("query cache rebuilt",
			zap.String("key", key),
			zap.Int("matched", len(entry.ids)),
		)
		return entry.ids
	}

	qc.stats.Misses++
	entry := cacheEntry{
		kinds: append(append([]Kind(nil), q.Kinds()...), q.Excluded()...),
	}
	entry.rebuild(sto, q)
	if _, err := qc.entries.Register(key, entry); err != nil {
		qc.stats.Uncached++
		if !qc.warned {
			qc.warned = true
			Config.logger.Warn("query cache saturated, serving uncached", zap.Error(err))
		}
	}
	return entry.ids
}

func (qc *QueryCache) Stats() CacheStats {
	return qc.stats
}

func (qc *QueryCache) Len() int {
	return qc.entries.Len()
}

func (qc *QueryCache) Clear() {
	qc.entries.Clear()
	qc.warned = false
}

func (e *cacheEntry) fresh(sto Storage) bool {
	for i, k := range e.kinds {
		if sto.Revision(k) != e.revisions[i] {
			return false
		}
	}
	return true
}

func (e *cacheEntry) rebuild(sto Storage, q Query) {
	e.ids = q.appendIDs(e.ids[:0], sto)
	e.revisions = e.revisions[:0]
	for _, k := range e.kinds {
		e.revisions = append(e.revisions, sto.Revision(k))
	}
}
