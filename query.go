package depot

import (
	"strconv"
	"strings"
)

var _ Query = &query{}

type query struct {
	all      []Kind
	none     []Kind
	cacheKey string
}

func newQuery(kinds ...Kind) Query {
	q := &query{all: kinds}
	q.cacheKey = q.buildKey()
	return q
}

func (q *query) Kinds() []Kind {
	return q.all
}

func (q *query) Excluded() []Kind {
	return q.none
}

// Without returns a new query that additionally rejects entities holding any
// of kinds.
func (q *query) Without(kinds ...Kind) Query {
	next := &query{
		all:  q.all,
		none: append(append([]Kind(nil), q.none...), kinds...),
	}
	next.cacheKey = next.buildKey()
	return next
}

func (q *query) Matches(sto Storage, id EntityID) bool {
	if len(q.all) == 0 || !sto.Alive(id) {
		return false
	}
	allMask, ok := kindMask(sto, q.all)
	if !ok {
		return false
	}
	sig := sto.signature(id)
	if !sig.ContainsAll(allMask) {
		return false
	}
	if len(q.none) > 0 && sig.ContainsAny(registeredMask(sto, q.none)) {
		return false
	}
	return true
}

func (q *query) IDs(sto Storage) []EntityID {
	return q.appendIDs(nil, sto)
}

// appendIDs walks the first kind's owners in dense order and keeps the live
// ids whose signature holds every other kind. Any unregistered required kind
// yields nothing.
func (q *query) appendIDs(dst []EntityID, sto Storage) []EntityID {
	if len(q.all) == 0 {
		return dst
	}
	allMask, ok := kindMask(sto, q.all)
	if !ok {
		return dst
	}
	first, _ := sto.store(q.all[0])

	excluding := len(q.none) > 0
	noneMask := registeredMask(sto, q.none)
	for _, id := range first.Owners() {
		if !sto.Alive(id) {
			continue
		}
		sig := sto.signature(id)
		if !sig.ContainsAll(allMask) {
			continue
		}
		if excluding && sig.ContainsAny(noneMask) {
			continue
		}
		dst = append(dst, id)
	}
	return dst
}

func (q *query) key() string {
	return q.cacheKey
}

// buildKey is order sensitive: (A,B) and (B,A) are different keys because
// their results are ordered by different stores.
func (q *query) buildKey() string {
	var b strings.Builder
	for i, k := range q.all {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(k.id()), 10))
	}
	if len(q.none) > 0 {
		b.WriteByte('!')
		for i, k := range q.none {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatUint(uint64(k.id()), 10))
		}
	}
	return b.String()
}
