package depot

// Split borrows hand out one pointer per kind for a single entity. Each
// pointer aliases only its own kind's store, so the kinds must be pairwise
// distinct; a repeated kind panics with DuplicateKindError before any store
// is touched. If any kind is unregistered or missing on the entity the
// result is all nil and false.
//
// Pointers stay valid until the next structural change of their store.

func mustBeDistinct(kinds ...Kind) {
	for i := 0; i < len(kinds); i++ {
		for j := i + 1; j < len(kinds); j++ {
			if kinds[i].id() == kinds[j].id() {
				panic(DuplicateKindError{Kind: kinds[i]})
			}
		}
	}
}

func BorrowMut2[A, B any](sto Storage, id EntityID,
	ka AccessibleKind[A], kb AccessibleKind[B],
) (*A, *B, bool) {
	mustBeDistinct(ka, kb)
	a, okA := ka.Get(sto, id)
	b, okB := kb.Get(sto, id)
	if !okA || !okB {
		return nil, nil, false
	}
	return a, b, true
}

func BorrowMut3[A, B, C any](sto Storage, id EntityID,
	ka AccessibleKind[A], kb AccessibleKind[B], kc AccessibleKind[C],
) (*A, *B, *C, bool) {
	mustBeDistinct(ka, kb, kc)
	a, okA := ka.Get(sto, id)
	b, okB := kb.Get(sto, id)
	c, okC := kc.Get(sto, id)
	if !okA || !okB || !okC {
		return nil, nil, nil, false
	}
	return a, b, c, true
}

func BorrowMut4[A, B, C, D any](sto Storage, id EntityID,
	ka AccessibleKind[A], kb AccessibleKind[B], kc AccessibleKind[C], kd AccessibleKind[D],
) (*A, *B, *C, *D, bool) {
	mustBeDistinct(ka, kb, kc, kd)
	a, okA := ka.Get(sto, id)
	b, okB := kb.Get(sto, id)
	c, okC := kc.Get(sto, id)
	d, okD := kd.Get(sto, id)
	if !okA || !okB || !okC || !okD {
		return nil, nil, nil, nil, false
	}
	return a, b, c, d, true
}

// Borrow2 is the read-only form: it returns copies and allows repeated kinds.
func Borrow2[A, B any](sto Storage, id EntityID,
	ka AccessibleKind[A], kb AccessibleKind[B],
) (A, B, bool) {
	a, okA := ka.Value(sto, id)
	b, okB := kb.Value(sto, id)
	if !okA || !okB {
		var za A
		var zb B
		return za, zb, false
	}
	return a, b, true
}

func Borrow3[A, B, C any](sto Storage, id EntityID,
	ka AccessibleKind[A], kb AccessibleKind[B], kc AccessibleKind[C],
) (A, B, C, bool) {
	a, okA := ka.Value(sto, id)
	b, okB := kb.Value(sto, id)
	c, okC := kc.Value(sto, id)
	if !okA || !okB || !okC {
		var za A
		var zb B
		var zc C
		return za, zb, zc, false
	}
	return a, b, c, true
}

func Borrow4[A, B, C, D any](sto Storage, id EntityID,
	ka AccessibleKind[A], kb AccessibleKind[B], kc AccessibleKind[C], kd AccessibleKind[D],
) (A, B, C, D, bool) {
	a, okA := ka.Value(sto, id)
	b, okB := kb.Value(sto, id)
	c, okC := kc.Value(sto, id)
	d, okD := kd.Value(sto, id)
	if !okA || !okB || !okC || !okD {
		var za A
		var zb B
		var zc C
		var zd D
		return za, zb, zc, zd, false
	}
	return a, b, c, d, true
}
