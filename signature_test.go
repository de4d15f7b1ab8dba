package depot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignaturesGrowLinearly(t *testing.T) {
	const n = 10000
	sto := newTestStorage(posKind).(*storage)

	for _, id := range sto.NewEntities(n) {
		require.NoError(t, posKind.Add(sto, id, Position{}))
	}

	assert.Len(t, sto.signatures, n)
	assert.LessOrEqual(t, cap(sto.signatures), 2*n)
	assert.Len(t, sto.IDsMatchingAll(posKind), n)
}

func TestSignaturesMarkSparseIDs(t *testing.T) {
	var sigs signatures
	sigs.mark(3, 1)
	sigs.mark(1, 0)
	sigs.mark(3, 2)

	require.Len(t, sigs, 4)
	assert.True(t, sigs.empty(0))
	assert.False(t, sigs.empty(1))
	assert.True(t, sigs.empty(99), "ids past the end have no signature")

	sigs.unmark(1, 0)
	sigs.unmark(99, 0)
	assert.True(t, sigs.empty(1))
}

func TestRegisterKindLimit(t *testing.T) {
	kinds := make([]Kind, maxKinds)
	for i := range kinds {
		kinds[i] = FactoryNewKind[int]()
	}
	sto := newTestStorage(kinds...)

	last := kinds[len(kinds)-1].(AccessibleKind[int])
	e := sto.NewEntity()
	require.NoError(t, last.Add(sto, e, 1))
	assert.Equal(t, []EntityID{e}, sto.IDsMatchingAll(last))

	extra := FactoryNewKind[int]()
	defer func() {
		r := recover()
		err, ok := r.(KindLimitError)
		require.True(t, ok, "Register panicked with %v, want KindLimitError", r)
		assert.Equal(t, int(maxKinds), err.Limit)
		assert.False(t, sto.Registered(extra))
	}()
	sto.Register(extra)
	t.Fatal("registering past the signature width did not panic")
}

func TestDirectStoreAddOnDeadEntity(t *testing.T) {
	storage := newTestStorage(posKind, velKind)
	e := storage.NewEntity()
	require.NoError(t, storage.DestroyEntity(e))

	// the raw store does not check liveness
	require.True(t, posKind.MustStore(storage).Add(e, Position{X: 1}))
	require.True(t, posKind.MustStore(storage).Add(7, Position{X: 2}))
	require.NoError(t, velKind.MustStore(storage).validate())

	assert.Empty(t, storage.IDsMatchingAll(posKind))
	assert.Empty(t, Factory.NewQuery(posKind).Without(velKind).IDs(storage))
	assert.False(t, Factory.NewQuery(posKind).Matches(storage, e))

	reused := storage.NewEntity()
	require.Equal(t, e, reused)
	assert.False(t, storage.Has(reused, posKind), "a recycled id must start empty")
	assert.Empty(t, storage.IDsMatchingAll(posKind))
	assert.Equal(t, 1, storage.Len(posKind))
}
