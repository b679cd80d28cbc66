package lob

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelPoolAllocSetGet(t *testing.T) {
	p := newLevelPool(4)

	id := p.alloc()
	require.NoError(t, p.setLevel(id, Level{price: 500, qty: NewQuantity(10)}))

	lvl := p.get(id)
	require.Equal(t, Price(500), lvl.Price())
	require.Equal(t, uint64(10), lvl.AggregateQty().Uint64())
}

func TestLevelPoolFreeAndReuse(t *testing.T) {
	p := newLevelPool(2)

	a := p.alloc()
	require.NoError(t, p.setLevel(a, Level{price: 100}))
	require.NoError(t, p.free(a))

	// A stable handle (P5): a newly-allocated id is free to reuse the
	// just-freed slot, but get() on the old handle after it is
	// re-allocated with new contents reflects the new contents.
	b := p.alloc()
	require.Equal(t, a, b, "LIFO free list should hand back the most recently freed slot")
	require.NoError(t, p.setLevel(b, Level{price: 200}))
	require.Equal(t, Price(200), p.get(b).Price())
}

func TestLevelPoolGrowsBeyondHint(t *testing.T) {
	p := newLevelPool(1)
	ids := make([]LevelID, 0, 5)
	for i := 0; i < 5; i++ {
		id := p.alloc()
		require.NoError(t, p.setLevel(id, Level{price: Price(i)}))
		ids = append(ids, id)
	}
	for i, id := range ids {
		require.Equal(t, Price(i), p.get(id).Price())
	}
}

func TestLevelPoolInvalidHandle(t *testing.T) {
	p := newLevelPool(1)
	err := p.free(LevelID(99))
	require.True(t, errors.Is(err, ErrInvalidHandle))

	err = p.setLevel(LevelID(99), Level{})
	require.True(t, errors.Is(err, ErrInvalidHandle))
}

func TestLevelPoolGetPanicsOnInvalidHandle(t *testing.T) {
	p := newLevelPool(1)
	require.Panics(t, func() {
		p.get(LevelID(42))
	})
}
