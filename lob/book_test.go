package lob

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// assertInvariants is a debug helper that checks the structural
// invariants of spec.md §3 (I1, I2, I3, I5) and §8 (P1-P3) for a single
// book; I4 concerns the Manager's registry and is not checked here. It
// is used by tests, not by the hot path.
func assertInvariants(t *testing.T, b *OrderBook) {
	t.Helper()

	checkSide := func(side *sortedLevels) {
		var prev Price
		for i := 0; i < side.Len(); i++ {
			e, _ := side.Get(i)
			if i > 0 {
				require.Less(t, int64(prev), int64(e.Price), "I3: strictly ascending, no duplicates")
			}
			prev = e.Price

			level := b.pool.get(e.Level)
			require.False(t, level.AggregateQty().IsZero(), "I5: live level must have a non-zero aggregate")

			members, ok := b.levelOrders[e.Level]
			require.True(t, ok, "I2: level must have a membership set")
			require.NotEmpty(t, members, "I5: membership set must be non-empty")

			sum := ZeroQty
			for orderID := range members {
				resting := b.orders[orderID]
				sum = sum.Add(resting.qty)
			}
			require.Equal(t, 0, sum.Cmp(level.AggregateQty()), "I1: aggregate == sum of constituent orders")
		}
	}

	checkSide(b.bids)
	checkSide(b.asks)
}

func TestRoundTripAddThenRemove(t *testing.T) {
	b := NewOrderBook()

	require.NoError(t, b.Insert(1, NewBidPrice(500), NewQuantity(100)))
	assertInvariants(t, b)

	require.NoError(t, b.Remove(1))
	assertInvariants(t, b)

	require.Equal(t, 0, b.bids.Len())
	_, live := b.orders[1]
	require.False(t, live)
}

func TestReplaceEquivalentToDeleteThenAdd(t *testing.T) {
	m := NewManager()
	m.AddOrder(1, testBook, NewQuantity(100), 500, true)
	m.ReplaceOrder(1, 2, NewQuantity(40), 700)
	viaReplace := m.books[testBook]
	assertInvariants(t, viaReplace)

	viaDeleteAdd := NewOrderBook()
	require.NoError(t, viaDeleteAdd.Insert(1, NewBidPrice(500), NewQuantity(100)))
	require.NoError(t, viaDeleteAdd.Remove(1))
	require.NoError(t, viaDeleteAdd.Insert(2, NewBidPrice(700), NewQuantity(40)))

	require.Equal(t, viaReplace.bids.Len(), viaDeleteAdd.bids.Len())
	require.Equal(t, viaReplace.OrderCount(), viaDeleteAdd.OrderCount())
	aEntry, _ := viaReplace.bids.Get(0)
	bEntry, _ := viaDeleteAdd.bids.Get(0)
	require.Equal(t, aEntry.Price, bEntry.Price)
	require.Equal(t, 0, viaReplace.pool.get(aEntry.Level).AggregateQty().Cmp(viaDeleteAdd.pool.get(bEntry.Level).AggregateQty()))
}

func TestInsertSameOrderIDTwiceIsDuplicate(t *testing.T) {
	b := NewOrderBook()
	require.NoError(t, b.Insert(1, NewBidPrice(500), NewQuantity(10)))
	err := b.Insert(1, NewBidPrice(600), NewQuantity(10))
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestReduceUnknownOrderIsMissing(t *testing.T) {
	b := NewOrderBook()
	err := b.Reduce(1, NewQuantity(1))
	require.ErrorIs(t, err, ErrMissing)
}

func TestReduceBeyondRestingIsUnderflow(t *testing.T) {
	b := NewOrderBook()
	require.NoError(t, b.Insert(1, NewBidPrice(500), NewQuantity(10)))
	err := b.Reduce(1, NewQuantity(11))
	require.ErrorIs(t, err, ErrUnderflow)
}

func TestLevelFreedWhenEmptiedByPartialReduces(t *testing.T) {
	b := NewOrderBook()
	require.NoError(t, b.Insert(1, NewBidPrice(500), NewQuantity(10)))
	require.NoError(t, b.Insert(2, NewBidPrice(500), NewQuantity(5)))

	require.NoError(t, b.Reduce(1, NewQuantity(10)))
	assertInvariants(t, b)
	require.Equal(t, 1, b.bids.Len(), "level survives while order 2 still rests there")

	require.NoError(t, b.Reduce(2, NewQuantity(5)))
	require.Equal(t, 0, b.bids.Len(), "level reclaimed once the last order empties it")
}

func TestManyOrdersPreserveAggregateInvariant(t *testing.T) {
	b := NewOrderBook()
	prices := []uint64{500, 500, 600, 700, 600, 500}
	for i, p := range prices {
		require.NoError(t, b.Insert(OrderID(i+1), NewBidPrice(p), NewQuantity(uint64(i+1)*10)))
	}
	assertInvariants(t, b)

	require.NoError(t, b.Remove(3))
	require.NoError(t, b.Reduce(1, NewQuantity(5)))
	assertInvariants(t, b)
}
