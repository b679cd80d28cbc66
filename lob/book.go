package lob

import "fmt"

// restingOrder is what the book needs to remember about a live order
// beyond what lives in the global registry: just enough to reduce or
// remove it. The registry (registry.go) is the source of truth for
// order->book routing; this is the book-local mirror.
type restingOrder struct {
	level LevelID
	qty   Quantity
}

// OrderBook is a per-instrument container: a bid side, an ask side, the
// level pool backing both, and the level->orders membership map
// (spec.md §2, §3). Each book owns its own level pool; LevelID handles
// are therefore only meaningful within the book that issued them.
type OrderBook struct {
	bids *sortedLevels
	asks *sortedLevels
	pool *levelPool

	levelOrders map[LevelID]map[OrderID]struct{}
	orders      map[OrderID]restingOrder
}

// NewOrderBook creates an empty book with the default level capacity
// hint.
func NewOrderBook() *OrderBook {
	return NewOrderBookWithCapacity(defaultLevelCapacity)
}

// NewOrderBookWithCapacity creates an empty book whose level pool
// pre-sizes its backing array to levelCapacity (supplemented feature,
// see SPEC_FULL.md — mirrors LevelPool::new_with_capacity in
// original_source/optimized-lob/src/orderbook.rs).
func NewOrderBookWithCapacity(levelCapacity int) *OrderBook {
	return &OrderBook{
		bids:        newSortedLevels(),
		asks:        newSortedLevels(),
		pool:        newLevelPool(levelCapacity),
		levelOrders: make(map[LevelID]map[OrderID]struct{}),
		orders:      make(map[OrderID]restingOrder),
	}
}

func (b *OrderBook) sideFor(price Price) *sortedLevels {
	if price.IsBid() {
		return b.bids
	}
	return b.asks
}

// Insert implements spec.md §4.3: locate or create the level for price,
// add qty to its aggregate, and record the order as resting there.
// Returns ErrDuplicate if orderID is already live on this book.
func (b *OrderBook) Insert(orderID OrderID, price Price, qty Quantity) error {
	if _, live := b.orders[orderID]; live {
		return fmt.Errorf("%w: order %d", ErrDuplicate, orderID)
	}

	side := b.sideFor(price)
	position, existing := side.locateInsertion(price)

	var levelID LevelID
	if existing != nil {
		levelID = existing.Level
	} else {
		levelID = b.pool.alloc()
		if err := b.pool.setLevel(levelID, Level{price: price, qty: ZeroQty}); err != nil {
			return err
		}
		side.Insert(position, PriceLevelEntry{Price: price, Level: levelID})
	}

	b.pool.get(levelID).incr(qty)

	if b.levelOrders[levelID] == nil {
		b.levelOrders[levelID] = make(map[OrderID]struct{})
	}
	b.levelOrders[levelID][orderID] = struct{}{}
	b.orders[orderID] = restingOrder{level: levelID, qty: qty}

	return nil
}

// Reduce implements spec.md §4.4's reduce path: decrement the order's
// resting quantity and the level's aggregate by amount. If the order's
// quantity reaches zero it is fully removed. Returns ErrMissing if
// orderID is not resting on this book, or ErrUnderflow if amount
// exceeds the order's resting quantity.
func (b *OrderBook) Reduce(orderID OrderID, amount Quantity) error {
	resting, live := b.orders[orderID]
	if !live {
		return fmt.Errorf("%w: order %d", ErrMissing, orderID)
	}

	remaining, err := resting.qty.Sub(amount)
	if err != nil {
		return err
	}

	if err := b.pool.get(resting.level).decr(amount); err != nil {
		return err
	}

	if remaining.IsZero() {
		return b.removeResting(orderID, resting)
	}

	resting.qty = remaining
	b.orders[orderID] = resting
	return nil
}

// Remove implements spec.md §4.4's full-remove path: the order leaves
// the book regardless of its remaining quantity (delete or
// execute-to-zero). Returns ErrMissing if orderID is not resting.
func (b *OrderBook) Remove(orderID OrderID) error {
	resting, live := b.orders[orderID]
	if !live {
		return fmt.Errorf("%w: order %d", ErrMissing, orderID)
	}
	if err := b.pool.get(resting.level).decr(resting.qty); err != nil {
		return err
	}
	return b.removeResting(orderID, resting)
}

// removeResting drops the order's book-local bookkeeping and, if the
// level's aggregate has reached zero, reclaims the level (spec.md
// I5: "a level whose aggregate reaches zero is freed in the same
// event").
func (b *OrderBook) removeResting(orderID OrderID, resting restingOrder) error {
	delete(b.orders, orderID)

	if members := b.levelOrders[resting.level]; members != nil {
		delete(members, orderID)
		if len(members) == 0 {
			delete(b.levelOrders, resting.level)
		}
	}

	level := b.pool.get(resting.level)
	if level.AggregateQty().IsZero() {
		side := b.sideFor(level.Price())
		side.Remove(level.Price())
		if err := b.pool.free(resting.level); err != nil {
			return err
		}
	}

	return nil
}

// Side returns the side an order currently rests on.
func (b *OrderBook) Side(orderID OrderID) (Side, bool) {
	resting, live := b.orders[orderID]
	if !live {
		return Bid, false
	}
	if b.pool.get(resting.level).Price().IsBid() {
		return Bid, true
	}
	return Ask, true
}

// OrdersAtLevel returns the set of order ids resting at level (read-only
// view). Supplemented from original_source/, see SPEC_FULL.md.
func (b *OrderBook) OrdersAtLevel(level LevelID) (map[OrderID]struct{}, bool) {
	members, ok := b.levelOrders[level]
	return members, ok
}

// bidLevelAt returns the aggregate quantity of the bid-side level at rank,
// counting from index 0 (lowest stored bid price). Used by Manager's
// LevelAggregate query (spec.md §4.5).
func (b *OrderBook) bidLevelAt(rank int) (Quantity, bool) {
	entry, ok := b.bids.Get(rank)
	if !ok {
		return ZeroQty, false
	}
	return b.pool.get(entry.Level).AggregateQty(), true
}

// LevelSnapshot is a read-only view of one resting price level, used by
// driver-side reporting (cmd/lobreplay) rather than by anything on the
// hot path.
type LevelSnapshot struct {
	Price Price
	Qty   Quantity
}

// BidLevels returns a snapshot of every resting bid level, ordered from
// worst to best price.
func (b *OrderBook) BidLevels() []LevelSnapshot {
	return snapshotSide(b.bids, b.pool)
}

// AskLevels returns a snapshot of every resting ask level, ordered from
// worst to best price.
func (b *OrderBook) AskLevels() []LevelSnapshot {
	return snapshotSide(b.asks, b.pool)
}

func snapshotSide(side *sortedLevels, pool *levelPool) []LevelSnapshot {
	out := make([]LevelSnapshot, 0, side.Len())
	for i := 0; i < side.Len(); i++ {
		entry, _ := side.Get(i)
		level := pool.get(entry.Level)
		out = append(out, LevelSnapshot{Price: level.Price(), Qty: level.AggregateQty()})
	}
	return out
}

// Depth returns the number of resting price levels on each side.
func (b *OrderBook) Depth() (bidLevels, askLevels int) {
	return b.bids.Len(), b.asks.Len()
}

// OrderCount returns the number of orders currently resting on this
// book, across both sides.
func (b *OrderBook) OrderCount() int {
	return len(b.orders)
}
