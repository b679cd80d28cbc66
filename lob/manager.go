package lob

import (
	"errors"
	"log"
)

// Manager is the top-level façade: it owns the global order registry
// and the collection of order books keyed by book id, and translates
// externally delivered lifecycle events into the book-level state
// machine transitions of spec.md §4 (spec.md §2, §4.5).
//
// Manager is single-threaded cooperative per spec.md §5: one event must
// be processed to completion before the next begins, and a Manager
// shared across goroutines needs external synchronization.
type Manager struct {
	registry          *orderRegistry
	books             map[BookID]*OrderBook
	levelCapacityHint int

	// OnReject, if set, is called whenever a lifecycle event is skipped
	// as recoverable (duplicate add, unknown order id) instead of
	// applied. reason is a short, stable label suitable for a metrics
	// dimension (e.g. "duplicate_order", "unknown_order"). Callers that
	// don't need this signal may leave it nil.
	OnReject func(reason string)
}

// NewManager creates an empty Manager with the default per-book level
// capacity hint.
func NewManager() *Manager {
	return NewManagerWithCapacity(defaultLevelCapacity)
}

// NewManagerWithCapacity creates an empty Manager whose lazily-created
// books pre-size their level pools to levelCapacity (supplemented
// feature, see SPEC_FULL.md).
func NewManagerWithCapacity(levelCapacity int) *Manager {
	return &Manager{
		registry:          newOrderRegistry(),
		books:             make(map[BookID]*OrderBook),
		levelCapacityHint: levelCapacity,
	}
}

// reject logs a recoverable skip and, if a caller installed OnReject,
// reports reason through it.
func (m *Manager) reject(reason, format string, args ...any) {
	log.Printf(format, args...)
	if m.OnReject != nil {
		m.OnReject(reason)
	}
}

func (m *Manager) bookFor(id BookID) *OrderBook {
	book, ok := m.books[id]
	if !ok {
		book = NewOrderBookWithCapacity(m.levelCapacityHint)
		m.books[id] = book
	}
	return book
}

// AddOrder inserts a new resting order (spec.md §4.3, §4.5). absPrice is
// the unsigned economic tick price; isBid selects the side, which the
// Manager encodes into the signed Price at this boundary. A duplicate
// orderID is logged and ignored (ErrDuplicate is recoverable).
func (m *Manager) AddOrder(orderID OrderID, bookID BookID, qty Quantity, absPrice uint64, isBid bool) {
	if m.registry.has(orderID) {
		m.reject("duplicate_order", "lob: ignoring AddOrder for already-live order %d", orderID)
		return
	}

	var price Price
	if isBid {
		price = NewBidPrice(absPrice)
	} else {
		price = NewAskPrice(absPrice)
	}

	book := m.bookFor(bookID)
	if err := book.Insert(orderID, price, qty); err != nil {
		if errors.Is(err, ErrDuplicate) {
			m.reject("duplicate_order", "lob: %v", err)
			return
		}
		panic(err)
	}

	side := Bid
	if !isBid {
		side = Ask
	}
	resting, _ := book.orders[orderID]
	m.registry.put(orderID, registryEntry{book: bookID, level: resting.level, qty: qty, side: side})
}

// ExecuteOrder reduces a resting order by qty, fully removing it if the
// remaining quantity reaches zero (spec.md §4.5). An unknown order id is
// logged and ignored.
func (m *Manager) ExecuteOrder(orderID OrderID, qty Quantity) {
	m.reduce(orderID, qty)
}

// CancelOrder has the same engine-level effect as ExecuteOrder; the
// distinction between the two only matters to external analytics, not
// to book state (spec.md §4.5, §9 open questions).
func (m *Manager) CancelOrder(orderID OrderID, qty Quantity) {
	m.reduce(orderID, qty)
}

func (m *Manager) reduce(orderID OrderID, qty Quantity) {
	entry, ok := m.registry.get(orderID)
	if !ok {
		m.reject("unknown_order", "lob: ignoring reduce for unknown order %d", orderID)
		return
	}

	book := m.books[entry.book]
	remaining, err := entry.qty.Sub(qty)
	if err != nil {
		panic(err)
	}

	if err := book.Reduce(orderID, qty); err != nil {
		if errors.Is(err, ErrMissing) {
			m.reject("unknown_order", "lob: %v", err)
			return
		}
		panic(err)
	}

	if remaining.IsZero() {
		m.registry.delete(orderID)
		return
	}
	entry.qty = remaining
	m.registry.put(orderID, entry)
}

// RemoveOrder fully removes an order regardless of remaining quantity
// (delete event, spec.md §4.4, §4.5). An unknown order id is logged and
// ignored (spec.md scenario F).
func (m *Manager) RemoveOrder(orderID OrderID) {
	entry, ok := m.registry.get(orderID)
	if !ok {
		m.reject("unknown_order", "lob: ignoring DeleteOrder for unknown order %d", orderID)
		return
	}

	book := m.books[entry.book]
	if err := book.Remove(orderID); err != nil {
		if errors.Is(err, ErrMissing) {
			m.reject("unknown_order", "lob: %v", err)
			return
		}
		panic(err)
	}
	m.registry.delete(orderID)
}

// ReplaceOrder is semantically remove(oldID) followed by
// add(newID, qty, absPrice) on the same book and side the old order was
// on (spec.md §4.4). If oldID does not exist the event is ignored and
// logged. If newID is already live (and is not oldID itself) the whole
// event is ignored and logged as a duplicate, leaving oldID resting.
func (m *Manager) ReplaceOrder(oldID, newID OrderID, qty Quantity, absPrice uint64) {
	entry, ok := m.registry.get(oldID)
	if !ok {
		m.reject("unknown_order", "lob: ignoring ReplaceOrder for unknown order %d", oldID)
		return
	}
	if newID != oldID && m.registry.has(newID) {
		m.reject("duplicate_order", "lob: ignoring ReplaceOrder to already-live order %d", newID)
		return
	}

	isBid := entry.side == Bid
	bookID := entry.book

	book := m.books[bookID]
	if err := book.Remove(oldID); err != nil {
		panic(err)
	}
	m.registry.delete(oldID)

	m.AddOrder(newID, bookID, qty, absPrice, isBid)
}

// LevelAggregate returns the aggregate quantity resting at the given
// rank on the bid side of bookID, counting from index 0 (spec.md §4.5:
// "level_capacity(book_id, rank)"). Missing books or out-of-range ranks
// yield zero.
func (m *Manager) LevelAggregate(bookID BookID, rank int) Quantity {
	book, ok := m.books[bookID]
	if !ok {
		return ZeroQty
	}
	qty, ok := book.bidLevelAt(rank)
	if !ok {
		return ZeroQty
	}
	return qty
}

// OrdersAtLevel returns the set of order ids resting at level on
// bookID. Supplemented from original_source/, see SPEC_FULL.md.
func (m *Manager) OrdersAtLevel(bookID BookID, level LevelID) (map[OrderID]struct{}, bool) {
	book, ok := m.books[bookID]
	if !ok {
		return nil, false
	}
	return book.OrdersAtLevel(level)
}

// BookCount returns the number of instruments the Manager has created
// books for (used by tests and diagnostics).
func (m *Manager) BookCount() int {
	return len(m.books)
}

// Books returns the live book-id -> OrderBook set, for driver-side
// reporting and snapshotting (cmd/lobreplay). Callers must not mutate
// the returned books directly; go through Manager methods.
func (m *Manager) Books() map[BookID]*OrderBook {
	return m.books
}
