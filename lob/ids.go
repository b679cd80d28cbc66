package lob

import "fmt"

// OrderID is an opaque identifier, unique across all currently-resting
// orders. After a delete or execute-to-zero, the id may be reused by a
// later add — the feed is the source of truth for uniqueness while an
// order is alive.
type OrderID uint32

// BookID is an opaque identifier, one per instrument.
type BookID uint16

// LevelID is a slot handle issued by the pooled level store. It is
// stable for the lifetime of the level it addresses and is never
// recycled while referenced.
type LevelID uint32

// maxOrderID and maxBookID are the engine's native widths (spec.md §6).
const (
	maxOrderID = uint64(^uint32(0))
	maxBookID  = uint64(^uint16(0))
)

// NewOrderID converts a feed-supplied identifier into the engine's
// native width, returning ErrOverflow if it does not fit.
func NewOrderID(raw uint64) (OrderID, error) {
	if raw > maxOrderID {
		return 0, fmt.Errorf("%w: order id %d exceeds 32 bits", ErrOverflow, raw)
	}
	return OrderID(raw), nil
}

// NewBookID converts a feed-supplied identifier into the engine's
// native width, returning ErrOverflow if it does not fit.
func NewBookID(raw uint64) (BookID, error) {
	if raw > maxBookID {
		return 0, fmt.Errorf("%w: book id %d exceeds 16 bits", ErrOverflow, raw)
	}
	return BookID(raw), nil
}

// Price is a signed tick count. A positive value denotes a bid price; a
// negative value denotes an ask price whose economic price is its
// absolute value. Ordering is numeric on the signed value, so both
// sides can share a single comparator (spec.md §3, §9).
type Price int64

// NewBidPrice encodes an absolute tick price as a bid.
func NewBidPrice(absPrice uint64) Price {
	return Price(absPrice)
}

// NewAskPrice encodes an absolute tick price as an ask (negated).
func NewAskPrice(absPrice uint64) Price {
	return Price(-int64(absPrice))
}

// IsBid reports whether this price denotes a bid side. The sign
// inversion is applied only at the input boundary (NewAskPrice); callers
// downstream must never re-negate a Price.
func (p Price) IsBid() bool {
	return p >= 0
}

// Abs returns the economic (unsigned) tick price.
func (p Price) Abs() uint64 {
	if p < 0 {
		return uint64(-p)
	}
	return uint64(p)
}

func (p Price) String() string {
	side := "bid"
	if !p.IsBid() {
		side = "ask"
	}
	return fmt.Sprintf("%s@%d", side, p.Abs())
}

// Side is the resting side of an order, derivable from its level's
// price but useful as a standalone value in the registry and in query
// results.
type Side int

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Bid {
		return "Bid"
	}
	return "Ask"
}
