// Package feed owns the external input event contract of spec.md §6 —
// the typed events an ITCH-style parser collaborator would produce —
// plus a minimal line-oriented decoder and a synthetic generator for
// driving the engine without a live feed. Neither the decoder nor the
// generator is part of the core; both exist only to exercise
// cmd/lobreplay.
package feed

import (
	"fmt"

	"github.com/voyager-lob/lobengine/lob"
)

// Kind identifies which of the six spec.md §6 events an Event carries.
type Kind int

const (
	AddOrder Kind = iota
	OrderExecuted
	OrderExecutedWithPrice
	OrderCancelled
	DeleteOrder
	ReplaceOrder
)

func (k Kind) String() string {
	switch k {
	case AddOrder:
		return "AddOrder"
	case OrderExecuted:
		return "OrderExecuted"
	case OrderExecutedWithPrice:
		return "OrderExecutedWithPrice"
	case OrderCancelled:
		return "OrderCancelled"
	case DeleteOrder:
		return "DeleteOrder"
	case ReplaceOrder:
		return "ReplaceOrder"
	default:
		return "Unknown"
	}
}

// Event is the union of the six spec.md §6 input events. Only the
// fields relevant to Kind are populated; this mirrors the parser
// collaborator's output contract rather than the engine's internal
// representation.
type Event struct {
	Kind Kind

	OrderID    uint64
	BookID     uint64
	Shares     uint64
	AbsPrice   uint64
	IsBid      bool
	OldOrderID uint64
	NewOrderID uint64
	// Price is carried by OrderExecutedWithPrice but ignored by the
	// engine (spec.md §6 table).
	Price uint64
}

// Apply converts ids to the engine's native width and dispatches to the
// matching Manager method. An id that does not fit the engine's width
// returns lob.ErrOverflow, which spec.md §7 calls fatal; the caller
// (cmd/lobreplay) is expected to halt ingestion on this error.
func (e Event) Apply(m *lob.Manager) error {
	switch e.Kind {
	case AddOrder:
		orderID, err := lob.NewOrderID(e.OrderID)
		if err != nil {
			return err
		}
		bookID, err := lob.NewBookID(e.BookID)
		if err != nil {
			return err
		}
		m.AddOrder(orderID, bookID, lob.NewQuantity(e.Shares), e.AbsPrice, e.IsBid)
		return nil

	case OrderExecuted, OrderExecutedWithPrice:
		orderID, err := lob.NewOrderID(e.OrderID)
		if err != nil {
			return err
		}
		m.ExecuteOrder(orderID, lob.NewQuantity(e.Shares))
		return nil

	case OrderCancelled:
		orderID, err := lob.NewOrderID(e.OrderID)
		if err != nil {
			return err
		}
		m.CancelOrder(orderID, lob.NewQuantity(e.Shares))
		return nil

	case DeleteOrder:
		orderID, err := lob.NewOrderID(e.OrderID)
		if err != nil {
			return err
		}
		m.RemoveOrder(orderID)
		return nil

	case ReplaceOrder:
		oldID, err := lob.NewOrderID(e.OldOrderID)
		if err != nil {
			return err
		}
		newID, err := lob.NewOrderID(e.NewOrderID)
		if err != nil {
			return err
		}
		m.ReplaceOrder(oldID, newID, lob.NewQuantity(e.Shares), e.AbsPrice)
		return nil

	default:
		return fmt.Errorf("feed: unknown event kind %d", e.Kind)
	}
}
