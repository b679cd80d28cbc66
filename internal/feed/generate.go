package feed

import "math/rand"

// defaultCancelChance mirrors the teacher's cancelChance constant
// (lightsgoout-go-quantcup/db.go): a small fraction of resting orders
// are cancelled rather than left to rest indefinitely.
const defaultCancelChance = 0.05

// maxSyntheticSize bounds generated order sizes, mirroring
// rand.Intn(1000) in the teacher's GenerateRandomOrder.
const maxSyntheticSize = 1000

// GenerateSynthetic produces a deterministic, seedable stream of n
// events in total: AddOrder events priced from midPrice up to
// midPrice+spread ticks (each randomly a bid or an ask), interleaved with
// DeleteOrder events for a defaultCancelChance fraction of
// previously-added, still-live orders —
// generalizing the teacher's random-order-plus-occasional-cancel feed
// generator to the non-crossing engine's six-event contract. Clustering
// near a single mid price exercises the tail-anchored scan spec.md §9
// identifies as the dominant access pattern on real feeds.
func GenerateSynthetic(n int, seed int64, bookID, midPrice, spread uint64) []Event {
	rng := rand.New(rand.NewSource(seed))
	events := make([]Event, 0, n)
	live := make([]uint64, 0, n)
	var nextOrderID uint64 = 1

	for len(events) < n {
		if len(live) > 0 && rng.Float64() < defaultCancelChance {
			idx := rng.Intn(len(live))
			orderID := live[idx]
			live = append(live[:idx], live[idx+1:]...)
			events = append(events, Event{Kind: DeleteOrder, OrderID: orderID})
			continue
		}

		offset := uint64(rng.Int63n(int64(spread) + 1))
		absPrice := midPrice + offset
		if absPrice <= offset { // midPrice is 0, or the sum wrapped around uint64
			absPrice = offset + 1
		}

		orderID := nextOrderID
		nextOrderID++

		events = append(events, Event{
			Kind:     AddOrder,
			OrderID:  orderID,
			BookID:   bookID,
			Shares:   uint64(rng.Intn(maxSyntheticSize) + 1),
			AbsPrice: absPrice,
			IsBid:    rng.Intn(2) == 0,
		})
		live = append(live, orderID)
	}

	return events
}
