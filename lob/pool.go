package lob

import "fmt"

// defaultLevelCapacity is a soft hint for the pool's initial backing
// array size (spec.md §4.1: "a soft hint; allocation must still succeed
// beyond it via growth").
const defaultLevelCapacity = 1024

// Level represents a single price tick on one side of one book: its
// price and the sum of resting quantities at that price (spec.md §3,
// invariant I1). Accessors mirror the original Rust implementation's
// price()/size() encapsulation (see SPEC_FULL.md, supplemented features).
type Level struct {
	price Price
	qty   Quantity
}

// Price returns the level's price.
func (l *Level) Price() Price { return l.price }

// AggregateQty returns the level's current aggregate quantity.
func (l *Level) AggregateQty() Quantity { return l.qty }

func (l *Level) incr(amount Quantity) {
	l.qty = l.qty.Add(amount)
}

func (l *Level) decr(amount Quantity) error {
	next, err := l.qty.Sub(amount)
	if err != nil {
		return err
	}
	l.qty = next
	return nil
}

// levelPool is a slab allocator for Level records. Levels are addressed
// by stable LevelID handles rather than pointers so that growing the
// backing array never invalidates a handle held elsewhere (spec.md §9:
// "arena + index, not pointer graphs").
type levelPool struct {
	slots     []Level
	allocated []bool
	freeList  []LevelID // LIFO, for cache locality on reuse
}

func newLevelPool(capacityHint int) *levelPool {
	if capacityHint <= 0 {
		capacityHint = defaultLevelCapacity
	}
	return &levelPool{
		slots:     make([]Level, 0, capacityHint),
		allocated: make([]bool, 0, capacityHint),
	}
}

// alloc returns a handle to an uninitialized slot, preferring recently
// freed slots before growing the backing array.
func (p *levelPool) alloc() LevelID {
	if n := len(p.freeList); n > 0 {
		id := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		p.allocated[id] = true
		p.slots[id] = Level{}
		return id
	}

	id := LevelID(len(p.slots))
	p.slots = append(p.slots, Level{})
	p.allocated = append(p.allocated, true)
	return id
}

// setLevel stores the record at the identified slot.
func (p *levelPool) setLevel(id LevelID, level Level) error {
	if !p.isLive(id) {
		return fmt.Errorf("%w: set on id %d", ErrInvalidHandle, id)
	}
	p.slots[id] = level
	return nil
}

// get returns a mutable pointer to the slot. Panics if id was never
// allocated or has been freed — per spec.md §4.1 this is a programming
// error, not a recoverable condition.
func (p *levelPool) get(id LevelID) *Level {
	if !p.isLive(id) {
		panic(fmt.Errorf("%w: get on id %d", ErrInvalidHandle, id))
	}
	return &p.slots[id]
}

// free returns the slot to the free list. Subsequent get on this id is
// undefined until it is re-allocated.
func (p *levelPool) free(id LevelID) error {
	if !p.isLive(id) {
		return fmt.Errorf("%w: free on id %d", ErrInvalidHandle, id)
	}
	p.allocated[id] = false
	p.freeList = append(p.freeList, id)
	return nil
}

func (p *levelPool) isLive(id LevelID) bool {
	return int(id) >= 0 && int(id) < len(p.allocated) && p.allocated[id]
}
