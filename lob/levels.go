package lob

// PriceLevelEntry pairs a price with the level-id it addresses. The
// duplicated price lets the sorted sequence compare entries without
// dereferencing the pool (spec.md §3).
type PriceLevelEntry struct {
	Price Price
	Level LevelID
}

// sortedLevels is the per-side, per-book ordered sequence of
// PriceLevelEntry values. Entries are held in strictly ascending order
// of the signed Price (spec.md §4.2, invariant I3); because ask prices
// are stored negated, the tail of the sequence is always the top of
// book for either side. Insertion and removal are linear-shift, which
// is the reference behavior for the tail-anchored scan in §4.3 — market
// events cluster near the top of book, so near-tail mutations dominate
// and a slice outperforms a tree for this access pattern (spec.md §9).
type sortedLevels struct {
	entries []PriceLevelEntry
}

func newSortedLevels() *sortedLevels {
	return &sortedLevels{}
}

// Len returns the number of resting price levels on this side.
func (s *sortedLevels) Len() int {
	return len(s.entries)
}

// Get returns the entry at rank i, counting from the lowest stored
// price (index 0). The tail (index Len()-1) is the best price.
func (s *sortedLevels) Get(i int) (PriceLevelEntry, bool) {
	if i < 0 || i >= len(s.entries) {
		return PriceLevelEntry{}, false
	}
	return s.entries[i], true
}

// GetMut returns a pointer to the entry at rank i for in-place
// mutation, or nil if i is out of range.
func (s *sortedLevels) GetMut(i int) *PriceLevelEntry {
	if i < 0 || i >= len(s.entries) {
		return nil
	}
	return &s.entries[i]
}

// Insert places entry at position, shifting the tail to make room.
// Callers are responsible for choosing a position that preserves
// ascending order (see locateInsertion).
func (s *sortedLevels) Insert(position int, entry PriceLevelEntry) {
	if position < 0 {
		position = 0
	}
	if position > len(s.entries) {
		position = len(s.entries)
	}
	s.entries = append(s.entries, PriceLevelEntry{})
	copy(s.entries[position+1:], s.entries[position:])
	s.entries[position] = entry
}

// Remove locates the entry at the exact price and removes it, shifting
// the tail down. Reports whether a matching entry was found.
func (s *sortedLevels) Remove(price Price) bool {
	for i, e := range s.entries {
		if e.Price == price {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the entry at the exact price, if any.
func (s *sortedLevels) Find(price Price) (PriceLevelEntry, bool) {
	for _, e := range s.entries {
		if e.Price == price {
			return e, true
		}
	}
	return PriceLevelEntry{}, false
}

// locateInsertion implements the tail-anchored scan of spec.md §4.3: it
// scans from the best price toward the worst, stopping either at an
// exact price match (existing level to join) or at the first entry
// whose price sorts below the target (the new level's insertion point).
// An empty side, or a price below every existing entry, both resolve to
// position 0.
func (s *sortedLevels) locateInsertion(price Price) (position int, existing *PriceLevelEntry) {
	position = len(s.entries)
	for position > 0 {
		position--
		cur := &s.entries[position]
		if cur.Price == price {
			return position, cur
		}
		if cur.Price < price {
			return position + 1, nil
		}
	}
	return 0, nil
}
