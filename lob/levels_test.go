package lob

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortedLevelsInsertOrdering(t *testing.T) {
	s := newSortedLevels()

	// Insert 500, then 1500 (new tail/top), then 1400 and 1300 which
	// slot in between (spec.md §8 Scenario C).
	pos, existing := s.locateInsertion(Price(500))
	require.Nil(t, existing)
	require.Equal(t, 0, pos)
	s.Insert(pos, PriceLevelEntry{Price: 500, Level: 0})

	pos, existing = s.locateInsertion(Price(1500))
	require.Nil(t, existing)
	require.Equal(t, 1, pos)
	s.Insert(pos, PriceLevelEntry{Price: 1500, Level: 1})

	pos, existing = s.locateInsertion(Price(1400))
	require.Nil(t, existing)
	require.Equal(t, 1, pos)
	s.Insert(pos, PriceLevelEntry{Price: 1400, Level: 2})

	pos, existing = s.locateInsertion(Price(1300))
	require.Nil(t, existing)
	require.Equal(t, 1, pos)
	s.Insert(pos, PriceLevelEntry{Price: 1300, Level: 3})

	require.Equal(t, 4, s.Len())
	prices := []Price{}
	for i := 0; i < s.Len(); i++ {
		e, _ := s.Get(i)
		prices = append(prices, e.Price)
	}
	require.Equal(t, []Price{500, 1300, 1400, 1500}, prices)
}

func TestSortedLevelsExactMatchJoinsExisting(t *testing.T) {
	s := newSortedLevels()
	s.Insert(0, PriceLevelEntry{Price: 500, Level: 7})

	pos, existing := s.locateInsertion(Price(500))
	require.NotNil(t, existing)
	require.Equal(t, LevelID(7), existing.Level)
	_ = pos
}

func TestSortedLevelsRemoveAndFind(t *testing.T) {
	s := newSortedLevels()
	s.Insert(0, PriceLevelEntry{Price: 100, Level: 1})
	s.Insert(1, PriceLevelEntry{Price: 200, Level: 2})

	_, ok := s.Find(Price(200))
	require.True(t, ok)

	require.True(t, s.Remove(Price(100)))
	require.Equal(t, 1, s.Len())
	_, ok = s.Find(Price(100))
	require.False(t, ok)

	require.False(t, s.Remove(Price(999)))
}

func TestSortedLevelsEmptySideInsertsAtZero(t *testing.T) {
	s := newSortedLevels()
	pos, existing := s.locateInsertion(Price(500))
	require.Equal(t, 0, pos)
	require.Nil(t, existing)
}
