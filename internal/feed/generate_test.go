package feed

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSyntheticIsDeterministic(t *testing.T) {
	a := GenerateSynthetic(200, 42, 1, 1000, 50)
	b := GenerateSynthetic(200, 42, 1, 1000, 50)
	require.Equal(t, a, b)
}

func TestGenerateSyntheticProducesOnlyKnownKinds(t *testing.T) {
	events := GenerateSynthetic(500, 7, 3, 5000, 200)
	require.Len(t, events, 500)

	sawAdd := false
	sawDelete := false
	for _, e := range events {
		switch e.Kind {
		case AddOrder:
			sawAdd = true
			require.Equal(t, uint64(3), e.BookID)
			require.GreaterOrEqual(t, e.AbsPrice, uint64(5000))
			require.LessOrEqual(t, e.AbsPrice, uint64(5200))
		case DeleteOrder:
			sawDelete = true
		default:
			t.Fatalf("unexpected kind %v from generator", e.Kind)
		}
	}
	require.True(t, sawAdd)
	require.True(t, sawDelete, "with 500 events the 5%% cancel chance should fire at least once")
}
