package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeAllEventKinds(t *testing.T) {
	input := `
# a comment, and a blank line above
A 1 1 800 500 B
E 1 50
P 1 10 500
C 1 5
D 1
R 1 2 40 700
`
	events, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, events, 6)

	require.Equal(t, Event{Kind: AddOrder, OrderID: 1, BookID: 1, Shares: 800, AbsPrice: 500, IsBid: true}, events[0])
	require.Equal(t, Event{Kind: OrderExecuted, OrderID: 1, Shares: 50}, events[1])
	require.Equal(t, Event{Kind: OrderExecutedWithPrice, OrderID: 1, Shares: 10, Price: 500}, events[2])
	require.Equal(t, Event{Kind: OrderCancelled, OrderID: 1, Shares: 5}, events[3])
	require.Equal(t, Event{Kind: DeleteOrder, OrderID: 1}, events[4])
	require.Equal(t, Event{Kind: ReplaceOrder, OldOrderID: 1, NewOrderID: 2, Shares: 40, AbsPrice: 700}, events[5])
}

func TestDecodeRejectsUnknownTag(t *testing.T) {
	_, err := Decode(strings.NewReader("Z 1 2 3"))
	require.Error(t, err)
}

func TestDecodeRejectsMalformedSide(t *testing.T) {
	_, err := Decode(strings.NewReader("A 1 1 800 500 X"))
	require.Error(t, err)
}

func TestDecodeRejectsWrongArity(t *testing.T) {
	_, err := Decode(strings.NewReader("A 1 1 800 500"))
	require.Error(t, err)
}
