package feed

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Decode reads a minimal line-oriented feed format, one event per line,
// and returns the decoded events in file order (spec.md §5: "event
// effects are applied in feed order; no reordering"). Blank lines and
// lines starting with '#' are skipped.
//
// Line formats, space-separated:
//
//	A order_id book_id shares abs_price side   side is 'B' or 'S'
//	E order_id shares                          OrderExecuted
//	P order_id shares price                    OrderExecutedWithPrice (price ignored)
//	C order_id shares                          OrderCancelled
//	D order_id                                 DeleteOrder
//	R old_id new_id shares abs_price           ReplaceOrder
func Decode(r io.Reader) ([]Event, error) {
	scanner := bufio.NewScanner(r)
	var events []Event
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ev, err := decodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("feed: line %d: %w", lineNo, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	return events, nil
}

func decodeLine(line string) (Event, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Event{}, fmt.Errorf("empty line")
	}

	tag := fields[0]
	args := fields[1:]

	switch tag {
	case "A":
		if len(args) != 5 {
			return Event{}, fmt.Errorf("AddOrder wants 5 fields, got %d", len(args))
		}
		orderID, bookID, shares, absPrice, err := parseQuad(args[0], args[1], args[2], args[3])
		if err != nil {
			return Event{}, err
		}
		isBid, err := parseSide(args[4])
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: AddOrder, OrderID: orderID, BookID: bookID, Shares: shares, AbsPrice: absPrice, IsBid: isBid}, nil

	case "E":
		if len(args) != 2 {
			return Event{}, fmt.Errorf("OrderExecuted wants 2 fields, got %d", len(args))
		}
		orderID, shares, err := parsePair(args[0], args[1])
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: OrderExecuted, OrderID: orderID, Shares: shares}, nil

	case "P":
		if len(args) != 3 {
			return Event{}, fmt.Errorf("OrderExecutedWithPrice wants 3 fields, got %d", len(args))
		}
		orderID, shares, price, _, err := parseQuad(args[0], args[1], args[2], "0")
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: OrderExecutedWithPrice, OrderID: orderID, Shares: shares, Price: price}, nil

	case "C":
		if len(args) != 2 {
			return Event{}, fmt.Errorf("OrderCancelled wants 2 fields, got %d", len(args))
		}
		orderID, shares, err := parsePair(args[0], args[1])
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: OrderCancelled, OrderID: orderID, Shares: shares}, nil

	case "D":
		if len(args) != 1 {
			return Event{}, fmt.Errorf("DeleteOrder wants 1 field, got %d", len(args))
		}
		orderID, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("order_id: %w", err)
		}
		return Event{Kind: DeleteOrder, OrderID: orderID}, nil

	case "R":
		if len(args) != 4 {
			return Event{}, fmt.Errorf("ReplaceOrder wants 4 fields, got %d", len(args))
		}
		oldID, newID, shares, absPrice, err := parseQuad(args[0], args[1], args[2], args[3])
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: ReplaceOrder, OldOrderID: oldID, NewOrderID: newID, Shares: shares, AbsPrice: absPrice}, nil

	default:
		return Event{}, fmt.Errorf("unknown event tag %q", tag)
	}
}

func parsePair(a, b string) (x, y uint64, err error) {
	x, err = strconv.ParseUint(a, 10, 64)
	if err != nil {
		return 0, 0, err
	}
	y, err = strconv.ParseUint(b, 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func parseQuad(a, b, c, d string) (w, x, y, z uint64, err error) {
	vals := make([]uint64, 4)
	for i, s := range []string{a, b, c, d} {
		vals[i], err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, 0, 0, 0, err
		}
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

func parseSide(s string) (isBid bool, err error) {
	switch s {
	case "B", "b":
		return true, nil
	case "S", "s":
		return false, nil
	default:
		return false, fmt.Errorf("side: want B or S, got %q", s)
	}
}
