package lob

import (
	"fmt"

	"cosmossdk.io/math"
)

// Quantity is a non-negative resting size. It wraps
// cosmossdk.io/math.Uint, whose Add/Sub are saturating-free: Sub panics
// on underflow rather than wrapping. Values are bounded to 256 bits
// (at most 2^256-1); Add panics if a sum exceeds that bound. Sub here
// checks for underflow before calling math.Uint.Sub and returns
// ErrUnderflow instead of letting a raw panic cross the package
// boundary.
type Quantity struct {
	u math.Uint
}

// ZeroQty is the additive identity.
var ZeroQty = Quantity{u: math.ZeroUint()}

// NewQuantity builds a Quantity from a non-negative machine integer.
func NewQuantity(v uint64) Quantity {
	return Quantity{u: math.NewUint(v)}
}

// IsZero reports whether the quantity is exactly zero.
func (q Quantity) IsZero() bool {
	return q.u.IsZero()
}

// Uint64 returns the quantity as a uint64; it panics if the value does
// not fit in 64 bits. Callers that need values beyond that range should
// keep working with Quantity.
func (q Quantity) Uint64() uint64 {
	return q.u.Uint64()
}

// Add returns q+other. It never fails: addition cannot underflow.
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{u: q.u.Add(other.u)}
}

// Sub returns q-other, or ErrUnderflow if other > q.
func (q Quantity) Sub(other Quantity) (result Quantity, err error) {
	if other.u.GT(q.u) {
		return Quantity{}, fmt.Errorf("%w: %s - %s", ErrUnderflow, q.u.String(), other.u.String())
	}
	return Quantity{u: q.u.Sub(other.u)}, nil
}

// Cmp compares two quantities, returning -1, 0, or 1.
func (q Quantity) Cmp(other Quantity) int {
	return q.u.BigInt().Cmp(other.u.BigInt())
}

func (q Quantity) String() string {
	return q.u.String()
}
