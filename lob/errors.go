package lob

import "errors"

// Error taxonomy for the engine. ErrOverflow is the only error returned
// to callers at the engine boundary (by NewOrderID/NewBookID); Manager
// methods return nothing. ErrMissing and ErrDuplicate are absorbed by
// the Manager, which logs them and reports them through its optional
// OnReject hook; ErrUnderflow and ErrInvalidHandle make the Manager panic.
var (
	// ErrOverflow means an external identifier does not fit the engine's
	// width (order ids are 32-bit, book ids are 16-bit). Fatal: the
	// driver should halt ingestion for this feed.
	ErrOverflow = errors.New("lob: identifier overflows engine width")

	// ErrUnderflow means a reduce would take a resting quantity below
	// zero. Fatal: indicates feed corruption or an engine bug.
	ErrUnderflow = errors.New("lob: quantity underflow")

	// ErrInvalidHandle means internal code used a level id that was
	// never allocated or has already been freed. Fatal.
	ErrInvalidHandle = errors.New("lob: invalid level handle")

	// ErrMissing means an event referenced an unknown order id.
	// Recoverable: the event is skipped.
	ErrMissing = errors.New("lob: order id not found")

	// ErrDuplicate means an AddOrder or ReplaceOrder introduced an
	// order id that is already live. Recoverable: the event is ignored.
	ErrDuplicate = errors.New("lob: order id already live")
)
