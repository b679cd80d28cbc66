// Package lob implements an in-memory limit order book engine for
// replaying exchange market-data feeds. It mirrors order-lifecycle
// events (add, execute, cancel, delete, replace) against a set of
// per-instrument books without crossing orders itself; the feed is
// trusted as the source of truth.
package lob
