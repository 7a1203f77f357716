package slotmap

import "errors"

// Error classes surfaced by checked access paths and by Ref. The
// boolean paths (TryGet, Erase) never surface these; they just report
// failure.
var (
	// ErrInvalidKey means a key's slot index was out of table bounds or
	// its generation no longer matches the slot: the value it named is
	// gone (or never existed).
	ErrInvalidKey = errors.New("slotmap: invalid key")

	// ErrIndexOutOfRange means a dense index i was not in [0, Size()).
	ErrIndexOutOfRange = errors.New("slotmap: index out of range")

	// ErrNilSlotMap means a Ref was never bound to a map. Kept distinct
	// from ErrInvalidKey so callers can tell "wrong key" from "wrapper
	// never bound".
	ErrNilSlotMap = errors.New("slotmap: nil slot map")
)
