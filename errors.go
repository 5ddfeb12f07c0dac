package zx0

import "errors"

// Sentinel errors returned by Compress and its internal stages, grounded on
// the dedicated errors.go pattern used for compressor packages in this
// family (one file, one var block, errors.New rather than ad hoc strings).
var (
	// ErrInvalidOffset is returned when the parser or reducer produced a
	// match offset outside [MinOffset, MaxOffset] or the configured window.
	// This indicates an internal invariant violation rather than bad input.
	ErrInvalidOffset = errors.New("zx0: match offset out of range")

	// ErrFirstCommandNotLiteral is returned if the first command of the
	// first block is not a literal run, which ZX0's wire format requires.
	ErrFirstCommandNotLiteral = errors.New("zx0: first command of stream is not a literal run")
)
