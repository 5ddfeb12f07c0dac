package zx0

// Tunable constants governing the ZX0 wire format and the parser's working
// set. These mirror the constants named in the original libsalvador
// shrink.c (MIN_ENCODED_MATCH_SIZE, NARRIVALS_PER_POSITION, etc.), adapted
// to defaults that keep the Go arena-allocated arrays a reasonable size.
const (
	// MinEncodedMatchSize is the shortest match length the format can encode.
	MinEncodedMatchSize = 2

	// TokenSize is the width, in bits, of the leading command-kind bit.
	TokenSize = 1

	// MinOffset is the smallest legal back-reference distance.
	MinOffset = 1

	// MaxOffset is the largest back-reference distance the wire format can
	// express, overridable downward by CompressOptions.MaxWindow.
	MaxOffset = 32767

	// LeaveAloneMatchSize is the length at or above which the parser only tries
	// the match's full length instead of every shorter truncation, to avoid
	// quadratic blowup on long matches.
	LeaveAloneMatchSize = 16

	// lcpMax bounds how far a single greedy extension (rep-match or
	// forward rep candidate) can run past its starting position.
	lcpMax = 65536

	// maxVarLen bounds the length of a match the reducer's join rule may
	// produce.
	maxVarLen = 1 << 24

	// NArrivalsPerPosition is the number of DP states kept per input
	// position on the final parser pass.
	NArrivalsPerPosition = 16

	// NMatchesPerIndex is the maximum number of candidate matches kept per
	// input position in the match table.
	NMatchesPerIndex = 16

	// DefaultBlockSize is used when CompressOptions.BlockSize is zero.
	DefaultBlockSize = 64 * 1024

	// eodSentinel is the reserved high-offset Elias value that marks
	// end-of-data in the emitted stream.
	eodSentinel = 256
)

// matchEntry is one candidate (offset, length) pair in a position's match
// table. Depth encodes "this entry also implicitly represents the offset
// (offset - depth)"; Speculative marks entries synthesized by the augmenter
// before their full length was confirmed (the original's depth == 0x4000
// sentinel, kept here as its own field rather than overloading Depth, per
// the two-field split suggested for a safe-indexing language).
type matchEntry struct {
	Offset      uint32
	Length      uint16
	Depth       uint16
	Speculative bool
}

// empty reports whether this slot terminates the position's match list.
func (m matchEntry) empty() bool {
	return m.Length == 0
}

// finalMatch is the parser's (and reducer's) per-position decision: how
// position i of the block is covered in the chosen parse.
//
// Length == 0 means the position is a literal.
// Length == -1 means the position was consumed by an earlier multi-byte
// match (reducer scratch, written when two matches are joined).
// Length >= MinEncodedMatchSize with Offset > 0 means a match starts here.
type finalMatch struct {
	Offset uint32
	Length int32
}
