package zx0

import "github.com/packlab/zx0/matchsource"

// Flag bits recognized by CompressOptions.Flags.
const (
	// FlagInverted selects the V2 bit ordering: Elias-gamma codes carrying
	// match-offset high bits and the end-of-data sentinel have their
	// mantissa bits complemented. Length codes are never affected.
	FlagInverted uint32 = 1 << iota
)

// CompressOptions configures a Compress call, grounded on the
// Options-struct-plus-constructor pattern this family of compressors uses.
type CompressOptions struct {
	// Flags is a bitmask of Flag* constants.
	Flags uint32

	// MaxWindow caps the effective back-reference distance below MaxOffset.
	// Zero means "use MaxOffset".
	MaxWindow int

	// DictionarySize is the number of leading bytes of the input that are
	// treated as already-known context: available for back-references but
	// never themselves emitted as output.
	DictionarySize int

	// BlockSize is the number of input bytes compressed per block. Zero
	// means DefaultBlockSize.
	BlockSize int

	// MatchSource supplies candidate matches per input position. Nil means
	// a fresh matchsource.NewHashChainSource().
	MatchSource matchsource.Source

	// Progress, if non-nil, is called after each block with the number of
	// input bytes consumed so far.
	Progress func(bytesDone int)
}

// DefaultCompressOptions returns the zero-value-safe baseline: no flags, no
// window restriction, no dictionary, the default block size, and a fresh
// hash-chain match source.
func DefaultCompressOptions() CompressOptions {
	return CompressOptions{
		BlockSize:   DefaultBlockSize,
		MatchSource: matchsource.NewHashChainSource(),
	}
}

func (o CompressOptions) maxOffset() int {
	if o.MaxWindow > 0 && o.MaxWindow < MaxOffset {
		return o.MaxWindow
	}
	return MaxOffset
}

func (o CompressOptions) blockSize() int {
	if o.BlockSize > 0 {
		return o.BlockSize
	}
	return DefaultBlockSize
}

func (o CompressOptions) inverted() bool {
	return o.Flags&FlagInverted != 0
}
