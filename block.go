package zx0

import (
	"fmt"

	"github.com/packlab/zx0/matchsource"
)

// blockFlagFirst and blockFlagLast mirror shrink.c's nBlockFlags bits: bit 0
// marks the first block of a stream (its leading command never gets a
// "literals follow" token bit), bit 1 marks the last (which gets the
// trailing end-of-data sentinel).
const (
	blockFlagFirst = 1 << 0
	blockFlagLast  = 1 << 1
)

// Compressor holds the scratch arenas a Compress run needs, sized once and
// reused across blocks, per spec: "all per-block arrays ... are allocated
// once per compressor at max sizes and reused. Only BlockState persists
// across blocks."
type Compressor struct {
	opts CompressOptions
	src  matchsource.Source

	blockCap int // capacity, in positions, of the arena arrays below

	match    []matchEntry
	rle      []int
	visited  []visitedEntry
	arrival  []arrival
	best     []finalMatch
	nextPos  []int32 // bigram-chain link array for the augmenter

	bigramHead  [65536]int32 // pass A: head of the chain for each 2-byte bigram value, -1 = empty
	offsetCache [2048]int32  // pass B: position+1 last seen requesting offset%2048, 0 = empty

	state BlockState
	Stats Stats
}

// BlockState is the only compressor state that survives from one block to
// the next.
type BlockState struct {
	curRepOffset   int
	pendingLiterals int
	bitByteIdx     int // -1 means "no open byte"
	bitShift       int
}

// NewCompressor allocates a Compressor's scratch arenas for the given
// options. The returned value is safe to reuse across multiple independent
// Compress calls by calling Reset between them.
func NewCompressor(opts CompressOptions) *Compressor {
	if opts.MatchSource == nil {
		opts.MatchSource = matchsource.NewHashChainSource()
	}
	blockCap := opts.blockSize()

	c := &Compressor{
		opts:     opts,
		src:      opts.MatchSource,
		blockCap: blockCap,
		match:    make([]matchEntry, blockCap*NMatchesPerIndex),
		rle:      make([]int, blockCap),
		visited:  make([]visitedEntry, blockCap),
		arrival:  make([]arrival, (blockCap+1)*NArrivalsPerPosition),
		best:     make([]finalMatch, blockCap),
		nextPos:  make([]int32, blockCap),
	}
	c.Reset()
	return c
}

// Reset clears per-run state (rep-offset, bit cursor, stats) so the
// Compressor's arenas can be reused for a new, independent Compress call.
func (c *Compressor) Reset() {
	c.state = BlockState{curRepOffset: 1, bitByteIdx: -1}
	c.Stats = newStats()
	c.src.Reset()
	for i := range c.bigramHead {
		c.bigramHead[i] = -1
	}
}

// GetMaxCompressedSize returns an upper bound on the compressed size of an
// n-byte input, mirroring salvador_get_max_compressed_size: one block's
// worst-case expansion (128 bytes) per 64KiB of input, plus the input size
// itself.
func GetMaxCompressedSize(n int) int {
	return ((n+65535)/65536)*128 + n
}

// Compress compresses src[opts.DictionarySize:] using src[:opts.DictionarySize]
// as pre-seeded dictionary context, returning the compressed bytes.
func Compress(src []byte, opts CompressOptions) ([]byte, Stats, error) {
	c := NewCompressor(opts)
	return c.Compress(src)
}

// Compress runs the full block pipeline (augment -> parse x2 -> reduce ->
// emit) over src, threading rep-offset and bit-cursor state across blocks.
func (c *Compressor) Compress(src []byte) ([]byte, Stats, error) {
	c.Reset()

	dictSize := c.opts.DictionarySize
	if dictSize < 0 || dictSize > len(src) {
		dictSize = 0
	}
	total := len(src) - dictSize
	out := make([]byte, 0, GetMaxCompressedSize(total))

	blockSize := c.blockCap
	pos := dictSize // absolute index into src of the next byte to compress
	indexedUpTo := 0 // how far the match source has already scanned
	first := true

	for {
		end := pos + blockSize
		last := end >= len(src)
		if last {
			end = len(src)
		}

		flags := 0
		if first {
			flags |= blockFlagFirst
		}
		if last {
			flags |= blockFlagLast
		}

		debugf("zx0: block [%d, %d) flags=%#x", pos, end, flags)

		var err error
		out, indexedUpTo, err = c.compressBlock(src, indexedUpTo, pos, end, out, flags)
		if err != nil {
			return nil, c.Stats, err
		}

		debugf("zx0: block done, %d bytes emitted so far", len(out))

		if c.opts.Progress != nil {
			c.opts.Progress(end - dictSize)
		}

		if last {
			break
		}
		pos = end - c.state.pendingLiterals
		first = false
	}

	return out, c.Stats, nil
}

// compressBlock runs one block's pipeline. startOffset/endOffset are
// absolute indices into src; src itself is the "window" (previously
// compressed bytes are simply the same memory at lower indices, exactly as
// in the original, which compresses directly out of its single input
// buffer rather than a separately maintained history copy). indexedUpTo is
// the highest position the match source has already scanned; it returns
// the new high-water mark (endOffset, on success).
func (c *Compressor) compressBlock(window []byte, indexedUpTo, startOffset, endOffset int, out []byte, flags int) ([]byte, int, error) {
	if endOffset-startOffset > c.blockCap {
		return nil, indexedUpTo, fmt.Errorf("zx0: block of %d bytes exceeds configured block size %d", endOffset-startOffset, c.blockCap)
	}

	c.clearMatchTable(startOffset, endOffset)
	if startOffset > indexedUpTo {
		c.src.SkipMatches(window, indexedUpTo, startOffset)
	}
	c.src.FindAllMatches(window, startOffset, endOffset, NMatchesPerIndex, c.opts.maxOffset(), func(pos int, m matchsource.Match) {
		c.addMatch(startOffset, pos, matchEntry{Offset: m.Offset, Length: m.Length, Depth: m.Depth})
	})
	indexedUpTo = endOffset

	buildRLE(window, startOffset, endOffset, c.rle[:endOffset-startOffset])

	c.augmentPassA(window, startOffset, endOffset)

	c.optimizeForward(window, startOffset, endOffset, true, NArrivalsPerPosition/2, flags)

	c.augmentPassB(window, startOffset, endOffset)

	c.optimizeForward(window, startOffset, endOffset, false, NArrivalsPerPosition, flags)

	for pass := 0; pass < 20; pass++ {
		if !c.reduceCommands(window, startOffset, endOffset, flags) {
			break
		}
	}

	out, err := c.writeBlock(window, startOffset, endOffset, out, flags)
	return out, indexedUpTo, err
}

func (c *Compressor) clearMatchTable(startOffset, endOffset int) {
	n := endOffset - startOffset
	for i := 0; i < n*NMatchesPerIndex; i++ {
		c.match[i] = matchEntry{}
	}
	for i := 0; i < n; i++ {
		c.nextPos[i] = -1
	}
	// nextPos is block-relative, so chain heads from an earlier block must
	// not leak into this one.
	for i := range c.bigramHead {
		c.bigramHead[i] = -1
	}
}

// addMatch inserts m into position pos's match table (relative to
// startOffset), at the first empty slot, dropping it silently if the table
// for that position is already full.
func (c *Compressor) addMatch(startOffset, pos int, m matchEntry) bool {
	base := (pos - startOffset) * NMatchesPerIndex
	for s := 0; s < NMatchesPerIndex; s++ {
		if c.match[base+s].empty() {
			c.match[base+s] = m
			return true
		}
		if c.match[base+s].Offset == m.Offset {
			if m.Length > c.match[base+s].Length && !m.Speculative {
				c.match[base+s].Length = m.Length
				c.match[base+s].Speculative = false
			}
			return true
		}
	}
	return false
}

func (c *Compressor) matchSlots(startOffset, pos int) []matchEntry {
	base := (pos - startOffset) * NMatchesPerIndex
	return c.match[base : base+NMatchesPerIndex]
}
