package matchsource

import (
	"hash"

	"github.com/pierrec/xxHash/xxHash32"
)

const (
	tableBits = 17
	tableSize = 1 << tableBits
	tableMask = tableSize - 1

	// maxChainHops bounds how many positions along a hash chain are
	// examined before giving up on a position, to keep pathological
	// (highly repetitive) inputs from making enumeration quadratic.
	maxChainHops = 96

	// maxMatchExtend caps how far a single candidate is greedily extended.
	// It is well above the 128-byte cap the augmenter uses for its own
	// supplementary matches.
	maxMatchExtend = 4096
)

// HashChainSource is the default, self-contained Source implementation. It
// indexes every 4-byte window of input with an xxHash32 checksum and walks
// the resulting hash chain to find candidate offsets, in the same spirit as
// the teacher package's own HashChain matcher (github.com/andybalholm/pack's
// chain.go) but emitting matches through the Source interface instead of
// pack.Match.
type HashChainSource struct {
	// SearchLen overrides maxChainHops when non-zero.
	SearchLen int

	table  [tableSize]int32 // 1-based position of the most recent occurrence of a hash, 0 = none
	prev   []int32          // prev[pos] = 1-based position of the previous occurrence sharing pos's hash
	hasher hash.Hash32
}

// NewHashChainSource returns a ready-to-use HashChainSource.
func NewHashChainSource() *HashChainSource {
	return &HashChainSource{hasher: xxHash32.New(0)}
}

func (h *HashChainSource) Reset() {
	h.table = [tableSize]int32{}
	h.prev = h.prev[:0]
	if h.hasher == nil {
		h.hasher = xxHash32.New(0)
	}
	h.hasher.Reset()
}

func (h *HashChainSource) ensure(n int) {
	if n <= len(h.prev) {
		return
	}
	if n > cap(h.prev) {
		grown := make([]int32, n, n+n/2+64)
		copy(grown, h.prev)
		h.prev = grown
	} else {
		h.prev = h.prev[:n]
	}
}

func (h *HashChainSource) hashAt(window []byte, pos int) uint32 {
	h.hasher.Reset()
	h.hasher.Write(window[pos : pos+4])
	return h.hasher.Sum32() & tableMask
}

// index records window[pos]'s hash chain entry without searching it.
func (h *HashChainSource) index(window []byte, pos, limit int) {
	if pos+4 > limit {
		return
	}
	key := h.hashAt(window, pos)
	h.prev[pos] = h.table[key]
	h.table[key] = int32(pos + 1)
}

func (h *HashChainSource) SkipMatches(window []byte, from, to int) {
	h.ensure(to)
	for pos := from; pos < to; pos++ {
		h.index(window, pos, to)
	}
}

func (h *HashChainSource) FindAllMatches(window []byte, from, to, maxPerPosition, maxOffset int, emit func(pos int, m Match)) {
	h.ensure(to)
	searchLen := h.SearchLen
	if searchLen <= 0 {
		searchLen = maxChainHops
	}

	var seenOffsets [64]uint32

	for pos := from; pos < to; pos++ {
		if pos+4 <= to {
			count := 0
			key := h.hashAt(window, pos)
			cand := h.table[key]
			hops := 0

			for cand != 0 && hops < searchLen && count < maxPerPosition {
				candPos := int(cand - 1)
				cand = h.prev[candPos]
				hops++

				offset := pos - candPos
				if offset < 1 || offset > maxOffset {
					continue
				}

				dup := false
				for i := 0; i < count && i < len(seenOffsets); i++ {
					if seenOffsets[i] == uint32(offset) {
						dup = true
						break
					}
				}
				if dup {
					continue
				}

				length := extendMatch(window, candPos, pos, to)
				if length < 2 {
					continue
				}
				if count < len(seenOffsets) {
					seenOffsets[count] = uint32(offset)
				}
				emit(pos, Match{Offset: uint32(offset), Length: uint16(length)})
				count++
			}
		}

		h.index(window, pos, to)
	}
}

func extendMatch(window []byte, matchPos, pos, limit int) int {
	max := limit - pos
	if max > maxMatchExtend {
		max = maxMatchExtend
	}
	n := 0
	for n < max && window[matchPos+n] == window[pos+n] {
		n++
	}
	return n
}
