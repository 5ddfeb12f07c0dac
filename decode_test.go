package zx0

// A minimal reference decoder for the wire format this package emits, used
// only by this package's own round-trip tests. Decompression is out of
// scope for the production API (see doc.go); this exists purely so the
// test suite has something to check emitted bytes against, the same way
// the teacher's lz4/zstd tests decode against an external reference
// decoder — here the reference has to be hand-written because there is no
// ZX0 decoder in the import graph.
//
// Mirrors emitContext's bit-packing exactly: literal and raw offset bytes
// are spliced into the byte stream at the current write head while control
// bits keep filling whichever byte was "open" when they started, so the
// decoder needs the matching two-cursor scheme (a bit cursor that can point
// earlier than the raw-byte read head).
type bitReader struct {
	data     []byte
	readPos  int
	byteIdx  int
	bitShift int
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data, byteIdx: -1}
}

func (r *bitReader) readBit() int {
	if r.byteIdx == -1 {
		r.byteIdx = r.readPos
		r.readPos++
		r.bitShift = 7
	}
	bit := int(r.data[r.byteIdx]>>uint(r.bitShift)) & 1
	r.bitShift--
	if r.bitShift == -1 {
		r.byteIdx = -1
	}
	return bit
}

func (r *bitReader) readRawByte() byte {
	b := r.data[r.readPos]
	r.readPos++
	return b
}

// readElias is the exact inverse of emitContext.writeElias. When
// firstBitByte is non-nil, the code's very first bit (continuation or, for
// v==1, the stop bit itself) is read from that byte's low bit instead of
// the normal bit cursor, mirroring the first-bit-redirection trick used for
// match lengths that follow a raw offset byte.
func (r *bitReader) readElias(inverted bool, firstBitByte *byte) int {
	value := 1
	first := true
	for {
		var b int
		if first && firstBitByte != nil {
			b = int(*firstBitByte) & 1
		} else {
			b = r.readBit()
		}
		first = false
		if b == 1 {
			break
		}
		m := r.readBit()
		if inverted {
			m = 1 - m
		}
		value = value<<1 | m
	}
	return value
}

// decodeZX0 decodes data produced by this package for non-empty input
// (the first command of a non-empty stream is always a literal run, an
// invariant the compressor enforces - see ErrFirstCommandNotLiteral).
// Empty-input streams (pure EOD, no literal run at all) are checked
// separately in tests via their exact expected byte layout rather than
// through this decoder, since a generic decoder cannot distinguish
// "empty input" from "single literal of value 1" from the bitstream alone
// without already knowing which case it is.
func decodeZX0(data []byte, inverted bool) ([]byte, error) {
	return decodeZX0WithDict(data, inverted, nil)
}

// decodeZX0WithDict is decodeZX0 but seeds the back-reference window with
// dict first, mirroring how Compress's DictionarySize option lets matches
// in the compressed stream reach back into bytes that are never themselves
// part of the output. The returned slice excludes the dictionary bytes.
func decodeZX0WithDict(data []byte, inverted bool, dict []byte) ([]byte, error) {
	r := newBitReader(data)
	repOffset := 1
	isFirstCommand := true
	out := append([]byte{}, dict...)
	dictLen := len(dict)

	for {
		directMatch := false
		if !isFirstCommand {
			if r.readBit() == 1 {
				directMatch = true
			}
		}

		if !directMatch {
			isFirstCommand = false
			n := r.readElias(false, nil)
			for i := 0; i < n; i++ {
				out = append(out, r.readRawByte())
			}

			if r.readBit() == 0 {
				// rep match
				length := r.readElias(false, nil)
				if repOffset > len(out) {
					return nil, ErrInvalidOffset
				}
				for i := 0; i < length; i++ {
					out = append(out, out[len(out)-repOffset])
				}
				continue
			}
		}

		// new-offset match (or EOD)
		msb := r.readElias(inverted, nil)
		if msb == eodSentinel {
			return out[dictLen:], nil
		}
		lowByte := r.readRawByte()
		offsetMinus1 := (msb-1)<<7 | (127 - int(lowByte>>1))
		offset := offsetMinus1 + 1
		lengthVal := r.readElias(false, &lowByte)
		length := lengthVal + 1

		if offset > len(out) {
			return nil, ErrInvalidOffset
		}
		for i := 0; i < length; i++ {
			out = append(out, out[len(out)-offset])
		}
		repOffset = offset
	}
}
