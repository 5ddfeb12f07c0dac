package zx0

// emitContext is the bit-level write cursor described in spec.md §4.7: a
// byte slice being appended to, plus a "pending byte" anchor for bits not
// yet aligned to a byte boundary. byteIdx == -1 means no byte is currently
// open.
type emitContext struct {
	out      []byte
	byteIdx  int
	bitShift int
}

// writeBits writes the low k bits of v, MSB-first, opening a fresh
// zero-filled byte in out whenever there is no pending byte to pack into.
func (e *emitContext) writeBits(v, k int) {
	for i := k - 1; i >= 0; i-- {
		if e.byteIdx == -1 {
			e.byteIdx = len(e.out)
			e.out = append(e.out, 0)
			e.bitShift = 7
		}
		bit := byte((v >> uint(i)) & 1)
		e.out[e.byteIdx] |= bit << uint(e.bitShift)
		e.bitShift--
		if e.bitShift == -1 {
			e.byteIdx = -1
		}
	}
}

// writeElias emits v (v >= 1) as an Elias-gamma code, optionally inverted
// (the V2 mantissa-complement variant). If firstBitIdx is >= 0, the leading
// bit of the code is not written through writeBits at all: instead it is
// poked directly into out[firstBitIdx]'s low bit. This is the "first-bit
// redirection" the wire format uses to interleave a match's raw low-offset
// byte with the Elias code of the following match length.
func (e *emitContext) writeElias(v int, inverted bool, firstBitIdx int) {
	var i int
	for i = 2; i <= v; i <<= 1 {
	}
	i >>= 1

	redirected := firstBitIdx >= 0
	for {
		i >>= 1
		if i <= 0 {
			break
		}
		if redirected {
			e.out[firstBitIdx] &^= 1
			redirected = false
		} else {
			e.writeBits(0, 1)
		}

		bit := 0
		if v&i != 0 {
			bit = 1
		}
		if inverted {
			bit = 1 - bit
		}
		e.writeBits(bit, 1)
	}

	if redirected {
		e.out[firstBitIdx] = (e.out[firstBitIdx] &^ 1) | 1
	} else {
		e.writeBits(1, 1)
	}
}

// writeBlock serializes c.best[startOffset:endOffset) to the ZX0 wire
// format, appending to out and threading the bit cursor, current rep
// offset, and deferred-literal count through c.state for the next block.
func (c *Compressor) writeBlock(window []byte, startOffset, endOffset int, out []byte, flags int) ([]byte, error) {
	e := &emitContext{out: out, byteIdx: c.state.bitByteIdx, bitShift: c.state.bitShift}
	blockOutStart := len(out)

	repOffset := c.state.curRepOffset
	maxOffset := c.opts.maxOffset()
	inverted := c.opts.inverted()
	isFirstCommand := flags&blockFlagFirst != 0

	numLiterals := 0
	firstLiteralPos := 0

	emitLiterals := func() {
		if numLiterals == 0 {
			return
		}
		c.Stats.recordLiterals(numLiterals)
		if !isFirstCommand {
			e.writeBits(0, 1)
		} else {
			isFirstCommand = false
		}
		e.writeElias(numLiterals, false, -1)
		e.out = append(e.out, window[firstLiteralPos:firstLiteralPos+numLiterals]...)
		numLiterals = 0
	}

	i := startOffset
	for i < endOffset {
		m := c.best[i-startOffset]
		if m.Length < MinEncodedMatchSize {
			if numLiterals == 0 {
				firstLiteralPos = i
			}
			numLiterals++
			i++
			continue
		}

		offset := int(m.Offset)
		length := int(m.Length)
		encLen := length - MinEncodedMatchSize

		if offset < MinOffset || offset > maxOffset {
			return nil, ErrInvalidOffset
		}
		if isFirstCommand && numLiterals == 0 {
			return nil, ErrFirstCommandNotLiteral
		}

		// A rep-match is only unambiguous to a decoder when literals were
		// just emitted in this same command: otherwise its leading bit
		// (0) is indistinguishable from a zero-length literal run, so it
		// must fall back to a full new-offset encoding even though the
		// offset happens to equal repOffset.
		hadLiterals := numLiterals != 0
		emitLiterals()

		if offset == repOffset {
			c.Stats.NumRepMatches++
		}

		if offset == repOffset && hadLiterals {
			e.writeBits(0, 1)
			e.writeElias(encLen+2, false, -1)
		} else {
			e.writeBits(1, 1)
			e.writeElias(((offset-1)>>7)+1, inverted, -1)
			firstBitIdx := len(e.out)
			e.out = append(e.out, byte((255-((offset-1)&0x7f))<<1))
			e.writeElias(encLen+1, false, firstBitIdx)
		}

		repOffset = offset
		c.Stats.recordMatch(offset, length)
		c.Stats.Commands++
		i += length

		// Largest observed gap between how far the plaintext has advanced
		// and how many compressed bytes have been written *for this
		// block*; the margin an in-place (single-buffer) decompressor
		// would need. len(e.out) is offset by blockOutStart since out
		// also carries every earlier block's bytes.
		if curSafeDist := (i - startOffset) - (len(e.out) - blockOutStart); curSafeDist >= 0 {
			c.Stats.recordSafeDistance(curSafeDist)
		}
	}

	if flags&blockFlagLast != 0 {
		emitLiterals()
		e.writeBits(1, 1)
		e.writeElias(eodSentinel, inverted, -1)
		c.state.pendingLiterals = 0
	} else {
		c.state.pendingLiterals = numLiterals
	}

	c.state.curRepOffset = repOffset
	c.state.bitByteIdx = e.byteIdx
	c.state.bitShift = e.bitShift
	return e.out, nil
}
