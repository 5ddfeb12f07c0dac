package zx0

// reduceCommands makes one left-to-right pass over c.best, applying the
// five greedy rewrite rules from the command reducer. It reports whether it
// changed anything; the block driver re-runs it until a pass reports no
// change, bounded at 20 iterations.
func (c *Compressor) reduceCommands(window []byte, startOffset, endOffset int, flags int) bool {
	didReduce := false
	numLiterals := 0
	if flags&blockFlagFirst != 0 {
		numLiterals = 1
	}
	repMatchOffset := c.state.curRepOffset

	for i := startOffset; i < endOffset; {
		idx := i - startOffset
		m := c.best[idx]

		if m.Length == 1 {
			// The emitter writes a length-1 entry as a literal; normalize it
			// to one here so it is counted as a literal.
			c.best[idx] = finalMatch{}
			m = c.best[idx]
		}
		if m.Length == 0 {
			numLiterals++
			i++
			continue
		}
		if m.Length < MinEncodedMatchSize {
			// Consumed by an earlier join or absorb; nothing to do here.
			i++
			continue
		}

		offset := int(m.Offset)
		length := int(m.Length)

		// Rule 1: literal-then-match absorb. If the position right before
		// this match is a literal and extending the match back by one
		// position is free (or cheaper), do it.
		// The stream's very first literal stays a literal: the first command
		// of the first block has to be a literal run.
		firstLiteral := flags&blockFlagFirst != 0 && i-1 == startOffset
		if numLiterals > 0 && i > startOffset && !firstLiteral && i-1-offset >= 0 && c.best[idx-1].Length == 0 &&
			window[i-1] == window[i-1-offset] {
			isRep := offset == repMatchOffset
			oldSize := literalsVarlenSize(numLiterals) + matchLenSize(length, isRep)
			newSize := literalsVarlenSize(numLiterals-1) + matchLenSize(length+1, isRep)
			if newSize <= oldSize {
				c.best[idx-1] = finalMatch{Offset: m.Offset, Length: int32(length + 1)}
				c.best[idx] = finalMatch{Length: -1}
				didReduce = true
				i += length
				numLiterals = 0
				repMatchOffset = offset
				continue
			}
		}

		nextIdx := idx + length
		nextPos := i + length
		var next finalMatch
		haveNext := nextPos < endOffset
		if haveNext {
			next = c.best[nextIdx]
		}

		// Rule 2: offset substitution to create a rep-match. A non-rep
		// match immediately followed (after no intervening literals) by
		// another match: if re-pointing the *next* match at this match's
		// offset still reproduces its bytes, it becomes a rep and costs
		// less.
		if haveNext && next.Length >= MinEncodedMatchSize && offset != repMatchOffset &&
			sameBytes(window, nextPos, int(next.Offset), offset, int(next.Length)) {
			oldSize := matchLenSize(int(next.Length), int(next.Offset) == offset) + offsetCostIfNonRep(int(next.Offset), offset)
			newSize := matchLenSize(int(next.Length), true)
			if newSize < oldSize {
				c.best[nextIdx] = finalMatch{Offset: uint32(offset), Length: next.Length}
				didReduce = true
			}
		}

		// Rule 3: offset substitution to match the next command's offset.
		// If re-pointing the current match at the next match's offset
		// still reproduces its bytes over the full length, switch to it
		// outright: the next match becomes a rep and saves its offset
		// cost. If that only holds for all but the trailing byte, shorten
		// the current match by one instead (the residual byte becomes a
		// literal) and still switch to the next match's offset.
		if haveNext && next.Length >= MinEncodedMatchSize && int(next.Offset) != offset {
			if sameBytes(window, i, offset, int(next.Offset), length) {
				oldSize := matchLenSize(length, offset == repMatchOffset) + offsetCostIfNonRep(offset, repMatchOffset)
				oldSize += matchLenSize(int(next.Length), int(next.Offset) == offset) + offsetCostIfNonRep(int(next.Offset), offset)

				newSize := matchLenSize(length, int(next.Offset) == repMatchOffset) + offsetCostIfNonRep(int(next.Offset), repMatchOffset)
				newSize += matchLenSize(int(next.Length), true)

				if newSize < oldSize {
					c.best[idx] = finalMatch{Offset: next.Offset, Length: int32(length)}
					didReduce = true
					i += length
					numLiterals = 0
					repMatchOffset = int(next.Offset)
					continue
				}
			} else {
				reducedLen := length - 1
				if reducedLen >= MinEncodedMatchSize && sameBytes(window, i, offset, int(next.Offset), reducedLen) {
					oldSize := matchLenSize(length, offset == repMatchOffset) + offsetCostIfNonRep(offset, repMatchOffset)
					newSize := matchLenSize(reducedLen, int(next.Offset) == repMatchOffset) + offsetCostIfNonRep(int(next.Offset), repMatchOffset) + literalsVarlenSize(1)
					if newSize < oldSize {
						c.best[idx] = finalMatch{Offset: next.Offset, Length: int32(reducedLen)}
						c.best[idx+reducedLen] = finalMatch{Length: 0}
						didReduce = true
						i += reducedLen
						numLiterals = 0
						repMatchOffset = int(next.Offset)
						continue
					}
				}
			}
		}

		// Rule 4: short matches that cost more than the literals they
		// replace are converted back to literals.
		if length < 9 {
			matchSize := TokenSize + matchLenSize(length, offset == repMatchOffset)
			if offset != repMatchOffset {
				matchSize += offsetCost(offset)
			}
			literalSize := literalsVarlenSize(numLiterals+length) - literalsVarlenSize(numLiterals)
			if literalSize < matchSize {
				for k := 0; k < length; k++ {
					c.best[idx+k] = finalMatch{}
				}
				numLiterals += length
				didReduce = true
				i += length
				continue
			}
		}

		// Rule 5: join two back-to-back matches when the combined match
		// encodes as cheaply or more cheaply than the pair and still
		// reproduces the source bytes.
		if haveNext && next.Length >= MinEncodedMatchSize {
			joined := length + int(next.Length)
			if joined <= maxVarLen && joined >= LeaveAloneMatchSize &&
				sameBytes(window, nextPos, 0, offset, int(next.Length)) {
				oldSize := TokenSize + matchLenSize(length, offset == repMatchOffset)
				if offset != repMatchOffset {
					oldSize += offsetCost(offset)
				}
				oldSize += TokenSize + matchLenSize(int(next.Length), int(next.Offset) == offset)
				if int(next.Offset) != offset {
					oldSize += offsetCost(int(next.Offset))
				}
				newSize := TokenSize + matchLenSize(joined, offset == repMatchOffset)
				if offset != repMatchOffset {
					newSize += offsetCost(offset)
				}
				if newSize <= oldSize {
					c.best[idx] = finalMatch{Offset: uint32(offset), Length: int32(joined)}
					for k := length; k < joined; k++ {
						c.best[idx+k] = finalMatch{Length: -1}
					}
					didReduce = true
					i += joined
					numLiterals = 0
					repMatchOffset = offset
					continue
				}
			}
		}

		i += length
		numLiterals = 0
		repMatchOffset = offset
	}

	return didReduce
}

func matchLenSize(length int, isRep bool) int {
	if isRep {
		return matchVarlenSizeRep(length - MinEncodedMatchSize)
	}
	return matchVarlenSizeNoRep(length - MinEncodedMatchSize)
}

func offsetCostIfNonRep(offset, repOffset int) int {
	if offset == repOffset {
		return 0
	}
	return offsetCost(offset)
}

func sameBytes(window []byte, pos, offsetA, offsetB, length int) bool {
	if pos-offsetA < 0 || pos-offsetB < 0 || pos+length > len(window) {
		return false
	}
	for k := 0; k < length; k++ {
		if window[pos+k-offsetA] != window[pos+k-offsetB] {
			return false
		}
	}
	return true
}
