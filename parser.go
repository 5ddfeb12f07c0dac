package zx0

// optimizeForward runs one forward DP sweep over window[startOffset:endOffset),
// populating the arrival arena and, on the second (non-inserting) pass,
// tracing the cheapest path back into c.best. arrivalsPerPosition is the
// effective capacity of this pass's destination arrival sets (half-capacity
// on the exploratory first pass, full capacity on the final pass, per the
// two-pass design in spec.md §4.5).
func (c *Compressor) optimizeForward(window []byte, startOffset, endOffset int, insertForwardReps bool, arrivalsPerPosition int, flags int) {
	span := endOffset - startOffset

	for i := 0; i <= span; i++ {
		for s := 0; s < NArrivalsPerPosition; s++ {
			c.arrival[i*NArrivalsPerPosition+s] = arrival{cost: costInfinite}
		}
	}
	start := c.arrivalSet(startOffset, startOffset)
	start[0] = arrival{
		cost:      0,
		origin:    originStart,
		fromPos:   -1,
		repOffset: uint32(c.state.curRepOffset),
	}

	if insertForwardReps {
		for i := range c.visited[:span] {
			c.visited[i] = visitedEntry{}
		}
	}

	maxOffset := c.opts.maxOffset()
	var repIdx [2*NArrivalsPerPosition + 1]int
	var repLen [2*NArrivalsPerPosition + 1]int

	for i := startOffset; i < endOffset; i++ {
		cur := c.arrivalSet(startOffset, i)

		j := 0
		for ; j < arrivalsPerPosition && cur[j].live(); j++ {
			prevCost := int(cur[j].cost)
			cost := prevCost + 8
			numLiterals := int(cur[j].numLiterals) + 1
			if numLiterals > 1 {
				cost -= literalsVarlenSize(numLiterals - 1)
			}
			cost += literalsVarlenSize(numLiterals)
			score := cur[j].score + 1

			insertArrival(c.arrivalSet(startOffset, i+1), arrivalsPerPosition, arrivalsPerPosition-1, arrival{
				cost:        uint32(cost),
				score:       score,
				repOffset:   cur[j].repOffset,
				repPos:      cur[j].repPos,
				origin:      originPrev,
				fromPos:     i,
				fromSlot:    j,
				numLiterals: uint32(numLiterals),
			})
		}

		if i == startOffset && flags&blockFlagFirst != 0 {
			continue
		}

		numArrivals := j
		slots := c.matchSlots(startOffset, i)

		overallMinRepLen, overallMaxRepLen := 0, 0
		numRep := 0
		if i < endOffset {
			maxRepLen := endOffset - i
			if maxRepLen > lcpMax {
				maxRepLen = lcpMax
			}
			for j := 0; j < numArrivals; j++ {
				if cur[j].numLiterals == 0 {
					continue
				}
				repOffset := int(cur[j].repOffset)
				if repOffset == 0 || i < repOffset || window[i] != window[i-repOffset] {
					continue
				}
				min0 := c.rleAt(startOffset, i-repOffset)
				min1 := c.rleAt(startOffset, i)
				minLen := min0
				if min1 < minLen {
					minLen = min1
				}
				if minLen > maxRepLen {
					minLen = maxRepLen
				}
				length := minLen
				for length < maxRepLen && window[i+length] == window[i+length-repOffset] {
					length++
				}
				if length > overallMaxRepLen {
					overallMaxRepLen = length
				}
				repIdx[numRep] = j
				repLen[numRep] = length
				numRep++
			}
		}

		for m := 0; m < NMatchesPerIndex && !slots[m].empty(); m++ {
			origLen := int(slots[m].Length)
			origOffset := int(slots[m].Offset)
			origDepth := int(slots[m].Depth)
			scorePenalty := uint32(3)

			depthStep := origDepth
			if depthStep == 0 {
				depthStep = 1
			}
			for d := 0; d <= origDepth; d += depthStep {
				matchOffset := origOffset - d
				matchLen := origLen - d
				if i+matchLen > endOffset {
					matchLen = endOffset - i
				}
				if matchOffset < MinOffset || matchOffset > maxOffset || matchLen < MinEncodedMatchSize {
					continue
				}

				if insertForwardReps {
					c.insertForwardMatch(window, i, uint32(matchOffset), startOffset, endOffset, 0)
				}

				noRepOffsetCost := offsetCost(matchOffset)
				noRepScore := uint32(0)
				nonRepIdx := -1
				for j := 0; j < numArrivals; j++ {
					if matchOffset == int(cur[j].repOffset) && cur[j].numLiterals != 0 {
						continue
					}
					noRepOffsetCost += int(cur[j].cost)
					noRepScore = cur[j].score + scorePenalty
					nonRepIdx = j
					break
				}

				startingLen := 1
				if matchLen >= LeaveAloneMatchSize {
					startingLen = matchLen
				}

				for k := startingLen; k <= matchLen; k++ {
					dest := c.arrivalSet(startOffset, i+k)

					if k >= 2 && nonRepIdx >= 0 {
						cost := matchVarlenSizeNoRep(k-MinEncodedMatchSize) + TokenSize + noRepOffsetCost
						insertArrival(dest, arrivalsPerPosition-1, arrivalsPerPosition-1, arrival{
							cost:      uint32(cost),
							score:     noRepScore,
							repOffset: uint32(matchOffset),
							repPos:    uint32(i),
							origin:    originPrev,
							fromPos:   i,
							fromSlot:  nonRepIdx,
							matchLen:  uint16(k),
						})
					}

					if k > overallMinRepLen && k <= overallMaxRepLen {
						lenCost := matchVarlenSizeRep(k-MinEncodedMatchSize) + TokenSize
						if k <= LeaveAloneMatchSize {
							overallMinRepLen = k
						} else if overallMaxRepLen == k {
							overallMaxRepLen--
						}

						for r := 0; r < numRep; r++ {
							if repLen[r] < k {
								continue
							}
							j := repIdx[r]
							cost := int(cur[j].cost) + lenCost
							insertArrival(dest, arrivalsPerPosition, arrivalsPerPosition-1, arrival{
								cost:      uint32(cost),
								score:     cur[j].score + 2,
								repOffset: cur[j].repOffset,
								repPos:    uint32(i),
								origin:    originPrev,
								fromPos:   i,
								fromSlot:  j,
								matchLen:  uint16(k),
							})
						}
					}
				}
			}

			if origLen >= 512 {
				break
			}
		}
	}

	if !insertForwardReps {
		c.traceback(startOffset, endOffset)
	}
}

// traceback walks the cheapest accepting arrival at block end back to the
// start sentinel, writing the chosen parse into c.best.
func (c *Compressor) traceback(startOffset, endOffset int) {
	end := c.arrivalSet(startOffset, endOffset)[0]
	for end.origin == originPrev && end.fromPos >= startOffset && end.fromPos < endOffset {
		idx := end.fromPos - startOffset
		c.best[idx].Length = int32(end.matchLen)
		if end.matchLen != 0 {
			c.best[idx].Offset = end.repOffset
		} else {
			c.best[idx].Offset = 0
		}
		end = c.arrivalSet(startOffset, end.fromPos)[end.fromSlot]
	}
}
