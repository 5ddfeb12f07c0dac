package zx0

import "testing"

// newTestCompressor builds a Compressor with just enough state for
// reduceCommands to run standalone, without going through the full parser.
func newTestCompressor(bestLen int) *Compressor {
	c := &Compressor{
		opts:  DefaultCompressOptions(),
		best:  make([]finalMatch, bestLen),
		state: BlockState{curRepOffset: 1},
	}
	return c
}

func TestReduceRule4ConvertsShortUneconomicalMatchToLiterals(t *testing.T) {
	// A window of distinct byte values so no position ever accidentally
	// equals another (keeps rule 1's byte-equality probe from firing and
	// confusing this test, which is only about rule 4's bit-cost check).
	window := make([]byte, 40)
	for i := range window {
		window[i] = byte(i)
	}
	c := newTestCompressor(len(window))
	// A length-2 match costs 1 (token) + 1 (length code) + 8 (offset, since
	// offset<=128) = 10 bits; two more literals after 38 already-counted
	// ones cost far less than that, so rule 4 should fold it back.
	c.best[38] = finalMatch{Offset: 5, Length: 2}

	c.reduceCommands(window, 0, len(window), blockFlagFirst|blockFlagLast)

	if c.best[38].Length != 0 {
		t.Fatalf("expected rule 4 to zero out the uneconomical match, got %+v", c.best[38])
	}
}

func TestReduceRule5JoinsAdjacentMatches(t *testing.T) {
	// A distinct-byte prefix (so rule 1's backward-extend probe, which
	// compares window[i-1] against window[i-1-offset], never spuriously
	// matches) followed by an offset-2 periodic run long enough for two
	// adjacent length-9 matches.
	window := make([]byte, 36)
	for i := 0; i < 18; i++ {
		window[i] = byte(i)
	}
	for i := 18; i < 36; i++ {
		if i%2 == 0 {
			window[i] = 'x'
		} else {
			window[i] = 'y'
		}
	}
	c := newTestCompressor(len(window))
	// Two back-to-back matches at the same offset covering [18,36).
	c.best[18] = finalMatch{Offset: 2, Length: 9}
	c.best[27] = finalMatch{Offset: 2, Length: 9}

	changed := c.reduceCommands(window, 0, len(window), blockFlagFirst|blockFlagLast)
	if !changed {
		t.Fatal("expected rule 5 to report a change")
	}
	if c.best[18].Length != 18 || c.best[18].Offset != 2 {
		t.Fatalf("expected joined match of length 18 at offset 2, got %+v", c.best[18])
	}
	if c.best[27].Length != -1 {
		t.Fatalf("expected absorbed slot marked consumed (-1), got %+v", c.best[27])
	}
}

func TestReduceFixedPointIsIdempotent(t *testing.T) {
	window := []byte("the quick brown fox the quick brown fox jumps over")
	c := newTestCompressor(len(window))
	// Leave c.best all-literal; reduceCommands on an all-literal block must
	// be a no-op regardless of how many times it runs.
	changed := c.reduceCommands(window, 0, len(window), blockFlagFirst|blockFlagLast)
	if changed {
		t.Fatal("reduceCommands should not report a change on an all-literal block")
	}
	for _, m := range c.best {
		if m.Length != 0 {
			t.Fatalf("all-literal block must remain all-literal, got %+v", m)
		}
	}
}

func TestReduceRule1AdvancesPastAbsorbedMatchInterior(t *testing.T) {
	window := []byte{0, 1, 2, 0, 9, 8, 7, 6, 5, 4}
	c := newTestCompressor(len(window))
	// window[3] equals window[3-3]=window[0], so rule 1 can absorb the
	// literal at position 3 backward into the length-3 match at position
	// 4, extending it to a length-4 match starting at position 3. The
	// match right after it, at position 7, shares that same offset: it
	// stays a cheap rep-match only if the reducer both skips past the
	// extended match's interior (rather than re-walking it one position
	// at a time) and updates repMatchOffset to the absorbed offset.
	c.best[4] = finalMatch{Offset: 3, Length: 3}
	c.best[7] = finalMatch{Offset: 3, Length: 3}

	c.reduceCommands(window, 0, len(window), blockFlagFirst|blockFlagLast)

	if c.best[3].Offset != 3 || c.best[3].Length != 4 {
		t.Fatalf("expected the absorbed match at position 3 to be {offset 3, length 4}, got %+v", c.best[3])
	}
	if c.best[4].Length != -1 {
		t.Fatalf("expected position 4's old match start marked consumed (-1), got %+v", c.best[4])
	}
	if c.best[7].Length != 3 || c.best[7].Offset != 3 {
		t.Fatalf("expected the match at position 7 to remain a 3-byte rep-eligible match, got %+v", c.best[7])
	}
}

func TestReduceRule3FullyRepointsWhenWholeMatchSurvives(t *testing.T) {
	// window[3]=window[5]=window[7]=111, window[4]=window[6]=222, which
	// makes the length-3 match at position 8 (offset 3) reproduce its
	// bytes equally well under the next match's offset (5) over its full
	// length. Rule 3 should re-point it at that offset outright rather
	// than leaving it dead or shortening it unnecessarily.
	window := []byte{0, 1, 2, 111, 222, 111, 222, 111, 50, 51, 52, 60, 61, 62}
	c := newTestCompressor(len(window))
	c.best[8] = finalMatch{Offset: 3, Length: 3}
	c.best[11] = finalMatch{Offset: 5, Length: 3}

	changed := c.reduceCommands(window, 0, len(window), blockFlagFirst|blockFlagLast)
	if !changed {
		t.Fatal("expected rule 3 to report a change")
	}
	if c.best[8].Offset != 5 || c.best[8].Length != 3 {
		t.Fatalf("expected the match at position 8 to switch to offset 5 (the next match's offset) keeping length 3, got %+v", c.best[8])
	}
}

func TestReduceRule3ShortensAndRepointsWhenOnlyPrefixSurvives(t *testing.T) {
	// Same as above but window[7]=77 breaks the equality at the match's
	// last byte: only the first two bytes reproduce under offset 5, so
	// rule 3 should shorten the match to length 2 and mark the residual
	// byte a literal, still switching to offset 5 rather than keeping
	// offset 3.
	window := []byte{10, 11, 12, 111, 222, 111, 222, 77, 50, 51, 52, 60, 61, 62}
	c := newTestCompressor(len(window))
	c.state.curRepOffset = 5
	c.best[8] = finalMatch{Offset: 3, Length: 3}
	c.best[11] = finalMatch{Offset: 5, Length: 3}

	changed := c.reduceCommands(window, 0, len(window), blockFlagFirst|blockFlagLast)
	if !changed {
		t.Fatal("expected rule 3 to report a change")
	}
	if c.best[8].Offset != 5 || c.best[8].Length != 2 {
		t.Fatalf("expected the match at position 8 to shorten to length 2 at offset 5, got %+v", c.best[8])
	}
	if c.best[10].Length != 0 {
		t.Fatalf("expected the residual byte at position 10 marked as a literal, got %+v", c.best[10])
	}
}

func TestReduceConverges(t *testing.T) {
	window := []byte("abcabcabcabcabcabcabcabcabcabcabcabc")
	c := newTestCompressor(len(window))
	c.best[3] = finalMatch{Offset: 3, Length: 3}
	c.best[6] = finalMatch{Offset: 3, Length: 3}
	c.best[9] = finalMatch{Offset: 3, Length: 3}
	c.best[12] = finalMatch{Offset: 3, Length: 3}
	c.best[15] = finalMatch{Offset: 3, Length: 3}
	c.best[18] = finalMatch{Offset: 3, Length: 3}
	c.best[21] = finalMatch{Offset: 3, Length: 3}
	c.best[24] = finalMatch{Offset: 3, Length: 3}
	c.best[27] = finalMatch{Offset: 3, Length: 3}
	c.best[30] = finalMatch{Offset: 3, Length: 3}
	c.best[33] = finalMatch{Offset: 3, Length: 3}

	iterations := 0
	for iterations < 20 {
		iterations++
		if !c.reduceCommands(window, 0, len(window), blockFlagFirst|blockFlagLast) {
			break
		}
	}
	if iterations >= 20 {
		t.Fatal("reduceCommands did not reach a fixed point within 20 iterations")
	}

	// One more pass from the fixed point must report no change.
	if c.reduceCommands(window, 0, len(window), blockFlagFirst|blockFlagLast) {
		t.Fatal("reduceCommands is not stable at its own fixed point")
	}
}
