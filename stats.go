package zx0

// Stats collects summary statistics about a completed compression run,
// mirroring the fields the original encoder reports: min/max/total for
// literal runs, match offsets, match lengths, and the two short
// run-length-encoded offsets (1 and 2), plus rep-match and command counts
// and the safe distance for in-place (single-buffer) decompression.
type Stats struct {
	MinLiterals, MaxLiterals int
	TotalLiterals            int64
	LiteralsCommands         int64

	MinOffset, MaxOffset int
	TotalOffsets         int64

	MinMatchLen, MaxMatchLen int
	TotalMatchLens           int64
	MatchCommands            int64

	MinRLE1Len, MaxRLE1Len int
	TotalRLE1Lens          int64
	RLE1Commands           int64

	MinRLE2Len, MaxRLE2Len int
	TotalRLE2Lens          int64
	RLE2Commands           int64

	NumRepMatches int64
	Commands      int64

	// SafeDistance is the largest amount, observed after each match, by
	// which the plaintext position within a block ran ahead of the
	// compressed bytes written for that block: the margin needed by callers
	// who decompress in place into a buffer that also held the compressed
	// data.
	SafeDistance int
}

func newStats() Stats {
	return Stats{
		MinLiterals: -1,
		MinOffset:   -1,
		MinMatchLen: -1,
		MinRLE1Len:  -1,
		MinRLE2Len:  -1,
	}
}

// MeanLiterals returns the average literal-run length, or 0 if there were
// no literal-run commands.
func (s Stats) MeanLiterals() float64 { return mean(s.TotalLiterals, s.LiteralsCommands) }

// MeanOffset returns the average match offset, or 0 if there were no matches.
func (s Stats) MeanOffset() float64 { return mean(s.TotalOffsets, s.MatchCommands) }

// MeanMatchLen returns the average match length, or 0 if there were no matches.
func (s Stats) MeanMatchLen() float64 { return mean(s.TotalMatchLens, s.MatchCommands) }

// MeanRLE1Len returns the average length of offset-1 (byte repeat) matches.
func (s Stats) MeanRLE1Len() float64 { return mean(s.TotalRLE1Lens, s.RLE1Commands) }

// MeanRLE2Len returns the average length of offset-2 matches.
func (s Stats) MeanRLE2Len() float64 { return mean(s.TotalRLE2Lens, s.RLE2Commands) }

func mean(total, count int64) float64 {
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

func (s *Stats) recordLiterals(n int) {
	if n == 0 {
		return
	}
	if n < s.MinLiterals || s.MinLiterals == -1 {
		s.MinLiterals = n
	}
	if n > s.MaxLiterals {
		s.MaxLiterals = n
	}
	s.TotalLiterals += int64(n)
	s.LiteralsCommands++
}

// recordSafeDistance updates SafeDistance with the largest observed gap
// between how far the decompressor would have read (dist) and how many
// compressed bytes have been written so far, the in-place-decompression
// margin shrink.c's salvador_stats tracks as safe_dist.
func (s *Stats) recordSafeDistance(dist int) {
	if dist > s.SafeDistance {
		s.SafeDistance = dist
	}
}

func (s *Stats) recordMatch(offset, length int) {
	if offset < s.MinOffset || s.MinOffset == -1 {
		s.MinOffset = offset
	}
	if offset > s.MaxOffset {
		s.MaxOffset = offset
	}
	s.TotalOffsets += int64(offset)

	if length < s.MinMatchLen || s.MinMatchLen == -1 {
		s.MinMatchLen = length
	}
	if length > s.MaxMatchLen {
		s.MaxMatchLen = length
	}
	s.TotalMatchLens += int64(length)
	s.MatchCommands++

	switch offset {
	case 1:
		if length < s.MinRLE1Len || s.MinRLE1Len == -1 {
			s.MinRLE1Len = length
		}
		if length > s.MaxRLE1Len {
			s.MaxRLE1Len = length
		}
		s.TotalRLE1Lens += int64(length)
		s.RLE1Commands++
	case 2:
		if length < s.MinRLE2Len || s.MinRLE2Len == -1 {
			s.MinRLE2Len = length
		}
		if length > s.MaxRLE2Len {
			s.MaxRLE2Len = length
		}
		s.TotalRLE2Lens += int64(length)
		s.RLE2Commands++
	}
}
