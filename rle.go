package zx0

// buildRLE fills rle[p] with the length of the maximal run of equal bytes
// starting at window position p, for p in [start, end). It is used by the
// parser and the rep-insertion helper to skip ahead when extending
// rep-matches instead of comparing byte by byte from the start.
func buildRLE(window []byte, start, end int, rle []int) {
	i := start
	for i < end {
		rangeStart := i
		c := window[i]
		for i++; i < end && window[i] == c; i++ {
		}
		for p := rangeStart; p < i; p++ {
			rle[p-start] = i - p
		}
	}
}
