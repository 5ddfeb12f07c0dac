// Package matchsource defines the raw-match-enumeration contract that the
// zx0 parser relies on but does not implement itself: the "Match Source"
// collaborator from the ZX0 optimal parser design (for each input
// position, up to K candidate (offset, length) pairs, plus an optional
// depth for nearby offsets reachable by decrement).
//
// The original implementation builds this table from a suffix array
// (libdivsufsort). Building and maintaining a suffix array incrementally
// across blocks is a substantial subsystem of its own and is treated here,
// as in the design this package implements, as swappable: Source is an
// interface, and HashChainSource is a simpler, self-contained
// implementation based on hash chaining (the same technique the teacher
// package uses for its own MatchFinder backends) rather than a suffix
// array.
package matchsource

// Match is one candidate back-reference a Source offers at a position.
// Depth > 0 means the entry also implicitly represents the shorter match
// (Offset-Depth, Length-Depth); Source implementations that cannot derive
// such chains should leave Depth at zero.
type Match struct {
	Offset uint32
	Length uint16
	Depth  uint16
}

// Source enumerates candidate matches over an input window. Implementations
// are free to use any match-finding technique (suffix array, hash chain,
// etc.); the parser only depends on this interface.
type Source interface {
	// Reset clears any accumulated state, preparing the Source to be reused
	// for a new compression run.
	Reset()

	// SkipMatches advances the Source's internal position cursor over
	// window[from:to) without reporting matches. Used for the portion of
	// the window that was already enumerated while compressing an earlier
	// block.
	SkipMatches(window []byte, from, to int)

	// FindAllMatches enumerates candidate matches for every position in
	// window[from:to), calling emit with each one found, up to
	// maxPerPosition calls per position. maxOffset bounds how far back a
	// match may reach.
	FindAllMatches(window []byte, from, to, maxPerPosition, maxOffset int, emit func(pos int, m Match))
}
