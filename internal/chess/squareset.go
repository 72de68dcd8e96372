package chess

import (
	"math/bits"
	"strings"
)

// SquareSet is a set of board coordinates, one bit per square.
type SquareSet uint64

// NewSquareSet builds a set holding the given coordinates. Off-board
// coordinates are ignored.
func NewSquareSet(cs ...Coordinate) SquareSet {
	var s SquareSet
	for _, c := range cs {
		s = s.Add(c)
	}
	return s
}

// Add returns the set with c included.
func (s SquareSet) Add(c Coordinate) SquareSet {
	if !c.Valid() {
		return s
	}
	return s | 1<<uint(c.Index())
}

// Remove returns the set with c excluded.
func (s SquareSet) Remove(c Coordinate) SquareSet {
	if !c.Valid() {
		return s
	}
	return s &^ (1 << uint(c.Index()))
}

// Has reports whether c is in the set.
func (s SquareSet) Has(c Coordinate) bool {
	return c.Valid() && s&(1<<uint(c.Index())) != 0
}

// Union returns the squares in either set.
func (s SquareSet) Union(o SquareSet) SquareSet {
	return s | o
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Empty reports whether the set has no squares.
func (s SquareSet) Empty() bool {
	return s == 0
}

// Coordinates returns the members in a1..h8 order.
func (s SquareSet) Coordinates() []Coordinate {
	out := make([]Coordinate, 0, s.Len())
	for rest := uint64(s); rest != 0; rest &= rest - 1 {
		out = append(out, CoordinateFromIndex(bits.TrailingZeros64(rest)))
	}
	return out
}

// String lists the squares, e.g. "{e3 e4}".
func (s SquareSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, c := range s.Coordinates() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
