package chess

import "fmt"

// Piece is a single piece on (or captured from) the board. Kind, Team and
// Colour never change over its lifetime; a promoted pawn is replaced by a
// new Piece rather than mutated.
type Piece struct {
	ID     int
	Kind   Kind
	Team   Team
	Colour Colour

	// Current square. Meaningless once the piece has been captured.
	Pos Coordinate

	// HasMoved is cleared only for pieces that still hold their initial
	// castling or double-step rights.
	HasMoved  bool
	MoveCount int

	// EnPassant is set on a pawn that advanced two ranks on the
	// immediately preceding move.
	EnPassant bool
}

// Letter returns the FEN letter of the piece: uppercase for White,
// lowercase for Black.
func (p *Piece) Letter() byte {
	l := p.Kind.Letter()
	if p.Colour == Black {
		l += 'a' - 'A'
	}
	return l
}

// String describes the piece, e.g. "White Knight g1".
func (p *Piece) String() string {
	if p == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s %s", p.Colour, p.Kind, p.Pos)
}

// IsEnemy reports whether o belongs to the other team.
func (p *Piece) IsEnemy(o *Piece) bool {
	return o != nil && o.Team != p.Team
}

// clone copies the piece's state into a new value.
func (p *Piece) clone() *Piece {
	c := *p
	return &c
}
