package chess

import (
	"strings"

	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// Board is the owning collection of live pieces, indexed by square for
// constant-time lookup.
type Board struct {
	squares [NumSquares]*Piece

	// Keep track of the two kings for check detection, indexed by Team.
	kings [2]*Piece

	count  int
	nextID int
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{nextID: 1}
}

// SetupInitialPosition places the standard starting position, with ally
// playing allyColour.
func (b *Board) SetupInitialPosition(allyColour Colour) {
	*b = Board{nextID: 1}

	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for _, team := range []Team{Ally, Opponent} {
		colour := allyColour
		if team == Opponent {
			colour = allyColour.Opposite()
		}
		for file, kind := range backRank {
			b.Place(kind, team, colour, Sq(file, colour.HomeRank()))
			b.Place(Pawn, team, colour, Sq(file, colour.PawnRank()))
		}
	}
}

// PieceAt returns the piece on c, or nil if the square is empty or off
// the board.
func (b *Board) PieceAt(c Coordinate) *Piece {
	if !c.Valid() {
		return nil
	}
	return b.squares[c.Index()]
}

// Place creates a new piece with a fresh identity and adds it at c.
func (b *Board) Place(kind Kind, team Team, colour Colour, c Coordinate) *Piece {
	p := &Piece{ID: b.nextID, Kind: kind, Team: team, Colour: colour, Pos: c}
	b.Add(p)
	return p
}

// Add puts p on its square. Adding onto an occupied or off-board square,
// or adding a second king for a team, is an invariant violation.
func (b *Board) Add(p *Piece) {
	if !p.Pos.Valid() {
		panic(errors.Invariantf("add", "%s is off the board", p.Pos))
	}
	if occupant := b.squares[p.Pos.Index()]; occupant != nil {
		panic(errors.Invariantf("add", "%s already holds %s", p.Pos, occupant))
	}
	if p.Kind == King {
		if k := b.kings[p.Team]; k != nil {
			panic(errors.Invariantf("add", "%s already has a king on %s", p.Team, k.Pos))
		}
		b.kings[p.Team] = p
	}
	b.squares[p.Pos.Index()] = p
	b.count++
	if p.ID >= b.nextID {
		b.nextID = p.ID + 1
	}
}

// Remove takes p off the board. Kings are never removed.
func (b *Board) Remove(p *Piece) {
	if p.Kind == King {
		panic(errors.Invariantf("remove", "attempt to remove %s", p))
	}
	if b.PieceAt(p.Pos) != p {
		panic(errors.Invariantf("remove", "%s is not on the board", p))
	}
	b.squares[p.Pos.Index()] = nil
	b.count--
}

// Relocate moves p to the empty square to.
func (b *Board) Relocate(p *Piece, to Coordinate) {
	if b.PieceAt(p.Pos) != p {
		panic(errors.Invariantf("relocate", "%s is not on the board", p))
	}
	if !to.Valid() {
		panic(errors.Invariantf("relocate", "%s is off the board", to))
	}
	if occupant := b.squares[to.Index()]; occupant != nil && occupant != p {
		panic(errors.Invariantf("relocate", "%s already holds %s", to, occupant))
	}
	b.squares[p.Pos.Index()] = nil
	p.Pos = to
	b.squares[to.Index()] = p
}

// KingOf returns the king of the given team. A board without one is an
// invariant violation.
func (b *Board) KingOf(team Team) *Piece {
	k := b.kings[team]
	if k == nil {
		panic(errors.Invariantf("king_of", "%s has no king", team))
	}
	return k
}

// HasKing reports whether team has a king on the board.
func (b *Board) HasKing(team Team) bool {
	return b.kings[team] != nil
}

// Pieces returns the live pieces in a1..h8 order.
func (b *Board) Pieces() []*Piece {
	out := make([]*Piece, 0, b.count)
	for _, p := range b.squares {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// PiecesOf returns the live pieces of a team in a1..h8 order.
func (b *Board) PiecesOf(team Team) []*Piece {
	out := make([]*Piece, 0, b.count)
	for _, p := range b.squares {
		if p != nil && p.Team == team {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of live pieces.
func (b *Board) Len() int {
	return b.count
}

// CastleRights reports which castles colour still has the right to: the
// king and the relevant rook are on their home squares and have never
// moved. Whether the castle is playable now is decided by the engine.
func (b *Board) CastleRights(colour Colour) (kingside, queenside bool) {
	home := colour.HomeRank()
	king := b.PieceAt(Sq(KingFile, home))
	if king == nil || king.Kind != King || king.Colour != colour || king.HasMoved {
		return false, false
	}
	unmovedRook := func(file int) bool {
		r := b.PieceAt(Sq(file, home))
		return r != nil && r.Kind == Rook && r.Team == king.Team && !r.HasMoved
	}
	return unmovedRook(KingsideRookFile), unmovedRook(QueensideRookFile)
}

// EnPassantTarget returns the square behind a pawn that may be captured
// en passant on this move.
func (b *Board) EnPassantTarget() (Coordinate, bool) {
	for _, p := range b.squares {
		if p != nil && p.Kind == Pawn && p.EnPassant {
			return p.Pos.Offset(0, -p.Colour.Forward()), true
		}
	}
	return Coordinate{}, false
}

// CapturableEnPassant is EnPassantTarget restricted to the case where an
// enemy pawn stands beside the flagged pawn, so the capture is at least
// geometrically available. Position signatures use this form.
func (b *Board) CapturableEnPassant() (Coordinate, bool) {
	target, ok := b.EnPassantTarget()
	if !ok {
		return Coordinate{}, false
	}
	pawn := b.PieceAt(target.Offset(0, 1))
	if pawn == nil || !pawn.EnPassant {
		pawn = b.PieceAt(target.Offset(0, -1))
	}
	if pawn == nil || !pawn.EnPassant {
		return Coordinate{}, false
	}
	for _, df := range []int{-1, 1} {
		if o := b.PieceAt(pawn.Pos.Offset(df, 0)); o != nil && o.Kind == Pawn && pawn.IsEnemy(o) {
			return target, true
		}
	}
	return Coordinate{}, false
}

// CloneWith builds a copy of the board. remap must return the copy of each
// live piece, so callers can share the old-to-new mapping with other
// structures that point at pieces.
func (b *Board) CloneWith(remap func(*Piece) *Piece) *Board {
	nb := &Board{nextID: b.nextID}
	for _, p := range b.squares {
		if p != nil {
			nb.Add(remap(p))
		}
	}
	nb.nextID = b.nextID
	return nb
}

// ClonePiece returns a detached copy of p.
func ClonePiece(p *Piece) *Piece {
	return p.clone()
}

// String draws the board with rank 8 at the top, '.' for empty squares.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := BoardSize - 1; rank >= 0; rank-- {
		for file := 0; file < BoardSize; file++ {
			if p := b.PieceAt(Sq(file, rank)); p != nil {
				sb.WriteByte(p.Letter())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
