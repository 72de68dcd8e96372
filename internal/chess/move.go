package chess

// Move is the record of one applied move. It is never modified after it
// has been appended to a game's history.
type Move struct {
	// The piece that moved. For a promotion this is the pawn.
	Piece *Piece

	// Source and destination squares of Piece.
	From Coordinate
	To   Coordinate

	// The piece captured (nil if none) and the square it stood on, which
	// differs from To for en passant.
	Captured   *Piece
	CapturedAt Coordinate

	// Castle is set when the king castled; Rook then moved RookFrom->RookTo.
	Castle   CastleSide
	Rook     *Piece
	RookFrom Coordinate
	RookTo   Coordinate

	EnPassant bool

	// The piece the pawn promoted to (nil if not a promotion).
	Promotion *Piece

	// State needed to reverse the move.
	Undo UndoInfo
}

// UndoInfo records the mutable piece state a move overwrote.
type UndoInfo struct {
	PieceHadMoved bool
	RookHadMoved  bool

	// The pawn that was capturable en passant before this move, if any.
	PrevEnPassant *Piece

	// Half-move clock before this move.
	HalfmoveClock int

	// Repetition key of the position reached by this move.
	Key       uint64
	Signature string
}

// IsCapture returns true if this move is a capture.
func (m *Move) IsCapture() bool {
	return m.Captured != nil
}

// IsPromotion returns true if this move is a pawn promotion.
func (m *Move) IsPromotion() bool {
	return m.Promotion != nil
}

// IsCastle returns true if this move is a castling move.
func (m *Move) IsCastle() bool {
	return m.Castle != NoCastle
}

// IsDoubleStep returns true for a pawn advancing two ranks.
func (m *Move) IsDoubleStep() bool {
	d := m.To.Rank - m.From.Rank
	return m.Piece.Kind == Pawn && (d == 2 || d == -2)
}

// String returns the move in long algebraic notation, e.g. "e2e4",
// "e1g1" or "e7e8q".
func (m *Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != nil {
		s += string(m.Promotion.Kind.Letter() + 'a' - 'A')
	}
	return s
}
