package engine

import "github.com/lgbarn/chess-engine-go/internal/chess"

// Candidate is one legal (piece, destination) pair.
type Candidate struct {
	Piece *chess.Piece
	To    chess.Coordinate
}

// String returns the candidate in long algebraic form, e.g. "g1f3".
func (c Candidate) String() string {
	return c.Piece.Pos.String() + c.To.String()
}

// LegalDestinations returns the squares p may legally move to. It works
// for pieces of either team regardless of whose turn it is; ApplyMove
// additionally enforces the turn. A piece that is not on the board has no
// destinations.
func (g *Game) LegalDestinations(p *chess.Piece) chess.SquareSet {
	if p == nil || g.board.PieceAt(p.Pos) != p {
		return 0
	}
	if set, ok := g.legal[p]; ok {
		return set
	}

	var set chess.SquareSet
	for i := 0; i < chess.NumSquares; i++ {
		to := chess.CoordinateFromIndex(i)
		if g.legalGeometry(p, to) && g.isKingSafeAfter(p, to) {
			set = set.Add(to)
		}
	}
	g.legal[p] = set
	return set
}

// LegalMoves returns every legal move of the side to move, ordered by the
// piece's square and then the destination square. A finished game has no
// legal moves.
func (g *Game) LegalMoves() []Candidate {
	if g.status.State.Terminal() {
		return nil
	}
	var out []Candidate
	for _, p := range g.board.PiecesOf(g.toMove) {
		for _, to := range g.LegalDestinations(p).Coordinates() {
			out = append(out, Candidate{Piece: p, To: to})
		}
	}
	return out
}

// hasLegalMoves returns true if team has at least one legal move.
func (g *Game) hasLegalMoves(team chess.Team) bool {
	for _, p := range g.board.PiecesOf(team) {
		if !g.LegalDestinations(p).Empty() {
			return true
		}
	}
	return false
}

// isKingSafeAfter plays p to the given square on the real board, checks
// whether p's own king is attacked, and puts every piece back. History,
// flags, caches and the repetition table are never touched, so the probe
// cannot be observed from outside.
func (g *Game) isKingSafeAfter(p *chess.Piece, to chess.Coordinate) bool {
	from := p.Pos

	captured := g.board.PieceAt(to)
	if captured == nil && p.Kind == chess.Pawn && to.File != from.File {
		captured = g.enPassantVictim(p, to)
	}

	var rook *chess.Piece
	var rookFrom, rookTo chess.Coordinate
	if isCastleMove(p, from, to) {
		rookFrom, rookTo = castleRookSquares(to)
		rook = g.board.PieceAt(rookFrom)
	}

	if captured != nil {
		g.board.Remove(captured)
	}
	g.board.Relocate(p, to)
	if rook != nil {
		g.board.Relocate(rook, rookTo)
	}

	safe := !g.isSquareAttacked(g.board.KingOf(p.Team).Pos, p.Team.Enemy())

	if rook != nil {
		g.board.Relocate(rook, rookFrom)
	}
	g.board.Relocate(p, from)
	if captured != nil {
		g.board.Add(captured)
	}

	return safe
}
