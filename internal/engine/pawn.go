package engine

import "github.com/lgbarn/chess-engine-go/internal/chess"

// canPawnMove checks pawn geometry. target is the piece on the destination,
// already known to be an enemy that is not a king.
func (g *Game) canPawnMove(p *chess.Piece, to chess.Coordinate, target *chess.Piece) bool {
	dir := p.Colour.Forward()
	colDiff := to.File - p.Pos.File
	rankDiff := to.Rank - p.Pos.Rank

	switch {
	case colDiff == 0 && rankDiff == dir:
		return target == nil

	case colDiff == 0 && rankDiff == 2*dir:
		// Double push from the starting rank
		if p.HasMoved || p.Pos.Rank != p.Colour.PawnRank() || target != nil {
			return false
		}
		return g.board.PieceAt(p.Pos.Offset(0, dir)) == nil

	case abs(colDiff) == 1 && rankDiff == dir:
		if target != nil {
			return true
		}
		return g.enPassantVictim(p, to) != nil
	}

	return false
}

// enPassantVictim returns the enemy pawn that p captures en passant by
// moving diagonally to the empty square to, or nil if no such capture
// exists.
func (g *Game) enPassantVictim(p *chess.Piece, to chess.Coordinate) *chess.Piece {
	if g.board.PieceAt(to) != nil {
		return nil
	}
	victim := g.board.PieceAt(chess.Sq(to.File, p.Pos.Rank))
	if victim == nil || victim.Kind != chess.Pawn || !victim.EnPassant || !p.IsEnemy(victim) {
		return nil
	}
	return victim
}

// enPassantPawn returns the pawn currently flagged as capturable en
// passant, if any.
func (g *Game) enPassantPawn() *chess.Piece {
	target, ok := g.board.EnPassantTarget()
	if !ok {
		return nil
	}
	for _, dr := range []int{1, -1} {
		if p := g.board.PieceAt(target.Offset(0, dr)); p != nil && p.Kind == chess.Pawn && p.EnPassant {
			return p
		}
	}
	return nil
}

// promotionKind resolves the requested promotion piece. Anything that is
// not a knight, bishop, rook or queen becomes a queen.
func promotionKind(requested chess.Kind) chess.Kind {
	if requested.IsPromotionChoice() {
		return requested
	}
	return chess.Queen
}

// isPromotion reports whether p moving to the given square reaches its
// promotion rank.
func isPromotion(p *chess.Piece, to chess.Coordinate) bool {
	return p.Kind == chess.Pawn && to.Rank == p.Colour.PromotionRank()
}
