package engine

import "github.com/lgbarn/chess-engine-go/internal/chess"

// legalGeometry reports whether p may move to the given square by its
// movement rules alone. It looks at occupancy and paths but not at the
// safety of p's own king.
func (g *Game) legalGeometry(p *chess.Piece, to chess.Coordinate) bool {
	if !to.Valid() || to == p.Pos {
		return false
	}
	target := g.board.PieceAt(to)
	if target != nil && (!p.IsEnemy(target) || target.Kind == chess.King) {
		return false
	}

	colDiff := abs(to.File - p.Pos.File)
	rankDiff := abs(to.Rank - p.Pos.Rank)

	switch p.Kind {
	case chess.Pawn:
		return g.canPawnMove(p, to, target)

	case chess.Knight:
		return colDiff*rankDiff == 2

	case chess.Bishop:
		if colDiff != rankDiff {
			return false
		}
		return g.isPathClear(p.Pos, to)

	case chess.Rook:
		if colDiff != 0 && rankDiff != 0 {
			return false
		}
		return g.isPathClear(p.Pos, to)

	case chess.Queen:
		if colDiff != rankDiff && colDiff != 0 && rankDiff != 0 {
			return false
		}
		return g.isPathClear(p.Pos, to)

	case chess.King:
		if colDiff <= 1 && rankDiff <= 1 {
			return true
		}
		return g.castleSide(p, to) != chess.NoCastle
	}

	return false
}

// isPathClear checks that every square strictly between from and to is
// empty. from and to must share a rank, file or diagonal.
func (g *Game) isPathClear(from, to chess.Coordinate) bool {
	colDir := sign(to.File - from.File)
	rankDir := sign(to.Rank - from.Rank)

	for c := from.Offset(colDir, rankDir); c != to; c = c.Offset(colDir, rankDir) {
		if g.board.PieceAt(c) != nil {
			return false
		}
	}

	return true
}
