package engine

import "github.com/lgbarn/chess-engine-go/internal/chess"

// castleSide reports which castle moving king to the given square would
// be, or NoCastle if the move is not a playable castle. It requires an
// unmoved king and rook, empty squares between them, and no square from
// the king's start to its destination in the enemy attack map.
func (g *Game) castleSide(king *chess.Piece, to chess.Coordinate) chess.CastleSide {
	home := king.Colour.HomeRank()
	if king.HasMoved || king.Pos != chess.Sq(chess.KingFile, home) || to.Rank != home {
		return chess.NoCastle
	}

	var side chess.CastleSide
	var rookFile int
	switch to.File {
	case chess.KingsideKingFile:
		side, rookFile = chess.Kingside, chess.KingsideRookFile
	case chess.QueensideKingFile:
		side, rookFile = chess.Queenside, chess.QueensideRookFile
	default:
		return chess.NoCastle
	}

	rook := g.board.PieceAt(chess.Sq(rookFile, home))
	if rook == nil || rook.Kind != chess.Rook || rook.Team != king.Team || rook.HasMoved {
		return chess.NoCastle
	}

	step := sign(rookFile - chess.KingFile)
	for file := chess.KingFile + step; file != rookFile; file += step {
		if g.board.PieceAt(chess.Sq(file, home)) != nil {
			return chess.NoCastle
		}
	}

	// The king may not castle out of, through or into check
	attacked := g.attacks[king.Team.Enemy()]
	for file := chess.KingFile; file != to.File+step; file += step {
		if attacked.Has(chess.Sq(file, home)) {
			return chess.NoCastle
		}
	}

	return side
}

// castleRookSquares returns where the rook starts and ends for a castle
// whose king lands on kingTo.
func castleRookSquares(kingTo chess.Coordinate) (from, to chess.Coordinate) {
	if kingTo.File == chess.KingsideKingFile {
		return chess.Sq(chess.KingsideRookFile, kingTo.Rank), chess.Sq(chess.KingsideRookTo, kingTo.Rank)
	}
	return chess.Sq(chess.QueensideRookFile, kingTo.Rank), chess.Sq(chess.QueensideRookTo, kingTo.Rank)
}

// isCastleMove reports whether a king move spans two files, the only way a
// king moves when castling.
func isCastleMove(p *chess.Piece, from, to chess.Coordinate) bool {
	return p.Kind == chess.King && from.Rank == to.Rank && abs(to.File-from.File) == 2
}
