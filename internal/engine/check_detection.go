package engine

import "github.com/lgbarn/chess-engine-go/internal/chess"

var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// InCheck reports whether team's king is attacked by the enemy.
func (g *Game) InCheck(team chess.Team) bool {
	return g.attacks[team.Enemy()].Has(g.board.KingOf(team).Pos)
}

// AttackedSquares returns every square team controls: squares its pieces
// could move to or defend, ignoring whether that would expose team's own
// king.
func (g *Game) AttackedSquares(team chess.Team) chess.SquareSet {
	return g.attacks[team]
}

// IsSquareAttacked reports whether any piece of team by attacks c on the
// current board.
func (g *Game) IsSquareAttacked(c chess.Coordinate, by chess.Team) bool {
	return c.Valid() && g.isSquareAttacked(c, by)
}

// refreshAttacks recomputes both teams' attack maps from the board.
func (g *Game) refreshAttacks() {
	g.attacks = [2]chess.SquareSet{}
	for _, p := range g.board.Pieces() {
		g.attacks[p.Team] = g.attacks[p.Team].Union(controlledSquares(g.board, p))
	}
}

// controlledSquares returns the squares p attacks or defends. Slider rays
// stop at, and include, the first occupied square.
func controlledSquares(board *chess.Board, p *chess.Piece) chess.SquareSet {
	var set chess.SquareSet

	switch p.Kind {
	case chess.Pawn:
		dir := p.Colour.Forward()
		set = set.Add(p.Pos.Offset(-1, dir)).Add(p.Pos.Offset(1, dir))

	case chess.Knight:
		for _, off := range knightOffsets {
			set = set.Add(p.Pos.Offset(off[0], off[1]))
		}

	case chess.King:
		for _, off := range kingOffsets {
			set = set.Add(p.Pos.Offset(off[0], off[1]))
		}

	case chess.Bishop:
		set = addRays(board, set, p.Pos, diagonalDirs)

	case chess.Rook:
		set = addRays(board, set, p.Pos, straightDirs)

	case chess.Queen:
		set = addRays(board, set, p.Pos, diagonalDirs)
		set = addRays(board, set, p.Pos, straightDirs)
	}

	return set
}

func addRays(board *chess.Board, set chess.SquareSet, from chess.Coordinate, dirs [][2]int) chess.SquareSet {
	for _, dir := range dirs {
		for c := from.Offset(dir[0], dir[1]); c.Valid(); c = c.Offset(dir[0], dir[1]) {
			set = set.Add(c)
			if board.PieceAt(c) != nil {
				break // Blocked
			}
		}
	}
	return set
}

// isSquareAttacked looks outward from c for pieces of team by that attack
// it. Unlike the cached attack maps it always reads the live board, so it
// is safe to use in the middle of a trial move.
func (g *Game) isSquareAttacked(c chess.Coordinate, by chess.Team) bool {
	is := func(at chess.Coordinate, kinds ...chess.Kind) bool {
		p := g.board.PieceAt(at)
		if p == nil || p.Team != by {
			return false
		}
		for _, k := range kinds {
			if p.Kind == k {
				return true
			}
		}
		return false
	}

	// Check pawn attacks: an attacking pawn stands one rank behind c from
	// its own point of view
	dir := g.ColourOf(by).Forward()
	if is(c.Offset(-1, -dir), chess.Pawn) || is(c.Offset(1, -dir), chess.Pawn) {
		return true
	}

	for _, off := range knightOffsets {
		if is(c.Offset(off[0], off[1]), chess.Knight) {
			return true
		}
	}

	for _, off := range kingOffsets {
		if is(c.Offset(off[0], off[1]), chess.King) {
			return true
		}
	}

	// Check sliding pieces along diagonals, then straight lines
	if g.slideHits(c, diagonalDirs, by, chess.Bishop) || g.slideHits(c, straightDirs, by, chess.Rook) {
		return true
	}

	return false
}

// slideHits walks each ray from c and reports whether the first piece met
// is an enemy slider of the given kind or a queen.
func (g *Game) slideHits(c chess.Coordinate, dirs [][2]int, by chess.Team, slider chess.Kind) bool {
	for _, dir := range dirs {
		for at := c.Offset(dir[0], dir[1]); at.Valid(); at = at.Offset(dir[0], dir[1]) {
			p := g.board.PieceAt(at)
			if p == nil {
				continue
			}
			if p.Team == by && (p.Kind == slider || p.Kind == chess.Queen) {
				return true
			}
			break // Blocked
		}
	}
	return false
}
