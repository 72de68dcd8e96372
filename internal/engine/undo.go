package engine

import (
	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// UndoMove takes back the last move, restoring the position, piece flags,
// the repetition count and the turn. It is allowed after the game has
// ended.
func (g *Game) UndoMove() error {
	if len(g.history) == 0 {
		return errors.ErrNothingToUndo
	}

	last := len(g.history) - 1
	m := g.history[last]
	g.history[last] = nil
	g.history = g.history[:last]

	g.repetitions.Remove(m.Undo.Key, m.Undo.Signature)
	g.revert(m)

	g.toMove = m.Piece.Team
	if m.Piece.Colour == chess.Black {
		g.fullmoveNumber--
	}
	g.halfmoveClock = m.Undo.HalfmoveClock

	g.invalidate()
	g.refreshAttacks()
	g.key, g.signature = g.positionKey()
	g.refreshStatus()

	return nil
}

// revert reverses the board changes made by execute.
func (g *Game) revert(m *chess.Move) {
	p := m.Piece

	if m.Promotion != nil {
		// Bring back the original pawn, not a demoted copy
		g.board.Remove(m.Promotion)
		p.Pos = m.From
		g.board.Add(p)
	} else {
		g.board.Relocate(p, m.From)
	}
	p.HasMoved = m.Undo.PieceHadMoved
	p.MoveCount--
	p.EnPassant = false

	if m.Rook != nil {
		g.board.Relocate(m.Rook, m.RookFrom)
		m.Rook.HasMoved = m.Undo.RookHadMoved
		m.Rook.MoveCount--
	}

	if m.Captured != nil {
		m.Captured.Pos = m.CapturedAt
		g.board.Add(m.Captured)
	}

	if prev := m.Undo.PrevEnPassant; prev != nil {
		prev.EnPassant = true
	}
}
