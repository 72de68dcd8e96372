// Package engine implements chess rules on top of the board types in
// package chess: move legality, check detection, special moves, game status,
// undo and FEN import/export.
//
// A Game is not safe for concurrent use. Hosts that share one game between
// goroutines must serialize every call.
package engine

import (
	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/hashing"
)

// Game is the aggregate root of one chess game. It owns the board, the move
// history, the repetition table and all derived caches. It is mutated only
// by ApplyMove and UndoMove.
type Game struct {
	board      *chess.Board
	allyColour chess.Colour
	toMove     chess.Team

	history     []*chess.Move
	repetitions *hashing.RepetitionTable

	// Current position key and signature, as recorded in repetitions.
	key       uint64
	signature string

	halfmoveClock  int
	fullmoveNumber int

	// Derived state, refreshed after every mutation.
	attacks [2]chess.SquareSet
	status  Status

	// Legal destinations per piece, filled lazily and cleared on mutation.
	legal map[*chess.Piece]chess.SquareSet
}

// Option configures a new Game.
type Option func(*Game)

// WithAllyColour sets the colour played by the Ally team. The Opponent
// plays the other colour. The default is White.
func WithAllyColour(c chess.Colour) Option {
	return func(g *Game) {
		g.allyColour = c
	}
}

func newGame(opts []Option) *Game {
	g := &Game{
		board:          chess.NewBoard(),
		allyColour:     chess.White,
		repetitions:    hashing.NewRepetitionTable(),
		fullmoveNumber: 1,
		legal:          make(map[*chess.Piece]chess.SquareSet),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// New creates a game in the standard starting position with White to move.
func New(opts ...Option) *Game {
	g := newGame(opts)
	g.board.SetupInitialPosition(g.allyColour)
	g.toMove = g.TeamOf(chess.White)
	g.start()
	return g
}

// start records the initial position and computes the derived state.
func (g *Game) start() {
	g.refreshAttacks()
	g.key, g.signature = g.positionKey()
	g.repetitions.Add(g.key, g.signature)
	g.refreshStatus()
}

// Board returns the game's board. Callers must treat it as read-only.
func (g *Game) Board() *chess.Board {
	return g.board
}

// PieceAt returns the piece on c, or nil for an empty or off-board square.
func (g *Game) PieceAt(c chess.Coordinate) *chess.Piece {
	return g.board.PieceAt(c)
}

// AllyColour returns the colour played by the Ally team.
func (g *Game) AllyColour() chess.Colour {
	return g.allyColour
}

// ColourOf returns the colour a team plays.
func (g *Game) ColourOf(team chess.Team) chess.Colour {
	if team == chess.Ally {
		return g.allyColour
	}
	return g.allyColour.Opposite()
}

// TeamOf returns the team playing a colour.
func (g *Game) TeamOf(colour chess.Colour) chess.Team {
	if colour == g.allyColour {
		return chess.Ally
	}
	return chess.Opponent
}

// Turn returns the team to move.
func (g *Game) Turn() chess.Team {
	return g.toMove
}

// ColourToMove returns the colour of the team to move.
func (g *Game) ColourToMove() chess.Colour {
	return g.ColourOf(g.toMove)
}

// History returns a copy of the applied moves, oldest first.
func (g *Game) History() []*chess.Move {
	out := make([]*chess.Move, len(g.history))
	copy(out, g.history)
	return out
}

// LastMove returns the most recent move, or nil if none has been played.
func (g *Game) LastMove() *chess.Move {
	if len(g.history) == 0 {
		return nil
	}
	return g.history[len(g.history)-1]
}

// Ply returns the number of moves in the history.
func (g *Game) Ply() int {
	return len(g.history)
}

// Clone returns a deep copy of the game. Pieces, history and the
// repetition table are all duplicated; nothing is shared.
func (g *Game) Clone() *Game {
	copies := make(map[*chess.Piece]*chess.Piece)
	remap := func(p *chess.Piece) *chess.Piece {
		if p == nil {
			return nil
		}
		if c, ok := copies[p]; ok {
			return c
		}
		c := chess.ClonePiece(p)
		copies[p] = c
		return c
	}

	c := &Game{
		board:          g.board.CloneWith(remap),
		allyColour:     g.allyColour,
		toMove:         g.toMove,
		history:        make([]*chess.Move, len(g.history)),
		repetitions:    g.repetitions.Clone(),
		key:            g.key,
		signature:      g.signature,
		halfmoveClock:  g.halfmoveClock,
		fullmoveNumber: g.fullmoveNumber,
		attacks:        g.attacks,
		status:         g.status,
		legal:          make(map[*chess.Piece]chess.SquareSet),
	}
	for i, m := range g.history {
		mc := *m
		mc.Piece = remap(m.Piece)
		mc.Captured = remap(m.Captured)
		mc.Rook = remap(m.Rook)
		mc.Promotion = remap(m.Promotion)
		mc.Undo.PrevEnPassant = remap(m.Undo.PrevEnPassant)
		c.history[i] = &mc
	}
	return c
}

// invalidate drops every cached legal destination set.
func (g *Game) invalidate() {
	clear(g.legal)
}

// positionKey computes the repetition key and signature of the current
// position.
func (g *Game) positionKey() (uint64, string) {
	return hashing.Key(g.board, g.ColourToMove()), g.Signature()
}
