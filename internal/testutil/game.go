package testutil

import (
	"testing"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
)

// Well-known positions used across the test suites.
const (
	Kiwipete  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	Position3 = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	Position4 = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	Position5 = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
)

// MustGame builds a game from fen, or the standard position when fen is
// empty. It calls t.Fatal if the FEN is rejected.
func MustGame(t testing.TB, fen string, opts ...engine.Option) *engine.Game {
	t.Helper()
	if fen == "" {
		return engine.New(opts...)
	}
	g, err := engine.NewFromFEN(fen, opts...)
	if err != nil {
		t.Fatalf("NewFromFEN(%q) failed: %v", fen, err)
	}
	return g
}

// PlayMoves applies moves in long algebraic notation and calls t.Fatal on
// the first one the game rejects.
func PlayMoves(t testing.TB, g *engine.Game, moves ...string) {
	t.Helper()
	for i, m := range moves {
		if _, err := g.ApplyUCI(m); err != nil {
			t.Fatalf("move %d (%s) rejected: %v\n%s", i+1, m, err, g.Board())
		}
	}
}

// MustPiece returns the piece on square, calling t.Fatal if it is empty.
func MustPiece(t testing.TB, g *engine.Game, square string) *chess.Piece {
	t.Helper()
	p := g.PieceAt(chess.MustCoordinate(square))
	if p == nil {
		t.Fatalf("no piece on %s\n%s", square, g.Board())
	}
	return p
}

// PieceState is a comparable snapshot of one piece.
type PieceState struct {
	ID        int
	Kind      chess.Kind
	Team      chess.Team
	Colour    chess.Colour
	Square    string
	HasMoved  bool
	MoveCount int
	EnPassant bool
}

// Snapshot captures everything observable about a game position: every
// piece's state, attack maps, history length, status and FEN. Two equal
// snapshots describe indistinguishable games.
type Snapshot struct {
	Pieces  []PieceState
	Attacks [2]chess.SquareSet
	Ply     int
	Turn    chess.Team
	Status  engine.Status
	FEN     string
}

// TakeSnapshot records the current state of g.
func TakeSnapshot(g *engine.Game) Snapshot {
	s := Snapshot{
		Attacks: [2]chess.SquareSet{g.AttackedSquares(chess.Ally), g.AttackedSquares(chess.Opponent)},
		Ply:     g.Ply(),
		Turn:    g.Turn(),
		Status:  g.Status(),
		FEN:     g.FEN(),
	}
	for _, p := range g.Board().Pieces() {
		s.Pieces = append(s.Pieces, PieceState{
			ID:        p.ID,
			Kind:      p.Kind,
			Team:      p.Team,
			Colour:    p.Colour,
			Square:    p.Pos.String(),
			HasMoved:  p.HasMoved,
			MoveCount: p.MoveCount,
			EnPassant: p.EnPassant,
		})
	}
	return s
}
