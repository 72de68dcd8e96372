package engine_test

import (
	"sort"
	"testing"

	notnil "github.com/notnil/chess"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/testutil"
)

// oracleMoves lists the legal moves of a position as computed by
// github.com/notnil/chess, without promotion letters.
func oracleMoves(t *testing.T, fen string) []string {
	t.Helper()
	opt, err := notnil.FEN(fen)
	if err != nil {
		t.Fatalf("notnil.FEN(%q) error: %v", fen, err)
	}
	game := notnil.NewGame(opt)

	seen := make(map[string]bool)
	var out []string
	for _, m := range game.ValidMoves() {
		s := m.S1().String() + m.S2().String()
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func engineMoves(g *engine.Game) []string {
	var out []string
	for _, m := range g.LegalMoves() {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

// TestLegalMoves_MatchOracle walks a few plies from each position and
// compares the legal move list with an independent implementation at
// every step.
func TestLegalMoves_MatchOracle(t *testing.T) {
	fens := map[string]string{
		"Initial":   engine.InitialFEN,
		"Kiwipete":  testutil.Kiwipete,
		"Position3": testutil.Position3,
		"Position4": testutil.Position4,
		"Position5": testutil.Position5,
		"EnPassant": "rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3",
		"Pinned":    "8/8/8/KPp4r/8/8/8/4k3 w - c6 0 1",
		"Promotion": "1n5k/P7/8/8/8/8/8/K7 w - - 0 1",
		"Castling":  "r3k2r/8/8/8/1b6/8/8/R3K2R w KQkq - 0 1",
	}
	const plies = 8

	for name, fen := range fens {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			g := testutil.MustGame(t, fen)

			for ply := 0; ply < plies; ply++ {
				got := engineMoves(g)
				want := oracleMoves(t, g.FEN())
				testutil.AssertEqual(t, got, want, "ply %d, position %s", ply, g.FEN())
				if len(got) == 0 || t.Failed() {
					return
				}

				// Pick a move deterministically and keep walking
				moves := g.LegalMoves()
				m := moves[(ply*7+3)%len(moves)]
				if _, err := g.ApplyMove(m.Piece, m.To, chess.Queen); err != nil {
					t.Fatalf("ApplyMove(%s) error: %v", m, err)
				}
			}
		})
	}
}
