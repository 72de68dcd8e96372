package engine

import (
	"testing"

	"github.com/lgbarn/chess-engine-go/internal/chess"
)

func TestLegalGeometry(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from string
		to   string
		want bool
	}{
		{"knight jump", InitialFEN, "g1", "f3", true},
		{"knight over pieces", InitialFEN, "b1", "c3", true},
		{"bishop blocked", InitialFEN, "c1", "e3", false},
		{"queen diagonal", "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1", "a1", "h8", true},
		{"queen knight-like", "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1", "a1", "b3", false},
		{"rook along rank", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1", "d1", true},
		{"rook diagonal", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1", "b2", false},
		{"rook through king", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1", "f1", false},
		{"king one step", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "e1", "f2", true},
		{"king two steps without castling", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "e1", "g1", false},
		{"same square", InitialFEN, "e2", "e2", false},
		{"black pawn moves down", InitialFEN, "e7", "e5", true},
		{"black pawn cannot move up", "4k3/8/8/8/4p3/8/8/4K3 b - - 0 1", "e4", "e5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewFromFEN(tt.fen)
			if err != nil {
				t.Fatalf("NewFromFEN(%q) error: %v", tt.fen, err)
			}
			p := g.PieceAt(chess.MustCoordinate(tt.from))
			got := g.legalGeometry(p, chess.MustCoordinate(tt.to))
			if got != tt.want {
				t.Errorf("legalGeometry(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestLegalGeometry_NeverCapturesKing(t *testing.T) {
	g := New()
	queen := g.PieceAt(chess.MustCoordinate("d1"))
	blackKing := g.board.KingOf(chess.Opponent)

	// Put the queen next to the king by hand; no legal game gets here
	g.board.Remove(g.PieceAt(chess.MustCoordinate("f7")))
	g.board.Relocate(queen, chess.MustCoordinate("f7"))

	if g.legalGeometry(queen, blackKing.Pos) {
		t.Errorf("legalGeometry(%v, %v) = true, want false", queen, blackKing.Pos)
	}
}

func TestIsKingSafeAfter_LeavesNoTrace(t *testing.T) {
	g := New()
	before := g.board.String()
	count := g.board.Len()

	for _, p := range g.board.Pieces() {
		for i := 0; i < chess.NumSquares; i++ {
			to := chess.CoordinateFromIndex(i)
			if g.legalGeometry(p, to) {
				g.isKingSafeAfter(p, to)
			}
		}
	}

	if got := g.board.String(); got != before {
		t.Errorf("board changed by trial moves:\n%s\nwant:\n%s", got, before)
	}
	if got := g.board.Len(); got != count {
		t.Errorf("Board.Len() = %d, want %d", got, count)
	}
}

func TestLegalDestinations_CacheInvalidated(t *testing.T) {
	g := New()
	bishop := g.PieceAt(chess.MustCoordinate("f1"))
	if got := g.LegalDestinations(bishop); !got.Empty() {
		t.Fatalf("LegalDestinations(f1) = %v, want empty", got)
	}
	if _, ok := g.legal[bishop]; !ok {
		t.Error("destinations were not cached")
	}

	if _, err := g.ApplyUCI("e2e4"); err != nil {
		t.Fatal(err)
	}
	if _, ok := g.legal[bishop]; ok {
		t.Error("cache survived a move")
	}
	if got := g.LegalDestinations(bishop).Len(); got != 5 {
		t.Errorf("LegalDestinations(f1).Len() = %d, want 5", got)
	}
}
