package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/engine"
)

// OutputGame writes the text report of a game: history, board, status,
// FEN and legal moves, each as enabled in cfg.
func OutputGame(w io.Writer, g *engine.Game, cfg *config.Config) error {
	var sb strings.Builder

	if cfg.Output.ShowHistory {
		moves := make([]string, 0, g.Ply())
		for _, m := range g.History() {
			moves = append(moves, m.String())
		}
		fmt.Fprintf(&sb, "History: %s\n", strings.Join(moves, " "))
	}
	if cfg.Output.ShowBoard {
		sb.WriteString(g.Board().String())
	}
	if cfg.Verbosity > 0 {
		fmt.Fprintf(&sb, "Status: %s\n", g.Status())
		fmt.Fprintf(&sb, "Turn: %s (%s)\n", g.Turn(), g.ColourToMove())
		if n := g.RepetitionCount(); n > 1 {
			fmt.Fprintf(&sb, "Repetitions: %d\n", n)
		}
		if g.HasInsufficientMaterial() {
			sb.WriteString("Insufficient material\n")
		}
	}
	if cfg.Output.ShowFEN {
		fmt.Fprintf(&sb, "FEN: %s\n", g.FEN())
	}
	if cfg.Output.ShowLegalMoves {
		var moves []string
		for _, c := range g.LegalMoves() {
			moves = append(moves, c.String())
		}
		fmt.Fprintf(&sb, "Legal moves (%d): %s\n", len(moves), strings.Join(moves, " "))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
