package output

import (
	"strings"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/engine"
)

// JSONReport represents a game in JSON format.
type JSONReport struct {
	AllyColour           string     `json:"allyColour"`
	FEN                  string     `json:"fen"`
	Status               string     `json:"status"`
	Turn                 string     `json:"turn"`
	ColourToMove         string     `json:"colourToMove"`
	PlyCount             int        `json:"plyCount"`
	Repetitions          int        `json:"repetitions"`
	InsufficientMaterial bool       `json:"insufficientMaterial,omitempty"`
	Moves                []JSONMove `json:"moves,omitempty"`
	LegalMoves           []string   `json:"legalMoves,omitempty"`
	Perft                *JSONPerft `json:"perft,omitempty"`
}

// JSONMove represents a played move in JSON format.
type JSONMove struct {
	Ply       int    `json:"ply"`
	Colour    string `json:"colour"` // "white" or "black"
	Team      string `json:"team"`
	UCI       string `json:"uci"`
	From      string `json:"from"`
	To        string `json:"to"`
	Piece     string `json:"piece"`
	Captured  string `json:"captured,omitempty"`
	Promotion string `json:"promotion,omitempty"`
	Castle    string `json:"castle,omitempty"`
	EnPassant bool   `json:"enPassant,omitempty"`
}

// JSONPerft represents a perft result in JSON format.
type JSONPerft struct {
	Depth  int              `json:"depth"`
	Nodes  uint64           `json:"nodes"`
	Divide []JSONDivideLine `json:"divide,omitempty"`
}

// JSONDivideLine is the node count below one root move.
type JSONDivideLine struct {
	Move  string `json:"move"`
	Nodes uint64 `json:"nodes"`
}

// JSONOutput holds multiple reports for array output.
type JSONOutput struct {
	Games []*JSONReport `json:"games"`
}

// GameToJSON converts a game to JSON format.
func GameToJSON(g *engine.Game, cfg *config.Config) *JSONReport {
	r := &JSONReport{
		AllyColour:           colourName(g.AllyColour()),
		FEN:                  g.FEN(),
		Status:               g.Status().String(),
		Turn:                 g.Turn().String(),
		ColourToMove:         colourName(g.ColourToMove()),
		PlyCount:             g.Ply(),
		Repetitions:          g.RepetitionCount(),
		InsufficientMaterial: g.HasInsufficientMaterial(),
	}

	for i, m := range g.History() {
		r.Moves = append(r.Moves, convertMove(i+1, m))
	}
	if cfg.Output.ShowLegalMoves {
		for _, c := range g.LegalMoves() {
			r.LegalMoves = append(r.LegalMoves, c.String())
		}
	}
	return r
}

// PerftToJSON converts a perft result to JSON format.
func PerftToJSON(p *PerftResult) *JSONPerft {
	jp := &JSONPerft{Depth: p.Depth, Nodes: p.Nodes}
	for _, e := range p.Divide {
		jp.Divide = append(jp.Divide, JSONDivideLine{Move: e.Move, Nodes: e.Nodes})
	}
	return jp
}

// convertMove converts one history entry.
func convertMove(ply int, m *chess.Move) JSONMove {
	jm := JSONMove{
		Ply:       ply,
		Colour:    colourName(m.Piece.Colour),
		Team:      m.Piece.Team.String(),
		UCI:       m.String(),
		From:      m.From.String(),
		To:        m.To.String(),
		Piece:     pieceName(m.Piece.Kind),
		EnPassant: m.EnPassant,
	}
	if m.Captured != nil {
		jm.Captured = pieceName(m.Captured.Kind)
	}
	if m.Promotion != nil {
		jm.Promotion = pieceName(m.Promotion.Kind)
	}
	if m.IsCastle() {
		jm.Castle = m.Castle.String()
	}
	return jm
}

// colourName returns "white" or "black".
func colourName(c chess.Colour) string {
	return strings.ToLower(c.String())
}

// pieceName returns the lowercase kind name, e.g. "knight".
func pieceName(k chess.Kind) string {
	return strings.ToLower(k.String())
}
