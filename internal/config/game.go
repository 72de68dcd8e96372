package config

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// GameConfig describes the game the command sets up and plays.
type GameConfig struct {
	// AllyColour is the colour of the Ally team
	AllyColour chess.Colour

	// StartFEN is the position the game starts from
	StartFEN string

	// Moves are long algebraic moves ("e2e4", "e7e8q") played in order
	Moves []string

	// Positions, when set, replaces StartFEN with a list of start
	// positions, one game each. Moves cannot be combined with it.
	Positions []string
}

// NewGameConfig creates a GameConfig for the standard starting position.
func NewGameConfig() *GameConfig {
	return &GameConfig{
		AllyColour: chess.White,
		StartFEN:   engine.InitialFEN,
	}
}

// ParseColour converts "white"/"w" or "black"/"b" to a colour.
func ParseColour(s string) (chess.Colour, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return chess.White, nil
	case "black", "b":
		return chess.Black, nil
	default:
		return chess.White, fmt.Errorf("unknown colour %q: %w", s, errors.ErrInvalidConfig)
	}
}

// Validate checks that the game configuration is usable.
func (g *GameConfig) Validate() error {
	if g.AllyColour != chess.White && g.AllyColour != chess.Black {
		return fmt.Errorf("ally colour %d: %w", g.AllyColour, errors.ErrInvalidConfig)
	}
	if strings.TrimSpace(g.StartFEN) == "" {
		return fmt.Errorf("empty start position: %w", errors.ErrInvalidConfig)
	}
	if len(g.Positions) > 0 && len(g.Moves) > 0 {
		return fmt.Errorf("moves cannot be played on a position list: %w", errors.ErrInvalidConfig)
	}
	for i, fen := range g.Positions {
		if strings.TrimSpace(fen) == "" {
			return fmt.Errorf("position %d is empty: %w", i+1, errors.ErrInvalidConfig)
		}
	}
	for i, m := range g.Moves {
		if len(m) != 4 && len(m) != 5 {
			return fmt.Errorf("move %d %q is not long algebraic: %w", i+1, m, errors.ErrInvalidConfig)
		}
	}
	return nil
}

// StartPositions returns the FEN of every game to set up.
func (g *GameConfig) StartPositions() []string {
	if len(g.Positions) > 0 {
		return g.Positions
	}
	return []string{g.StartFEN}
}

// Options returns the engine options matching the configuration.
func (g *GameConfig) Options() []engine.Option {
	return []engine.Option{engine.WithAllyColour(g.AllyColour)}
}
