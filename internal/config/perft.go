package config

import (
	"fmt"

	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// MaxPerftDepth bounds the perft depth accepted from the command line.
const MaxPerftDepth = 10

// PerftConfig holds settings for move path enumeration.
type PerftConfig struct {
	// Depth in plies; 0 disables perft
	Depth int

	// Divide prints the node count below each root move
	Divide bool

	// Workers is the number of goroutines that share the root moves
	Workers int
}

// NewPerftConfig creates a PerftConfig with perft disabled and one
// worker per usable CPU.
func NewPerftConfig() *PerftConfig {
	return &PerftConfig{Workers: defaultWorkers()}
}

// Enabled reports whether perft was requested.
func (p *PerftConfig) Enabled() bool {
	return p.Depth > 0
}

// Validate checks that the perft configuration is valid.
func (p *PerftConfig) Validate() error {
	if p.Depth < 0 || p.Depth > MaxPerftDepth {
		return fmt.Errorf("perft depth %d outside 0..%d: %w", p.Depth, MaxPerftDepth, errors.ErrInvalidConfig)
	}
	if p.Divide && p.Depth == 0 {
		return fmt.Errorf("divide needs a perft depth: %w", errors.ErrInvalidConfig)
	}
	if p.Workers < 1 {
		return fmt.Errorf("workers (%d) must be at least 1: %w", p.Workers, errors.ErrInvalidConfig)
	}
	return nil
}
