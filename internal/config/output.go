package config

// OutputConfig holds settings related to what the command prints.
type OutputConfig struct {
	// ShowBoard draws the final board
	ShowBoard bool

	// ShowFEN prints the final position as FEN
	ShowFEN bool

	// ShowLegalMoves lists the legal moves of the side to move
	ShowLegalMoves bool

	// ShowHistory prints the moves played
	ShowHistory bool

	// JSONFormat enables JSON output instead of text
	JSONFormat bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		ShowFEN:        true,
		ShowLegalMoves: true,
	}
}
