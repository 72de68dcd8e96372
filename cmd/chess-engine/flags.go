// flags.go - Command-line flag definitions and configuration
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/lgbarn/chess-engine-go/internal/config"
)

var (
	// Game setup
	startFEN   = flag.String("fen", "", "Starting position in FEN (default: standard position)")
	moveList   = flag.String("moves", "", "Moves to play, long algebraic, separated by spaces or commas")
	allySide   = flag.String("ally", "white", "Colour of the Ally team: white or black")
	fenFile    = flag.String("fenfile", "", "File of FEN positions, one game per line")
	outputFile = flag.String("o", "", "Output file (default: stdout)")

	// Perft
	perftDepth = flag.Int("perft", 0, "Count move paths to this depth (0 = off)")
	divide     = flag.Bool("divide", false, "With -perft, print the count below each root move")
	workers    = flag.Int("workers", 0, "Number of perft workers (0 = auto-detect based on CPU cores)")

	// Output options
	showBoard   = flag.Bool("board", false, "Draw the final board")
	noFEN       = flag.Bool("nofen", false, "Don't print the final FEN")
	noMoves     = flag.Bool("nomoves", false, "Don't list the legal moves")
	showHistory = flag.Bool("history", false, "Print the moves played")
	jsonOutput  = flag.Bool("J", false, "Output in JSON format")

	// Logging
	logLevel = flag.String("loglevel", "info", "Log level: debug, info, warn, error")
	quiet    = flag.Bool("s", false, "Silent mode (results only)")
	verbose  = flag.Bool("v", false, "Draw the board after every move")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration. Positional
// arguments are appended to the -moves list.
func applyFlags(cfg *config.Config, args []string) error {
	if err := applyGameFlags(cfg, args); err != nil {
		return err
	}
	applyPerftFlags(cfg)
	applyOutputFlags(cfg)

	cfg.LogLevel = *logLevel
	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
	return nil
}

// applyGameFlags configures the starting position and moves.
func applyGameFlags(cfg *config.Config, args []string) error {
	colour, err := config.ParseColour(*allySide)
	if err != nil {
		return err
	}
	cfg.Game.AllyColour = colour

	if *startFEN != "" {
		cfg.Game.StartFEN = *startFEN
	}
	if *fenFile != "" {
		positions, err := loadPositions(*fenFile)
		if err != nil {
			return err
		}
		cfg.Game.Positions = positions
	}
	cfg.Game.Moves = append(parseMoves(*moveList), args...)
	return nil
}

// applyPerftFlags configures perft settings.
func applyPerftFlags(cfg *config.Config) {
	cfg.Perft.Depth = *perftDepth
	cfg.Perft.Divide = *divide
	if *workers > 0 {
		cfg.Perft.Workers = *workers
	} else {
		cfg.Perft.Workers = runtime.GOMAXPROCS(0)
	}
}

// applyOutputFlags configures what is printed.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.ShowBoard = *showBoard
	cfg.Output.ShowFEN = !*noFEN
	cfg.Output.ShowLegalMoves = !*noMoves
	cfg.Output.ShowHistory = *showHistory
	cfg.Output.JSONFormat = *jsonOutput
}

// parseMoves splits a move list on spaces and commas.
func parseMoves(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// loadPositions reads the position list of a -fenfile.
func loadPositions(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening position file: %w", err)
	}
	defer file.Close()

	positions, err := readPositions(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return positions, nil
}

// readPositions returns one FEN per line. Blank lines and lines starting
// with '#' are skipped, and anything after a ';' (EPD operations such as
// perft counts) is dropped.
func readPositions(r io.Reader) ([]string, error) {
	var positions []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		positions = append(positions, line)
	}
	return positions, scanner.Err()
}
