package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/engine"
)

func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

// ---------------------------------------------------------------------------
// parseMoves
// ---------------------------------------------------------------------------

func TestParseMoves(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"spaces", "e2e4 e7e5", []string{"e2e4", "e7e5"}},
		{"commas", "e2e4,e7e5,g1f3", []string{"e2e4", "e7e5", "g1f3"}},
		{"mixed separators", " e2e4, e7e5\tg1f3 ", []string{"e2e4", "e7e5", "g1f3"}},
		{"promotion", "a7a8q", []string{"a7a8q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseMoves(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseMoves(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// applyGameFlags
// ---------------------------------------------------------------------------

func TestApplyGameFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		defer saveRestoreString(startFEN, "")()
		defer saveRestoreString(moveList, "")()
		defer saveRestoreString(allySide, "white")()
		cfg := config.NewConfig()
		if err := applyGameFlags(cfg, nil); err != nil {
			t.Fatalf("applyGameFlags() error = %v", err)
		}
		if cfg.Game.StartFEN != engine.InitialFEN {
			t.Errorf("StartFEN = %q; want initial position", cfg.Game.StartFEN)
		}
		if cfg.Game.AllyColour != chess.White {
			t.Errorf("AllyColour = %v; want White", cfg.Game.AllyColour)
		}
		if len(cfg.Game.Moves) != 0 {
			t.Errorf("Moves = %v; want none", cfg.Game.Moves)
		}
	})

	t.Run("moves flag and positional args", func(t *testing.T) {
		defer saveRestoreString(moveList, "e2e4,e7e5")()
		defer saveRestoreString(allySide, "black")()
		cfg := config.NewConfig()
		if err := applyGameFlags(cfg, []string{"g1f3"}); err != nil {
			t.Fatalf("applyGameFlags() error = %v", err)
		}
		if diff := cmp.Diff([]string{"e2e4", "e7e5", "g1f3"}, cfg.Game.Moves); diff != "" {
			t.Errorf("Moves mismatch (-want +got):\n%s", diff)
		}
		if cfg.Game.AllyColour != chess.Black {
			t.Errorf("AllyColour = %v; want Black", cfg.Game.AllyColour)
		}
	})

	t.Run("fen", func(t *testing.T) {
		const fen = "4k3/8/8/8/8/8/8/4K3 w - - 0 1"
		defer saveRestoreString(startFEN, fen)()
		cfg := config.NewConfig()
		if err := applyGameFlags(cfg, nil); err != nil {
			t.Fatalf("applyGameFlags() error = %v", err)
		}
		if cfg.Game.StartFEN != fen {
			t.Errorf("StartFEN = %q; want %q", cfg.Game.StartFEN, fen)
		}
	})

	t.Run("fen file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "positions.epd")
		content := "# perft suite\n" + engine.InitialFEN + " ;D1 20\n\n4k3/8/8/8/8/8/8/4K3 w - - 0 1\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		defer saveRestoreString(fenFile, path)()
		cfg := config.NewConfig()
		if err := applyGameFlags(cfg, nil); err != nil {
			t.Fatalf("applyGameFlags() error = %v", err)
		}
		want := []string{engine.InitialFEN, "4k3/8/8/8/8/8/8/4K3 w - - 0 1"}
		if diff := cmp.Diff(want, cfg.Game.Positions); diff != "" {
			t.Errorf("Positions mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing fen file", func(t *testing.T) {
		defer saveRestoreString(fenFile, filepath.Join(t.TempDir(), "none.epd"))()
		if err := applyGameFlags(config.NewConfig(), nil); err == nil {
			t.Error("applyGameFlags() error = nil; want error")
		}
	})

	t.Run("bad colour", func(t *testing.T) {
		defer saveRestoreString(allySide, "green")()
		if err := applyGameFlags(config.NewConfig(), nil); err == nil {
			t.Error("applyGameFlags() error = nil; want error")
		}
	})
}

func TestReadPositions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"comments and blanks", "# header\n\n   \n", nil},
		{"plain", "8/8/8/8/8/8/8/K6k w - - 0 1\n", []string{"8/8/8/8/8/8/8/K6k w - - 0 1"}},
		{"epd operations", "8/8/8/8/8/8/8/K6k w - - ;D1 3;D2 9\n", []string{"8/8/8/8/8/8/8/K6k w - -"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPositions(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("readPositions() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("readPositions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// applyPerftFlags
// ---------------------------------------------------------------------------

func TestApplyPerftFlags(t *testing.T) {
	t.Run("explicit workers", func(t *testing.T) {
		defer saveRestoreInt(perftDepth, 3)()
		defer saveRestoreBool(divide, true)()
		defer saveRestoreInt(workers, 2)()
		cfg := config.NewConfig()
		applyPerftFlags(cfg)
		if cfg.Perft.Depth != 3 || !cfg.Perft.Divide || cfg.Perft.Workers != 2 {
			t.Errorf("Perft = %+v; want depth 3, divide, 2 workers", *cfg.Perft)
		}
	})

	t.Run("auto workers", func(t *testing.T) {
		defer saveRestoreInt(workers, 0)()
		cfg := config.NewConfig()
		applyPerftFlags(cfg)
		if cfg.Perft.Workers < 1 {
			t.Errorf("Workers = %d; want at least 1", cfg.Perft.Workers)
		}
	})
}

// ---------------------------------------------------------------------------
// applyOutputFlags and verbosity
// ---------------------------------------------------------------------------

func TestApplyOutputFlags(t *testing.T) {
	defer saveRestoreBool(showBoard, true)()
	defer saveRestoreBool(noFEN, true)()
	defer saveRestoreBool(noMoves, false)()
	defer saveRestoreBool(showHistory, true)()
	defer saveRestoreBool(jsonOutput, true)()
	cfg := config.NewConfig()
	applyOutputFlags(cfg)

	want := config.OutputConfig{ShowBoard: true, ShowFEN: false, ShowLegalMoves: true, ShowHistory: true, JSONFormat: true}
	if diff := cmp.Diff(want, *cfg.Output); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyFlags_Verbosity(t *testing.T) {
	tests := []struct {
		name    string
		quiet   bool
		verbose bool
		want    int
	}{
		{"default", false, false, 1},
		{"quiet", true, false, 0},
		{"verbose", false, true, 2},
		{"quiet wins", true, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer saveRestoreBool(quiet, tt.quiet)()
			defer saveRestoreBool(verbose, tt.verbose)()
			cfg := config.NewConfig()
			if err := applyFlags(cfg, nil); err != nil {
				t.Fatalf("applyFlags() error = %v", err)
			}
			if cfg.Verbosity != tt.want {
				t.Errorf("Verbosity = %d; want %d", cfg.Verbosity, tt.want)
			}
		})
	}
}
