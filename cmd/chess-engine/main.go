// chess-engine plays moves on a chess position and reports the result:
// game status, FEN, legal moves and optionally perft node counts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/output"
	"github.com/lgbarn/chess-engine-go/internal/perft"
	"github.com/lgbarn/chess-engine-go/internal/session"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-engine-go version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	setupOutputFile(cfg)

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// usage prints the command synopsis and flag defaults.
func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-engine [flags] [move ...]\n\n")
	fmt.Fprintf(os.Stderr, "Moves are long algebraic: e2e4, e1g1, e7e8q.\n\n")
	flag.PrintDefaults()
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}

	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
}

// newLogger builds a console logger writing to cfg.LogFile at cfg's level.
func newLogger(cfg *config.Config) *zap.Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(cfg.LogFile),
		cfg.Level(),
	)
	return zap.New(core)
}

// run plays every configured game in a hosted session and writes the
// reports to cfg.OutputFile.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	manager := session.NewManager(session.WithLogger(logger))
	defer closeSessions(manager)

	writer := output.NewWriter(cfg.OutputFile, cfg)
	for _, fen := range cfg.Game.StartPositions() {
		if err := playGame(ctx, cfg, manager, writer, fen, logger); err != nil {
			return err
		}
	}
	return writer.Close()
}

// playGame sets up fen, plays the configured moves and writes the report.
func playGame(ctx context.Context, cfg *config.Config, manager *session.Manager, writer output.GameWriter, fen string, logger *zap.Logger) error {
	st, err := manager.Create(fen, cfg.Game.Options()...)
	if err != nil {
		return fmt.Errorf("start position: %w", err)
	}

	out := cfg.OutputFile
	for i, mv := range cfg.Game.Moves {
		if _, err := manager.Apply(st.ID, mv); err != nil {
			return fmt.Errorf("move %d (%s): %w", i+1, mv, err)
		}
		if cfg.Verbosity >= 2 && !cfg.Output.JSONFormat {
			err := manager.Do(st.ID, func(g *engine.Game) error {
				_, err := fmt.Fprintf(out, "%d. %s\n%s\n", i+1, mv, g.Board())
				return err
			})
			if err != nil {
				return err
			}
		}
	}

	return manager.Do(st.ID, func(g *engine.Game) error {
		if err := writer.WriteGame(g); err != nil {
			return err
		}
		if !cfg.Perft.Enabled() {
			return nil
		}
		result, err := runPerft(ctx, cfg, g, logger)
		if err != nil {
			return err
		}
		return writer.WritePerft(result)
	})
}

// closeSessions closes every session still open on manager.
func closeSessions(manager *session.Manager) {
	for _, id := range manager.IDs() {
		_ = manager.Close(id)
	}
}

// runPerft counts the nodes below g, divided by root move if asked.
func runPerft(ctx context.Context, cfg *config.Config, g *engine.Game, logger *zap.Logger) (*output.PerftResult, error) {
	start := time.Now()
	result := &output.PerftResult{Depth: cfg.Perft.Depth}

	if cfg.Perft.Divide {
		entries, total, err := perft.Divide(ctx, g, cfg.Perft.Depth, cfg.Perft.Workers)
		if err != nil {
			return nil, err
		}
		result.Divide, result.Nodes = entries, total
	} else {
		n, err := perft.Count(g, cfg.Perft.Depth)
		if err != nil {
			return nil, err
		}
		result.Nodes = n
	}

	logger.Debug("perft finished",
		zap.Int("depth", cfg.Perft.Depth),
		zap.Bool("divide", cfg.Perft.Divide),
		zap.Int("workers", cfg.Perft.Workers),
		zap.Uint64("nodes", result.Nodes),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}
