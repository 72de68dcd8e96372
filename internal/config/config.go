// Package config provides configuration for the chess-engine command.
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	Game   *GameConfig
	Perft  *PerftConfig
	Output *OutputConfig

	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string

	// 0=results only, 1=summary lines, 2=board after every move
	Verbosity int

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Game:       NewGameConfig(),
		Perft:      NewPerftConfig(),
		Output:     NewOutputConfig(),
		LogLevel:   "info",
		Verbosity:  1,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the writer results are printed to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Level returns the parsed log level. An unparsable level yields info;
// Validate reports it.
func (c *Config) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// Validate checks the whole configuration. Every error wraps
// errors.ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}
	if err := c.Perft.Validate(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, errors.ErrInvalidConfig)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity %d is negative: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	return nil
}

// defaultWorkers is the worker count used when none is configured.
func defaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}
