// Package output writes game reports as plain text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/perft"
)

// PerftResult is a finished perft run.
type PerftResult struct {
	Depth  int
	Nodes  uint64
	Divide []perft.DivideEntry // nil unless a divide was requested
}

// GameWriter is the interface for writing game reports to output.
// Different implementations handle different formats (text, JSON).
type GameWriter interface {
	// WriteGame writes the report of one game.
	WriteGame(g *engine.Game) error

	// WritePerft writes a perft result for the most recent game.
	WritePerft(r *PerftResult) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewWriter returns the writer selected by cfg. JSON output for a
// position list is one {"games": [...]} document.
func NewWriter(w io.Writer, cfg *config.Config) GameWriter {
	if cfg.Output.JSONFormat {
		if len(cfg.Game.Positions) > 1 {
			return NewJSONWriter(w, cfg)
		}
		return NewJSONWriterSingle(w, cfg)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter writes reports as "Key: value" lines.
type TextWriter struct {
	w   io.Writer
	cfg *config.Config
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{
		w:   w,
		cfg: cfg,
	}
}

// WriteGame writes a game report.
func (tw *TextWriter) WriteGame(g *engine.Game) error {
	return OutputGame(tw.w, g, tw.cfg)
}

// WritePerft writes the divide lines, if any, and the node total.
func (tw *TextWriter) WritePerft(r *PerftResult) error {
	for _, e := range r.Divide {
		if _, err := fmt.Fprintf(tw.w, "%s: %d\n", e.Move, e.Nodes); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(tw.w, "Nodes searched: %d\n", r.Nodes)
	return err
}

// Flush is a no-op, text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes reports as JSON.
// It buffers reports and writes them on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	cfg     *config.Config
	reports []*JSONReport
	single  bool // If true, write each report as its own object instead of an array
}

// NewJSONWriter creates a JSON writer that writes {"games": [...]}.
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:       w,
		cfg:     cfg,
		reports: make([]*JSONReport, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes one object per game.
func NewJSONWriterSingle(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		single: true,
	}
}

// WriteGame buffers a game report.
func (jw *JSONWriter) WriteGame(g *engine.Game) error {
	jw.reports = append(jw.reports, GameToJSON(g, jw.cfg))
	return nil
}

// WritePerft attaches r to the most recent report.
func (jw *JSONWriter) WritePerft(r *PerftResult) error {
	if len(jw.reports) == 0 {
		return fmt.Errorf("perft result without a game")
	}
	jw.reports[len(jw.reports)-1].Perft = PerftToJSON(r)
	return nil
}

// Flush writes all buffered reports.
func (jw *JSONWriter) Flush() error {
	if len(jw.reports) == 0 {
		return nil
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")

	var err error
	if jw.single {
		for _, r := range jw.reports {
			if err = enc.Encode(r); err != nil {
				break
			}
		}
	} else {
		err = enc.Encode(&JSONOutput{Games: jw.reports})
	}

	// Clear buffer after writing
	jw.reports = jw.reports[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
