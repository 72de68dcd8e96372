// Package perft counts move paths from a position. Node counts are
// compared against published values to check move generation.
package perft

import (
	"context"
	"fmt"
	"sort"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/errors"
	"github.com/lgbarn/chess-engine-go/internal/worker"
)

// Move is one fully specified root move: a candidate plus, for pawns
// reaching the last rank, the promotion kind.
type Move struct {
	engine.Candidate
	Promotion chess.Kind
}

// String returns the move in long algebraic form, e.g. "e7e8n".
func (m Move) String() string {
	s := m.Candidate.String()
	if m.Promotion != chess.NoKind {
		s += string(m.Promotion.Letter() + 'a' - 'A')
	}
	return s
}

// Moves lists the legal moves of the side to move with promotions
// expanded into one move per promotion kind.
func Moves(g *engine.Game) []Move {
	candidates := g.LegalMoves()
	out := make([]Move, 0, len(candidates))
	for _, c := range candidates {
		if !promotes(c) {
			out = append(out, Move{Candidate: c})
			continue
		}
		for _, k := range chess.PromotionKinds {
			out = append(out, Move{Candidate: c, Promotion: k})
		}
	}
	return out
}

func promotes(c engine.Candidate) bool {
	return c.Piece.Kind == chess.Pawn && c.To.Rank == c.Piece.Colour.PromotionRank()
}

// Count returns the number of leaf positions depth plies below g. The
// game is restored before Count returns.
func Count(g *engine.Game, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}

	moves := Moves(g)
	if depth == 1 {
		return uint64(len(moves)), nil
	}

	var nodes uint64
	for _, m := range moves {
		if _, err := g.ApplyMove(m.Piece, m.To, m.Promotion); err != nil {
			return 0, errors.Wrapf(err, "perft %s", m)
		}
		n, err := Count(g, depth-1)
		if undoErr := g.UndoMove(); undoErr != nil {
			return 0, undoErr
		}
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// DivideEntry is the node count below one root move.
type DivideEntry struct {
	Move  string
	Nodes uint64
}

// Divide counts the nodes below each root move, spreading the root moves
// over workers goroutines. Each worker searches its own clone of g, so g
// is never mutated. Entries are sorted by move.
func Divide(ctx context.Context, g *engine.Game, depth, workers int) ([]DivideEntry, uint64, error) {
	if depth < 1 {
		return nil, 0, fmt.Errorf("divide depth %d: %w", depth, errors.ErrInvalidConfig)
	}

	moves := Moves(g)
	jobs := make([]worker.Job, len(moves))
	for i, m := range moves {
		jobs[i] = worker.Job{Game: g.Clone(), Move: m.String(), Depth: depth - 1, Index: i}
	}

	pool := worker.NewPool(searchRoot, worker.WithWorkers(workers), worker.WithBufferSize(len(jobs)+1))
	results := pool.Run(ctx, jobs)

	entries := make([]DivideEntry, 0, len(results))
	var total uint64
	for _, r := range results {
		if r.Err != nil {
			return nil, 0, r.Err
		}
		entries = append(entries, DivideEntry{Move: r.Move, Nodes: r.Nodes})
		total += r.Nodes
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Move < entries[j].Move })
	return entries, total, nil
}

// searchRoot plays the job's root move on its private game and counts
// the nodes below it.
func searchRoot(ctx context.Context, job worker.Job) worker.Result {
	res := worker.Result{Index: job.Index, Move: job.Move}
	if _, err := job.Game.ApplyUCI(job.Move); err != nil {
		res.Err = errors.Wrapf(err, "root move %s", job.Move)
		return res
	}
	res.Nodes, res.Err = Count(job.Game, job.Depth)
	return res
}
