// Package hashing provides position keys and repetition counting for chess games.
package hashing

import (
	"math/rand"

	"github.com/lgbarn/chess-engine-go/internal/chess"
)

// Zobrist key tables. They are filled once from a fixed seed so keys are
// stable across runs.
var (
	pieceKeys  [2][chess.NumKinds][chess.NumSquares]uint64
	sideKey    uint64
	castleKeys [4]uint64
	epKeys     [chess.BoardSize]uint64
)

const zobristSeed = 0x5eed_c0de

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	for c := range pieceKeys {
		for k := range pieceKeys[c] {
			for sq := range pieceKeys[c][k] {
				pieceKeys[c][k][sq] = r.Uint64()
			}
		}
	}
	sideKey = r.Uint64()
	for i := range castleKeys {
		castleKeys[i] = r.Uint64()
	}
	for i := range epKeys {
		epKeys[i] = r.Uint64()
	}
}

// Key computes the Zobrist key of the position: piece placement, side to
// move, castling rights and any capturable en passant file. Move counters
// do not contribute.
func Key(board *chess.Board, toMove chess.Colour) uint64 {
	var key uint64
	for _, p := range board.Pieces() {
		key ^= pieceKeys[p.Colour][p.Kind][p.Pos.Index()]
	}
	if toMove == chess.Black {
		key ^= sideKey
	}
	for i, colour := range []chess.Colour{chess.White, chess.Black} {
		kingside, queenside := board.CastleRights(colour)
		if kingside {
			key ^= castleKeys[2*i]
		}
		if queenside {
			key ^= castleKeys[2*i+1]
		}
	}
	if target, ok := board.CapturableEnPassant(); ok {
		key ^= epKeys[target.File]
	}
	return key
}

// positionEntry counts occurrences of one exact position signature.
type positionEntry struct {
	Signature string
	Count     int
}

// RepetitionTable counts how often each position has been reached. Keys
// pick the bucket; the signature inside the bucket resolves collisions.
type RepetitionTable struct {
	table map[uint64][]positionEntry
}

// NewRepetitionTable creates an empty table.
func NewRepetitionTable() *RepetitionTable {
	return &RepetitionTable{table: make(map[uint64][]positionEntry)}
}

// Add records one more occurrence of the position and returns its count.
func (t *RepetitionTable) Add(key uint64, signature string) int {
	bucket := t.table[key]
	for i := range bucket {
		if bucket[i].Signature == signature {
			bucket[i].Count++
			return bucket[i].Count
		}
	}
	t.table[key] = append(bucket, positionEntry{Signature: signature, Count: 1})
	return 1
}

// Remove takes back one occurrence of the position, as when a move is undone.
func (t *RepetitionTable) Remove(key uint64, signature string) {
	bucket := t.table[key]
	for i := range bucket {
		if bucket[i].Signature != signature {
			continue
		}
		bucket[i].Count--
		if bucket[i].Count > 0 {
			return
		}
		bucket = append(bucket[:i], bucket[i+1:]...)
		if len(bucket) == 0 {
			delete(t.table, key)
		} else {
			t.table[key] = bucket
		}
		return
	}
}

// Count returns how many times the position has occurred.
func (t *RepetitionTable) Count(key uint64, signature string) int {
	for _, e := range t.table[key] {
		if e.Signature == signature {
			return e.Count
		}
	}
	return 0
}

// Len returns the number of distinct positions recorded.
func (t *RepetitionTable) Len() int {
	count := 0
	for _, bucket := range t.table {
		count += len(bucket)
	}
	return count
}

// Clone returns an independent copy of the table.
func (t *RepetitionTable) Clone() *RepetitionTable {
	c := NewRepetitionTable()
	for key, bucket := range t.table {
		c.table[key] = append([]positionEntry(nil), bucket...)
	}
	return c
}
