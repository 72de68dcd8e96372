package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewFromFEN creates a game from a FEN string. Missing trailing fields
// default to White to move, no castling, no en passant and clocks 0 1.
//
// Castling rights and pawn ranks decide the pieces' HasMoved flags. The
// position must have exactly one king per side, no pawns on the first or
// last rank, and the side not to move must not be in check.
func NewFromFEN(fen string, opts ...Option) (*Game, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	g := newGame(opts)

	if err := g.parsePiecePositions(parts[0]); err != nil {
		return nil, err
	}
	if err := g.parseSideToMove(parts); err != nil {
		return nil, err
	}
	if err := g.parseCastlingRights(parts); err != nil {
		return nil, err
	}
	if err := g.parseEnPassant(parts); err != nil {
		return nil, err
	}
	if err := g.parseClocks(parts); err != nil {
		return nil, err
	}

	g.refreshAttacks()
	if g.InCheck(g.toMove.Enemy()) {
		return nil, fmt.Errorf("side not to move is in check: %w", errors.ErrInvalidFEN)
	}
	g.start()

	return g, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func (g *Game) parsePiecePositions(positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("expected %d ranks, got %d: %w", chess.BoardSize, len(ranks), errors.ErrInvalidFEN)
	}

	var kings [2]int
	for i, row := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for _, c := range row {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			kind := chess.NoKind
			if c < utf8.RuneSelf {
				kind = chess.KindFromLetter(byte(c))
			}
			if kind == chess.NoKind {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			if file >= chess.BoardSize {
				return fmt.Errorf("position out of bounds: %w", errors.ErrInvalidFEN)
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}

			if kind == chess.King {
				kings[colour]++
				if kings[colour] > 1 {
					return fmt.Errorf("more than one %s king: %w", colour, errors.ErrInvalidFEN)
				}
			}
			if kind == chess.Pawn && (rank == 0 || rank == chess.BoardSize-1) {
				return fmt.Errorf("pawn on rank %d: %w", rank+1, errors.ErrInvalidFEN)
			}

			p := g.board.Place(kind, g.TeamOf(colour), colour, chess.Sq(file, rank))
			switch kind {
			case chess.Pawn:
				p.HasMoved = rank != colour.PawnRank()
			case chess.King, chess.Rook:
				// Cleared again by parseCastlingRights
				p.HasMoved = true
			}
			file++
		}
		if file != chess.BoardSize {
			return fmt.Errorf("rank %d has %d squares: %w", rank+1, file, errors.ErrInvalidFEN)
		}
	}

	for colour, n := range kings {
		if n == 0 {
			return fmt.Errorf("no %s king: %w", chess.Colour(colour), errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func (g *Game) parseSideToMove(parts []string) error {
	colour := chess.White
	if len(parts) >= 2 {
		switch parts[1] {
		case "w":
			colour = chess.White
		case "b":
			colour = chess.Black
		default:
			return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
		}
	}
	g.toMove = g.TeamOf(colour)
	return nil
}

// parseCastlingRights parses the castling availability field. A right is
// only honoured when the king and rook stand on their home squares.
func (g *Game) parseCastlingRights(parts []string) error {
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	for _, c := range parts[2] {
		var colour chess.Colour
		var rookFile int
		switch c {
		case 'K':
			colour, rookFile = chess.White, chess.KingsideRookFile
		case 'Q':
			colour, rookFile = chess.White, chess.QueensideRookFile
		case 'k':
			colour, rookFile = chess.Black, chess.KingsideRookFile
		case 'q':
			colour, rookFile = chess.Black, chess.QueensideRookFile
		default:
			return fmt.Errorf("invalid castling field: %s: %w", parts[2], errors.ErrInvalidFEN)
		}

		home := colour.HomeRank()
		king := g.board.PieceAt(chess.Sq(chess.KingFile, home))
		rook := g.board.PieceAt(chess.Sq(rookFile, home))
		if king == nil || king.Kind != chess.King || king.Colour != colour {
			continue
		}
		if rook == nil || rook.Kind != chess.Rook || rook.Colour != colour {
			continue
		}
		king.HasMoved = false
		rook.HasMoved = false
	}
	return nil
}

// parseEnPassant parses the en passant target square field and flags the
// pawn that just advanced two ranks.
func (g *Game) parseEnPassant(parts []string) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}

	target, err := chess.ParseCoordinate(parts[3])
	if err != nil {
		return fmt.Errorf("invalid en passant square: %s: %w", parts[3], errors.ErrInvalidFEN)
	}

	// The pawn belongs to the side that just moved
	colour := g.ColourToMove().Opposite()
	pawn := g.board.PieceAt(target.Offset(0, colour.Forward()))
	if target.Rank != colour.PawnRank()+colour.Forward() || g.board.PieceAt(target) != nil ||
		pawn == nil || pawn.Kind != chess.Pawn || pawn.Colour != colour {
		return fmt.Errorf("no pawn can be captured on %s: %w", target, errors.ErrInvalidFEN)
	}
	pawn.EnPassant = true
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func (g *Game) parseClocks(parts []string) error {
	if len(parts) >= 5 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid halfmove clock: %s: %w", parts[4], errors.ErrInvalidFEN)
		}
		g.halfmoveClock = n
	}
	if len(parts) >= 6 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid fullmove number: %s: %w", parts[5], errors.ErrInvalidFEN)
		}
		g.fullmoveNumber = n
	}
	return nil
}

// FEN returns the current position as a FEN string.
func (g *Game) FEN() string {
	var sb strings.Builder

	g.writePosition(&sb, false)
	fmt.Fprintf(&sb, " %d %d", g.halfmoveClock, g.fullmoveNumber)

	return sb.String()
}

// Signature returns the position without move counters: placement, side to
// move, castling rights and en passant square. The en passant square is
// only written when an enemy pawn stands ready to capture, so positions
// that differ by an unusable en passant right compare equal.
func (g *Game) Signature() string {
	var sb strings.Builder
	g.writePosition(&sb, true)
	return sb.String()
}

func (g *Game) writePosition(sb *strings.Builder, capturableEP bool) {
	writePiecePositions(sb, g.board)
	sb.WriteByte(' ')
	writeSideToMove(sb, g.ColourToMove())
	sb.WriteByte(' ')
	writeCastlingRights(sb, g.board)
	sb.WriteByte(' ')

	target, ok := g.board.EnPassantTarget()
	if capturableEP {
		target, ok = g.board.CapturableEnPassant()
	}
	if ok {
		sb.WriteString(target.String())
	} else {
		sb.WriteByte('-')
	}
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			p := board.PieceAt(chess.Sq(file, rank))
			if p == nil {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(p.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, colour chess.Colour) {
	if colour == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	hasCastling := false
	wk, wq := board.CastleRights(chess.White)
	bk, bq := board.CastleRights(chess.Black)
	for _, right := range []struct {
		ok     bool
		letter byte
	}{{wk, 'K'}, {wq, 'Q'}, {bk, 'k'}, {bq, 'q'}} {
		if right.ok {
			sb.WriteByte(right.letter)
			hasCastling = true
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}
