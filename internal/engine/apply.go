package engine

import (
	"strings"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// MoveResult reports the outcome of ApplyMove.
type MoveResult struct {
	Applied   bool
	Move      *chess.Move
	Captured  *chess.Piece
	Castle    chess.CastleSide
	Promotion *chess.Piece

	// Status of the game after the call.
	Status Status
}

// ApplyMove moves p to the given square. promotion selects the piece a
// pawn becomes on its last rank; any kind other than knight, bishop, rook
// or queen (including NoKind) means queen.
//
// A rejected move leaves the game untouched and returns an error wrapping
// errors.ErrIllegalMove, usually through one of the more specific
// sentinels.
func (g *Game) ApplyMove(p *chess.Piece, to chess.Coordinate, promotion chess.Kind) (MoveResult, error) {
	if err := g.validate(p, to); err != nil {
		return MoveResult{Status: g.status}, err
	}

	m := g.execute(p, to, promotion)
	g.record(m)

	return MoveResult{
		Applied:   true,
		Move:      m,
		Captured:  m.Captured,
		Castle:    m.Castle,
		Promotion: m.Promotion,
		Status:    g.status,
	}, nil
}

// ApplyUCI applies a move written in long algebraic notation, such as
// "e2e4", "e1g1" or "e7e8n".
func (g *Game) ApplyUCI(s string) (MoveResult, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return MoveResult{Status: g.status}, errors.Wrapf(errors.ErrIllegalMove, "malformed move %q", s)
	}
	from, err := chess.ParseCoordinate(s[0:2])
	if err != nil {
		return MoveResult{Status: g.status}, errors.Wrapf(errors.ErrOffBoard, "move %q", s)
	}
	to, err := chess.ParseCoordinate(s[2:4])
	if err != nil {
		return MoveResult{Status: g.status}, errors.Wrapf(errors.ErrOffBoard, "move %q", s)
	}

	promotion := chess.NoKind
	if len(s) == 5 {
		promotion = chess.KindFromLetter(s[4])
	}

	p := g.board.PieceAt(from)
	if p == nil {
		return MoveResult{Status: g.status}, &errors.MoveError{Err: errors.ErrUnknownPiece, From: from.String(), To: to.String()}
	}
	return g.ApplyMove(p, to, promotion)
}

// validate runs the rejection checks in order.
func (g *Game) validate(p *chess.Piece, to chess.Coordinate) error {
	reject := func(err error) error {
		me := &errors.MoveError{Err: err, To: to.String()}
		if p != nil {
			me.Piece = p.String()
			me.From = p.Pos.String()
		}
		return me
	}

	if g.status.State.Terminal() {
		return reject(errors.ErrGameOver)
	}
	if p == nil || g.board.PieceAt(p.Pos) != p {
		return reject(errors.ErrUnknownPiece)
	}
	if !to.Valid() {
		return reject(errors.ErrOffBoard)
	}
	if p.Team != g.toMove {
		return reject(errors.ErrWrongTurn)
	}
	if !g.legalGeometry(p, to) {
		return reject(errors.ErrIllegalMove)
	}
	if !g.isKingSafeAfter(p, to) {
		return reject(errors.ErrKingExposed)
	}
	return nil
}

// execute performs a validated move on the board and returns its record.
func (g *Game) execute(p *chess.Piece, to chess.Coordinate, promotion chess.Kind) *chess.Move {
	m := &chess.Move{Piece: p, From: p.Pos, To: to}
	m.Undo.PieceHadMoved = p.HasMoved
	m.Undo.PrevEnPassant = g.enPassantPawn()
	m.Undo.HalfmoveClock = g.halfmoveClock

	if isCastleMove(p, m.From, to) {
		m.Castle = g.castleSide(p, to)
	}

	// Handle capture; en passant takes the pawn beside the mover
	captured := g.board.PieceAt(to)
	if captured == nil && p.Kind == chess.Pawn && to.File != m.From.File {
		captured = g.enPassantVictim(p, to)
		m.EnPassant = captured != nil
	}
	if captured != nil {
		m.Captured = captured
		m.CapturedAt = captured.Pos
		g.board.Remove(captured)
	}

	g.board.Relocate(p, to)
	p.HasMoved = true
	p.MoveCount++

	if m.Castle != chess.NoCastle {
		m.RookFrom, m.RookTo = castleRookSquares(to)
		rook := g.board.PieceAt(m.RookFrom)
		m.Rook = rook
		m.Undo.RookHadMoved = rook.HasMoved
		g.board.Relocate(rook, m.RookTo)
		rook.HasMoved = true
		rook.MoveCount++
	}

	// Only the pawn that just advanced two ranks stays capturable en passant
	if prev := m.Undo.PrevEnPassant; prev != nil {
		prev.EnPassant = false
	}
	if m.IsDoubleStep() {
		p.EnPassant = true
	}

	if isPromotion(p, to) {
		g.board.Remove(p)
		promoted := g.board.Place(promotionKind(promotion), p.Team, p.Colour, to)
		promoted.HasMoved = true
		m.Promotion = promoted
	}

	if p.Kind == chess.Pawn || captured != nil {
		g.halfmoveClock = 0
	} else {
		g.halfmoveClock++
	}

	return m
}

// record appends m to the history, passes the turn and refreshes all
// derived state.
func (g *Game) record(m *chess.Move) {
	g.history = append(g.history, m)
	if m.Piece.Colour == chess.Black {
		g.fullmoveNumber++
	}
	g.toMove = g.toMove.Enemy()

	g.invalidate()
	g.refreshAttacks()

	g.key, g.signature = g.positionKey()
	m.Undo.Key, m.Undo.Signature = g.key, g.signature
	g.repetitions.Add(g.key, g.signature)

	g.refreshStatus()
}
