package engine

import (
	"fmt"

	"github.com/lgbarn/chess-engine-go/internal/chess"
)

// State is the high-level state of a game.
type State int

const (
	Ongoing State = iota
	Check
	Checkmate
	Stalemate
	DrawRepetition
)

// String returns the string representation of a state.
func (s State) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawRepetition:
		return "draw by repetition"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further moves are accepted in this state.
func (s State) Terminal() bool {
	return s == Checkmate || s == Stalemate || s == DrawRepetition
}

// Status is the game state together with the team it concerns: the side in
// check, mated or stalemated. For a repetition draw Team is the side to
// move.
type Status struct {
	State State
	Team  chess.Team
}

// String returns e.g. "checkmate(Opponent)" or "ongoing".
func (s Status) String() string {
	switch s.State {
	case Ongoing, DrawRepetition:
		return s.State.String()
	default:
		return fmt.Sprintf("%s(%s)", s.State, s.Team)
	}
}

// Status returns the status of the game for the side to move.
func (g *Game) Status() Status {
	return g.status
}

// IsOver reports whether the game has reached a terminal state.
func (g *Game) IsOver() bool {
	return g.status.State.Terminal()
}

// IsCheckmate returns true if team is in check with no legal move.
func (g *Game) IsCheckmate(team chess.Team) bool {
	return g.InCheck(team) && !g.hasLegalMoves(team)
}

// IsStalemate returns true if team is not in check and has no legal move.
// Repetition is reported separately by IsThreefoldRepetition.
func (g *Game) IsStalemate(team chess.Team) bool {
	return !g.InCheck(team) && !g.hasLegalMoves(team)
}

// IsThreefoldRepetition returns true if the current position has occurred
// at least three times, counting the starting position.
func (g *Game) IsThreefoldRepetition() bool {
	return g.RepetitionCount() >= 3
}

// RepetitionCount returns how many times the current position has occurred.
func (g *Game) RepetitionCount() int {
	return g.repetitions.Count(g.key, g.signature)
}

// Winner returns the winning team after checkmate.
func (g *Game) Winner() (chess.Team, bool) {
	if g.status.State != Checkmate {
		return chess.Ally, false
	}
	return g.status.Team.Enemy(), true
}

// refreshStatus evaluates the status for the side to move. Checkmate takes
// precedence over repetition, which takes precedence over stalemate.
func (g *Game) refreshStatus() {
	team := g.toMove
	inCheck := g.InCheck(team)
	hasMoves := g.hasLegalMoves(team)

	switch {
	case inCheck && !hasMoves:
		g.status = Status{State: Checkmate, Team: team}
	case g.IsThreefoldRepetition():
		g.status = Status{State: DrawRepetition, Team: team}
	case !hasMoves:
		g.status = Status{State: Stalemate, Team: team}
	case inCheck:
		g.status = Status{State: Check, Team: team}
	default:
		g.status = Status{State: Ongoing, Team: team}
	}
}
