// Package session hosts engine games for concurrent callers. Each game is
// guarded by its own mutex; the manager's registry by another.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// Session is one hosted game.
type Session struct {
	ID      string
	Created time.Time

	mu   sync.Mutex
	game *engine.Game
}

// State is a point-in-time view of a session, safe to keep after the
// session moves on.
type State struct {
	ID       string
	FEN      string
	Turn     chess.Team
	Status   engine.Status
	Ply      int
	LastMove string
}

// Manager owns a set of sessions keyed by ID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new session from fen, or from the standard position
// when fen is empty.
func (m *Manager) Create(fen string, opts ...engine.Option) (State, error) {
	var g *engine.Game
	if fen == "" {
		g = engine.New(opts...)
	} else {
		var err error
		if g, err = engine.NewFromFEN(fen, opts...); err != nil {
			return State{}, err
		}
	}

	s := &Session{ID: uuid.NewString(), Created: m.now(), game: g}
	st := stateOf(s.ID, g)

	m.mu.Lock()
	m.sessions[s.ID] = s
	count := len(m.sessions)
	m.mu.Unlock()

	m.logger.Info("session created",
		zap.String("session_id", s.ID),
		zap.String("ally", g.AllyColour().String()),
		zap.String("fen", g.FEN()),
		zap.Int("sessions", count),
	)
	return st, nil
}

// Get returns the current state of a session.
func (m *Manager) Get(id string) (State, error) {
	var st State
	err := m.Do(id, func(g *engine.Game) error {
		st = stateOf(id, g)
		return nil
	})
	return st, err
}

// Apply plays a long algebraic move in a session.
func (m *Manager) Apply(id, move string) (State, error) {
	s, err := m.lookup(id)
	if err != nil {
		return State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.game.ApplyUCI(move)
	if err != nil {
		m.logger.Debug("move rejected",
			zap.String("session_id", id),
			zap.String("move", move),
			zap.Error(err),
		)
		return stateOf(id, s.game), errors.Wrapf(err, "session %s", id)
	}

	if res.Status.State.Terminal() {
		m.logger.Info("game over",
			zap.String("session_id", id),
			zap.Stringer("status", res.Status),
			zap.Int("ply", s.game.Ply()),
		)
	}
	return stateOf(id, s.game), nil
}

// Undo takes back the last move of a session.
func (m *Manager) Undo(id string) (State, error) {
	s, err := m.lookup(id)
	if err != nil {
		return State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.UndoMove(); err != nil {
		return stateOf(id, s.game), errors.Wrapf(err, "session %s", id)
	}
	return stateOf(id, s.game), nil
}

// LegalMoves lists the legal moves of the side to move in long algebraic
// form. Promotions are listed once, without a piece letter.
func (m *Manager) LegalMoves(id string) ([]string, error) {
	var out []string
	err := m.Do(id, func(g *engine.Game) error {
		for _, c := range g.LegalMoves() {
			out = append(out, c.String())
		}
		return nil
	})
	return out, err
}

// Status returns the status of a session's game.
func (m *Manager) Status(id string) (engine.Status, error) {
	var st engine.Status
	err := m.Do(id, func(g *engine.Game) error {
		st = g.Status()
		return nil
	})
	return st, err
}

// Do runs fn with exclusive access to the session's game. fn must not
// keep the game after it returns.
func (m *Manager) Do(id string, fn func(g *engine.Game) error) error {
	s, err := m.lookup(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.game)
}

// Close removes a session.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return errors.Wrapf(errors.ErrUnknownSession, "close %s", id)
	}
	m.logger.Info("session closed",
		zap.String("session_id", id),
		zap.Duration("age", m.now().Sub(s.Created)),
	)
	return nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// IDs returns the IDs of all open sessions in no particular order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

func (m *Manager) lookup(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownSession, "session %s", id)
	}
	return s, nil
}

// stateOf builds a State. The caller holds the session's lock.
func stateOf(id string, g *engine.Game) State {
	st := State{
		ID:     id,
		FEN:    g.FEN(),
		Turn:   g.Turn(),
		Status: g.Status(),
		Ply:    g.Ply(),
	}
	if last := g.LastMove(); last != nil {
		st.LastMove = last.String()
	}
	return st
}
