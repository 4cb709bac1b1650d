// Package memory keeps short per-session conversation history so that
// follow-up questions can reference earlier turns.
package memory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/steamlens/steamlens/models"
	"github.com/steamlens/steamlens/services"
	"go.uber.org/zap"
)

// Store holds conversation turns per session. Each session keeps at most
// maxTurns turns; older turns are evicted first. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string][]models.Turn
	maxTurns int
	logger   *zap.Logger
}

// NewStore creates a conversation store with a per-session turn cap
func NewStore(maxTurns int, logger *zap.Logger) *Store {
	return &Store{
		sessions: make(map[string][]models.Turn),
		maxTurns: maxTurns,
		logger:   logger,
	}
}

// Has reports whether the session exists
func (s *Store) Has(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[sessionID]
	return ok
}

// Create initializes an empty session. Creating an existing session is a
// no-op so its history survives.
func (s *Store) Create(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		s.sessions[sessionID] = []models.Turn{}
	}
}

// Get returns a copy of the session's turns, oldest first
func (s *Store) Get(sessionID string) ([]models.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns, ok := s.sessions[sessionID]
	if !ok {
		return nil, services.ErrSessionNotFound
	}

	out := make([]models.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

// Append records a completed turn, evicting the oldest turn when the
// session is at capacity.
func (s *Store) Append(sessionID, query, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.sessions[sessionID], models.Turn{
		Query:     query,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	})
	if len(turns) > s.maxTurns {
		turns = turns[len(turns)-s.maxTurns:]
	}
	s.sessions[sessionID] = turns

	s.logger.Debug("conversation turn recorded",
		zap.String("session_id", sessionID),
		zap.Int("turns", len(turns)))
}

// RenderHistory formats a session's turns for inclusion in a prompt.
// Unknown sessions render as an empty history.
func (s *Store) RenderHistory(sessionID string) string {
	turns, err := s.Get(sessionID)
	if err != nil {
		return ""
	}

	var b strings.Builder
	for _, turn := range turns {
		fmt.Fprintf(&b, "User: %s\nBot: %s\n", turn.Query, turn.Answer)
	}
	return strings.TrimRight(b.String(), "\n")
}
