// Package session keeps in-memory games for the HTTP server.
package session

import (
	"context"
	"errors"
	"hash/maphash"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/mines"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	Id uuid.UUID

	mu       sync.Mutex
	router   *command.Router
	now      func() time.Time
	lastSeen atomic.Int64
}

// Do runs fn with exclusive access to the session's game and counts as
// activity for the sweeper.
func (s *Session) Do(fn func(r *command.Router) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(s.now())
	return fn(s.router)
}

func (s *Session) touch(t time.Time) {
	s.lastSeen.Store(t.UnixNano())
}

func (s *Session) idleSince() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	ttl     time.Duration
	log     logrus.FieldLogger
	now     func() time.Time
	newRand func() *rand.Rand
}

func NewManager(ttl time.Duration, log logrus.FieldLogger) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		log:      log,
		now:      time.Now,
		newRand:  newRand,
	}
}

// Create registers a session holding a game that has not been started yet.
func (m *Manager) Create() *Session {
	id := uuid.New()
	s := &Session{Id: id, now: m.now}
	s.router = command.NewRouter(
		mines.NewGame(), m.newRand(), m.log.WithField("session", id.String()),
	)
	s.touch(m.now())

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.log.WithField("session", id.String()).Debug("session created")
	return s
}

// Get looks a session up and marks it as active.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(m.now())
	return s, nil
}

func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than the ttl and reports how many
// were dropped.
func (m *Manager) Sweep() int {
	deadline := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.idleSince().Before(deadline) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.log.WithFields(logrus.Fields{
			"removed": removed,
			"active":  len(m.sessions),
		}).Info("swept idle sessions")
	}
	return removed
}

// Run sweeps periodically until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	interval := max(m.ttl/2, time.Second)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Sweep()
		}
	}
}
