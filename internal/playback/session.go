package playback

import (
	"context"
	"sync"
	"time"

	"github.com/skillwave/playback-gateway/internal/metrics"
	"github.com/skillwave/playback-gateway/internal/models"
	"go.uber.org/zap"
)

// Session is the playback state machine for one viewer's player. Every
// lesson selection first returns to loading with the previous source
// cleared, so a stale frame is never shown; ready, denied, empty and
// failed are terminal until the next selection.
type Session struct {
	mu           sync.Mutex
	state        models.PlaybackState
	activeLesson string
	outcome      *models.PlaybackOutcome
	lastSeen     time.Time
}

// begin records a lesson selection: the session drops to loading and the
// previous source is cleared
func (s *Session) begin(lessonID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = models.PlaybackLoading
	s.activeLesson = lessonID
	s.outcome = nil
	s.lastSeen = time.Now()
}

// commit installs a resolution result, unless the viewer has selected a
// different lesson while it was in flight. Stale results are discarded:
// committing them would overwrite the now-current lesson's source.
func (s *Session) commit(lessonID string, outcome models.PlaybackOutcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeLesson != lessonID {
		return false
	}

	s.state = outcome.State
	s.outcome = &outcome
	return true
}

// Manager owns the in-memory playback sessions and runs selections
// through the resolver with the staleness check applied.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	resolver *Resolver
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewManager creates a session manager
func NewManager(resolver *Resolver, logger *zap.Logger, m *metrics.Metrics) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		resolver: resolver,
		logger:   logger,
		metrics:  m,
	}
}

// Play runs a lesson selection for the session: transition to loading,
// resolve, and commit the result only if the lesson is still the active
// selection. When a newer selection has superseded this one the resolved
// outcome is discarded and the caller is told so.
func (m *Manager) Play(ctx context.Context, sessionID string, req Request) models.PlaybackOutcome {
	session := m.session(sessionID)
	session.begin(req.Lesson.ID)

	outcome := m.resolver.Resolve(ctx, req)

	if !session.commit(req.Lesson.ID, outcome) {
		m.logger.Info("stale playback result discarded",
			zap.String("session_id", sessionID),
			zap.String("lesson_id", req.Lesson.ID),
		)
		m.metrics.StaleDiscarded.Inc()
		return models.PlaybackOutcome{State: models.PlaybackLoading, Reason: ReasonSuperseded}
	}

	return outcome
}

// session returns the session for the id, creating it in the idle state
// on first use
func (m *Manager) session(sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		session = &Session{state: models.PlaybackIdle, lastSeen: time.Now()}
		m.sessions[sessionID] = session
	}
	return session
}

// Sweep drops sessions idle longer than maxAge and returns how many were
// removed
func (m *Manager) Sweep(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, session := range m.sessions {
		session.mu.Lock()
		idle := session.lastSeen.Before(cutoff)
		session.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
