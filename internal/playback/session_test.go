package playback

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/skillwave/playback-gateway/internal/metrics"
	"github.com/skillwave/playback-gateway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func readyOutcome(url string) *models.PlaybackOutcome {
	return &models.PlaybackOutcome{
		State:  models.PlaybackReady,
		Source: &models.VideoSource{Kind: models.SourceDirectURL, EmbedURL: url},
	}
}

func newTestManager(strategies ...Strategy) *Manager {
	m := metrics.New(prometheus.NewRegistry())
	resolver := NewResolver(strategies, zap.NewNop(), m)
	return NewManager(resolver, zap.NewNop(), m)
}

func TestManager_Play(t *testing.T) {
	manager := newTestManager(&funcStrategy{name: "direct", resolve: func(ctx context.Context, req Request) *models.PlaybackOutcome {
		return readyOutcome("https://cdn/" + req.Lesson.ID)
	}})

	outcome := manager.Play(context.Background(), "sess1", Request{Lesson: &models.MergedLesson{ID: "L1"}})

	assert.Equal(t, models.PlaybackReady, outcome.State)
	assert.Equal(t, "https://cdn/L1", outcome.Source.EmbedURL)
}

func TestManager_Play_StaleResultDiscarded(t *testing.T) {
	// While lesson A is resolving, the viewer selects lesson B. The
	// resolution for A must not overwrite B's state.
	var manager *Manager
	manager = newTestManager(&funcStrategy{name: "direct", resolve: func(ctx context.Context, req Request) *models.PlaybackOutcome {
		if req.Lesson.ID == "A" {
			// a second selection lands mid-flight
			manager.Play(ctx, "sess1", Request{Lesson: &models.MergedLesson{ID: "B"}})
		}
		return readyOutcome("https://cdn/" + req.Lesson.ID)
	}})

	outcome := manager.Play(context.Background(), "sess1", Request{Lesson: &models.MergedLesson{ID: "A"}})

	assert.Equal(t, models.PlaybackLoading, outcome.State)
	assert.Equal(t, ReasonSuperseded, outcome.Reason)
	assert.Nil(t, outcome.Source, "superseded results carry no source")

	// The session kept lesson B's result
	session := manager.session("sess1")
	session.mu.Lock()
	defer session.mu.Unlock()
	assert.Equal(t, "B", session.activeLesson)
	require.NotNil(t, session.outcome)
	assert.Equal(t, "https://cdn/B", session.outcome.Source.EmbedURL)
}

func TestManager_Play_ReselectSameLesson(t *testing.T) {
	manager := newTestManager(&funcStrategy{name: "direct", resolve: func(ctx context.Context, req Request) *models.PlaybackOutcome {
		return readyOutcome("https://cdn/" + req.Lesson.ID)
	}})

	req := Request{Lesson: &models.MergedLesson{ID: "L1"}}
	manager.Play(context.Background(), "sess1", req)
	outcome := manager.Play(context.Background(), "sess1", req)

	assert.Equal(t, models.PlaybackReady, outcome.State)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	manager := newTestManager(&funcStrategy{name: "direct", resolve: func(ctx context.Context, req Request) *models.PlaybackOutcome {
		return readyOutcome("https://cdn/" + req.Lesson.ID)
	}})

	manager.Play(context.Background(), "alice", Request{Lesson: &models.MergedLesson{ID: "A"}})
	manager.Play(context.Background(), "bob", Request{Lesson: &models.MergedLesson{ID: "B"}})

	assert.Equal(t, "A", manager.session("alice").activeLesson)
	assert.Equal(t, "B", manager.session("bob").activeLesson)
}

func TestManager_Sweep(t *testing.T) {
	manager := newTestManager(&funcStrategy{name: "direct", resolve: func(ctx context.Context, req Request) *models.PlaybackOutcome {
		return readyOutcome("https://cdn/x")
	}})

	manager.Play(context.Background(), "old", Request{Lesson: &models.MergedLesson{ID: "L1"}})
	manager.session("old").lastSeen = time.Now().Add(-2 * time.Hour)
	manager.Play(context.Background(), "fresh", Request{Lesson: &models.MergedLesson{ID: "L2"}})

	removed := manager.Sweep(time.Hour)

	assert.Equal(t, 1, removed)
	manager.mu.Lock()
	defer manager.mu.Unlock()
	_, oldKept := manager.sessions["old"]
	_, freshKept := manager.sessions["fresh"]
	assert.False(t, oldKept)
	assert.True(t, freshKept)
}
