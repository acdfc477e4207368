package playback

import (
	"context"

	"github.com/skillwave/playback-gateway/internal/metrics"
	"github.com/skillwave/playback-gateway/internal/models"
	"go.uber.org/zap"
)

// Resolver runs the ordered strategy chain for a lesson. First match
// wins; if no strategy matches, the lesson has no video.
type Resolver struct {
	strategies []Strategy
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewResolver creates a resolver over the given strategies, evaluated in
// order
func NewResolver(strategies []Strategy, logger *zap.Logger, m *metrics.Metrics) *Resolver {
	return &Resolver{
		strategies: strategies,
		logger:     logger,
		metrics:    m,
	}
}

// Resolve produces the playback outcome for a lesson selection. Every
// branch yields a well-formed outcome; errors inside strategies have
// already been converted to failed outcomes.
func (r *Resolver) Resolve(ctx context.Context, req Request) models.PlaybackOutcome {
	for _, strategy := range r.strategies {
		outcome := strategy.Resolve(ctx, req)
		if outcome == nil {
			continue
		}

		r.observe(strategy.Name(), req, outcome)
		return *outcome
	}

	r.logger.Info("lesson has no playable source",
		zap.String("lesson_id", req.Lesson.ID),
	)
	return models.PlaybackOutcome{State: models.PlaybackEmpty, Reason: ReasonNoVideo}
}

// observe records the structured log event and counter for a terminal
// resolution
func (r *Resolver) observe(strategy string, req Request, outcome *models.PlaybackOutcome) {
	fields := []zap.Field{
		zap.String("strategy", strategy),
		zap.String("lesson_id", req.Lesson.ID),
		zap.String("access", string(req.Access)),
		zap.String("state", string(outcome.State)),
	}

	switch outcome.State {
	case models.PlaybackReady:
		r.logger.Info("playback source resolved", fields...)
		r.metrics.SourcesResolved.WithLabelValues(strategy).Inc()
	case models.PlaybackDenied:
		r.logger.Info("playback access denied", fields...)
		r.metrics.AccessDenied.Inc()
	case models.PlaybackFailed:
		r.logger.Warn("playback resolution failed", fields...)
		r.metrics.SigningFailures.Inc()
	default:
		r.logger.Info("playback resolved", fields...)
	}
}
