// Package enrollment determines whether a viewer is enrolled in a course.
// Two sources are consulted: a local cache written by the checkout flow
// (fast, possibly stale) and the backend's authoritative enrollment list.
// Enrolled means either source reports a match.
package enrollment

import (
	"context"
	"fmt"

	"github.com/skillwave/playback-gateway/internal/models"
	"go.uber.org/zap"
)

// Cache defines the read side of the enrollment cache
type Cache interface {
	// IsEnrolled checks the cached enrollment set.
	//
	// "ctx" is the context for the request.
	// "viewerKey" identifies the viewer.
	// "courseID" is the ID of the course.
	//
	// Returns whether the cache holds the enrollment and an error if any.
	IsEnrolled(ctx context.Context, viewerKey, courseID string) (bool, error)
}

// Fetcher defines the authoritative backend enrollment query
type Fetcher interface {
	// GetMyEnrollments retrieves the authenticated user's enrollments.
	//
	// "ctx" is the context for the request.
	// "token" is the viewer's bearer token.
	//
	// Returns the enrollment list and an error if any.
	GetMyEnrollments(ctx context.Context, token string) ([]models.Enrollment, error)
}

type enrollmentService struct {
	cache  Cache
	api    Fetcher
	logger *zap.Logger
}

// NewService creates a new enrollment service
func NewService(cache Cache, api Fetcher, logger *zap.Logger) *enrollmentService {
	return &enrollmentService{
		cache:  cache,
		api:    api,
		logger: logger,
	}
}

// IsEnrolled reports whether the viewer is enrolled in the course.
//
// Anonymous viewers (empty token) are never enrolled and no source is
// consulted. A positive cache hit is trusted immediately without waiting
// on the network: the cache may not yet reflect a just-completed purchase,
// but it never claims an enrollment that does not exist. Cache errors are
// logged and fall through to the authoritative query.
func (s *enrollmentService) IsEnrolled(ctx context.Context, token, courseID string) (bool, error) {
	if token == "" {
		return false, nil
	}

	cached, err := s.cache.IsEnrolled(ctx, token, courseID)
	if err != nil {
		s.logger.Warn("enrollment cache unavailable, falling back to backend",
			zap.String("course_id", courseID),
			zap.Error(err),
		)
	} else if cached {
		return true, nil
	}

	enrollments, err := s.api.GetMyEnrollments(ctx, token)
	if err != nil {
		return false, fmt.Errorf("failed to fetch enrollments: %w", err)
	}

	for _, e := range enrollments {
		if e.CourseID == courseID {
			return true, nil
		}
	}

	return false, nil
}
