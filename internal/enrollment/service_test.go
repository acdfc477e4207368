package enrollment

import (
	"context"
	"errors"
	"testing"

	"github.com/skillwave/playback-gateway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockCache is a mock implementation of Cache
type mockCache struct {
	hit   bool
	err   error
	calls int
}

func (m *mockCache) IsEnrolled(ctx context.Context, viewerKey, courseID string) (bool, error) {
	m.calls++
	return m.hit, m.err
}

// mockFetcher is a mock implementation of Fetcher
type mockFetcher struct {
	enrollments []models.Enrollment
	err         error
	calls       int
}

func (m *mockFetcher) GetMyEnrollments(ctx context.Context, token string) ([]models.Enrollment, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.enrollments, nil
}

func TestIsEnrolled_AnonymousViewer(t *testing.T) {
	cache := &mockCache{}
	api := &mockFetcher{}
	svc := NewService(cache, api, zap.NewNop())

	enrolled, err := svc.IsEnrolled(context.Background(), "", "crs1")

	require.NoError(t, err)
	assert.False(t, enrolled)
	assert.Zero(t, cache.calls, "no source is consulted for anonymous viewers")
	assert.Zero(t, api.calls)
}

func TestIsEnrolled_CacheHitSkipsBackend(t *testing.T) {
	api := &mockFetcher{}
	svc := NewService(&mockCache{hit: true}, api, zap.NewNop())

	enrolled, err := svc.IsEnrolled(context.Background(), "tok", "crs1")

	require.NoError(t, err)
	assert.True(t, enrolled)
	assert.Zero(t, api.calls, "positive cache hit is trusted immediately")
}

func TestIsEnrolled_CacheMissFallsToBackend(t *testing.T) {
	svc := NewService(&mockCache{}, &mockFetcher{
		enrollments: []models.Enrollment{{ID: "e1", CourseID: "crs1"}},
	}, zap.NewNop())

	enrolled, err := svc.IsEnrolled(context.Background(), "tok", "crs1")

	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestIsEnrolled_NoMatchAnywhere(t *testing.T) {
	svc := NewService(&mockCache{}, &mockFetcher{
		enrollments: []models.Enrollment{{ID: "e1", CourseID: "other"}},
	}, zap.NewNop())

	enrolled, err := svc.IsEnrolled(context.Background(), "tok", "crs1")

	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestIsEnrolled_CacheErrorFallsThrough(t *testing.T) {
	svc := NewService(&mockCache{err: errors.New("redis down")}, &mockFetcher{
		enrollments: []models.Enrollment{{ID: "e1", CourseID: "crs1"}},
	}, zap.NewNop())

	enrolled, err := svc.IsEnrolled(context.Background(), "tok", "crs1")

	require.NoError(t, err, "a cache outage does not fail the check")
	assert.True(t, enrolled)
}

func TestIsEnrolled_BackendError(t *testing.T) {
	svc := NewService(&mockCache{}, &mockFetcher{err: errors.New("backend down")}, zap.NewNop())

	_, err := svc.IsEnrolled(context.Background(), "tok", "crs1")

	assert.Error(t, err)
}
