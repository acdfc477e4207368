package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("COURSE_API_BASE_URL", "https://api.skillwave.example.com")
	t.Setenv("BUNNY_API_KEY", "cdn-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "https://video.bunnycdn.com", cfg.Bunny.UploadBaseURL)
	assert.Equal(t, "https://iframe.mediadelivery.net/embed", cfg.Bunny.EmbedBaseURL)
	assert.Equal(t, 2, cfg.Playback.TrialLessonCount)
	assert.False(t, cfg.Playback.YouTubeRequiresEnrollment)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
}

func TestLoad_MissingBackendURL(t *testing.T) {
	t.Setenv("COURSE_API_BASE_URL", "")
	t.Setenv("BUNNY_API_KEY", "cdn-key")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingBunnyKey(t *testing.T) {
	t.Setenv("COURSE_API_BASE_URL", "https://api.skillwave.example.com")
	t.Setenv("BUNNY_API_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_TrailingSlashesTrimmed(t *testing.T) {
	setRequired(t)
	t.Setenv("COURSE_API_BASE_URL", "https://api.skillwave.example.com/")
	t.Setenv("SALES_PAGE_BASE_URL", "https://skillwave.example.com/courses/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.skillwave.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, "https://skillwave.example.com/courses", cfg.Backend.SalesPageURL)
}

func TestLoad_PlaybackPolicy(t *testing.T) {
	setRequired(t)
	t.Setenv("TRIAL_LESSON_COUNT", "5")
	t.Setenv("YOUTUBE_REQUIRES_ENROLLMENT", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Playback.TrialLessonCount)
	assert.True(t, cfg.Playback.YouTubeRequiresEnrollment)
}

func TestLoad_InvalidTrialCount(t *testing.T) {
	setRequired(t)

	for _, bad := range []string{"abc", "-1"} {
		t.Setenv("TRIAL_LESSON_COUNT", bad)
		_, err := Load()
		assert.Error(t, err, "TRIAL_LESSON_COUNT=%s", bad)
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://skillwave.example.com, https://admin.skillwave.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://skillwave.example.com",
		"https://admin.skillwave.example.com",
	}, cfg.CORS.AllowedOrigins)
}
