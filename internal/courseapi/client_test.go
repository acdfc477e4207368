package courseapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skillwave/playback-gateway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_GetCourse(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"course":{"_id":"crs1","title":"Go"},"videos":[{"_id":"v1","title":"Intro"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	payload, err := client.GetCourse(context.Background(), "crs1")

	require.NoError(t, err)
	assert.Equal(t, "/courses/crs1", gotPath)
	assert.Empty(t, gotAuth, "course reads are anonymous")
	assert.Equal(t, "crs1", payload.Course.ID)
	require.Len(t, payload.Videos, 1)
	assert.Equal(t, "v1", payload.Videos[0].ID)
}

func TestClient_GetCourse_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	_, err := client.GetCourse(context.Background(), "nope")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestClient_GetCourse_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	_, err := client.GetCourse(context.Background(), "crs1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrNotFound)
}

func TestClient_GetMyEnrollments(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/enroll/my-courses", r.URL.Path)
		w.Write([]byte(`{"enrolledCourses":[{"_id":"e1","courseId":"c1"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	enrollments, err := client.GetMyEnrollments(context.Background(), "tok123")

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth, "the viewer token is forwarded verbatim")
	require.Len(t, enrollments, 1)
	assert.Equal(t, "c1", enrollments[0].CourseID)
}

func TestClient_SignVideo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses/video/v1/sign", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"token":"t","expires":1}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	raw, err := client.SignVideo(context.Background(), "tok", "v1")

	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"t","expires":1}`, string(raw))
}

func TestClient_AddVideo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/courses/video/add", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.CreateVideoRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "crs1", req.CourseID)

		w.Write([]byte(`{"video":{"_id":"v1","title":"New lesson"},"bunnyUploadDetails":{"guid":"g-1","videoLibraryId":"42"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	resp, err := client.AddVideo(context.Background(), "admin-tok", models.CreateVideoRequest{
		CourseID:  "crs1",
		ChapterID: "ch1",
		Title:     "New lesson",
	})

	require.NoError(t, err)
	assert.Equal(t, "v1", resp.Video.ID)
	assert.Equal(t, "g-1", resp.BunnyUploadDetails.GUID)
	assert.Equal(t, "42", resp.BunnyUploadDetails.VideoLibraryID)
}

func TestClient_DeleteVideo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/courses/video/v1", r.URL.Path)
		w.Write([]byte(`{"message":"deleted"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	warning, err := client.DeleteVideo(context.Background(), "tok", "v1")

	require.NoError(t, err)
	assert.Empty(t, warning)
}

func TestClient_DeleteVideo_CDNWarning(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"deleted","cdnError":"asset removal failed"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	warning, err := client.DeleteVideo(context.Background(), "tok", "v1")

	require.NoError(t, err)
	assert.Equal(t, "asset removal failed", warning)
}

func TestClient_BackendDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, zap.NewNop())
	_, err := client.GetCourse(context.Background(), "crs1")

	assert.Error(t, err)
}
