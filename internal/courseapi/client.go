// Package courseapi is the typed client for the platform REST backend.
// The backend owns all CRUD, auth and payment; this client consumes the
// read and video-management contracts the playback pipeline needs.
package courseapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/skillwave/playback-gateway/internal/models"
	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// Client talks to the platform REST backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new backend client
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// GetCourse retrieves a course with its flattened video list.
// Returns models.ErrNotFound if the course does not exist. A course with
// zero chapters is valid and returned as-is.
func (c *Client) GetCourse(ctx context.Context, courseID string) (*models.CourseWithVideos, error) {
	body, err := c.get(ctx, "", fmt.Sprintf("/courses/%s", courseID))
	if err != nil {
		return nil, err
	}

	var payload models.CourseWithVideos
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode course response: %w", err)
	}

	return &payload, nil
}

// GetMyEnrollments retrieves the authenticated user's enrollments.
// The backend is inconsistent about the wrapper key, so the list is
// normalized from any of: enrollments, enrolledCourses, courses, data, or
// a bare top-level array.
func (c *Client) GetMyEnrollments(ctx context.Context, token string) ([]models.Enrollment, error) {
	body, err := c.get(ctx, token, "/enroll/my-courses")
	if err != nil {
		return nil, err
	}

	return normalizeEnrollments(body)
}

// SignVideo requests a signed playback grant for a video. The response
// shape varies by backend version, so the raw body is returned for the
// caller's fallback decoder.
func (c *Client) SignVideo(ctx context.Context, token, videoID string) (json.RawMessage, error) {
	body, err := c.get(ctx, token, fmt.Sprintf("/courses/video/%s/sign", videoID))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// AddVideo creates a lesson video slot and returns the platform record
// plus the one-shot CDN upload target
func (c *Client) AddVideo(ctx context.Context, token string, req models.CreateVideoRequest) (*models.CreateVideoResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode video request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/courses/video/add", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	setAuth(httpReq, token)

	body, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var resp models.CreateVideoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode video creation response: %w", err)
	}

	return &resp, nil
}

// DeleteVideo removes the platform video record and instructs the backend
// to remove the CDN asset. A CDN-side failure is reported as a warning
// string, not an error: the platform record is still gone and the asset
// may already have been removed.
func (c *Client) DeleteVideo(ctx context.Context, token, videoID string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/courses/video/%s", c.baseURL, videoID), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	setAuth(httpReq, token)

	body, err := c.do(httpReq)
	if err != nil {
		return "", err
	}

	var resp struct {
		CDNError string `json:"cdnError"`
	}
	if len(body) > 0 {
		// Best effort: the delete response body is optional
		_ = json.Unmarshal(body, &resp)
	}

	return resp.CDNError, nil
}

// get performs a GET request against the backend and returns the body
func (c *Client) get(ctx context.Context, token, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	setAuth(req, token)

	return c.do(req)
}

// do executes the request, mapping 404 to models.ErrNotFound and any other
// non-2xx status to an error carrying the status code
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, models.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("backend returned error status",
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	return body, nil
}

// setAuth forwards the viewer's bearer token verbatim. The gateway never
// validates tokens; authentication is the backend's concern.
func setAuth(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
