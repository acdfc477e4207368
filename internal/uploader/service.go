// Package uploader implements the admin-side video flow: creating a
// lesson's video slot on the backend, streaming the raw file to the CDN,
// and removing videos with soft-warning semantics for the CDN side.
package uploader

import (
	"context"
	"fmt"
	"io"

	"github.com/skillwave/playback-gateway/internal/metrics"
	"github.com/skillwave/playback-gateway/internal/models"
	"go.uber.org/zap"
)

// CourseAPI defines the backend operations the upload flow needs
type CourseAPI interface {
	// GetCourse retrieves a course with its video list.
	GetCourse(ctx context.Context, courseID string) (*models.CourseWithVideos, error)
	// AddVideo creates a lesson video slot and returns the upload target.
	AddVideo(ctx context.Context, token string, req models.CreateVideoRequest) (*models.CreateVideoResponse, error)
	// DeleteVideo removes the platform record and the CDN asset. The
	// returned string is a CDN-side warning, empty when clean.
	DeleteVideo(ctx context.Context, token, videoID string) (string, error)
}

// CDN defines the upload operation against the video CDN
type CDN interface {
	// Upload streams the raw file to the per-video upload URL.
	Upload(ctx context.Context, target models.UploadTarget, body io.Reader, size int64, progress ProgressFunc) error
}

type uploadService struct {
	api     CourseAPI
	cdn     CDN
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewService creates a new upload service
func NewService(api CourseAPI, cdn CDN, logger *zap.Logger, m *metrics.Metrics) *uploadService {
	return &uploadService{
		api:     api,
		cdn:     cdn,
		logger:  logger,
		metrics: m,
	}
}

// CreateSlot creates a lesson video slot. The course must already have at
// least one chapter, and the requested chapter must belong to the course;
// both are checked here so the backend never sees a malformed request.
func (s *uploadService) CreateSlot(ctx context.Context, token string, req models.CreateVideoRequest) (*models.CreateVideoResponse, error) {
	if req.CourseID == "" || req.ChapterID == "" || req.Title == "" {
		return nil, fmt.Errorf("courseId, chapterId and title are required")
	}

	payload, err := s.api.GetCourse(ctx, req.CourseID)
	if err != nil {
		if err == models.ErrNotFound {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load course for slot creation: %w", err)
	}

	if len(payload.Course.Chapters) == 0 {
		return nil, models.ErrNoChapter
	}

	chapterExists := false
	for _, ch := range payload.Course.Chapters {
		if ch.ID == req.ChapterID {
			chapterExists = true
			break
		}
	}
	if !chapterExists {
		return nil, fmt.Errorf("chapter %s: %w", req.ChapterID, models.ErrNotFound)
	}

	resp, err := s.api.AddVideo(ctx, token, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create video slot: %w", err)
	}

	s.logger.Info("video slot created",
		zap.String("course_id", req.CourseID),
		zap.String("chapter_id", req.ChapterID),
		zap.String("video_id", resp.Video.ID),
	)

	return resp, nil
}

// Upload streams the raw file to the CDN, logging progress at whole
// percents. Error information from the CDN is preserved so callers can
// tell a rejected upload from one that died mid-stream.
func (s *uploadService) Upload(ctx context.Context, target models.UploadTarget, body io.Reader, size int64) error {
	err := s.cdn.Upload(ctx, target, body, size, func(percent float64) {
		s.logger.Debug("upload progress",
			zap.String("guid", target.GUID),
			zap.Float64("percent", percent),
		)
	})
	if err != nil {
		s.metrics.Uploads.WithLabelValues("error").Inc()
		s.logger.Error("video upload failed",
			zap.String("guid", target.GUID),
			zap.Error(err),
		)
		return err
	}

	s.metrics.Uploads.WithLabelValues("ok").Inc()
	s.logger.Info("video uploaded",
		zap.String("guid", target.GUID),
		zap.Int64("size", size),
	)
	return nil
}

// Delete removes the platform video record. A CDN-side deletion failure
// is logged as a warning only: the record is already gone and the asset
// may have been removed earlier.
func (s *uploadService) Delete(ctx context.Context, token, videoID string) error {
	warning, err := s.api.DeleteVideo(ctx, token, videoID)
	if err != nil {
		if err == models.ErrNotFound {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to delete video: %w", err)
	}

	if warning != "" {
		s.logger.Warn("CDN asset deletion reported a problem",
			zap.String("video_id", videoID),
			zap.String("cdn_error", warning),
		)
	}

	s.logger.Info("video deleted", zap.String("video_id", videoID))
	return nil
}
