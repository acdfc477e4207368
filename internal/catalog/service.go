package catalog

import (
	"context"
	"fmt"

	"github.com/skillwave/playback-gateway/internal/models"
	"go.uber.org/zap"
)

// CourseFetcher defines the backend access the catalog needs
type CourseFetcher interface {
	// GetCourse retrieves a course with its video list.
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns the course payload and an error if any; models.ErrNotFound
	// when the course does not exist.
	GetCourse(ctx context.Context, courseID string) (*models.CourseWithVideos, error)
}

type catalogService struct {
	api    CourseFetcher
	logger *zap.Logger
}

// NewService creates a new catalog service
func NewService(api CourseFetcher, logger *zap.Logger) *catalogService {
	return &catalogService{
		api:    api,
		logger: logger,
	}
}

// Load fetches a course and projects it into the learn-page view.
// Partial data is not an error: a course with zero chapters or a chapter
// with zero lessons yields an empty view.
func (s *catalogService) Load(ctx context.Context, courseID string) (*models.CourseView, error) {
	payload, err := s.api.GetCourse(ctx, courseID)
	if err != nil {
		if err == models.ErrNotFound {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	chapters := MergeChaptersWithVideos(payload.Course.Chapters, payload.Videos)

	for _, ch := range chapters {
		for _, lesson := range ch.Lessons {
			if !lesson.HasVideo && lesson.VideoURL == "" {
				s.logger.Debug("lesson has no matching video record",
					zap.String("course_id", courseID),
					zap.String("lesson_id", lesson.ID),
					zap.Int("global_index", lesson.GlobalIndex),
				)
			}
		}
	}

	view := &models.CourseView{
		ID:          payload.Course.ID,
		Title:       payload.Course.Title,
		Description: payload.Course.Description,
		Price:       payload.Course.Price,
		Chapters:    chapters,
	}

	if id, ok := DefaultLessonID(chapters); ok {
		view.DefaultLessonID = id
	}

	return view, nil
}
