// Package catalog builds the learn-page view of a course: the merge of
// the course's embedded lesson order with the separately fetched video
// metadata records.
package catalog

import (
	"github.com/skillwave/playback-gateway/internal/models"
)

// MergeChaptersWithVideos merges each lesson with the Video record whose
// id matches the lesson's videoId or its own id (the backend is
// inconsistent about which id a lesson references). Video fields override
// lesson fields of the same name and the video id becomes the canonical
// id. Lessons without a matching video keep their partial data and are
// flagged via HasVideo=false.
//
// The merge is a pure projection: the same inputs always yield the same
// output, and the inputs are not mutated.
func MergeChaptersWithVideos(chapters []models.Chapter, videos []models.Video) []models.MergedChapter {
	byID := make(map[string]models.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	merged := make([]models.MergedChapter, 0, len(chapters))
	globalIndex := 0

	for _, ch := range chapters {
		mc := models.MergedChapter{
			ID:      ch.ID,
			Title:   ch.Title,
			Lessons: make([]models.MergedLesson, 0, len(ch.Lessons)),
		}

		for _, lesson := range ch.Lessons {
			ml := mergeLesson(lesson, byID)
			ml.GlobalIndex = globalIndex
			globalIndex++
			mc.Lessons = append(mc.Lessons, ml)
		}

		merged = append(merged, mc)
	}

	return merged
}

// mergeLesson overlays a lesson with its matching video record, if any
func mergeLesson(lesson models.Lesson, videos map[string]models.Video) models.MergedLesson {
	ml := models.MergedLesson{
		ID:       lesson.ID,
		Title:    lesson.Title,
		VideoID:  lesson.VideoID,
		VideoURL: lesson.VideoURL,
		Bunny:    lesson.Bunny,
	}

	video, ok := videos[lesson.VideoID]
	if !ok {
		video, ok = videos[lesson.ID]
	}
	if !ok {
		return ml
	}

	ml.ID = video.ID
	ml.HasVideo = true
	ml.Duration = video.Duration
	if video.Title != "" {
		ml.Title = video.Title
	}
	if video.VideoURL != "" {
		ml.VideoURL = video.VideoURL
	}
	if video.Bunny != nil {
		ml.Bunny = video.Bunny
	}

	return ml
}

// DefaultLessonID returns the id of chapter 0's lesson 0, the lesson
// selected on first load when nothing is selected yet
func DefaultLessonID(chapters []models.MergedChapter) (string, bool) {
	if len(chapters) == 0 || len(chapters[0].Lessons) == 0 {
		return "", false
	}
	return chapters[0].Lessons[0].ID, true
}

// FindLesson locates a merged lesson by its canonical id
func FindLesson(chapters []models.MergedChapter, lessonID string) (*models.MergedLesson, bool) {
	for ci := range chapters {
		for li := range chapters[ci].Lessons {
			if chapters[ci].Lessons[li].ID == lessonID {
				return &chapters[ci].Lessons[li], true
			}
		}
	}
	return nil, false
}
