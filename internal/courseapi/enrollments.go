package courseapi

import (
	"encoding/json"
	"fmt"

	"github.com/skillwave/playback-gateway/internal/models"
)

// enrollmentWrapperKeys are the wrapper keys the backend has been observed
// to use for the my-courses payload, checked in order.
var enrollmentWrapperKeys = []string{"enrollments", "enrolledCourses", "courses", "data"}

// enrollmentItem accepts the three item shapes the backend produces: a
// plain enrollment record, a course record, or an enrollment embedding
// its course.
type enrollmentItem struct {
	ID       string `json:"_id"`
	CourseID string `json:"courseId"`
	UserID   string `json:"userId"`
	Course   *struct {
		ID string `json:"_id"`
	} `json:"course"`
}

// normalizeEnrollments decodes a my-courses payload into a flat enrollment
// list regardless of which wrapper key the backend used
func normalizeEnrollments(body []byte) ([]models.Enrollment, error) {
	var items []enrollmentItem

	// Bare top-level array
	if err := json.Unmarshal(body, &items); err != nil {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(body, &wrapper); err != nil {
			return nil, fmt.Errorf("unrecognized enrollments payload: %w", err)
		}

		found := false
		for _, key := range enrollmentWrapperKeys {
			raw, ok := wrapper[key]
			if !ok {
				continue
			}
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, fmt.Errorf("failed to decode enrollments under %q: %w", key, err)
			}
			found = true
			break
		}
		if !found {
			// No recognized wrapper key: treat as zero enrollments rather
			// than an error, matching the tolerant original behavior
			return nil, nil
		}
	}

	enrollments := make([]models.Enrollment, 0, len(items))
	for _, item := range items {
		e := models.Enrollment{ID: item.ID, CourseID: item.CourseID, UserID: item.UserID}
		if e.CourseID == "" && item.Course != nil {
			e.CourseID = item.Course.ID
		}
		if e.CourseID == "" {
			// A course record returned directly: its own id is the course id
			e.CourseID = item.ID
		}
		if e.CourseID != "" {
			enrollments = append(enrollments, e)
		}
	}

	return enrollments, nil
}
