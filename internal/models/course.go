package models

// BunnyCoords identifies a video asset on the Bunny CDN
type BunnyCoords struct {
	VideoID   string `json:"videoId,omitempty"`
	LibraryID string `json:"libraryId,omitempty"`
}

// Lesson represents a lesson as embedded in a course's chapter list.
// Only the id, title and order are authoritative here; video fields are
// partial until merged with the separately fetched Video record.
type Lesson struct {
	ID       string       `json:"_id"`
	Title    string       `json:"title"`
	VideoID  string       `json:"videoId,omitempty"`
	VideoURL string       `json:"videoUrl,omitempty"`
	Bunny    *BunnyCoords `json:"bunny,omitempty"`
}

// Chapter represents a chapter with its lessons in display order.
// The order is significant: it is used to compute each lesson's global
// index for trial-eligibility counting.
type Chapter struct {
	ID      string   `json:"_id"`
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

// Course represents a course in the catalog
type Course struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price,omitempty"`
	Published   bool      `json:"published,omitempty"`
	Chapters    []Chapter `json:"chapters"`
}

// Video represents the backend's video metadata record for a lesson
type Video struct {
	ID       string       `json:"_id"`
	Title    string       `json:"title"`
	Duration int          `json:"duration,omitempty"`
	VideoURL string       `json:"videoUrl,omitempty"`
	Bunny    *BunnyCoords `json:"bunny,omitempty"`
}

// CourseWithVideos is the backend's learn-page payload: the course plus
// its flattened video list
type CourseWithVideos struct {
	Course Course  `json:"course"`
	Videos []Video `json:"videos"`
}

// MergedLesson is the unified lesson view: the chapter's lesson record
// overlaid with the matching Video record. Video fields win; the video id
// becomes the canonical id. A lesson with no matching video keeps its
// partial data and is flagged for diagnostics.
type MergedLesson struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	VideoID     string       `json:"videoId,omitempty"`
	VideoURL    string       `json:"videoUrl,omitempty"`
	Duration    int          `json:"duration,omitempty"`
	Bunny       *BunnyCoords `json:"bunny,omitempty"`
	GlobalIndex int          `json:"globalIndex"`
	HasVideo    bool         `json:"hasVideo"`
}

// MergedChapter is a chapter whose lessons have been merged with video
// metadata
type MergedChapter struct {
	ID      string         `json:"_id"`
	Title   string         `json:"title"`
	Lessons []MergedLesson `json:"lessons"`
}

// CourseView is the learn-page projection of a course: merged chapters
// with global lesson indices plus the default lesson to select on first
// load (chapter 0, lesson 0, when present)
type CourseView struct {
	ID              string          `json:"_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	Price           float64         `json:"price,omitempty"`
	Chapters        []MergedChapter `json:"chapters"`
	DefaultLessonID string          `json:"defaultLessonId,omitempty"`
}

// Enrollment represents a user's enrollment in a course
type Enrollment struct {
	ID       string `json:"_id,omitempty"`
	CourseID string `json:"courseId"`
	UserID   string `json:"userId,omitempty"`
}
