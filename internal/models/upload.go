package models

// UploadTarget is the CDN upload handle issued by the backend when a new
// lesson video slot is created. It is consumed exactly once to PUT the raw
// file to the CDN and is never persisted.
type UploadTarget struct {
	GUID           string `json:"guid"`
	VideoLibraryID string `json:"videoLibraryId"`
}

// CreateVideoRequest is a request to create a new lesson video slot
type CreateVideoRequest struct {
	CourseID  string `json:"courseId"`
	ChapterID string `json:"chapterId"`
	Title     string `json:"title"`
}

// CreateVideoResponse is the backend's response to a slot creation: the
// platform video record plus the one-shot CDN upload target
type CreateVideoResponse struct {
	Video              Video        `json:"video"`
	BunnyUploadDetails UploadTarget `json:"bunnyUploadDetails"`
}
