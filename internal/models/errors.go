package models

import "errors"

// Error taxonomy for the playback pipeline. All network-boundary errors
// are converted to one of these at component boundaries; nothing from the
// pipeline propagates as an unhandled failure.
var (
	// ErrNotFound means the course or lesson does not exist
	ErrNotFound = errors.New("not found")
	// ErrAccessDenied means enrollment is required for the lesson
	ErrAccessDenied = errors.New("enrollment required")
	// ErrSigningFailed means the signing request failed or its response
	// was unrecognizable
	ErrSigningFailed = errors.New("signing failed")
	// ErrNoChapter means a video slot was requested for a course without
	// any chapters
	ErrNoChapter = errors.New("course needs a chapter first")
	// ErrBadUploadTarget means the upload could not start because the
	// upload target is invalid
	ErrBadUploadTarget = errors.New("invalid upload target")
	// ErrUploadRejected means the CDN refused the upload request
	ErrUploadRejected = errors.New("upload rejected by CDN")
	// ErrUploadInterrupted means the upload failed mid-stream
	ErrUploadInterrupted = errors.New("upload interrupted")
)
