package models

// AccessState is the viewer's access level for a single lesson, computed
// per (viewer, course, lesson) at request time and never cached.
type AccessState string

const (
	// AccessFull means the viewer is enrolled in the course
	AccessFull AccessState = "full"
	// AccessTrialSample means the viewer is unenrolled but the lesson is
	// within the free-trial window and trial mode was requested
	AccessTrialSample AccessState = "trial"
	// AccessLocked means the viewer may not play the lesson
	AccessLocked AccessState = "locked"
)

// SourceKind identifies how a lesson's video is played
type SourceKind string

const (
	SourceYouTube   SourceKind = "youtube"
	SourceBunny     SourceKind = "bunny"
	SourceDirectURL SourceKind = "direct"
)

// VideoSource is a resolved, playable embed source for a lesson
type VideoSource struct {
	Kind     SourceKind `json:"kind"`
	EmbedURL string     `json:"embedUrl"`
}

// PlaybackState is the state of a playback session for the active lesson
type PlaybackState string

const (
	// PlaybackIdle means no lesson has been selected yet
	PlaybackIdle PlaybackState = "idle"
	// PlaybackLoading means source resolution is in flight
	PlaybackLoading PlaybackState = "loading"
	// PlaybackReady means a playable source was resolved
	PlaybackReady PlaybackState = "ready"
	// PlaybackDenied means the viewer lacks access to the lesson
	PlaybackDenied PlaybackState = "denied"
	// PlaybackEmpty means the lesson genuinely has no video
	PlaybackEmpty PlaybackState = "empty"
	// PlaybackFailed means resolution failed (e.g. unparseable signing
	// response); terminal until the next lesson selection, no auto-retry
	PlaybackFailed PlaybackState = "failed"
)

// PlaybackOutcome is the result of resolving a lesson selection
type PlaybackOutcome struct {
	State  PlaybackState `json:"state"`
	Source *VideoSource  `json:"source,omitempty"`
	Reason string        `json:"reason,omitempty"`
}
