// Package playback resolves a merged lesson into a playable video source
// and tracks per-session playback state. Resolution runs an ordered list
// of strategies; each either matches and produces a terminal outcome or
// passes to the next, keeping the fallback order auditable and testable
// per strategy.
package playback

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skillwave/playback-gateway/internal/models"
	"go.uber.org/zap"
)

// Reasons attached to non-ready playback outcomes
const (
	ReasonEnrollmentRequired = "enrollment required"
	ReasonSigningFailed      = "could not obtain a playback URL"
	ReasonNoVideo            = "this lesson has no video yet"
	ReasonSuperseded         = "superseded by a newer selection"
)

// Request carries everything a strategy needs to resolve one lesson
type Request struct {
	Lesson *models.MergedLesson
	Access models.AccessState
	Token  string
}

// Strategy resolves a playback source for one kind of lesson video.
// A nil outcome means "no match, try the next strategy"; a non-nil
// outcome is terminal.
type Strategy interface {
	// Name identifies the strategy in logs and metrics
	Name() string
	// Resolve attempts to produce a playback outcome for the request
	Resolve(ctx context.Context, req Request) *models.PlaybackOutcome
}

// GrantSigner requests signed playback grants from the backend
type GrantSigner interface {
	// SignVideo requests a signed grant for a video.
	//
	// "ctx" is the context for the request.
	// "token" is the viewer's bearer token.
	// "videoID" is the canonical ID of the video.
	//
	// Returns the raw signing response and an error if any.
	SignVideo(ctx context.Context, token, videoID string) (json.RawMessage, error)
}

// youtubeStrategy matches lessons whose videoUrl is a YouTube link.
// Whether YouTube sources are gated behind enrollment is an explicit
// policy choice, not an accident of ordering.
type youtubeStrategy struct {
	requireEnrollment bool
}

// NewYouTubeStrategy creates the YouTube resolution strategy
func NewYouTubeStrategy(requireEnrollment bool) Strategy {
	return &youtubeStrategy{requireEnrollment: requireEnrollment}
}

func (s *youtubeStrategy) Name() string { return "youtube" }

func (s *youtubeStrategy) Resolve(_ context.Context, req Request) *models.PlaybackOutcome {
	id, ok := ParseYouTubeID(req.Lesson.VideoURL)
	if !ok {
		return nil
	}

	if s.requireEnrollment && req.Access != models.AccessFull && req.Access != models.AccessTrialSample {
		return &models.PlaybackOutcome{State: models.PlaybackDenied, Reason: ReasonEnrollmentRequired}
	}

	return &models.PlaybackOutcome{
		State: models.PlaybackReady,
		Source: &models.VideoSource{
			Kind:     models.SourceYouTube,
			EmbedURL: YouTubeEmbedURL(id),
		},
	}
}

// bunnyStrategy matches lessons with CDN coordinates. Full access is
// required before the backend is asked to sign anything; a trial sample
// of a CDN-hosted lesson is still served because resolution only reaches
// this strategy with TrialSample when the lesson sits in the trial window.
type bunnyStrategy struct {
	signer           GrantSigner
	embedBaseURL     string
	defaultLibraryID string
	logger           *zap.Logger
}

// NewBunnyStrategy creates the CDN resolution strategy
func NewBunnyStrategy(signer GrantSigner, embedBaseURL, defaultLibraryID string, logger *zap.Logger) Strategy {
	return &bunnyStrategy{
		signer:           signer,
		embedBaseURL:     embedBaseURL,
		defaultLibraryID: defaultLibraryID,
		logger:           logger,
	}
}

func (s *bunnyStrategy) Name() string { return "bunny" }

func (s *bunnyStrategy) Resolve(ctx context.Context, req Request) *models.PlaybackOutcome {
	lesson := req.Lesson
	if lesson.Bunny == nil || lesson.Bunny.VideoID == "" {
		return nil
	}

	// Protected content: deny before any signing request leaves the
	// building. Trial samples inside the window are allowed through.
	if req.Access == models.AccessLocked {
		return &models.PlaybackOutcome{State: models.PlaybackDenied, Reason: ReasonEnrollmentRequired}
	}

	raw, err := s.signer.SignVideo(ctx, req.Token, lesson.ID)
	if err != nil {
		s.logger.Error("signing request failed",
			zap.String("lesson_id", lesson.ID),
			zap.Error(err),
		)
		return &models.PlaybackOutcome{State: models.PlaybackFailed, Reason: ReasonSigningFailed}
	}

	switch grant := DecodeGrant(raw).(type) {
	case DirectURLGrant:
		return &models.PlaybackOutcome{
			State:  models.PlaybackReady,
			Source: &models.VideoSource{Kind: models.SourceBunny, EmbedURL: grant.URL},
		}

	case TokenGrant:
		libraryID := grant.LibraryID
		if libraryID == "" {
			libraryID = lesson.Bunny.LibraryID
		}
		if libraryID == "" {
			libraryID = s.defaultLibraryID
		}

		videoID := grant.VideoID
		if videoID == "" {
			videoID = lesson.Bunny.VideoID
		}

		if libraryID == "" || videoID == "" {
			s.logger.Error("token grant missing CDN coordinates",
				zap.String("lesson_id", lesson.ID),
			)
			return &models.PlaybackOutcome{State: models.PlaybackFailed, Reason: ReasonSigningFailed}
		}

		return &models.PlaybackOutcome{
			State: models.PlaybackReady,
			Source: &models.VideoSource{
				Kind:     models.SourceBunny,
				EmbedURL: s.embedURL(libraryID, videoID, grant.Token, grant.Expires),
			},
		}

	default:
		s.logger.Error("unrecognized signing response",
			zap.String("lesson_id", lesson.ID),
		)
		return &models.PlaybackOutcome{State: models.PlaybackFailed, Reason: ReasonSigningFailed}
	}
}

// embedURL builds the token-authenticated CDN embed URL
func (s *bunnyStrategy) embedURL(libraryID, videoID, token string, expires int64) string {
	return fmt.Sprintf("%s/%s/%s?token=%s&expires=%d&autoplay=true&loop=false&muted=false&preload=true&responsive=true",
		s.embedBaseURL, libraryID, videoID, token, expires)
}

// directURLStrategy serves lessons carrying a plain video URL. It runs
// after the YouTube strategy, so anything reaching it is not a YouTube
// link.
type directURLStrategy struct{}

// NewDirectURLStrategy creates the direct-URL fallback strategy
func NewDirectURLStrategy() Strategy {
	return &directURLStrategy{}
}

func (s *directURLStrategy) Name() string { return "direct" }

func (s *directURLStrategy) Resolve(_ context.Context, req Request) *models.PlaybackOutcome {
	if req.Lesson.VideoURL == "" {
		return nil
	}

	return &models.PlaybackOutcome{
		State: models.PlaybackReady,
		Source: &models.VideoSource{
			Kind:     models.SourceDirectURL,
			EmbedURL: req.Lesson.VideoURL,
		},
	}
}
