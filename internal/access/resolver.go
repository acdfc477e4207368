// Package access decides, per viewer and per lesson, whether playback is
// allowed. The resolver is a pure function of the enrollment snapshot, the
// trial flag and the lesson's global index, so it stays trivially testable.
package access

import (
	"github.com/skillwave/playback-gateway/internal/models"
)

// Resolve computes the viewer's access state for one lesson.
//
// Enrolled viewers always get full access, regardless of trial flag or
// index. Unenrolled viewers get trial access only when trial mode was
// explicitly requested and the lesson's global index falls inside the
// trial window. Everything else is locked.
func Resolve(globalIndex int, enrolled, trialRequested bool, trialLessonCount int) models.AccessState {
	if enrolled {
		return models.AccessFull
	}
	if trialRequested && globalIndex < trialLessonCount {
		return models.AccessTrialSample
	}
	return models.AccessLocked
}

// ShouldRedirect reports whether a viewer should be sent back to the
// course sales page: locked out and not in trial mode at all. Callers must
// not evaluate this while course data is still loading, to avoid
// false-positive redirects during the loading window.
func ShouldRedirect(state models.AccessState, trialRequested bool) bool {
	return state == models.AccessLocked && !trialRequested
}
