package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skillwave/playback-gateway/internal/access"
	"github.com/skillwave/playback-gateway/internal/catalog"
	"github.com/skillwave/playback-gateway/internal/middleware"
	"github.com/skillwave/playback-gateway/internal/models"
	"github.com/skillwave/playback-gateway/internal/playback"
	"go.uber.org/zap"
)

// CatalogService defines the course-loading operations for the learn page
type CatalogService interface {
	// Load fetches a course and projects it into the learn-page view.
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns the view and an error if any; models.ErrNotFound when the
	// course does not exist.
	Load(ctx context.Context, courseID string) (*models.CourseView, error)
}

// EnrollmentService defines the enrollment check for the learn page
type EnrollmentService interface {
	// IsEnrolled reports whether the viewer is enrolled in the course.
	//
	// "ctx" is the context for the request.
	// "token" is the viewer's bearer token, empty when anonymous.
	// "courseID" is the ID of the course.
	//
	// Returns the enrollment flag and an error if any.
	IsEnrolled(ctx context.Context, token, courseID string) (bool, error)
}

// PlaybackManager runs lesson selections through the playback pipeline
type PlaybackManager interface {
	// Play resolves a lesson selection for the given session.
	Play(ctx context.Context, sessionID string, req playback.Request) models.PlaybackOutcome
}

// LearnHandler serves the learn-page endpoints
type LearnHandler struct {
	BaseHandler
	catalog          CatalogService
	enrollments      EnrollmentService
	playback         PlaybackManager
	trialLessonCount int
	salesPageURL     string
}

// NewLearnHandler creates a new learn handler
func NewLearnHandler(
	catalog CatalogService,
	enrollments EnrollmentService,
	playbackMgr PlaybackManager,
	logger *zap.Logger,
	trialLessonCount int,
	salesPageURL string,
) *LearnHandler {
	return &LearnHandler{
		BaseHandler:      BaseHandler{Logger: logger},
		catalog:          catalog,
		enrollments:      enrollments,
		playback:         playbackMgr,
		trialLessonCount: trialLessonCount,
		salesPageURL:     salesPageURL,
	}
}

// RegisterRoutes registers the learn endpoints
func (h *LearnHandler) RegisterRoutes(r chi.Router) {
	r.Route("/learn/{courseID}", func(r chi.Router) {
		r.Get("/", h.GetCourse)
		r.Post("/source", h.ResolveSource)
	})
}

// lessonView is a merged lesson annotated with the caller's access state
type lessonView struct {
	models.MergedLesson
	Access models.AccessState `json:"access"`
}

// chapterView is a chapter of annotated lessons
type chapterView struct {
	ID      string       `json:"_id"`
	Title   string       `json:"title"`
	Lessons []lessonView `json:"lessons"`
}

// learnResponse is the learn-page payload
type learnResponse struct {
	ID              string        `json:"_id"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	Price           float64       `json:"price,omitempty"`
	Chapters        []chapterView `json:"chapters"`
	DefaultLessonID string        `json:"defaultLessonId,omitempty"`
	Enrolled        bool          `json:"enrolled"`
	RedirectTo      string        `json:"redirectTo,omitempty"`
}

// sourceRequest is the body of a lesson-selection request
type sourceRequest struct {
	LessonID string `json:"lessonId"`
}

// GetCourse handles GET /learn/{courseID}
// @Summary Get course for learning
// @Description Retrieve a course with merged lesson/video metadata and per-lesson access for the caller. Query trial=true requests trial-sample access.
// @Tags learn
// @Accept json
// @Produce json
// @Param courseID path string true "Course ID"
// @Param trial query bool false "Trial mode requested"
// @Success 200 {object} learnResponse
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /learn/{courseID} [get]
func (h *LearnHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	trial := r.URL.Query().Get("trial") == "true"
	token := BearerToken(r)

	view, err := h.catalog.Load(r.Context(), courseID)
	if err != nil {
		if err == models.ErrNotFound {
			h.RespondJSON(w, http.StatusNotFound, map[string]string{
				"error":      "course not found",
				"catalogUrl": h.salesPageURL,
			})
			return
		}
		h.Logger.Error("failed to load course", zap.Error(err), zap.String("course_id", courseID))
		h.RespondError(w, http.StatusInternalServerError, "failed to load course")
		return
	}

	enrolled := h.isEnrolled(r.Context(), token, courseID)

	resp := learnResponse{
		ID:              view.ID,
		Title:           view.Title,
		Description:     view.Description,
		Price:           view.Price,
		Chapters:        make([]chapterView, 0, len(view.Chapters)),
		DefaultLessonID: view.DefaultLessonID,
		Enrolled:        enrolled,
	}

	for _, ch := range view.Chapters {
		cv := chapterView{ID: ch.ID, Title: ch.Title, Lessons: make([]lessonView, 0, len(ch.Lessons))}
		for _, lesson := range ch.Lessons {
			cv.Lessons = append(cv.Lessons, lessonView{
				MergedLesson: lesson,
				Access:       access.Resolve(lesson.GlobalIndex, enrolled, trial, h.trialLessonCount),
			})
		}
		resp.Chapters = append(resp.Chapters, cv)
	}

	// The redirect decision is made only after the course loaded, so the
	// loading window can never produce a false-positive redirect
	if access.ShouldRedirect(access.Resolve(0, enrolled, trial, h.trialLessonCount), trial) {
		resp.RedirectTo = fmt.Sprintf("%s/%s", h.salesPageURL, courseID)
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// ResolveSource handles POST /learn/{courseID}/source
// @Summary Resolve lesson playback source
// @Description Run a lesson selection through the playback pipeline and return the resulting state. Expected UI states (denied, empty) are 200 responses, not errors.
// @Tags learn
// @Accept json
// @Produce json
// @Param courseID path string true "Course ID"
// @Param trial query bool false "Trial mode requested"
// @Param X-Playback-Session header string false "Playback session ID"
// @Param request body sourceRequest true "Lesson selection"
// @Success 200 {object} models.PlaybackOutcome
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Course or lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /learn/{courseID}/source [post]
func (h *LearnHandler) ResolveSource(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	trial := r.URL.Query().Get("trial") == "true"
	token := BearerToken(r)

	var req sourceRequest
	if err := decodeJSON(r, &req); err != nil || req.LessonID == "" {
		h.RespondError(w, http.StatusBadRequest, "lessonId is required")
		return
	}

	view, err := h.catalog.Load(r.Context(), courseID)
	if err != nil {
		if err == models.ErrNotFound {
			h.RespondError(w, http.StatusNotFound, "course not found")
			return
		}
		h.Logger.Error("failed to load course", zap.Error(err), zap.String("course_id", courseID))
		h.RespondError(w, http.StatusInternalServerError, "failed to load course")
		return
	}

	lesson, ok := catalog.FindLesson(view.Chapters, req.LessonID)
	if !ok {
		h.RespondError(w, http.StatusNotFound, "lesson not found")
		return
	}

	enrolled := h.isEnrolled(r.Context(), token, courseID)
	accessState := access.Resolve(lesson.GlobalIndex, enrolled, trial, h.trialLessonCount)

	sessionID := r.Header.Get("X-Playback-Session")
	if sessionID == "" {
		// Degrades to a per-request session, which is still safe
		sessionID = middleware.GetRequestID(r.Context())
	}

	outcome := h.playback.Play(r.Context(), sessionID, playback.Request{
		Lesson: lesson,
		Access: accessState,
		Token:  token,
	})

	h.RespondJSON(w, http.StatusOK, outcome)
}

// isEnrolled runs the dual-source enrollment check, converting errors to
// "not enrolled" so an unreachable backend degrades to locked content
// rather than a failed page
func (h *LearnHandler) isEnrolled(ctx context.Context, token, courseID string) bool {
	enrolled, err := h.enrollments.IsEnrolled(ctx, token, courseID)
	if err != nil {
		h.Logger.Warn("enrollment check failed, treating viewer as unenrolled",
			zap.String("course_id", courseID),
			zap.Error(err),
		)
		return false
	}
	return enrolled
}
