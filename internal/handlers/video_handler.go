package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skillwave/playback-gateway/internal/models"
	"go.uber.org/zap"
)

// UploadService defines the admin-side video operations
type UploadService interface {
	// CreateSlot creates a lesson video slot and returns the platform
	// record plus the one-shot CDN upload target.
	CreateSlot(ctx context.Context, token string, req models.CreateVideoRequest) (*models.CreateVideoResponse, error)
	// Upload streams the raw file to the CDN.
	Upload(ctx context.Context, target models.UploadTarget, body io.Reader, size int64) error
	// Delete removes the video record, with CDN failures downgraded to
	// warnings.
	Delete(ctx context.Context, token, videoID string) error
}

// VideoHandler serves the admin video-management endpoints
type VideoHandler struct {
	BaseHandler
	uploads UploadService
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(uploads UploadService, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		BaseHandler: BaseHandler{Logger: logger},
		uploads:     uploads,
	}
}

// RegisterRoutes registers the admin video endpoints
func (h *VideoHandler) RegisterRoutes(r chi.Router) {
	r.Route("/videos", func(r chi.Router) {
		r.Post("/", h.CreateSlot)
		r.Put("/{videoID}/content", h.UploadContent)
		r.Delete("/{videoID}", h.Delete)
	})
}

// CreateSlot handles POST /admin/videos
// @Summary Create a lesson video slot
// @Description Create the platform video record for a lesson and return the one-shot CDN upload target. The course must already have at least one chapter.
// @Tags admin
// @Accept json
// @Produce json
// @Param X-API-Key header string true "API Key"
// @Param request body models.CreateVideoRequest true "Slot details"
// @Success 201 {object} models.CreateVideoResponse
// @Failure 400 {object} map[string]string "Invalid request or course has no chapters"
// @Failure 404 {object} map[string]string "Course or chapter not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/videos [post]
func (h *VideoHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVideoRequest
	if err := decodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.uploads.CreateSlot(r.Context(), BearerToken(r), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoChapter):
			h.RespondError(w, http.StatusBadRequest, models.ErrNoChapter.Error())
		case errors.Is(err, models.ErrNotFound):
			h.RespondError(w, http.StatusNotFound, "course or chapter not found")
		default:
			h.Logger.Error("failed to create video slot", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, "failed to create video slot")
		}
		return
	}

	h.RespondJSON(w, http.StatusCreated, resp)
}

// UploadContent handles PUT /admin/videos/{videoID}/content
// @Summary Upload raw video content
// @Description Stream the raw file body through to the CDN upload endpoint. The guid and libraryId from slot creation identify the upload target.
// @Tags admin
// @Accept application/octet-stream
// @Produce json
// @Param X-API-Key header string true "API Key"
// @Param videoID path string true "Video ID"
// @Param guid query string true "Upload target GUID"
// @Param libraryId query string true "Upload target library ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid upload target"
// @Failure 502 {object} map[string]string "CDN rejected or interrupted the upload"
// @Router /admin/videos/{videoID}/content [put]
func (h *VideoHandler) UploadContent(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")
	target := models.UploadTarget{
		GUID:           r.URL.Query().Get("guid"),
		VideoLibraryID: r.URL.Query().Get("libraryId"),
	}

	err := h.uploads.Upload(r.Context(), target, r.Body, r.ContentLength)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBadUploadTarget):
			h.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, models.ErrUploadRejected), errors.Is(err, models.ErrUploadInterrupted):
			// The platform video record still exists server-side; cleanup
			// is a manual concern, so the underlying reason is preserved
			h.RespondError(w, http.StatusBadGateway, err.Error())
		default:
			h.Logger.Error("upload failed", zap.Error(err), zap.String("video_id", videoID))
			h.RespondError(w, http.StatusInternalServerError, "upload failed")
		}
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"status": "uploaded", "videoId": videoID})
}

// Delete handles DELETE /admin/videos/{videoID}
// @Summary Delete a video
// @Description Remove the platform video record and the CDN asset. CDN-side failures are soft warnings; the record is removed regardless.
// @Tags admin
// @Accept json
// @Produce json
// @Param X-API-Key header string true "API Key"
// @Param videoID path string true "Video ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Video not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/videos/{videoID} [delete]
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")

	if err := h.uploads.Delete(r.Context(), BearerToken(r), videoID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, "video not found")
			return
		}
		h.Logger.Error("failed to delete video", zap.Error(err), zap.String("video_id", videoID))
		h.RespondError(w, http.StatusInternalServerError, "failed to delete video")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "videoId": videoID})
}
