package handler

import (
	"net/http"

	apprecording "github.com/audiozoom/backend/internal/application/recording"
	"github.com/gin-gonic/gin"
)

// RecordingHandler serves a user's recordings
type RecordingHandler struct {
	BaseHandler
	recordingService *apprecording.RecordingService
	maxAudioSize     int64
	maxImageSize     int64
}

// NewRecordingHandler creates a new recording handler
func NewRecordingHandler(recordingService *apprecording.RecordingService, maxAudioSize, maxImageSize int64) *RecordingHandler {
	return &RecordingHandler{
		recordingService: recordingService,
		maxAudioSize:     maxAudioSize,
		maxImageSize:     maxImageSize,
	}
}

// UpdateRecordingRequest partially updates recording metadata
type UpdateRecordingRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	IsPublic    *bool   `json:"isPublic"`
}

// List godoc
// @Summary      List the caller's recordings
// @Tags         recordings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]apprecording.RecordingResult}
// @Router       /recordings [get]
func (h *RecordingHandler) List(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	recordings, err := h.recordingService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, recordings)
}

// ListByUser godoc
// @Summary      List a user's recordings
// @Description  Public recordings only, unless the caller is the owner
// @Tags         recordings
// @Produce      json
// @Security     BearerAuth
// @Param        userId path string true "Owner id"
// @Success      200 {object} dto.Response{data=[]apprecording.RecordingResult}
// @Router       /recordings/user/{userId} [get]
func (h *RecordingHandler) ListByUser(c *gin.Context) {
	viewerID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	ownerID, ok := h.parseUUIDParam(c, "userId")
	if !ok {
		return
	}
	recordings, err := h.recordingService.ListByUser(c.Request.Context(), viewerID, ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, recordings)
}

// Upload godoc
// @Summary      Upload a recording
// @Description  Optionally shares it with a user (id or email) as a direct message
// @Tags         recordings
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        audio formData file true "Audio file (50MB max)"
// @Param        title formData string true "Title"
// @Param        description formData string false "Description"
// @Param        shareWith formData string false "User id or email"
// @Param        shareType formData string false "message"
// @Success      201 {object} dto.Response{data=apprecording.RecordingResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /recordings/upload [post]
func (h *RecordingHandler) Upload(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	audio, file, err := requireFormFile(c, fileRule{Field: "audio", ContentPrefix: audioContentPrefix, MaxSize: h.maxAudioSize})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	result, err := h.recordingService.Upload(c.Request.Context(), apprecording.UploadInput{
		UserID:      userID,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Audio:       *audio,
		ShareWith:   c.PostForm("shareWith"),
		ShareType:   c.PostForm("shareType"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Update godoc
// @Summary      Update recording metadata
// @Tags         recordings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Recording id"
// @Param        request body UpdateRecordingRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=apprecording.RecordingResult}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /recordings/{id} [patch]
func (h *RecordingHandler) Update(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	recordingID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateRecordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	result, err := h.recordingService.Update(c.Request.Context(), userID, recordingID, apprecording.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ReplaceArtwork godoc
// @Summary      Replace recording artwork
// @Tags         recordings
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Recording id"
// @Param        artwork formData file true "Image (5MB max)"
// @Success      200 {object} dto.Response{data=apprecording.RecordingResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /recordings/{id}/artwork [patch]
func (h *RecordingHandler) ReplaceArtwork(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	recordingID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	artwork, file, err := requireFormFile(c, fileRule{Field: "artwork", ContentPrefix: imageContentPrefix, MaxSize: h.maxImageSize})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	result, err := h.recordingService.ReplaceArtwork(c.Request.Context(), userID, recordingID, *artwork)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete godoc
// @Summary      Delete a recording
// @Tags         recordings
// @Security     BearerAuth
// @Param        id path string true "Recording id"
// @Success      204
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /recordings/{id} [delete]
func (h *RecordingHandler) Delete(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	recordingID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.recordingService.Delete(c.Request.Context(), userID, recordingID); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
