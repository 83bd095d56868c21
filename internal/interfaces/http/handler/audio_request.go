package handler

import (
	appaudio "github.com/audiozoom/backend/internal/application/audiorequest"
	"github.com/audiozoom/backend/internal/domain/audiorequest"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AudioRequestHandler serves personalised audio orders
type AudioRequestHandler struct {
	BaseHandler
	audioRequestService *appaudio.AudioRequestService
	maxAudioSize        int64
}

// NewAudioRequestHandler creates a new audio request handler
func NewAudioRequestHandler(audioRequestService *appaudio.AudioRequestService, maxAudioSize int64) *AudioRequestHandler {
	return &AudioRequestHandler{audioRequestService: audioRequestService, maxAudioSize: maxAudioSize}
}

// CreateAudioRequestRequest places an order with a creator
type CreateAudioRequestRequest struct {
	CreatorID       uuid.UUID                  `json:"creatorId" binding:"required"`
	PricingOptionID uuid.UUID                  `json:"pricingOptionId" binding:"required"`
	RequestDetails  string                     `json:"requestDetails" binding:"required,max=5000"`
	Occasion        string                     `json:"occasion" binding:"max=200"`
	ForWhom         string                     `json:"forWhom" binding:"max=200"`
	Pronunciation   string                     `json:"pronunciation" binding:"max=500"`
	IsPublic        bool                       `json:"isPublic"`
	PaymentMethod   audiorequest.PaymentMethod `json:"paymentMethod" binding:"required,oneof=paypal stripe other"`
}

// GuestAudioRequestRequest is an order placed without an account
type GuestAudioRequestRequest struct {
	CreateAudioRequestRequest
	RequesterName  string `json:"requesterName" binding:"required,max=200"`
	RequesterEmail string `json:"requesterEmail" binding:"required,email,max=200"`
}

// ChangeStatusRequest moves a request along its lifecycle
type ChangeStatusRequest struct {
	Status audiorequest.Status `json:"status" binding:"required,audio_status"`
}

func (r CreateAudioRequestRequest) toInput() appaudio.CreateInput {
	return appaudio.CreateInput{
		CreatorID:       r.CreatorID,
		PricingOptionID: r.PricingOptionID,
		RequestDetails:  r.RequestDetails,
		Occasion:        r.Occasion,
		ForWhom:         r.ForWhom,
		Pronunciation:   r.Pronunciation,
		IsPublic:        r.IsPublic,
		PaymentMethod:   r.PaymentMethod,
	}
}

// Create godoc
// @Summary      Place an audio request
// @Tags         audio-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateAudioRequestRequest true "Order"
// @Success      201 {object} dto.Response{data=appaudio.AudioRequestResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /audio-requests [post]
func (h *AudioRequestHandler) Create(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req CreateAudioRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	input := req.toInput()
	input.RequesterID = &userID

	result, err := h.audioRequestService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// CreateGuest godoc
// @Summary      Place an audio request as a guest
// @Description  A valid token, when sent, links the request to the caller's account.
// @Tags         audio-requests
// @Accept       json
// @Produce      json
// @Param        request body GuestAudioRequestRequest true "Order"
// @Success      201 {object} dto.Response{data=appaudio.AudioRequestResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /audio-requests/guest [post]
func (h *AudioRequestHandler) CreateGuest(c *gin.Context) {
	var req GuestAudioRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	input := req.toInput()
	if userID, ok := getUserID(c); ok {
		// signed-in callers order under their account
		input.RequesterID = &userID
	} else {
		input.RequesterName = req.RequesterName
		input.RequesterEmail = req.RequesterEmail
	}

	result, err := h.audioRequestService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// MyRequests godoc
// @Summary      List requests the caller placed
// @Tags         audio-requests
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]appaudio.AudioRequestResult}
// @Router       /audio-requests/my-requests [get]
func (h *AudioRequestHandler) MyRequests(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	results, err := h.audioRequestService.ListAsRequester(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// MyOrders godoc
// @Summary      List requests addressed to the caller
// @Tags         audio-requests
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]appaudio.AudioRequestResult}
// @Router       /audio-requests/my-orders [get]
func (h *AudioRequestHandler) MyOrders(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	results, err := h.audioRequestService.ListAsCreator(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// Get godoc
// @Summary      Get an audio request
// @Description  Visible to its requester and creator
// @Tags         audio-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Request id"
// @Success      200 {object} dto.Response{data=appaudio.AudioRequestResult}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /audio-requests/{id} [get]
func (h *AudioRequestHandler) Get(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	requestID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	result, err := h.audioRequestService.Get(c.Request.Context(), userID, requestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ChangeStatus godoc
// @Summary      Change the status of an audio request
// @Description  Creator only. Closed requests cannot change.
// @Tags         audio-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Request id"
// @Param        request body ChangeStatusRequest true "accepted, rejected, completed or cancelled"
// @Success      200 {object} dto.Response{data=appaudio.AudioRequestResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /audio-requests/{id}/status [patch]
func (h *AudioRequestHandler) ChangeStatus(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	requestID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	result, err := h.audioRequestService.ChangeStatus(c.Request.Context(), userID, requestID, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Deliver godoc
// @Summary      Upload the finished audio
// @Description  Creator only. Completes the request.
// @Tags         audio-requests
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Request id"
// @Param        audio formData file true "Audio file (50MB max)"
// @Success      200 {object} dto.Response{data=appaudio.AudioRequestResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /audio-requests/{id}/upload [post]
func (h *AudioRequestHandler) Deliver(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	requestID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	audio, file, err := requireFormFile(c, fileRule{Field: "audio", ContentPrefix: audioContentPrefix, MaxSize: h.maxAudioSize})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	result, err := h.audioRequestService.Deliver(c.Request.Context(), appaudio.DeliverInput{
		CreatorID: userID,
		RequestID: requestID,
		Audio:     *audio,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// PublicCompleted godoc
// @Summary      List a creator's public completed requests
// @Tags         audio-requests
// @Produce      json
// @Param        creatorId path string true "Creator id"
// @Success      200 {object} dto.Response{data=[]appaudio.AudioRequestResult}
// @Router       /audio-requests/public/{creatorId} [get]
func (h *AudioRequestHandler) PublicCompleted(c *gin.Context) {
	creatorID, ok := h.parseUUIDParam(c, "creatorId")
	if !ok {
		return
	}
	results, err := h.audioRequestService.PublicCompleted(c.Request.Context(), creatorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}
