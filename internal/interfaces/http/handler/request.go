package handler

import (
	apprequest "github.com/audiozoom/backend/internal/application/request"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestHandler serves simple paid requests between users
type RequestHandler struct {
	BaseHandler
	requestService *apprequest.RequestService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestService *apprequest.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// CreateRequestRequest sends a paid request. Price is in dollars.
type CreateRequestRequest struct {
	RecipientID uuid.UUID        `json:"recipientId" binding:"required"`
	Details     string           `json:"details" binding:"required,max=5000"`
	Price       *decimal.Decimal `json:"price" binding:"required" swaggertype:"number"`
}

// Create godoc
// @Summary      Send a paid request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRequestRequest true "Request"
// @Success      201 {object} dto.Response{data=apprequest.RequestResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	result, err := h.requestService.Create(c.Request.Context(), apprequest.CreateInput{
		SenderID:    userID,
		RecipientID: req.RecipientID,
		Details:     req.Details,
		Price:       *req.Price,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List godoc
// @Summary      List requests the caller sent or received
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]apprequest.RequestResult}
// @Router       /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	results, err := h.requestService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}
