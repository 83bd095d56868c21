package handler

import (
	"net/http"

	appmessaging "github.com/audiozoom/backend/internal/application/messaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MessageHandler serves direct messages between users
type MessageHandler struct {
	BaseHandler
	messageService *appmessaging.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *appmessaging.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessageRequest sends a direct message
type SendMessageRequest struct {
	RecipientID uuid.UUID `json:"recipientId" binding:"required"`
	Content     string    `json:"content" binding:"required,max=5000"`
}

// Inbox godoc
// @Summary      List received messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]appmessaging.MessageResult}
// @Router       /messages [get]
func (h *MessageHandler) Inbox(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	messages, err := h.messageService.Inbox(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, messages)
}

// Sent godoc
// @Summary      List sent messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]appmessaging.MessageResult}
// @Router       /messages/sent [get]
func (h *MessageHandler) Sent(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	messages, err := h.messageService.Sent(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, messages)
}

// UnreadCount godoc
// @Summary      Count unread messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=appmessaging.UnreadCountResult}
// @Router       /messages/unread [get]
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	result, err := h.messageService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// MarkRead godoc
// @Summary      Mark a message read
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Message id"
// @Success      200 {object} dto.Response{data=appmessaging.MessageResult}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /messages/{id}/read [patch]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	messageID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	result, err := h.messageService.MarkRead(c.Request.Context(), userID, messageID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// MarkAllRead godoc
// @Summary      Mark every received message read
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=appmessaging.MarkAllReadResult}
// @Router       /messages/mark-all-read [post]
func (h *MessageHandler) MarkAllRead(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	result, err := h.messageService.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete godoc
// @Summary      Delete a message
// @Description  Sender or recipient only
// @Tags         messages
// @Security     BearerAuth
// @Param        id path string true "Message id"
// @Success      204
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /messages/{id} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	messageID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.messageService.Delete(c.Request.Context(), userID, messageID); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Send godoc
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SendMessageRequest true "Message"
// @Success      201 {object} dto.Response{data=appmessaging.MessageResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	result, err := h.messageService.Send(c.Request.Context(), appmessaging.SendInput{
		SenderID:    userID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
