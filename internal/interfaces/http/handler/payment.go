package handler

import (
	"io"
	"net/http"

	appfinance "github.com/audiozoom/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StripeSignatureHeader carries the Stripe webhook signature
const StripeSignatureHeader = "Stripe-Signature"

// PaymentHandler serves checkout and provider webhooks
type PaymentHandler struct {
	BaseHandler
	paymentService *appfinance.PaymentService
	webhookService *appfinance.WebhookService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *appfinance.PaymentService, webhookService *appfinance.WebhookService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, webhookService: webhookService}
}

// StripeAccountLinkRequest starts Stripe Connect onboarding
type StripeAccountLinkRequest struct {
	Country string `json:"country" binding:"omitempty,iso3166_1_alpha2" example:"US"`
}

// CheckoutRequest pays a creator. Amount is in cents.
type CheckoutRequest struct {
	Amount          int64      `json:"amount" binding:"required,gt=0" example:"2500"`
	PodcasterID     uuid.UUID  `json:"podcasterId" binding:"required"`
	PricingOptionID uuid.UUID  `json:"pricingOptionId"`
	AudioRequestID  *uuid.UUID `json:"audioRequestId"`
}

// WebhookResponse acknowledges a provider delivery
type WebhookResponse struct {
	Received bool `json:"received"`
}

func (r CheckoutRequest) toInput(customerID uuid.UUID) appfinance.CheckoutInput {
	return appfinance.CheckoutInput{
		CustomerID:      customerID,
		PodcasterID:     r.PodcasterID,
		PricingOptionID: r.PricingOptionID,
		AudioRequestID:  r.AudioRequestID,
		Amount:          r.Amount,
	}
}

// CreateStripeAccountLink godoc
// @Summary      Start Stripe Connect onboarding
// @Description  Creates the connected account on first use
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body StripeAccountLinkRequest false "Account country"
// @Success      200 {object} dto.Response{data=appfinance.StripeAccountLinkResult}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payments/create-stripe-account-link [post]
func (h *PaymentHandler) CreateStripeAccountLink(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req StripeAccountLinkRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.ValidationError(c, err)
			return
		}
	}
	result, err := h.paymentService.CreateStripeAccountLink(c.Request.Context(), appfinance.StripeAccountLinkInput{
		UserID:  userID,
		Country: req.Country,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CreateStripePaymentIntent godoc
// @Summary      Create a Stripe payment intent
// @Description  Routes the creator share to their connected account
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CheckoutRequest true "Checkout"
// @Success      200 {object} dto.Response{data=appfinance.PaymentIntentResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payments/create-stripe-payment-intent [post]
func (h *PaymentHandler) CreateStripePaymentIntent(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	result, err := h.paymentService.CreateStripePaymentIntent(c.Request.Context(), req.toInput(userID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CreatePayPalOrder godoc
// @Summary      Create a PayPal order
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CheckoutRequest true "Checkout"
// @Success      200 {object} dto.Response{data=appfinance.PayPalOrderResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payments/create-paypal-order [post]
func (h *PaymentHandler) CreatePayPalOrder(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	result, err := h.paymentService.CreatePayPalOrder(c.Request.Context(), req.toInput(userID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// StripeWebhook godoc
// @Summary      Stripe webhook
// @Description  Verifies the Stripe-Signature header against the raw body
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature header string true "Signature"
// @Success      200 {object} WebhookResponse
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payments/stripe-webhook [post]
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	signature := c.GetHeader(StripeSignatureHeader)
	if signature == "" {
		h.BadRequest(c, "Missing "+StripeSignatureHeader+" header")
		return
	}
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.webhookService.HandleStripe(c.Request.Context(), payload, signature); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, WebhookResponse{Received: true})
}

// PayPalWebhook godoc
// @Summary      PayPal webhook
// @Description  Signature is verified through the PayPal API when a webhook id is configured
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200 {object} WebhookResponse
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payments/paypal-webhook [post]
func (h *PaymentHandler) PayPalWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.webhookService.HandlePayPal(c.Request.Context(), c.Request.Header, payload); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, WebhookResponse{Received: true})
}
