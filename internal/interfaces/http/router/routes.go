package router

import (
	"net/http"

	"github.com/audiozoom/backend/internal/interfaces/http/handler"
	"github.com/audiozoom/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers are the controllers mounted under the API prefix
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Recording    *handler.RecordingHandler
	AudioRequest *handler.AudioRequestHandler
	Payment      *handler.PaymentHandler
	Message      *handler.MessageHandler
	Request      *handler.RequestHandler
	Admin        *handler.AdminHandler
	System       *handler.SystemHandler
}

// RouteMiddleware holds per-group middleware. Nil entries are skipped.
type RouteMiddleware struct {
	// AuthRateLimit throttles the credential endpoints
	AuthRateLimit gin.HandlerFunc
	// WebhookBodyLimit caps provider webhook payloads
	WebhookBodyLimit gin.HandlerFunc
	// OptionalAuth identifies signed-in callers on public routes
	OptionalAuth gin.HandlerFunc
}

// APIGroups builds the domain route groups of the AudioZoom API
func APIGroups(h Handlers, mw RouteMiddleware) []*DomainGroup {
	authRoutes := NewDomainGroup("auth", "/auth").Use(mw.AuthRateLimit)
	authRoutes.Public(http.MethodPost, "/register", h.Auth.Register)
	authRoutes.Public(http.MethodPost, "/login", h.Auth.Login)
	authRoutes.Public(http.MethodPost, "/google", h.Auth.GoogleLogin)
	authRoutes.Public(http.MethodPost, "/refresh", h.Auth.RefreshToken)
	authRoutes.POST("/logout", h.Auth.Logout)

	userRoutes := NewDomainGroup("users", "/users")
	userRoutes.GET("/me", h.User.GetMe)
	userRoutes.GET("/profile", h.User.GetMe)
	userRoutes.PATCH("/profile", h.User.UpdateProfile)
	userRoutes.GET("/featured", h.User.Featured)
	userRoutes.GET("/search", h.User.Search)
	userRoutes.GET("/:userId", h.User.GetPublicProfile)
	userRoutes.PATCH("/profile/requests-info", h.User.UpdateRequestsInfo)
	userRoutes.PUT("/payment-settings", h.User.UpdatePaymentSettings)
	userRoutes.PUT("/pricing-options", h.User.ReplacePricingOptions)

	mediaLinks := userRoutes.Group("media-links", "/profile/media-links")
	mediaLinks.POST("", h.User.AddMediaLink)
	mediaLinks.PATCH("/reorder", h.User.ReorderMediaLinks)
	mediaLinks.PATCH("/:linkId", h.User.UpdateMediaLink)
	mediaLinks.DELETE("/:linkId", h.User.RemoveMediaLink)

	pricingOptions := userRoutes.Group("pricing-options", "/profile/pricing-options")
	pricingOptions.POST("", h.User.AddPricingOption)
	pricingOptions.PATCH("/reorder", h.User.ReorderPricingOptions)
	pricingOptions.PATCH("/:optionId", h.User.UpdatePricingOption)
	pricingOptions.DELETE("/:optionId", h.User.RemovePricingOption)

	recordingRoutes := NewDomainGroup("recordings", "/recordings")
	recordingRoutes.GET("", h.Recording.List)
	recordingRoutes.GET("/user/:userId", h.Recording.ListByUser)
	recordingRoutes.POST("/upload", h.Recording.Upload)
	recordingRoutes.PATCH("/:id", h.Recording.Update)
	recordingRoutes.PATCH("/:id/artwork", h.Recording.ReplaceArtwork)
	recordingRoutes.DELETE("/:id", h.Recording.Delete)

	audioRoutes := NewDomainGroup("audio-requests", "/audio-requests")
	audioRoutes.Public(http.MethodPost, "/guest", withLimit(mw.OptionalAuth, h.AudioRequest.CreateGuest)...)
	audioRoutes.Public(http.MethodGet, "/public/:creatorId", h.AudioRequest.PublicCompleted)
	audioRoutes.POST("", h.AudioRequest.Create)
	audioRoutes.GET("/my-requests", h.AudioRequest.MyRequests)
	audioRoutes.GET("/my-orders", h.AudioRequest.MyOrders)
	audioRoutes.GET("/:id", h.AudioRequest.Get)
	audioRoutes.PATCH("/:id/status", h.AudioRequest.ChangeStatus)
	audioRoutes.POST("/:id/upload", h.AudioRequest.Deliver)

	paymentRoutes := NewDomainGroup("payments", "/payments")
	paymentRoutes.POST("/create-stripe-account-link", h.Payment.CreateStripeAccountLink)
	paymentRoutes.POST("/create-stripe-payment-intent", h.Payment.CreateStripePaymentIntent)
	paymentRoutes.POST("/create-paypal-order", h.Payment.CreatePayPalOrder)
	paymentRoutes.Public(http.MethodPost, "/stripe-webhook", withLimit(mw.WebhookBodyLimit, h.Payment.StripeWebhook)...)
	paymentRoutes.Public(http.MethodPost, "/paypal-webhook", withLimit(mw.WebhookBodyLimit, h.Payment.PayPalWebhook)...)

	messageRoutes := NewDomainGroup("messages", "/messages")
	messageRoutes.GET("", h.Message.Inbox)
	messageRoutes.POST("", h.Message.Send)
	messageRoutes.GET("/sent", h.Message.Sent)
	messageRoutes.GET("/unread", h.Message.UnreadCount)
	messageRoutes.POST("/mark-all-read", h.Message.MarkAllRead)
	messageRoutes.PATCH("/:id/read", h.Message.MarkRead)
	messageRoutes.DELETE("/:id", h.Message.Delete)

	requestRoutes := NewDomainGroup("requests", "/requests")
	requestRoutes.POST("", h.Request.Create)
	requestRoutes.GET("", h.Request.List)

	adminRoutes := NewDomainGroup("admin", "/admin").Use(middleware.AdminOnly())
	adminRoutes.GET("/revenue", h.Admin.Revenue)

	systemRoutes := NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", h.System.GetSystemInfo)

	return []*DomainGroup{
		authRoutes,
		userRoutes,
		recordingRoutes,
		audioRoutes,
		paymentRoutes,
		messageRoutes,
		requestRoutes,
		adminRoutes,
		systemRoutes,
	}
}

// withLimit prepends an optional middleware to h
func withLimit(mw gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	if mw == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{mw, h}
}

// RegisterProbes mounts the liveness and readiness probes at the root
func RegisterProbes(engine *gin.Engine, system *handler.SystemHandler) {
	engine.GET("/health", system.Health)
	engine.GET("/ready", system.Ready)
}
