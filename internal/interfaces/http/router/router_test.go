package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/audiozoom/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAuth accepts requests carrying X-Test-User
func stubAuth(trace *[]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		*trace = append(*trace, "auth")
		if c.GetHeader("X-Test-User") == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func serve(engine *gin.Engine, method, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if len(header) == 2 {
		req.Header.Set(header[0], header[1])
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, DefaultPrefix, r.Prefix())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithPrefix("/v2"))
	assert.Equal(t, "/v2", r.Prefix())
}

func TestRouterSetup_PublicAndProtected(t *testing.T) {
	var trace []string
	engine := gin.New()
	r := NewRouter(engine, WithAuth(stubAuth(&trace)))

	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	g := NewDomainGroup("items", "/items")
	g.Public(http.MethodGet, "/open", ok)
	g.GET("/closed", ok)
	r.Register(g).Setup()

	w := serve(engine, http.MethodGet, "/api/items/open")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, trace)

	w = serve(engine, http.MethodGet, "/api/items/closed")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(engine, http.MethodGet, "/api/items/closed", "X-Test-User", "u1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"auth", "auth"}, trace)
}

func TestDomainGroup_MiddlewareOrder(t *testing.T) {
	var trace []string
	engine := gin.New()

	g := NewDomainGroup("admin", "/admin").Use(func(c *gin.Context) {
		trace = append(trace, "group")
		c.Next()
	}, nil)
	g.GET("/report", func(c *gin.Context) {
		trace = append(trace, "handler")
		c.Status(http.StatusNoContent)
	})
	sub := g.Group("nested", "/nested")
	sub.Use(func(c *gin.Context) {
		trace = append(trace, "sub")
		c.Next()
	})
	sub.GET("/deep", func(c *gin.Context) {
		trace = append(trace, "deep")
		c.Status(http.StatusNoContent)
	})

	g.RegisterRoutes(engine.Group("/api"), stubAuth(&trace))

	w := serve(engine, http.MethodGet, "/api/admin/report", "X-Test-User", "u1")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"auth", "group", "handler"}, trace)

	trace = nil
	w = serve(engine, http.MethodGet, "/api/admin/nested/deep", "X-Test-User", "u1")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"auth", "group", "sub", "deep"}, trace)
}

func TestDomainGroup_NilAuth(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("items", "/items")
	g.POST("", func(c *gin.Context) { c.Status(http.StatusCreated) })
	g.RegisterRoutes(engine.Group("/api"), nil)

	w := serve(engine, http.MethodPost, "/api/items")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDomainGroup_Routes(t *testing.T) {
	g := NewDomainGroup("messages", "/messages")
	g.GET("", nil)
	g.PATCH("/:id/read", nil)
	g.Group("drafts", "/drafts").Public(http.MethodGet, "/latest", nil)

	assert.Equal(t, []RouteInfo{
		{Method: http.MethodGet, Path: "/messages"},
		{Method: http.MethodPatch, Path: "/messages/:id/read"},
		{Method: http.MethodGet, Path: "/messages/drafts/latest", Public: true},
	}, g.Routes())
}

func testHandlers() Handlers {
	return Handlers{
		Auth:         &handler.AuthHandler{},
		User:         &handler.UserHandler{},
		Recording:    &handler.RecordingHandler{},
		AudioRequest: &handler.AudioRequestHandler{},
		Payment:      &handler.PaymentHandler{},
		Message:      &handler.MessageHandler{},
		Request:      &handler.RequestHandler{},
		Admin:        &handler.AdminHandler{},
		System:       &handler.SystemHandler{},
	}
}

func TestAPIGroups(t *testing.T) {
	groups := APIGroups(testHandlers(), RouteMiddleware{})

	var public []string
	total := 0
	for _, g := range groups {
		for _, route := range g.Routes() {
			total++
			if route.Public {
				public = append(public, route.Method+" "+route.Path)
			}
		}
	}

	assert.ElementsMatch(t, []string{
		"POST /auth/register",
		"POST /auth/login",
		"POST /auth/google",
		"POST /auth/refresh",
		"POST /audio-requests/guest",
		"GET /audio-requests/public/:creatorId",
		"POST /payments/stripe-webhook",
		"POST /payments/paypal-webhook",
	}, public)
	assert.Greater(t, total, len(public))

	t.Run("registers without conflicts", func(t *testing.T) {
		engine := gin.New()
		r := NewRouter(engine)
		for _, g := range groups {
			r.Register(g)
		}
		assert.NotPanics(t, r.Setup)
		assert.NotPanics(t, func() { RegisterProbes(engine, testHandlers().System) })
	})
}

func TestAPIGroups_WebhookLimit(t *testing.T) {
	engine := gin.New()
	limited := 0
	groups := APIGroups(testHandlers(), RouteMiddleware{
		WebhookBodyLimit: func(c *gin.Context) {
			limited++
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
		},
	})
	r := NewRouter(engine)
	for _, g := range groups {
		r.Register(g)
	}
	r.Setup()

	w := serve(engine, http.MethodPost, "/api/payments/stripe-webhook")
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	w = serve(engine, http.MethodPost, "/api/payments/paypal-webhook")
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, 2, limited)
}

func TestAPIGroups_OptionalAuthOnGuestOrders(t *testing.T) {
	engine := gin.New()
	var seen []string
	groups := APIGroups(testHandlers(), RouteMiddleware{
		OptionalAuth: func(c *gin.Context) {
			seen = append(seen, c.FullPath())
			c.AbortWithStatus(http.StatusTeapot)
		},
	})
	r := NewRouter(engine)
	for _, g := range groups {
		r.Register(g)
	}
	r.Setup()

	w := serve(engine, http.MethodPost, "/api/audio-requests/guest")
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, []string{"/api/audio-requests/guest"}, seen)
}
