package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	appaudio "github.com/audiozoom/backend/internal/application/audiorequest"
	appfinance "github.com/audiozoom/backend/internal/application/finance"
	appidentity "github.com/audiozoom/backend/internal/application/identity"
	appmessaging "github.com/audiozoom/backend/internal/application/messaging"
	apprecording "github.com/audiozoom/backend/internal/application/recording"
	apprequest "github.com/audiozoom/backend/internal/application/request"
	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/infrastructure/auth"
	"github.com/audiozoom/backend/internal/infrastructure/cache"
	"github.com/audiozoom/backend/internal/infrastructure/config"
	"github.com/audiozoom/backend/internal/infrastructure/persistence"
	"github.com/audiozoom/backend/internal/infrastructure/persistence/models"
	"github.com/audiozoom/backend/internal/infrastructure/storage"
	"github.com/audiozoom/backend/internal/interfaces/http/dto"
	"github.com/audiozoom/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

const (
	testPassword     = "secret1"
	testMaxAudioSize = 1 << 20
	testMaxImageSize = 64 << 10
	testStorageURL   = "http://storage.test"
)

// mockStripeGateway is a testify mock of the Stripe Connect port
type mockStripeGateway struct {
	mock.Mock
}

func (m *mockStripeGateway) CreateConnectedAccount(ctx context.Context, req finance.ConnectedAccountRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockStripeGateway) CreateOnboardingLink(ctx context.Context, req finance.OnboardingLinkRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockStripeGateway) CreatePaymentIntent(ctx context.Context, req finance.PaymentIntentRequest) (*finance.PaymentIntent, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*finance.PaymentIntent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStripeGateway) ParseWebhook(payload []byte, signature string) (*finance.PaymentEvent, error) {
	args := m.Called(payload, signature)
	if v := args.Get(0); v != nil {
		return v.(*finance.PaymentEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

// testServer wires real services over an in-memory sqlite database
type testServer struct {
	engine        *gin.Engine
	db            *gorm.DB
	users         *persistence.GormUserRepository
	audioRequests *persistence.GormAudioRequestRepository
	payments      *persistence.GormPaymentRepository
	storage       *storage.MemoryObjectStorage
	jwt           *auth.JWTService
	stripe        *mockStripeGateway
	checks        map[string]HealthCheck
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	})
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := newTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	userRepo := persistence.NewGormUserRepository(db)
	recordingRepo := persistence.NewGormRecordingRepository(db)
	audioRepo := persistence.NewGormAudioRequestRepository(db)
	messageRepo := persistence.NewGormMessageRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)
	requestRepo := persistence.NewGormRequestRepository(db)
	reporter := persistence.NewSQLRevenueReporter(sqlx.NewDb(sqlDB, "sqlite3"), config.DriverSQLite)

	objects := storage.NewMemoryObjectStorage(testStorageURL)
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	processed := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = processed.Close() })
	stripe := new(mockStripeGateway)

	authService := appidentity.NewAuthService(userRepo, jwtService, blacklist, nil, nil, nil)
	profileService := appidentity.NewProfileService(userRepo, recordingRepo, objects, nil, nil, nil)
	recordingService := apprecording.NewRecordingService(recordingRepo, userRepo, messageRepo, objects, nil, nil, nil)
	audioService := appaudio.NewAudioRequestService(audioRepo, userRepo, objects, nil, nil, nil, nil)
	messageService := appmessaging.NewMessageService(messageRepo, userRepo, nil, nil)
	paymentService := appfinance.NewPaymentService(paymentRepo, userRepo, stripe, nil,
		appfinance.PaymentOptions{ClientURL: "http://localhost:3000"}, nil, nil, nil)
	webhookService := appfinance.NewWebhookService(paymentRepo, audioRepo, stripe, nil, processed, nil, nil, nil)
	revenueService := appfinance.NewRevenueService(reporter, nil)
	requestService := apprequest.NewRequestService(requestRepo, userRepo, nil)

	ts := &testServer{
		db:            db,
		users:         userRepo,
		audioRequests: audioRepo,
		payments:      paymentRepo,
		storage:       objects,
		jwt:           jwtService,
		stripe:        stripe,
		checks:        map[string]HealthCheck{},
	}

	authCfg := middleware.DefaultJWTConfig(jwtService)
	authCfg.TokenBlacklist = blacklist
	authCfg.LookupUser = func(ctx context.Context, id uuid.UUID) (bool, error) {
		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			return false, err
		}
		return user.IsAdmin, nil
	}

	authHandler := NewAuthHandler(authService, config.CookieConfig{Name: "token", Path: "/", SameSite: "lax"})
	userHandler := NewUserHandler(profileService, testMaxImageSize)
	recordingHandler := NewRecordingHandler(recordingService, testMaxAudioSize, testMaxImageSize)
	audioHandler := NewAudioRequestHandler(audioService, testMaxAudioSize)
	paymentHandler := NewPaymentHandler(paymentService, webhookService)
	messageHandler := NewMessageHandler(messageService)
	requestHandler := NewRequestHandler(requestService)
	adminHandler := NewAdminHandler(revenueService)
	systemHandler := NewSystemHandler("AudioZoom API", "test", ts.checks)

	r := gin.New()
	r.GET("/health", systemHandler.Health)
	r.GET("/ready", systemHandler.Ready)

	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/google", authHandler.GoogleLogin)
	api.POST("/auth/refresh", authHandler.RefreshToken)
	api.POST("/audio-requests/guest", middleware.OptionalJWTAuthMiddleware(authCfg), audioHandler.CreateGuest)
	api.GET("/audio-requests/public/:creatorId", audioHandler.PublicCompleted)
	api.POST("/payments/stripe-webhook", paymentHandler.StripeWebhook)
	api.POST("/payments/paypal-webhook", paymentHandler.PayPalWebhook)

	authed := api.Group("", middleware.JWTAuthMiddlewareWithConfig(authCfg))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/system/info", systemHandler.GetSystemInfo)

	authed.GET("/users/me", userHandler.GetMe)
	authed.GET("/users/profile", userHandler.GetMe)
	authed.PATCH("/users/profile", userHandler.UpdateProfile)
	authed.GET("/users/featured", userHandler.Featured)
	authed.GET("/users/search", userHandler.Search)
	authed.GET("/users/:userId", userHandler.GetPublicProfile)
	authed.POST("/users/profile/media-links", userHandler.AddMediaLink)
	authed.PATCH("/users/profile/media-links/reorder", userHandler.ReorderMediaLinks)
	authed.PATCH("/users/profile/media-links/:linkId", userHandler.UpdateMediaLink)
	authed.DELETE("/users/profile/media-links/:linkId", userHandler.RemoveMediaLink)
	authed.POST("/users/profile/pricing-options", userHandler.AddPricingOption)
	authed.PUT("/users/pricing-options", userHandler.ReplacePricingOptions)
	authed.PATCH("/users/profile/pricing-options/reorder", userHandler.ReorderPricingOptions)
	authed.PATCH("/users/profile/pricing-options/:optionId", userHandler.UpdatePricingOption)
	authed.DELETE("/users/profile/pricing-options/:optionId", userHandler.RemovePricingOption)
	authed.PATCH("/users/profile/requests-info", userHandler.UpdateRequestsInfo)
	authed.PUT("/users/payment-settings", userHandler.UpdatePaymentSettings)

	authed.GET("/recordings", recordingHandler.List)
	authed.GET("/recordings/user/:userId", recordingHandler.ListByUser)
	authed.POST("/recordings/upload", recordingHandler.Upload)
	authed.PATCH("/recordings/:id", recordingHandler.Update)
	authed.PATCH("/recordings/:id/artwork", recordingHandler.ReplaceArtwork)
	authed.DELETE("/recordings/:id", recordingHandler.Delete)

	authed.POST("/audio-requests", audioHandler.Create)
	authed.GET("/audio-requests/my-requests", audioHandler.MyRequests)
	authed.GET("/audio-requests/my-orders", audioHandler.MyOrders)
	authed.GET("/audio-requests/:id", audioHandler.Get)
	authed.PATCH("/audio-requests/:id/status", audioHandler.ChangeStatus)
	authed.POST("/audio-requests/:id/upload", audioHandler.Deliver)

	authed.POST("/payments/create-stripe-account-link", paymentHandler.CreateStripeAccountLink)
	authed.POST("/payments/create-stripe-payment-intent", paymentHandler.CreateStripePaymentIntent)
	authed.POST("/payments/create-paypal-order", paymentHandler.CreatePayPalOrder)

	authed.GET("/messages", messageHandler.Inbox)
	authed.GET("/messages/sent", messageHandler.Sent)
	authed.GET("/messages/unread", messageHandler.UnreadCount)
	authed.POST("/messages/mark-all-read", messageHandler.MarkAllRead)
	authed.PATCH("/messages/:id/read", messageHandler.MarkRead)
	authed.DELETE("/messages/:id", messageHandler.Delete)
	authed.POST("/messages", messageHandler.Send)

	authed.POST("/requests", requestHandler.Create)
	authed.GET("/requests", requestHandler.List)

	authed.GET("/admin/revenue", middleware.AdminOnly(), adminHandler.Revenue)

	ts.engine = r
	return ts
}

// createUser stores an account and returns it with a valid access token
func (ts *testServer) createUser(t *testing.T, email, name string, opts ...func(*identity.User)) (*identity.User, string) {
	t.Helper()
	user, err := identity.NewUser(email, testPassword, name)
	require.NoError(t, err)
	for _, opt := range opts {
		opt(user)
	}
	require.NoError(t, ts.users.Create(context.Background(), user))

	pair, err := ts.jwt.GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin})
	require.NoError(t, err)
	return user, pair.AccessToken
}

// withPricingOption makes the user a creator accepting requests
func withPricingOption(title string, price string) func(*identity.User) {
	return func(u *identity.User) {
		p := decimal.RequireFromString(price)
		u.AcceptsRequests = true
		_, _ = u.AddPricingOption(identity.PricingOptionInput{Title: &title, Price: &p})
	}
}

func asAdmin(u *identity.User) { u.IsAdmin = true }

// do sends a JSON request. body may be nil, a string of raw JSON or a value
// to marshal.
func (ts *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.send(req, token)
}

func (ts *testServer) send(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

type testFile struct {
	Field       string
	Filename    string
	ContentType string
	Content     []byte
}

// multipartRequest builds a multipart/form-data request
func multipartRequest(t *testing.T, method, path string, fields map[string]string, files ...testFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.Field+`"; filename="`+f.Filename+`"`)
		h.Set("Content-Type", f.ContentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

// decodeData unmarshals the data field of a success envelope into v
func decodeData(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.True(t, env.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, v))
}

// errorCode returns the error code of a failure envelope
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.False(t, env.Success)
	require.NotNil(t, env.Error, w.Body.String())
	return env.Error.Code
}
