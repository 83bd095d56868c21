package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/audiozoom/backend/internal/infrastructure/auth"
	"github.com/audiozoom/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	})
}

type authFixture struct {
	users     *MockUserRepository
	google    *MockGoogleVerifier
	publisher *MockEventPublisher
	blacklist *auth.InMemoryTokenBlacklist
	jwt       *auth.JWTService
	service   *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:     new(MockUserRepository),
		google:    new(MockGoogleVerifier),
		publisher: new(MockEventPublisher),
		blacklist: auth.NewInMemoryTokenBlacklist(),
		jwt:       newJWTService(),
	}
	f.service = NewAuthService(f.users, f.jwt, f.blacklist, f.google, f.publisher, zap.NewNop())
	return f
}

func createTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("fan@example.com", "secret1", "Fan")
	require.NoError(t, err)
	user.ClearDomainEvents()
	return user
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected domain error, got %v", err)
	assert.Equal(t, code, domainErr.Code)
}

func TestAuthService_Register_Success(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	f.users.On("ExistsByEmail", ctx, "New@Example.com").Return(false, nil)
	f.users.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

	result, err := f.service.Register(ctx, RegisterInput{Email: "New@Example.com", Password: "secret1", Name: "New"})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "new@example.com", result.User.Email)

	claims, err := f.jwt.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.String(), claims.UserID)

	f.users.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	f.users.On("ExistsByEmail", ctx, "fan@example.com").Return(true, nil)

	result, err := f.service.Register(ctx, RegisterInput{Email: "fan@example.com", Password: "secret1", Name: "Fan"})
	assert.Nil(t, result)
	requireDomainCode(t, err, "ALREADY_EXISTS")
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	f.users.On("ExistsByEmail", ctx, "fan@example.com").Return(false, nil)

	_, err := f.service.Register(ctx, RegisterInput{Email: "fan@example.com", Password: "123", Name: "Fan"})
	requireDomainCode(t, err, "INVALID_PASSWORD")
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	user := createTestUser(t)

	t.Run("valid credentials", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("FindByEmail", ctx, "fan@example.com").Return(user, nil)

		result, err := f.service.Login(ctx, LoginInput{Email: "fan@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("FindByEmail", ctx, "fan@example.com").Return(user, nil)

		_, err := f.service.Login(ctx, LoginInput{Email: "fan@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)

		_, err := f.service.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("repository failure is not masked", func(t *testing.T) {
		f := newAuthFixture()
		boom := errors.New("db down")
		f.users.On("FindByEmail", ctx, "fan@example.com").Return(nil, boom)

		_, err := f.service.Login(ctx, LoginInput{Email: "fan@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestAuthService_GoogleLogin(t *testing.T) {
	ctx := context.Background()
	ident := &auth.GoogleIdentity{GoogleID: "g-1", Email: "fan@example.com", Name: "Fan", Picture: "https://pic"}

	t.Run("existing google account", func(t *testing.T) {
		f := newAuthFixture()
		user := createTestUser(t)
		user.GoogleID = "g-1"
		f.google.On("Verify", ctx, "cred").Return(ident, nil)
		f.users.On("FindByGoogleID", ctx, "g-1").Return(user, nil)

		result, err := f.service.GoogleLogin(ctx, "cred")
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("links account with matching email", func(t *testing.T) {
		f := newAuthFixture()
		user := createTestUser(t)
		f.google.On("Verify", ctx, "cred").Return(ident, nil)
		f.users.On("FindByGoogleID", ctx, "g-1").Return(nil, shared.ErrNotFound)
		f.users.On("FindByEmail", ctx, "fan@example.com").Return(user, nil)
		f.users.On("Update", ctx, user).Return(nil)

		result, err := f.service.GoogleLogin(ctx, "cred")
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, "g-1", user.GoogleID)
		assert.Equal(t, "https://pic", user.Picture)
		assert.True(t, result.User.HasGoogleAccount)
	})

	t.Run("creates new account", func(t *testing.T) {
		f := newAuthFixture()
		f.google.On("Verify", ctx, "cred").Return(ident, nil)
		f.users.On("FindByGoogleID", ctx, "g-1").Return(nil, shared.ErrNotFound)
		f.users.On("FindByEmail", ctx, "fan@example.com").Return(nil, shared.ErrNotFound)
		f.users.On("Create", ctx, mock.MatchedBy(func(u *identity.User) bool {
			return u.GoogleID == "g-1" && u.PasswordHash == ""
		})).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		result, err := f.service.GoogleLogin(ctx, "cred")
		require.NoError(t, err)
		assert.Equal(t, "fan@example.com", result.User.Email)
		f.users.AssertExpectations(t)
	})

	t.Run("rejected credential", func(t *testing.T) {
		f := newAuthFixture()
		f.google.On("Verify", ctx, "bad").Return(nil, auth.ErrInvalidGoogleCredential)

		_, err := f.service.GoogleLogin(ctx, "bad")
		assert.ErrorIs(t, err, ErrInvalidGoogleToken)
	})

	t.Run("not configured", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), newJWTService(), nil, nil, nil, nil)
		_, err := service.GoogleLogin(ctx, "cred")
		assert.ErrorIs(t, err, ErrGoogleNotConfigured)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	user := createTestUser(t)
	user.IsAdmin = true

	pair, err := f.jwt.GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID, Email: user.Email})
	require.NoError(t, err)
	f.users.On("FindByID", ctx, user.ID).Return(user, nil)

	result, err := f.service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)

	claims, err := f.jwt.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin, "admin flag is re-read from the user record")

	_, err = f.service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "garbage"})
	requireDomainCode(t, err, "TOKEN_INVALID")

	_, err = f.service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.AccessToken})
	requireDomainCode(t, err, "TOKEN_INVALID")
}

func TestAuthService_RefreshToken_UserGone(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	user := createTestUser(t)
	pair, err := f.jwt.GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID})
	require.NoError(t, err)
	f.users.On("FindByID", ctx, user.ID).Return(nil, shared.ErrNotFound)

	_, err = f.service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	user := createTestUser(t)

	pair, err := f.jwt.GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID})
	require.NoError(t, err)
	claims, err := f.jwt.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, LogoutInput{
		UserID:   user.ID,
		TokenJTI: claims.ID,
		TokenTTL: claims.GetRemainingTTL(),
	}))

	revoked, err := f.blacklist.IsBlacklisted(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, f.service.Logout(ctx, LogoutInput{UserID: user.ID}), "logout without a token id is a no-op")
}
