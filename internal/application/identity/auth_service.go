package identity

import (
	"context"
	"errors"

	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/audiozoom/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authentication errors
var (
	ErrInvalidCredentials   = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials")
	ErrEmailTaken           = shared.NewDomainError("ALREADY_EXISTS", "User already exists")
	ErrGoogleNotConfigured  = shared.NewDomainError("NOT_CONFIGURED", "Google sign-in is not configured")
	ErrInvalidGoogleToken   = shared.NewDomainError("INVALID_GOOGLE_CREDENTIAL", "Invalid Google credential")
	ErrUserNotFound         = shared.NewDomainError("USER_NOT_FOUND", "User not found")
	errTokenGenerationError = shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
)

// AuthService handles registration, sign-in and token lifecycle
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	google     auth.GoogleVerifier
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service.
// google may be nil when Google sign-in is not configured.
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	google auth.GoogleVerifier,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		google:     google,
		publisher:  publisher,
		logger:     logger,
	}
}

// Register creates an account with email and password and signs it in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email availability", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	user, err := identity.NewUser(input.Email, input.Password, input.Name)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, err
	}
	publishEvents(ctx, s.publisher, s.logger, &user.BaseAggregateRoot)

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return s.issueTokens(user)
}

// Login authenticates a user with email and password
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return s.issueTokens(user)
}

// GoogleLogin signs in with a Google ID token. The account is found by Google
// id, then by email (linking the Google identity), and created otherwise.
func (s *AuthService) GoogleLogin(ctx context.Context, credential string) (*AuthResult, error) {
	if s.google == nil {
		return nil, ErrGoogleNotConfigured
	}

	ident, err := s.google.Verify(ctx, credential)
	if err != nil {
		s.logger.Warn("Google credential rejected", zap.Error(err))
		return nil, ErrInvalidGoogleToken
	}

	user, err := s.userRepo.FindByGoogleID(ctx, ident.GoogleID)
	switch {
	case err == nil:
	case errors.Is(err, shared.ErrNotFound):
		user, err = s.linkOrCreateGoogleUser(ctx, ident)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.logger.Info("User signed in with Google", zap.String("user_id", user.ID.String()))
	return s.issueTokens(user)
}

func (s *AuthService) linkOrCreateGoogleUser(ctx context.Context, ident *auth.GoogleIdentity) (*identity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, ident.Email)
	if err == nil {
		user.LinkGoogleAccount(ident.GoogleID, ident.Picture)
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("Linked Google account", zap.String("user_id", user.ID.String()))
		return user, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err = identity.NewGoogleUser(ident.Email, ident.Name, ident.GoogleID, ident.Picture)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.publisher, s.logger, &user.BaseAggregateRoot)
	return user, nil
}

// RefreshToken exchanges a refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*AuthResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, tokenError(err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	pair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, user.Email, user.IsAdmin)
	if err != nil {
		return nil, tokenError(err)
	}
	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserProfile(user),
	}, nil
}

// Logout revokes the access token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	s.logger.Info("User logout", zap.String("user_id", input.UserID.String()))

	if input.TokenJTI == "" || input.TokenTTL <= 0 || s.blacklist == nil {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
		s.logger.Error("Failed to revoke token", zap.Error(err))
		return err
	}
	return nil
}

func (s *AuthService) issueTokens(user *identity.User) (*AuthResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, errTokenGenerationError
	}
	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserProfile(user),
	}, nil
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
}

// publishEvents hands the aggregate's pending events to the publisher.
// Failures are logged; the state change is already persisted.
func publishEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, root *shared.BaseAggregateRoot) {
	events := root.GetDomainEvents()
	root.ClearDomainEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("Failed to publish domain events", zap.Int("count", len(events)), zap.Error(err))
	}
}
