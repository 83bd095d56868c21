package handler

import (
	"time"

	appidentity "github.com/audiozoom/backend/internal/application/identity"
	"github.com/google/uuid"
)

// RegisterRequest is the email sign-up payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=200" example:"fan@example.com"`
	Password string `json:"password" binding:"required,min=6,max=72" example:"secret1"`
	Name     string `json:"name" binding:"required,max=200" example:"Jane Doe"`
}

// LoginRequest is the email sign-in payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"fan@example.com"`
	Password string `json:"password" binding:"required" example:"secret1"`
}

// GoogleLoginRequest carries a Google ID token from the sign-in button
type GoogleLoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// RefreshTokenRequest carries a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse is returned by every sign-in flow
type AuthResponse struct {
	Token                 string                   `json:"token"`
	RefreshToken          string                   `json:"refreshToken"`
	TokenType             string                   `json:"tokenType"`
	ExpiresAt             time.Time                `json:"expiresAt"`
	RefreshTokenExpiresAt time.Time                `json:"refreshTokenExpiresAt"`
	UserID                uuid.UUID                `json:"userId"`
	User                  *appidentity.UserProfile `json:"user,omitempty"`
}

// LogoutResponse confirms a logout
type LogoutResponse struct {
	Message string `json:"message" example:"Logged out"`
}

func toAuthResponse(r *appidentity.AuthResult) AuthResponse {
	resp := AuthResponse{
		Token:                 r.AccessToken,
		RefreshToken:          r.RefreshToken,
		TokenType:             r.TokenType,
		ExpiresAt:             r.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: r.RefreshTokenExpiresAt,
		User:                  r.User,
	}
	if r.User != nil {
		resp.UserID = r.User.ID
	}
	return resp
}
