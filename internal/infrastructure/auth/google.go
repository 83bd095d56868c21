package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/idtoken"
)

// ErrInvalidGoogleCredential is returned when a Google ID token fails validation
var ErrInvalidGoogleCredential = errors.New("invalid google credential")

// GoogleIdentity is the verified subset of a Google ID token
type GoogleIdentity struct {
	GoogleID      string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// GoogleVerifier validates Google sign-in credentials
type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleIdentity, error)
}

type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// IDTokenVerifier checks ID tokens against Google's signing keys and the
// configured OAuth client id.
type IDTokenVerifier struct {
	clientID string
	validate validateFunc
}

// NewIDTokenVerifier creates a verifier for the given OAuth client id
func NewIDTokenVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{clientID: clientID, validate: idtoken.Validate}
}

// Verify validates the credential and extracts the account identity
func (v *IDTokenVerifier) Verify(ctx context.Context, credential string) (*GoogleIdentity, error) {
	if v.clientID == "" {
		return nil, fmt.Errorf("%w: google client id not configured", ErrInvalidGoogleCredential)
	}
	if strings.TrimSpace(credential) == "" {
		return nil, ErrInvalidGoogleCredential
	}

	payload, err := v.validate(ctx, credential, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoogleCredential, err)
	}
	if payload.Subject == "" {
		return nil, ErrInvalidGoogleCredential
	}

	identity := &GoogleIdentity{
		GoogleID: payload.Subject,
		Email:    claimString(payload.Claims, "email"),
		Name:     claimString(payload.Claims, "name"),
		Picture:  claimString(payload.Claims, "picture"),
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("%w: email claim missing", ErrInvalidGoogleCredential)
	}
	return identity, nil
}

func claimString(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return s
}

var _ GoogleVerifier = (*IDTokenVerifier)(nil)
