package request

import (
	"context"
	"errors"

	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/request"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRecipientNotFound is returned when the recipient does not exist
var ErrRecipientNotFound = shared.NewDomainError("RECIPIENT_NOT_FOUND", "Recipient not found")

// RequestService handles simple paid requests between users
type RequestService struct {
	requestRepo request.RequestRepository
	userRepo    identity.UserRepository
	logger      *zap.Logger
}

// NewRequestService creates a new RequestService
func NewRequestService(requestRepo request.RequestRepository, userRepo identity.UserRepository, logger *zap.Logger) *RequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{requestRepo: requestRepo, userRepo: userRepo, logger: logger}
}

// Create sends a pending, unpaid request to an existing user
func (s *RequestService) Create(ctx context.Context, input CreateInput) (*RequestResult, error) {
	req, err := request.NewRequest(input.SenderID, input.RecipientID, input.Details, input.Price)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, input.RecipientID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		s.logger.Error("Failed to save request", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Request created",
		zap.String("request_id", req.ID.String()),
		zap.String("recipient_id", req.RecipientID.String()),
		zap.String("price", req.Price.StringFixed(2)))

	result := ToRequestResult(req)
	return &result, nil
}

// List returns requests the user sent or received, newest first
func (s *RequestService) List(ctx context.Context, userID uuid.UUID) ([]RequestResult, error) {
	reqs, err := s.requestRepo.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(reqs)*2)
	for _, r := range reqs {
		ids = append(ids, r.SenderID, r.RecipientID)
	}
	summaries, err := identity.LoadSummaries(ctx, s.userRepo, ids)
	if err != nil {
		return nil, err
	}

	results := make([]RequestResult, len(reqs))
	for i, r := range reqs {
		results[i] = ToRequestResult(r)
		if sum, ok := summaries[r.SenderID]; ok {
			results[i].Sender = &sum
		}
		if sum, ok := summaries[r.RecipientID]; ok {
			results[i].Recipient = &sum
		}
	}
	return results, nil
}
