package messaging

import (
	"context"
	"errors"

	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/messaging"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRecipientNotFound is returned when messaging a user that does not exist
var ErrRecipientNotFound = shared.NewDomainError("RECIPIENT_NOT_FOUND", "Recipient not found")

// MessageService handles direct messages between users
type MessageService struct {
	messageRepo messaging.MessageRepository
	userRepo    identity.UserRepository
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messageRepo messaging.MessageRepository,
	userRepo identity.UserRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// Inbox returns messages received by the user, newest first, with sender summaries
func (s *MessageService) Inbox(ctx context.Context, userID uuid.UUID) ([]MessageResult, error) {
	msgs, err := s.messageRepo.FindInbox(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withSummaries(ctx, msgs, func(m *messaging.Message) uuid.UUID { return m.SenderID },
		func(r *MessageResult, sum *identity.Summary) { r.Sender = sum })
}

// Sent returns messages sent by the user, newest first, with recipient summaries
func (s *MessageService) Sent(ctx context.Context, userID uuid.UUID) ([]MessageResult, error) {
	msgs, err := s.messageRepo.FindSent(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withSummaries(ctx, msgs, func(m *messaging.Message) uuid.UUID { return m.RecipientID },
		func(r *MessageResult, sum *identity.Summary) { r.Recipient = sum })
}

func (s *MessageService) withSummaries(
	ctx context.Context,
	msgs []*messaging.Message,
	party func(*messaging.Message) uuid.UUID,
	set func(*MessageResult, *identity.Summary),
) ([]MessageResult, error) {
	ids := make([]uuid.UUID, len(msgs))
	for i, m := range msgs {
		ids[i] = party(m)
	}
	summaries, err := identity.LoadSummaries(ctx, s.userRepo, ids)
	if err != nil {
		return nil, err
	}
	results := make([]MessageResult, len(msgs))
	for i, m := range msgs {
		results[i] = ToMessageResult(m)
		if sum, ok := summaries[party(m)]; ok {
			set(&results[i], &sum)
		}
	}
	return results, nil
}

// UnreadCount returns how many received messages are unread
func (s *MessageService) UnreadCount(ctx context.Context, userID uuid.UUID) (*UnreadCountResult, error) {
	n, err := s.messageRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UnreadCountResult{Count: n}, nil
}

// MarkRead marks one message read; only its recipient may do so
func (s *MessageService) MarkRead(ctx context.Context, userID, messageID uuid.UUID) (*MessageResult, error) {
	msg, err := s.load(ctx, messageID)
	if err != nil {
		return nil, err
	}
	wasRead := msg.Read
	if err := msg.MarkRead(userID); err != nil {
		return nil, err
	}
	if !wasRead {
		if err := s.messageRepo.Update(ctx, msg); err != nil {
			return nil, err
		}
	}
	result := ToMessageResult(msg)
	return &result, nil
}

// MarkAllRead marks every received message read
func (s *MessageService) MarkAllRead(ctx context.Context, userID uuid.UUID) (*MarkAllReadResult, error) {
	n, err := s.messageRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &MarkAllReadResult{Updated: n}, nil
}

// Delete removes a message for good; sender or recipient only
func (s *MessageService) Delete(ctx context.Context, userID, messageID uuid.UUID) error {
	msg, err := s.load(ctx, messageID)
	if err != nil {
		return err
	}
	if !msg.CanDelete(userID) {
		return messaging.ErrNotParticipant
	}
	if err := s.messageRepo.Delete(ctx, msg.ID); err != nil {
		return err
	}
	s.logger.Debug("Message deleted", zap.String("message_id", msg.ID.String()), zap.String("user_id", userID.String()))
	return nil
}

// Send delivers a GENERAL message to an existing user
func (s *MessageService) Send(ctx context.Context, input SendInput) (*MessageResult, error) {
	msg, err := messaging.NewMessage(input.SenderID, input.RecipientID, input.Content)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, input.RecipientID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		s.logger.Error("Failed to save message", zap.Error(err))
		return nil, err
	}

	events := msg.GetDomainEvents()
	msg.ClearDomainEvents()
	if s.publisher != nil && len(events) > 0 {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("Failed to publish message events", zap.String("message_id", msg.ID.String()), zap.Error(err))
		}
	}

	result := ToMessageResult(msg)
	if sender, err := s.userRepo.FindByID(ctx, input.SenderID); err == nil {
		sum := sender.Summary()
		result.Sender = &sum
	}
	return &result, nil
}

func (s *MessageService) load(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	msg, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, messaging.ErrMessageNotFound
		}
		return nil, err
	}
	return msg, nil
}
