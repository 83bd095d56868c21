package audiorequest

import (
	"context"
	"fmt"

	"github.com/audiozoom/backend/internal/domain/audiorequest"
	"github.com/audiozoom/backend/internal/domain/messaging"
	"github.com/audiozoom/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MessageNotifier turns audio request events into inbox messages: the
// creator hears about new requests and the requester about status changes.
// Guest requests produce no messages.
type MessageNotifier struct {
	messageRepo messaging.MessageRepository
	processed   shared.IdempotencyStore
	logger      *zap.Logger
}

// NewMessageNotifier creates a notifier. processed may be nil; when set,
// redelivered events are skipped.
func NewMessageNotifier(messageRepo messaging.MessageRepository, processed shared.IdempotencyStore, logger *zap.Logger) *MessageNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageNotifier{messageRepo: messageRepo, processed: processed, logger: logger}
}

// EventTypes implements shared.EventHandler
func (n *MessageNotifier) EventTypes() []string {
	return []string{
		audiorequest.EventTypeAudioRequestCreated,
		audiorequest.EventTypeAudioRequestStatusChanged,
	}
}

// Handle implements shared.EventHandler
func (n *MessageNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	msg, err := n.messageFor(event)
	if err != nil || msg == nil {
		return err
	}

	key := "notify:" + event.EventID().String()
	if n.processed != nil {
		done, err := n.processed.IsProcessed(ctx, key)
		if err != nil {
			n.logger.Warn("Idempotency check failed", zap.Error(err))
		} else if done {
			return nil
		}
	}

	if err := n.messageRepo.Create(ctx, msg); err != nil {
		return fmt.Errorf("notify %s: %w", event.EventType(), err)
	}
	if n.processed != nil {
		if _, err := n.processed.MarkProcessed(ctx, key, shared.DefaultIdempotencyTTL); err != nil {
			n.logger.Warn("Failed to record notification", zap.Error(err))
		}
	}
	n.logger.Debug("Audio request notification sent",
		zap.String("event_type", event.EventType()),
		zap.String("request_id", event.AggregateID().String()))
	return nil
}

func (n *MessageNotifier) messageFor(event shared.DomainEvent) (*messaging.Message, error) {
	switch e := event.(type) {
	case *audiorequest.AudioRequestCreatedEvent:
		if e.RequesterID == nil {
			return nil, nil
		}
		content := fmt.Sprintf("New audio request: %s\n\n%s", e.Title, e.RequestDetails)
		return messaging.NewAudioRequestMessage(*e.RequesterID, e.CreatorID, content, e.Price)
	case *audiorequest.AudioRequestStatusChangedEvent:
		if e.RequesterID == nil {
			return nil, nil
		}
		content := fmt.Sprintf("Your audio request %q is now %s", e.Title, e.NewStatus)
		return messaging.NewMessage(e.CreatorID, *e.RequesterID, content)
	}
	return nil, nil
}
