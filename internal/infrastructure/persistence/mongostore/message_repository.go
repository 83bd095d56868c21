package mongostore

import (
	"context"
	"time"

	"github.com/audiozoom/backend/internal/domain/messaging"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MessageRepository implements messaging.MessageRepository
type MessageRepository struct {
	coll *mongo.Collection
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{coll: db.Collection(CollectionMessages)}
}

func (r *MessageRepository) Create(ctx context.Context, msg *messaging.Message) error {
	return insertOne(ctx, r.coll, messageFromDomain(msg))
}

func (r *MessageRepository) Update(ctx context.Context, msg *messaging.Message) error {
	return replaceByID(ctx, r.coll, msg.ID, messageFromDomain(msg))
}

func (r *MessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *MessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	return findOne[*messaging.Message, *messageDocument](ctx, r.coll, bson.M{"_id": id}, shared.ErrNotFound)
}

func (r *MessageRepository) FindInbox(ctx context.Context, recipientID uuid.UUID) ([]*messaging.Message, error) {
	return findMany[*messaging.Message, *messageDocument](ctx, r.coll, bson.M{"recipientId": recipientID}, newestFirst())
}

func (r *MessageRepository) FindSent(ctx context.Context, senderID uuid.UUID) ([]*messaging.Message, error) {
	return findMany[*messaging.Message, *messageDocument](ctx, r.coll, bson.M{"senderId": senderID}, newestFirst())
}

func (r *MessageRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"recipientId": recipientID, "read": false})
}

func (r *MessageRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	result, err := r.coll.UpdateMany(ctx,
		bson.M{"recipientId": recipientID, "read": false},
		bson.M{
			"$set": bson.M{"read": true, "updatedAt": time.Now()},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
