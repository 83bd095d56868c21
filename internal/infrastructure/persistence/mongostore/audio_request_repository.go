package mongostore

import (
	"context"
	"time"

	"github.com/audiozoom/backend/internal/domain/audiorequest"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AudioRequestRepository implements audiorequest.AudioRequestRepository
type AudioRequestRepository struct {
	coll *mongo.Collection
}

// NewAudioRequestRepository creates a new AudioRequestRepository
func NewAudioRequestRepository(db *mongo.Database) *AudioRequestRepository {
	return &AudioRequestRepository{coll: db.Collection(CollectionAudioRequests)}
}

func (r *AudioRequestRepository) Create(ctx context.Context, req *audiorequest.AudioRequest) error {
	return insertOne(ctx, r.coll, audioRequestFromDomain(req))
}

func (r *AudioRequestRepository) Update(ctx context.Context, req *audiorequest.AudioRequest) error {
	return replaceByID(ctx, r.coll, req.ID, audioRequestFromDomain(req))
}

func (r *AudioRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*audiorequest.AudioRequest, error) {
	return findOne[*audiorequest.AudioRequest, *audioRequestDocument](ctx, r.coll, bson.M{"_id": id}, shared.ErrNotFound)
}

func (r *AudioRequestRepository) FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]*audiorequest.AudioRequest, error) {
	return findMany[*audiorequest.AudioRequest, *audioRequestDocument](ctx, r.coll, bson.M{"requesterId": requesterID}, newestFirst())
}

func (r *AudioRequestRepository) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*audiorequest.AudioRequest, error) {
	return findMany[*audiorequest.AudioRequest, *audioRequestDocument](ctx, r.coll, bson.M{"creatorId": creatorID}, newestFirst())
}

func (r *AudioRequestRepository) FindPublicCompleted(ctx context.Context, creatorID uuid.UUID, limit int) ([]*audiorequest.AudioRequest, error) {
	filter := bson.M{
		"creatorId": creatorID,
		"status":    string(audiorequest.StatusCompleted),
		"isPublic":  true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "completedDate", Value: -1}}).SetLimit(int64(limit))
	return findMany[*audiorequest.AudioRequest, *audioRequestDocument](ctx, r.coll, filter, opts)
}

func (r *AudioRequestRepository) FindLatestAwaitingPayment(ctx context.Context, requesterID, creatorID, pricingOptionID uuid.UUID) (*audiorequest.AudioRequest, error) {
	filter := bson.M{
		"requesterId":     requesterID,
		"creatorId":       creatorID,
		"pricingOptionId": pricingOptionID,
		"paymentStatus":   string(audiorequest.PaymentStatusPending),
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findOne[*audiorequest.AudioRequest, *audioRequestDocument](ctx, r.coll, filter, shared.ErrNotFound, opts)
}

func (r *AudioRequestRepository) FindOverdue(ctx context.Context, now time.Time) ([]*audiorequest.AudioRequest, error) {
	filter := bson.M{
		"status":               bson.M{"$in": bson.A{string(audiorequest.StatusPending), string(audiorequest.StatusAccepted)}},
		"expectedDeliveryDate": bson.M{"$lt": now},
	}
	opts := options.Find().SetSort(bson.D{{Key: "expectedDeliveryDate", Value: 1}})
	return findMany[*audiorequest.AudioRequest, *audioRequestDocument](ctx, r.coll, filter, opts)
}
