package mongostore

import (
	"context"

	"github.com/audiozoom/backend/internal/domain/request"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// RequestRepository implements request.RequestRepository
type RequestRepository struct {
	coll *mongo.Collection
}

// NewRequestRepository creates a new RequestRepository
func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{coll: db.Collection(CollectionRequests)}
}

func (r *RequestRepository) Create(ctx context.Context, req *request.Request) error {
	return insertOne(ctx, r.coll, requestFromDomain(req))
}

func (r *RequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	return findOne[*request.Request, *requestDocument](ctx, r.coll, bson.M{"_id": id}, shared.ErrNotFound)
}

func (r *RequestRepository) FindByParticipant(ctx context.Context, userID uuid.UUID) ([]*request.Request, error) {
	filter := bson.M{"$or": bson.A{bson.M{"senderId": userID}, bson.M{"recipientId": userID}}}
	return findMany[*request.Request, *requestDocument](ctx, r.coll, filter, newestFirst())
}
