package mongostore

import (
	"context"

	"github.com/audiozoom/backend/internal/domain/recording"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// RecordingRepository implements recording.RecordingRepository
type RecordingRepository struct {
	coll *mongo.Collection
}

// NewRecordingRepository creates a new RecordingRepository
func NewRecordingRepository(db *mongo.Database) *RecordingRepository {
	return &RecordingRepository{coll: db.Collection(CollectionRecordings)}
}

func (r *RecordingRepository) Create(ctx context.Context, rec *recording.Recording) error {
	return insertOne(ctx, r.coll, recordingFromDomain(rec))
}

func (r *RecordingRepository) Update(ctx context.Context, rec *recording.Recording) error {
	return replaceByID(ctx, r.coll, rec.ID, recordingFromDomain(rec))
}

func (r *RecordingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *RecordingRepository) FindByID(ctx context.Context, id uuid.UUID) (*recording.Recording, error) {
	return findOne[*recording.Recording, *recordingDocument](ctx, r.coll, bson.M{"_id": id}, shared.ErrNotFound)
}

func (r *RecordingRepository) FindByUser(ctx context.Context, userID uuid.UUID, publicOnly bool) ([]*recording.Recording, error) {
	filter := bson.M{"userId": userID}
	if publicOnly {
		filter["isPublic"] = true
	}
	return findMany[*recording.Recording, *recordingDocument](ctx, r.coll, filter, newestFirst())
}

// TopCreators groups recordings by owner and returns the busiest first
func (r *RecordingRepository) TopCreators(ctx context.Context, limit int) ([]recording.CreatorRecordingCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$userId"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		UserID uuid.UUID `bson:"_id"`
		Count  int64     `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	result := make([]recording.CreatorRecordingCount, len(rows))
	for i, row := range rows {
		result[i] = recording.CreatorRecordingCount{UserID: row.UserID, Count: row.Count}
	}
	return result, nil
}
