package mongostore

import (
	"context"
	"regexp"
	"strings"

	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository implements identity.UserRepository on the users collection
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(CollectionUsers)}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *identity.User) error {
	return insertOne(ctx, r.coll, userFromDomain(user))
}

// Update updates an existing user
func (r *UserRepository) Update(ctx context.Context, user *identity.User) error {
	return replaceByID(ctx, r.coll, user.ID, userFromDomain(user))
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return findOne[*identity.User, *userDocument](ctx, r.coll, bson.M{"_id": id}, shared.ErrNotFound)
}

// FindByIDs finds users by IDs
func (r *UserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.User, error) {
	if len(ids) == 0 {
		return []*identity.User{}, nil
	}
	return findMany[*identity.User, *userDocument](ctx, r.coll, bson.M{"_id": bson.M{"$in": ids}})
}

// FindByEmail finds a user by email. Emails are stored lowercased.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	if email == "" {
		return nil, shared.ErrNotFound
	}
	return findOne[*identity.User, *userDocument](ctx, r.coll, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}, shared.ErrNotFound)
}

// FindByGoogleID finds a user by linked Google account id
func (r *UserRepository) FindByGoogleID(ctx context.Context, googleID string) (*identity.User, error) {
	if googleID == "" {
		return nil, shared.ErrNotFound
	}
	return findOne[*identity.User, *userDocument](ctx, r.coll, bson.M{"googleId": googleID}, shared.ErrNotFound)
}

// FindByDisplayName finds a user by public display name
func (r *UserRepository) FindByDisplayName(ctx context.Context, displayName string) (*identity.User, error) {
	if displayName == "" {
		return nil, shared.ErrNotFound
	}
	return findOne[*identity.User, *userDocument](ctx, r.coll, bson.M{"displayName": displayName}, shared.ErrNotFound)
}

// Search matches name or display name case-insensitively
func (r *UserRepository) Search(ctx context.Context, query string, limit int) ([]*identity.User, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(query)), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"displayName": pattern},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}}).SetLimit(int64(limit))
	return findMany[*identity.User, *userDocument](ctx, r.coll, filter, opts)
}

// ExistsByEmail checks if an email already exists
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	count, err := r.coll.CountDocuments(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
