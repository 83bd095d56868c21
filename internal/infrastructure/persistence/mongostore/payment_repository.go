package mongostore

import (
	"context"
	"time"

	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PaymentRepository implements finance.PaymentRepository
type PaymentRepository struct {
	coll *mongo.Collection
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{coll: db.Collection(CollectionPayments)}
}

// Create inserts a payment; the unique orderId index rejects duplicates
func (r *PaymentRepository) Create(ctx context.Context, payment *finance.Payment) error {
	return insertOne(ctx, r.coll, paymentFromDomain(payment))
}

func (r *PaymentRepository) Update(ctx context.Context, payment *finance.Payment) error {
	return replaceByID(ctx, r.coll, payment.ID, paymentFromDomain(payment))
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	return findOne[*finance.Payment, *paymentDocument](ctx, r.coll, bson.M{"_id": id}, finance.ErrPaymentNotFound)
}

func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*finance.Payment, error) {
	return findOne[*finance.Payment, *paymentDocument](ctx, r.coll, bson.M{"orderId": orderID}, finance.ErrPaymentNotFound)
}

func (r *PaymentRepository) FindByTransferID(ctx context.Context, transferID string) (*finance.Payment, error) {
	if transferID == "" {
		return nil, finance.ErrPaymentNotFound
	}
	return findOne[*finance.Payment, *paymentDocument](ctx, r.coll, bson.M{"transferId": transferID}, finance.ErrPaymentNotFound)
}

func (r *PaymentRepository) FindStalePending(ctx context.Context, before time.Time, limit int) ([]*finance.Payment, error) {
	filter := bson.M{
		"status":    string(finance.PaymentStatusPending),
		"createdAt": bson.M{"$lt": before},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}).SetLimit(int64(limit))
	return findMany[*finance.Payment, *paymentDocument](ctx, r.coll, filter, opts)
}
