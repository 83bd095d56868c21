package mongostore

import (
	"context"
	"fmt"

	"github.com/audiozoom/backend/internal/domain/finance"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// RevenueReporter implements finance.RevenueReporter with aggregation pipelines
type RevenueReporter struct {
	coll *mongo.Collection
}

// NewRevenueReporter creates a new RevenueReporter
func NewRevenueReporter(db *mongo.Database) *RevenueReporter {
	return &RevenueReporter{coll: db.Collection(CollectionPayments)}
}

func (r *RevenueReporter) Totals(ctx context.Context, period finance.RevenuePeriod) (finance.RevenueTotals, error) {
	pipeline := mongo.Pipeline{
		completedMatch(period),
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalAmount", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
			{Key: "totalPlatformFee", Value: bson.D{{Key: "$sum", Value: "$platformFee"}}},
			{Key: "totalCreatorAmount", Value: bson.D{{Key: "$sum", Value: "$creatorAmount"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	var rows []struct {
		TotalAmount        int64 `bson:"totalAmount"`
		TotalPlatformFee   int64 `bson:"totalPlatformFee"`
		TotalCreatorAmount int64 `bson:"totalCreatorAmount"`
		Count              int64 `bson:"count"`
	}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return finance.RevenueTotals{}, fmt.Errorf("revenue totals: %w", err)
	}
	if len(rows) == 0 {
		return finance.RevenueTotals{}, nil
	}
	return finance.RevenueTotals(rows[0]), nil
}

func (r *RevenueReporter) ByMethod(ctx context.Context, period finance.RevenuePeriod) ([]finance.MethodRevenue, error) {
	pipeline := mongo.Pipeline{
		completedMatch(period),
		groupRevenue("$paymentMethod"),
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	var rows []groupedRevenue
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("revenue by method: %w", err)
	}
	result := make([]finance.MethodRevenue, len(rows))
	for i, row := range rows {
		result[i] = finance.MethodRevenue{
			Method:           finance.PaymentMethod(row.Key),
			TotalAmount:      row.TotalAmount,
			TotalPlatformFee: row.TotalPlatformFee,
			Count:            row.Count,
		}
	}
	return result, nil
}

func (r *RevenueReporter) Daily(ctx context.Context, period finance.RevenuePeriod) ([]finance.DailyRevenue, error) {
	pipeline := mongo.Pipeline{
		completedMatch(period),
		groupRevenue(bson.D{{Key: "$dateToString", Value: bson.D{
			{Key: "format", Value: "%Y-%m-%d"},
			{Key: "date", Value: "$createdAt"},
		}}}),
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	var rows []groupedRevenue
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("daily revenue: %w", err)
	}
	result := make([]finance.DailyRevenue, len(rows))
	for i, row := range rows {
		result[i] = finance.DailyRevenue{
			Date:             row.Key,
			TotalAmount:      row.TotalAmount,
			TotalPlatformFee: row.TotalPlatformFee,
			Count:            row.Count,
		}
	}
	return result, nil
}

type groupedRevenue struct {
	Key              string `bson:"_id"`
	TotalAmount      int64  `bson:"totalAmount"`
	TotalPlatformFee int64  `bson:"totalPlatformFee"`
	Count            int64  `bson:"count"`
}

func groupRevenue(key any) bson.D {
	return bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: key},
		{Key: "totalAmount", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		{Key: "totalPlatformFee", Value: bson.D{{Key: "$sum", Value: "$platformFee"}}},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
	}}}
}

func completedMatch(period finance.RevenuePeriod) bson.D {
	match := bson.D{{Key: "status", Value: string(finance.PaymentStatusCompleted)}}
	created := bson.D{}
	if !period.Start.IsZero() {
		created = append(created, bson.E{Key: "$gte", Value: period.Start})
	}
	if !period.End.IsZero() {
		created = append(created, bson.E{Key: "$lte", Value: period.End})
	}
	if len(created) > 0 {
		match = append(match, bson.E{Key: "createdAt", Value: created})
	}
	return bson.D{{Key: "$match", Value: match}}
}

func (r *RevenueReporter) aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}
