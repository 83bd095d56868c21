package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/audiozoom/backend/internal/infrastructure/config"
	"github.com/jmoiron/sqlx"
)

// SQLRevenueReporter aggregates completed payments with hand-written SQL.
// It shares the connection pool of the GORM database.
type SQLRevenueReporter struct {
	db     *sqlx.DB
	driver string
}

// NewSQLRevenueReporter creates a reporter over db.
// driver selects the date bucketing dialect (config.DriverPostgres or config.DriverSQLite).
func NewSQLRevenueReporter(db *sqlx.DB, driver string) *SQLRevenueReporter {
	return &SQLRevenueReporter{db: db, driver: driver}
}

// SQLX wraps the underlying connection pool for sqlx queries
func (d *Database) SQLX() (*sqlx.DB, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	driverName := "postgres"
	if d.Driver == config.DriverSQLite {
		driverName = "sqlite3"
	}
	return sqlx.NewDb(sqlDB, driverName), nil
}

// Totals sums amount, fee and creator share of completed payments
func (r *SQLRevenueReporter) Totals(ctx context.Context, period finance.RevenuePeriod) (finance.RevenueTotals, error) {
	where, args := completedWhere(period)
	query := `SELECT
		CAST(COALESCE(SUM(amount), 0) AS BIGINT) AS total_amount,
		CAST(COALESCE(SUM(platform_fee), 0) AS BIGINT) AS total_platform_fee,
		CAST(COALESCE(SUM(creator_amount), 0) AS BIGINT) AS total_creator_amount,
		COUNT(*) AS count
		FROM payments WHERE ` + where

	var totals finance.RevenueTotals
	if err := r.db.GetContext(ctx, &totals, r.db.Rebind(query), args...); err != nil {
		return finance.RevenueTotals{}, fmt.Errorf("revenue totals: %w", err)
	}
	return totals, nil
}

// ByMethod groups completed payments by provider
func (r *SQLRevenueReporter) ByMethod(ctx context.Context, period finance.RevenuePeriod) ([]finance.MethodRevenue, error) {
	where, args := completedWhere(period)
	query := `SELECT
		payment_method AS method,
		CAST(COALESCE(SUM(amount), 0) AS BIGINT) AS total_amount,
		CAST(COALESCE(SUM(platform_fee), 0) AS BIGINT) AS total_platform_fee,
		COUNT(*) AS count
		FROM payments WHERE ` + where + `
		GROUP BY payment_method
		ORDER BY payment_method`

	rows := []finance.MethodRevenue{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("revenue by method: %w", err)
	}
	return rows, nil
}

// Daily groups completed payments by UTC creation day, ascending
func (r *SQLRevenueReporter) Daily(ctx context.Context, period finance.RevenuePeriod) ([]finance.DailyRevenue, error) {
	where, args := completedWhere(period)
	day := r.dayExpr()
	query := `SELECT
		` + day + ` AS day,
		CAST(COALESCE(SUM(amount), 0) AS BIGINT) AS total_amount,
		CAST(COALESCE(SUM(platform_fee), 0) AS BIGINT) AS total_platform_fee,
		COUNT(*) AS count
		FROM payments WHERE ` + where + `
		GROUP BY ` + day + `
		ORDER BY day ASC`

	rows := []finance.DailyRevenue{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("daily revenue: %w", err)
	}
	return rows, nil
}

func (r *SQLRevenueReporter) dayExpr() string {
	if r.driver == config.DriverSQLite {
		// sqlite stores timestamps as text, written in UTC
		return "substr(created_at, 1, 10)"
	}
	return "to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
}

func completedWhere(period finance.RevenuePeriod) (string, []any) {
	clauses := []string{"status = ?"}
	args := []any{string(finance.PaymentStatusCompleted)}
	if !period.Start.IsZero() {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, period.Start.UTC())
	}
	if !period.End.IsZero() {
		clauses = append(clauses, "created_at <= ?")
		args = append(args, period.End.UTC())
	}
	return strings.Join(clauses, " AND "), args
}
