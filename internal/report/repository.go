package report

import (
	"context"
	"database/sql"

	"amalkitchen-be/internal/logger"
	"amalkitchen-be/internal/order"

	"go.uber.org/zap"
)

// Repository runs the read-only aggregate queries behind the dashboards.
// Cancelled orders never count toward revenue.
type Repository interface {
	StatusCounts(ctx context.Context, branch string) ([]StatusCount, error)
	RevenueByDay(ctx context.Context, branch string) ([]DayRevenue, error)
	RevenueByBranch(ctx context.Context) ([]BranchRevenue, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) StatusCounts(ctx context.Context, branch string) ([]StatusCount, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "StatusCounts"),
		zap.String("branch", branch),
	)

	query := `SELECT status, COUNT(*) FROM orders`
	args := []any{}
	if branch != "" {
		query += ` WHERE branch = $1`
		args = append(args, branch)
	}
	query += ` GROUP BY status ORDER BY status`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to count orders by status", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var c StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// RevenueByDay buckets the trailing seven days of order totals by
// calendar day.
func (r *repository) RevenueByDay(ctx context.Context, branch string) ([]DayRevenue, error) {
	query := `
		SELECT DATE_TRUNC('day', created_at) AS day, COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= NOW() - INTERVAL '7 days'
		AND status <> $1
	`
	args := []any{string(order.StatusCancelled)}
	if branch != "" {
		query += ` AND branch = $2`
		args = append(args, branch)
	}
	query += ` GROUP BY day ORDER BY day`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to aggregate daily revenue", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var buckets []DayRevenue
	for rows.Next() {
		var b DayRevenue
		if err := rows.Scan(&b.Day, &b.Revenue); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (r *repository) RevenueByBranch(ctx context.Context) ([]BranchRevenue, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT branch, COALESCE(SUM(total), 0)
		FROM orders
		WHERE status <> $1
		GROUP BY branch ORDER BY branch
	`, string(order.StatusCancelled))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to aggregate branch revenue", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var totals []BranchRevenue
	for rows.Next() {
		var b BranchRevenue
		if err := rows.Scan(&b.Branch, &b.Revenue); err != nil {
			return nil, err
		}
		totals = append(totals, b)
	}
	return totals, rows.Err()
}
