package repository

import (
	"context"

	"storefront-analytics/internal/model"

	"github.com/rs/zerolog"
)

const (
	queryUsersLast30Days = `
		SELECT DISTINCT u.userid, u.name, u.email
		FROM Users u
		JOIN Transactions t ON u.userid = t.userid
		WHERE t.date > CURRENT_DATE - INTERVAL '30 days'
	`

	// Counts detail rows, not quantities. Ties beyond the count keep the
	// order the aggregation produces.
	queryTopProducts = `
		SELECT p.name, COUNT(td.productid) AS purchase_count
		FROM TransactionDetails td
		JOIN Products p ON td.productid = p.productid
		GROUP BY p.name
		ORDER BY purchase_count DESC
		LIMIT 3
	`

	queryRevenuePerCategory = `
		SELECT p.category, SUM(p.price * td.quantity) AS total_revenue
		FROM TransactionDetails td
		JOIN Products p ON td.productid = p.productid
		GROUP BY p.category
	`

	// The LEFT JOIN keeps products with no purchases (remaining = stock);
	// GROUP BY makes an unknown product yield no row at all.
	queryRemainingStock = `
		SELECT p.stock - COALESCE(SUM(td.quantity), 0) AS remaining_stock
		FROM Products p
		LEFT JOIN TransactionDetails td ON p.productid = td.productid
		WHERE p.productid = $1
		GROUP BY p.productid
	`
)

// analyticsRepository implements AnalyticsRepository on an Executor.
type analyticsRepository struct {
	exec   *Executor
	logger zerolog.Logger
}

// NewAnalyticsRepository creates a PostgreSQL-backed analytics repository.
func NewAnalyticsRepository(exec *Executor, logger zerolog.Logger) AnalyticsRepository {
	return &analyticsRepository{
		exec:   exec,
		logger: logger.With().Str("repository", "analytics").Logger(),
	}
}

func (r *analyticsRepository) UsersLast30Days(ctx context.Context) ([]model.Row, error) {
	return r.run(ctx, "users_last_30_days", queryUsersLast30Days)
}

func (r *analyticsRepository) TopProducts(ctx context.Context) ([]model.Row, error) {
	return r.run(ctx, "top_products", queryTopProducts)
}

func (r *analyticsRepository) RevenuePerCategory(ctx context.Context) ([]model.Row, error) {
	return r.run(ctx, "revenue_per_category", queryRevenuePerCategory)
}

// RemainingStock binds productID as an untyped text parameter; PostgreSQL
// coerces it to the column type, so a non-numeric ID fails in the database.
func (r *analyticsRepository) RemainingStock(ctx context.Context, productID string) ([]model.Row, error) {
	return r.run(ctx, "remaining_stock", queryRemainingStock, productID)
}

func (r *analyticsRepository) run(ctx context.Context, report, query string, args ...any) ([]model.Row, error) {
	rows, err := r.exec.Execute(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	r.logger.Debug().
		Str("report", report).
		Int("rows", len(rows)).
		Msg("report query executed")

	return rows, nil
}
