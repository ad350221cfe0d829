package repository

import (
	"context"

	"storefront-analytics/internal/model"
)

// AnalyticsRepository defines the read-only reporting queries.
// Every method returns *QueryError on failure and an empty slice when the
// report has no rows.
type AnalyticsRepository interface {
	// UsersLast30Days returns distinct users (userid, name, email) with at
	// least one transaction dated after CURRENT_DATE - 30 days.
	UsersLast30Days(ctx context.Context) ([]model.Row, error)

	// TopProducts returns the three products (name, purchase_count) with the
	// most transaction detail rows.
	TopProducts(ctx context.Context) ([]model.Row, error)

	// RevenuePerCategory returns price × quantity summed per category
	// (category, total_revenue).
	RevenuePerCategory(ctx context.Context) ([]model.Row, error)

	// RemainingStock returns stock minus all purchased quantity
	// (remaining_stock) for one product, or no rows if it does not exist.
	RemainingStock(ctx context.Context, productID string) ([]model.Row, error)
}
