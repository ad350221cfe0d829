package service

import (
	"context"

	"storefront-analytics/internal/model"
)

// AnalyticsService exposes the reports served by the API.
// An empty report is returned as a not-found *model.DomainError; query
// failures are passed through unchanged.
type AnalyticsService interface {
	// UsersLast30Days lists users with a purchase in the last 30 days.
	UsersLast30Days(ctx context.Context) ([]model.Row, error)

	// TopProducts lists the three most frequently purchased products.
	TopProducts(ctx context.Context) ([]model.Row, error)

	// RevenuePerCategory lists total revenue per product category.
	RevenuePerCategory(ctx context.Context) ([]model.Row, error)

	// RemainingStock returns the remaining stock row of one product.
	RemainingStock(ctx context.Context, productID string) (model.Row, error)
}
