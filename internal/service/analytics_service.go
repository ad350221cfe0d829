package service

import (
	"context"

	"storefront-analytics/internal/model"
	"storefront-analytics/internal/repository"

	"github.com/rs/zerolog"
)

// analyticsService implements AnalyticsService.
type analyticsService struct {
	repo   repository.AnalyticsRepository
	logger zerolog.Logger
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(repo repository.AnalyticsRepository, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		repo:   repo,
		logger: logger.With().Str("service", "analytics").Logger(),
	}
}

func (s *analyticsService) UsersLast30Days(ctx context.Context) ([]model.Row, error) {
	rows, err := s.repo.UsersLast30Days(ctx)
	return s.requireRows("users_last_30_days", rows, err, model.ErrNoRecentUsers)
}

func (s *analyticsService) TopProducts(ctx context.Context) ([]model.Row, error) {
	rows, err := s.repo.TopProducts(ctx)
	return s.requireRows("top_products", rows, err, model.ErrNoProducts)
}

func (s *analyticsService) RevenuePerCategory(ctx context.Context) ([]model.Row, error) {
	rows, err := s.repo.RevenuePerCategory(ctx)
	return s.requireRows("revenue_per_category", rows, err, model.ErrNoRevenue)
}

// RemainingStock does not validate productID; the database decides whether
// it is a valid key.
func (s *analyticsService) RemainingStock(ctx context.Context, productID string) (model.Row, error) {
	rows, err := s.repo.RemainingStock(ctx, productID)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		s.logger.Debug().Str("product_id", productID).Msg("product not found")
		return nil, model.ProductNotFound(productID)
	}

	return rows[0], nil
}

// requireRows turns an empty successful result into notFound.
func (s *analyticsService) requireRows(report string, rows []model.Row, err error, notFound *model.DomainError) ([]model.Row, error) {
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		s.logger.Debug().Str("report", report).Msg("report is empty")
		return nil, notFound
	}

	return rows, nil
}
