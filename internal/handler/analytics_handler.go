package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"storefront-analytics/internal/model"
	"storefront-analytics/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductIDParam is the route parameter holding the product ID.
const ProductIDParam = "productId"

// AnalyticsHandler handles the reporting endpoints.
type AnalyticsHandler struct {
	service      service.AnalyticsService
	exposeErrors bool
	logger       zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics handler. When exposeErrors is
// false, 500 responses omit the underlying error message.
func NewAnalyticsHandler(service service.AnalyticsService, exposeErrors bool, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:      service,
		exposeErrors: exposeErrors,
		logger:       logger.With().Str("handler", "analytics").Logger(),
	}
}

// UsersLast30Days handles GET /api/users-last-30-days.
func (h *AnalyticsHandler) UsersLast30Days(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.UsersLast30Days(r.Context())
	if err != nil {
		h.fail(w, r, "users", err)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// TopProducts handles GET /api/top-products.
func (h *AnalyticsHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.TopProducts(r.Context())
	if err != nil {
		h.fail(w, r, "top products", err)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// RevenuePerCategory handles GET /api/revenue-per-category.
func (h *AnalyticsHandler) RevenuePerCategory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.RevenuePerCategory(r.Context())
	if err != nil {
		h.fail(w, r, "revenue data", err)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// RemainingStock handles GET /api/remaining-stock/{productId}. The ID is
// decoded exactly once and handed to the query as-is.
func (h *AnalyticsHandler) RemainingStock(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, ProductIDParam)
	if routedOnRawPath(r) {
		if unescaped, err := url.PathUnescape(productID); err == nil {
			productID = unescaped
		}
	}

	row, err := h.service.RemainingStock(r.Context(), productID)
	if err != nil {
		h.fail(w, r, "remaining stock", err)
		return
	}

	writeJSON(w, http.StatusOK, row)
}

// routedOnRawPath reports whether chi matched the request against the
// still-escaped RawPath. Otherwise URL params come from the decoded Path.
// Trailing-slash requests are rerouted on the decoded Path by StripSlashes.
func routedOnRawPath(r *http.Request) bool {
	raw := r.URL.RawPath
	return raw != "" && !strings.HasSuffix(raw, "/")
}

// fail maps a service error to 404 (empty report) or 500 (anything else).
func (h *AnalyticsHandler) fail(w http.ResponseWriter, r *http.Request, what string, err error) {
	var de *model.DomainError
	if errors.As(err, &de) && de.Code == model.ErrCodeNotFound {
		WriteMessage(w, http.StatusNotFound, de.Message)
		return
	}

	logger := h.logger.With().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("fetching", what).
		Logger()
	writeServerError(w, err, h.exposeErrors, logger)
}
