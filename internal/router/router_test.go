package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-analytics/internal/handler"
	"storefront-analytics/internal/middleware"
	"storefront-analytics/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAnalyticsService is a mock implementation of AnalyticsService.
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) list(args mock.Arguments) ([]model.Row, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Row), args.Error(1)
}

func (m *MockAnalyticsService) UsersLast30Days(ctx context.Context) ([]model.Row, error) {
	return m.list(m.Called(ctx))
}

func (m *MockAnalyticsService) TopProducts(ctx context.Context) ([]model.Row, error) {
	return m.list(m.Called(ctx))
}

func (m *MockAnalyticsService) RevenuePerCategory(ctx context.Context) ([]model.Row, error) {
	return m.list(m.Called(ctx))
}

func (m *MockAnalyticsService) RemainingStock(ctx context.Context, productID string) (model.Row, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Row), args.Error(1)
}

func newTestRouter(svc *MockAnalyticsService) http.Handler {
	logger := zerolog.Nop()
	return New(handler.NewAnalyticsHandler(svc, true, logger), logger)
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		method string
		args   []interface{}
		result interface{}
	}{
		{name: "users", path: "/api/users-last-30-days", method: "UsersLast30Days", args: []interface{}{mock.Anything}, result: []model.Row{{"userid": 1}}},
		{name: "top products", path: "/api/top-products", method: "TopProducts", args: []interface{}{mock.Anything}, result: []model.Row{{"name": "P1"}}},
		{name: "revenue", path: "/api/revenue-per-category", method: "RevenuePerCategory", args: []interface{}{mock.Anything}, result: []model.Row{{"category": "Books"}}},
		{name: "remaining stock", path: "/api/remaining-stock/42", method: "RemainingStock", args: []interface{}{mock.Anything, "42"}, result: model.Row{"remaining_stock": 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAnalyticsService)
			svc.On(tt.method, tt.args...).Return(tt.result, nil)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			newTestRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
			svc.AssertExpectations(t)
		})
	}
}

func TestRouter_Health(t *testing.T) {
	svc := new(MockAnalyticsService)

	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
	svc.AssertNotCalled(t, "TopProducts", mock.Anything)
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Unknown route",
			method:         http.MethodGet,
			path:           "/api/unknown",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"message":"Route not found"}`,
		},
		{
			name:           "Missing product ID",
			method:         http.MethodGet,
			path:           "/api/remaining-stock/",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"message":"Route not found"}`,
		},
		{
			name:           "Write method on a read-only route",
			method:         http.MethodPost,
			path:           "/api/top-products",
			expectedStatus: http.StatusMethodNotAllowed,
			expectedBody:   `{"message":"Method not allowed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAnalyticsService)

			w := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestRouter_CORS(t *testing.T) {
	t.Run("Simple request from any origin", func(t *testing.T) {
		svc := new(MockAnalyticsService)
		svc.On("TopProducts", mock.Anything).Return([]model.Row{{"name": "P1"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/top-products", nil)
		req.Header.Set("Origin", "https://dashboard.example.com")
		w := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight request", func(t *testing.T) {
		svc := new(MockAnalyticsService)

		req := httptest.NewRequest(http.MethodOptions, "/api/remaining-stock/1", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(w, req)

		assert.Less(t, w.Code, 300)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
	})
}

func TestRouter_RemainingStockProductIDDecoding(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		productID string
	}{
		{name: "Plain ID", path: "/api/remaining-stock/1", productID: "1"},
		{name: "Escaped percent is decoded once", path: "/api/remaining-stock/%2531", productID: "%31"},
		{name: "Escaped space", path: "/api/remaining-stock/a%20b", productID: "a b"},
		{name: "Escaped slash stays in one segment", path: "/api/remaining-stock/a%2Fb", productID: "a/b"},
		{name: "Trailing slash", path: "/api/remaining-stock/1/", productID: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAnalyticsService)
			svc.On("RemainingStock", mock.Anything, tt.productID).Return(model.Row{"remaining_stock": 7}, nil)

			w := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"remaining_stock":7}`, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestRouter_TrailingSlashAndHead(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "Trailing slash on a list route", method: http.MethodGet, path: "/api/top-products/"},
		{name: "HEAD on a GET route", method: http.MethodHead, path: "/api/top-products"},
		{name: "HEAD with trailing slash", method: http.MethodHead, path: "/api/top-products/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAnalyticsService)
			svc.On("TopProducts", mock.Anything).Return([]model.Row{{"name": "P1"}}, nil)

			w := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			svc.AssertExpectations(t)
		})
	}
}
