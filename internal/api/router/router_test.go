package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicstock/internal/api/batch"
	"clinicstock/internal/api/item"
	"clinicstock/internal/api/ledger"
	"clinicstock/internal/api/router"
	"clinicstock/internal/api/vendor"
	"clinicstock/internal/domain"
	"clinicstock/internal/pkg/cache"
	"clinicstock/internal/pkg/logger"
	"clinicstock/internal/pkg/metrics"
	"clinicstock/internal/pkg/middleware"
	"clinicstock/internal/pkg/token"
)

// stubServices atende todos os handlers com respostas fixas.
type stubServices struct{}

func (stubServices) RecordMovement(_ context.Context, _ domain.Principal, req domain.MovementRequest) (domain.MovementResult, error) {
	return domain.MovementResult{ResultingQuantity: 10 + req.Quantity, BatchVersion: 2}, nil
}
func (stubServices) GetTransaction(context.Context, int64) (domain.TransactionView, error) {
	return domain.TransactionView{}, nil
}
func (stubServices) ListTransactions(context.Context, domain.TransactionFilter) ([]domain.TransactionView, int, error) {
	return []domain.TransactionView{}, 0, nil
}
func (stubServices) ReconcileBatch(_ context.Context, id int64) (domain.BatchReconciliation, error) {
	return domain.BatchReconciliation{BatchID: id, Consistent: true}, nil
}
func (stubServices) CreateBatch(context.Context, domain.Principal, domain.BatchCreateRequest) (domain.ItemBatch, error) {
	return domain.ItemBatch{ID: 1}, nil
}
func (stubServices) GetBatch(_ context.Context, id int64, _ bool) (domain.BatchView, error) {
	return domain.BatchView{ItemBatch: domain.ItemBatch{ID: id}}, nil
}
func (stubServices) ListBatchesByItem(context.Context, int64, bool) ([]domain.BatchView, error) {
	return []domain.BatchView{}, nil
}
func (stubServices) UpdateBatch(context.Context, domain.Principal, int64, domain.BatchUpdateRequest) (domain.ItemBatch, error) {
	return domain.ItemBatch{}, nil
}
func (stubServices) DeleteBatch(context.Context, domain.Principal, int64) error { return nil }
func (stubServices) ListExpiringBatches(context.Context, int) ([]domain.BatchView, error) {
	return []domain.BatchView{}, nil
}
func (stubServices) CreateItem(_ context.Context, _ domain.Principal, it domain.InventoryItem) (domain.InventoryItem, error) {
	return it, nil
}
func (stubServices) GetItem(context.Context, int64, bool) (domain.InventoryItem, error) {
	return domain.InventoryItem{}, nil
}
func (stubServices) ListItems(context.Context, domain.ItemFilter) ([]domain.InventoryItem, int, error) {
	return []domain.InventoryItem{}, 0, nil
}
func (stubServices) UpdateItem(context.Context, domain.Principal, int64, domain.InventoryItem) (domain.InventoryItem, error) {
	return domain.InventoryItem{}, nil
}
func (stubServices) SoftDeleteItem(context.Context, domain.Principal, int64) error { return nil }
func (stubServices) RestoreItem(context.Context, domain.Principal, int64) (domain.InventoryItem, error) {
	return domain.InventoryItem{}, nil
}
func (stubServices) ListLowStockItems(context.Context) ([]domain.LowStockItem, error) {
	return []domain.LowStockItem{}, nil
}
func (stubServices) CreateVendor(_ context.Context, _ domain.Principal, v domain.Vendor) (domain.Vendor, error) {
	return v, nil
}
func (stubServices) GetVendor(context.Context, int64, bool) (domain.Vendor, error) {
	return domain.Vendor{}, nil
}
func (stubServices) ListVendors(context.Context, domain.VendorFilter) ([]domain.Vendor, int, error) {
	return []domain.Vendor{}, 0, nil
}
func (stubServices) UpdateVendor(context.Context, domain.Principal, int64, domain.Vendor) (domain.Vendor, error) {
	return domain.Vendor{}, nil
}
func (stubServices) SoftDeleteVendor(context.Context, domain.Principal, int64) error { return nil }
func (stubServices) RestoreVendor(context.Context, domain.Principal, int64) (domain.Vendor, error) {
	return domain.Vendor{}, nil
}

func setup(t *testing.T, rateLimit int) (http.Handler, *token.Service) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := cache.NewRedisClient(mr.Addr(), time.Second, cache.BreakerSettings("test", nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	log := logger.Nop()
	svc := stubServices{}
	tokens := token.NewService("segredo-de-teste", time.Hour)

	h := router.NewRouter(router.Handlers{
		Ledger: ledger.NewHandler(svc, log),
		Batch:  batch.NewHandler(svc, log),
		Item:   item.NewHandler(svc, log),
		Vendor: vendor.NewHandler(svc, log),
	}, router.Options{
		Tokens:          tokens,
		Cache:           client,
		Metrics:         metrics.New("clinicstock"),
		Logger:          log,
		RateLimit:       rateLimit,
		RateLimitWindow: time.Minute,
	})
	return h, tokens
}

func bearer(t *testing.T, tokens *token.Service, roles ...string) string {
	t.Helper()
	tok, err := tokens.GenerateToken("u-1", nil, roles)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestPing(t *testing.T) {
	h, _ := setup(t, 10)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestMetricsAndSwagger(t *testing.T) {
	h, _ := setup(t, 10)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `clinicstock_http_requests_total{method="GET",route="/ping",status="200"} 1`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/movements")
}

func TestMovementRoute_RoleGating(t *testing.T) {
	h, tokens := setup(t, 10)
	body := `{"batchId":1,"quantity":5,"transactionType":"IN"}`

	tests := []struct {
		name   string
		auth   string
		status int
	}{
		{"sem token", "", http.StatusUnauthorized},
		{"recepção", bearer(t, tokens, "receptionist"), http.StatusForbidden},
		{"enfermagem", bearer(t, tokens, "nurse"), http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/movements", strings.NewReader(body))
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestBatchDelete_AdminOnly(t *testing.T) {
	h, tokens := setup(t, 10)

	req := httptest.NewRequest(http.MethodDelete, "/v1/batches/3", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "pharmacist"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/v1/batches/3", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "admin"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestReadRoutes_AnyAuthenticatedRole(t *testing.T) {
	h, tokens := setup(t, 10)
	auth := bearer(t, tokens, "receptionist")

	for _, path := range []string{
		"/v1/transactions?batchId=1",
		"/v1/batches/expiring",
		"/v1/batches/4",
		"/v1/batches/4/reconcile",
		"/v1/items",
		"/v1/items/low-stock",
		"/v1/items/2/batches",
		"/v1/vendors",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", auth)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestWriteRoutes_RateLimited(t *testing.T) {
	h, tokens := setup(t, 2)
	auth := bearer(t, tokens, "pharmacist")

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/vendors", strings.NewReader(`{"name":"Distribuidora"}`))
		req.Header.Set("Authorization", auth)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
}
