package ledger_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clinicstock/internal/api/ledger"
	"clinicstock/internal/domain"
	apperror "clinicstock/internal/errors"
	"clinicstock/internal/pkg/logger"
	"clinicstock/internal/pkg/middleware"
)

type MockLedgerService struct{ mock.Mock }

func (m *MockLedgerService) RecordMovement(ctx context.Context, p domain.Principal, req domain.MovementRequest) (domain.MovementResult, error) {
	args := m.Called(ctx, p, req)
	return args.Get(0).(domain.MovementResult), args.Error(1)
}

func (m *MockLedgerService) GetTransaction(ctx context.Context, id int64) (domain.TransactionView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.TransactionView), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, f domain.TransactionFilter) ([]domain.TransactionView, int, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.TransactionView), args.Int(1), args.Error(2)
}

func (m *MockLedgerService) ReconcileBatch(ctx context.Context, batchID int64) (domain.BatchReconciliation, error) {
	args := m.Called(ctx, batchID)
	return args.Get(0).(domain.BatchReconciliation), args.Error(1)
}

var nurse = domain.Principal{UserID: "u-1", Roles: []domain.UserRole{domain.RoleNurse}}

func setup(svc *MockLedgerService) http.Handler {
	h := ledger.NewHandler(svc, logger.Nop())
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithPrincipal(req.Context(), nurse)))
		})
	})
	r.Post("/v1/movements", h.RecordMovementHandler)
	r.Get("/v1/transactions", h.ListTransactionsHandler)
	r.Get("/v1/transactions/{id}", h.GetTransactionHandler)
	r.Get("/v1/batches/{id}/reconcile", h.ReconcileBatchHandler)
	return r
}

func TestRecordMovementHandler_Created(t *testing.T) {
	svc := new(MockLedgerService)
	req := domain.MovementRequest{BatchID: 12, Quantity: 4, TransactionType: "OUT"}
	svc.On("RecordMovement", mock.Anything, nurse, req).Return(domain.MovementResult{
		Transaction:       domain.StockTransaction{ID: 90, BatchID: 12, Quantity: 4, TransactionType: domain.TransactionOut},
		ResultingQuantity: 26,
		BatchVersion:      3,
	}, nil)

	rec := httptest.NewRecorder()
	body := `{"batchId":12,"quantity":4,"transactionType":"OUT"}`
	setup(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/movements", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got domain.MovementResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 26, got.ResultingQuantity)
	assert.Equal(t, int64(90), got.Transaction.ID)
	svc.AssertExpectations(t)
}

func TestRecordMovementHandler_Insufficient(t *testing.T) {
	svc := new(MockLedgerService)
	svc.On("RecordMovement", mock.Anything, nurse, mock.Anything).
		Return(domain.MovementResult{}, apperror.NewInsufficientQuantityError("Quantidade insuficiente.", 30, 31))

	rec := httptest.NewRecorder()
	body := `{"batchId":12,"quantity":31,"transactionType":"OUT"}`
	setup(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/movements", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INSUFFICIENT_QUANTITY", resp.Category)
}

func TestRecordMovementHandler_BadPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"json malformado", `{"batchId":`},
		{"campo desconhecido", `{"batchId":1,"quantity":1,"transactionType":"IN","extra":true}`},
		{"sem lote", `{"quantity":1,"transactionType":"IN"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockLedgerService)
			rec := httptest.NewRecorder()
			setup(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/movements", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			svc.AssertNotCalled(t, "RecordMovement", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRecordMovementHandler_MissingTypeReachesService(t *testing.T) {
	svc := new(MockLedgerService)
	req := domain.MovementRequest{BatchID: 404, Quantity: 2}
	svc.On("RecordMovement", mock.Anything, nurse, req).
		Return(domain.MovementResult{}, apperror.NewNotFoundError("Lote com ID 404 não existe."))

	rec := httptest.NewRecorder()
	setup(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/movements", strings.NewReader(`{"batchId":404,"quantity":2}`)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	svc.AssertExpectations(t)
}

func TestRecordMovementHandler_NoPrincipal(t *testing.T) {
	h := ledger.NewHandler(new(MockLedgerService), logger.Nop())
	rec := httptest.NewRecorder()
	h.RecordMovementHandler(rec, httptest.NewRequest(http.MethodPost, "/v1/movements", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListTransactionsHandler(t *testing.T) {
	svc := new(MockLedgerService)
	batchID := int64(12)
	filter := domain.TransactionFilter{BatchID: &batchID, Page: 2, Limit: 5}
	svc.On("ListTransactions", mock.Anything, filter).
		Return([]domain.TransactionView{{BatchNumber: "L-1"}}, 6, nil)

	rec := httptest.NewRecorder()
	setup(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/transactions?batchId=12&page=2&limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data       []domain.TransactionView `json:"data"`
		Pagination struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
	assert.Equal(t, 2, body.Pagination.Page)
	assert.Equal(t, 6, body.Pagination.Total)
}

func TestListTransactionsHandler_InvalidScope(t *testing.T) {
	svc := new(MockLedgerService)
	rec := httptest.NewRecorder()
	setup(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/transactions?staffId=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ListTransactions", mock.Anything, mock.Anything)
}

func TestListTransactionsHandler_PageTooLarge(t *testing.T) {
	svc := new(MockLedgerService)
	rec := httptest.NewRecorder()
	setup(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/transactions?page=9223372036854775807", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ListTransactions", mock.Anything, mock.Anything)
}

func TestGetTransactionHandler_NotFound(t *testing.T) {
	svc := new(MockLedgerService)
	svc.On("GetTransaction", mock.Anything, int64(77)).
		Return(domain.TransactionView{}, apperror.NewNotFoundError("Transação 77 não existe."))

	rec := httptest.NewRecorder()
	setup(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/transactions/77", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReconcileBatchHandler(t *testing.T) {
	svc := new(MockLedgerService)
	svc.On("ReconcileBatch", mock.Anything, int64(12)).Return(domain.BatchReconciliation{
		BatchID: 12, Quantity: 26, LedgerSum: 26, TransactionCount: 2, Consistent: true,
	}, nil)

	rec := httptest.NewRecorder()
	setup(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/batches/12/reconcile", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"consistent":true`)
}
