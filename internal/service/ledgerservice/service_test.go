package ledgerservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clinicstock/internal/domain"
	apperror "clinicstock/internal/errors"
	"clinicstock/internal/pkg/logger"
	"clinicstock/internal/service/ledgerservice"
)

// --- Mocks ---

type MockBatchReader struct{ mock.Mock }

func (m *MockBatchReader) FindByID(ctx context.Context, id int64) (domain.ItemBatch, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ItemBatch), args.Error(1)
}

func (m *MockBatchReader) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockLedgerStore struct{ mock.Mock }

func (m *MockLedgerStore) CommitMovement(ctx context.Context, expectedVersion, newQuantity int, txn domain.StockTransaction) (domain.StockTransaction, error) {
	args := m.Called(ctx, expectedVersion, newQuantity, txn)
	return args.Get(0).(domain.StockTransaction), args.Error(1)
}

func (m *MockLedgerStore) FindByID(ctx context.Context, id int64) (domain.TransactionView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.TransactionView), args.Error(1)
}

func (m *MockLedgerStore) List(ctx context.Context, filter domain.TransactionFilter) ([]domain.TransactionView, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.TransactionView), args.Int(1), args.Error(2)
}

func (m *MockLedgerStore) Reconcile(ctx context.Context, batchID int64) (domain.BatchReconciliation, error) {
	args := m.Called(ctx, batchID)
	return args.Get(0).(domain.BatchReconciliation), args.Error(1)
}

type MockParties struct{ mock.Mock }

func (m *MockParties) StaffExists(ctx context.Context, id int64, includeDeleted bool) (bool, error) {
	args := m.Called(ctx, id, includeDeleted)
	return args.Bool(0), args.Error(1)
}

func (m *MockParties) PatientExists(ctx context.Context, id int64, includeDeleted bool) (bool, error) {
	args := m.Called(ctx, id, includeDeleted)
	return args.Bool(0), args.Error(1)
}

type countingRecorder struct {
	outcomes  map[string]int
	conflicts int
}

func newRecorder() *countingRecorder { return &countingRecorder{outcomes: map[string]int{}} }

func (r *countingRecorder) RecordMovement(t, outcome string) { r.outcomes[t+"/"+outcome]++ }
func (r *countingRecorder) ObserveCommit(time.Duration)      {}
func (r *countingRecorder) RecordConflict()                  { r.conflicts++ }

var (
	nurse        = domain.Principal{UserID: "u-nurse", Roles: []domain.UserRole{domain.RoleNurse}}
	receptionist = domain.Principal{UserID: "u-recep", Roles: []domain.UserRole{domain.RoleReceptionist}}
	fastRetry    = ledgerservice.RetryPolicy{MaxRetries: 3, Base: time.Millisecond, MaxDelay: 5 * time.Millisecond}
)

func int64Ptr(v int64) *int64 { return &v }

func newService(batches ledgerservice.BatchReader, ledger ledgerservice.LedgerStore, parties ledgerservice.PartyDirectory, rec ledgerservice.Recorder) *ledgerservice.Service {
	return ledgerservice.NewService(batches, ledger, parties, rec, fastRetry, logger.Nop())
}

// --- RecordMovement ---

func TestRecordMovement_Out_Success(t *testing.T) {
	batches, ledger, parties := new(MockBatchReader), new(MockLedgerStore), new(MockParties)
	rec := newRecorder()
	svc := newService(batches, ledger, parties, rec)
	ctx := context.Background()

	batches.On("FindByID", ctx, int64(1)).Return(domain.ItemBatch{ID: 1, Quantity: 10, Version: 1}, nil)
	ledger.On("CommitMovement", ctx, 1, 4, mock.MatchedBy(func(txn domain.StockTransaction) bool {
		return txn.TransactionType == domain.TransactionOut && txn.Quantity == 6
	})).Return(domain.StockTransaction{ID: 100, BatchID: 1, Quantity: 6, TransactionType: domain.TransactionOut}, nil)

	res, err := svc.RecordMovement(ctx, nurse, domain.MovementRequest{BatchID: 1, Quantity: 6, TransactionType: "out"})

	require.NoError(t, err)
	assert.Equal(t, 4, res.ResultingQuantity)
	assert.Equal(t, 2, res.BatchVersion)
	assert.EqualValues(t, 100, res.Transaction.ID)
	assert.Equal(t, 1, rec.outcomes["OUT/committed"])
	ledger.AssertExpectations(t)
}

func TestRecordMovement_In_Scenario(t *testing.T) {
	batches, ledger, parties := new(MockBatchReader), new(MockLedgerStore), new(MockParties)
	svc := newService(batches, ledger, parties, nil)
	ctx := context.Background()

	batches.On("FindByID", ctx, int64(2)).Return(domain.ItemBatch{ID: 2, Quantity: 0, Version: 1}, nil)
	ledger.On("CommitMovement", ctx, 1, 50, mock.Anything).Return(domain.StockTransaction{ID: 1, Quantity: 50, TransactionType: domain.TransactionIn}, nil)

	res, err := svc.RecordMovement(ctx, nurse, domain.MovementRequest{BatchID: 2, Quantity: 50, TransactionType: "IN"})
	require.NoError(t, err)
	assert.Equal(t, 50, res.ResultingQuantity)
}

func TestRecordMovement_InsufficientQuantity(t *testing.T) {
	batches, ledger, parties := new(MockBatchReader), new(MockLedgerStore), new(MockParties)
	rec := newRecorder()
	svc := newService(batches, ledger, parties, rec)
	ctx := context.Background()

	batches.On("FindByID", ctx, int64(1)).Return(domain.ItemBatch{ID: 1, Quantity: 30, Version: 3}, nil)

	_, err := svc.RecordMovement(ctx, nurse, domain.MovementRequest{BatchID: 1, Quantity: 31, TransactionType: "OUT"})

	var insufficient *apperror.InsufficientQuantityError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 30, insufficient.Available)
	assert.Equal(t, 31, insufficient.Requested)
	assert.Equal(t, 1, rec.outcomes["OUT/insufficient"])
	ledger.AssertNotCalled(t, "CommitMovement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordMovement_NegativeAdjustmentBelowZero(t *testing.T) {
	batches, ledger, parties := new(MockBatchReader), new(MockLedgerStore), new(MockParties)
	svc := newService(batches, ledger, parties, nil)
	ctx := context.Background()

	batches.On("FindByID", ctx, int64(1)).Return(domain.ItemBatch{ID: 1, Quantity: 3, Version: 1}, nil)

	_, err := svc.RecordMovement(ctx, nurse, domain.MovementRequest{BatchID: 1, Quantity: -5, TransactionType: "adjustment"})

	var insufficient *apperror.InsufficientQuantityError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 5, insufficient.Requested)
	ledger.AssertNotCalled(t, "CommitMovement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordMovement_NegativeAdjustmentCommits(t *testing.T) {
	batches, ledger, parties := new(MockBatchReader), new(MockLedgerStore), new(MockParties)
	svc := newService(batches, ledger, parties, nil)
	ctx := context.Background()

	batches.On("FindByID", ctx, int64(1)).Return(domain.ItemBatch{ID: 1, Quantity: 10, Version: 5}, nil)
	ledger.On("CommitMovement", ctx, 5, 7, mock.MatchedBy(func(txn domain.StockTransaction) bool {
		return txn.TransactionType == domain.TransactionAdjustment && txn.Quantity == -3
	})).Return(domain.StockTransaction{ID: 9, Quantity: -3, TransactionType: domain.TransactionAdjustment}, nil)

	res, err := svc.RecordMovement(ctx, nurse, domain.MovementRequest{BatchID: 1, Quantity: -3, TransactionType: "Adjustment"})
	require.NoError(t, err)
	assert.Equal(t, 7, res.ResultingQuantity)
}

func TestRecordMovement_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   domain.MovementRequest
		field string
	}{
		{"quantidade zero", domain.MovementRequest{BatchID: 1, Quantity: 0, TransactionType: "IN"}, "quantity"},
		{"OUT negativo", domain.MovementRequest{BatchID: 1, Quantity: -2, TransactionType: "OUT"}, "quantity"},
		{"tipo desconhecido", domain.MovementRequest{BatchID: 1, Quantity: 2, TransactionType: "TRANSFER"}, "transactionType"},
		{"tipo vazio", domain.MovementRequest{BatchID: 1, Quantity: 2}, "transactionType"},
		{"quantidade fora da coluna", domain.MovementRequest{BatchID: 1, Quantity: domain.MaxQuantity + 1, TransactionType: "IN"}, "quantity"},
		{"saldo acima do limite", domain.MovementRequest{BatchID: 1, Quantity: domain.MaxQuantity, TransactionType: "IN"}, "quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches, ledger, parties := new(MockBatchReader), new(MockLedgerStore), new(MockParties)
			svc := newService(batches, ledger, parties, nil)
			ctx := context.Background()
			batches.On("FindByID", ctx, int64(1)).Return(domain.ItemBatch{ID: 1, Quantity: 10, Version: 1}, nil)

			_, err := svc.RecordMovement(ctx, nurse, tt.req)

			var vErr *apperror.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Fields, tt.field)
			ledger.AssertNotCalled(t, "CommitMovement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRecordMovement_BatchNotFound(t *testing.T) {
	batches, ledger, parties := new(MockBatchReader), new(MockLedgerStore), new(MockParties)
	svc := newService(batches, ledger, parties, nil)
	ctx := context.Background()

	batches.On("FindByID", ctx, int64(99)).Return(domain.ItemBatch{}, apperror.NewNotFoundError("Lote com ID 99 não existe."))

	// O lote é verificado antes da quantidade.
	_, err := svc.RecordMovement(ctx, nurse, domain.MovementRequest{BatchID: 99, Quantity: 0, TransactionType: "OUT"})
	assert.True(t, apperror.IsKind(err, "NOT_FOUND"))
}

func TestRecordMovement_BatchNotFoundBeforeType(t *testing.T) {
	batches, ledger, parties := new(MockBatchReader), new(MockLedgerStore), new(MockParties)
	svc := newService(batches, ledger, parties, nil)
	ctx := context.Background()

	batches.On("FindByID", ctx, int64(99)).Return(domain.ItemBatch{}, apperror.NewNotFoundError("Lote com ID 99 não existe."))

	_, err := svc.RecordMovement(ctx, nurse, domain.MovementRequest{BatchID: 99, Quantity: 3})
	assert.True(t, apperror.IsKind(err, "NOT_FOUND"))
}

func TestRecordMovement_DeletedPatient(t *testing.T) {
	batches, ledger, parties := new(MockBatchReader), new(MockLedgerStore), new(MockParties)
	svc := newService(batches, ledger, parties, nil)
	ctx := context.Background()

	batches.On("FindByID", ctx, int64(1)).Return(domain.ItemBatch{ID: 1, Quantity: 10, Version: 1}, nil)
	parties.On("PatientExists", ctx, int64(8), false).Return(false, nil)

	_, err := svc.RecordMovement(ctx, nurse, domain.MovementRequest{BatchID: 1, Quantity: 1, TransactionType: "OUT", PatientID: int64Ptr(8)})

	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "patientId")
}

func TestRecordMovement_StaffDefaultsToPrincipal(t *testing.T) {
	batches, ledger, parties := new(MockBatchReader), new(MockLedgerStore), new(MockParties)
	svc := newService(batches, ledger, parties, nil)
	ctx := context.Background()
	principal := domain.Principal{UserID: "u-ph", StaffID: int64Ptr(4), Roles: []domain.UserRole{domain.RolePharmacist}}

	batches.On("FindByID", ctx, int64(1)).Return(domain.ItemBatch{ID: 1, Quantity: 10, Version: 1}, nil)
	parties.On("StaffExists", ctx, int64(4), false).Return(true, nil)
	ledger.On("CommitMovement", ctx, 1, 11, mock.MatchedBy(func(txn domain.StockTransaction) bool {
		return txn.StaffID != nil && *txn.StaffID == 4
	})).Return(domain.StockTransaction{ID: 1}, nil)

	_, err := svc.RecordMovement(ctx, principal, domain.MovementRequest{BatchID: 1, Quantity: 1, TransactionType: "IN"})
	require.NoError(t, err)
	parties.AssertExpectations(t)
}

func TestRecordMovement_ForbiddenRole(t *testing.T) {
	batches, ledger, parties := new(MockBatchReader), new(MockLedgerStore), new(MockParties)
	svc := newService(batches, ledger, parties, nil)

	_, err := svc.RecordMovement(context.Background(), receptionist, domain.MovementRequest{BatchID: 1, Quantity: 1, TransactionType: "OUT"})

	assert.True(t, apperror.IsKind(err, "FORBIDDEN"))
	batches.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestRecordMovement_RetriesOnVersionConflict(t *testing.T) {
	batches, ledger, parties := new(MockBatchReader), new(MockLedgerStore), new(MockParties)
	rec := newRecorder()
	svc := newService(batches, ledger, parties, rec)
	ctx := context.Background()

	batches.On("FindByID", mock.Anything, int64(1)).Return(domain.ItemBatch{ID: 1, Quantity: 10, Version: 1}, nil).Once()
	batches.On("FindByID", mock.Anything, int64(1)).Return(domain.ItemBatch{ID: 1, Quantity: 8, Version: 2}, nil).Once()
	ledger.On("CommitMovement", mock.Anything, 1, 7, mock.Anything).Return(domain.StockTransaction{}, domain.ErrVersionConflict).Once()
	ledger.On("CommitMovement", mock.Anything, 2, 5, mock.Anything).Return(domain.StockTransaction{ID: 3}, nil).Once()

	res, err := svc.RecordMovement(ctx, nurse, domain.MovementRequest{BatchID: 1, Quantity: 3, TransactionType: "OUT"})

	require.NoError(t, err)
	assert.Equal(t, 5, res.ResultingQuantity)
	assert.Equal(t, 1, rec.conflicts)
	ledger.AssertExpectations(t)
}

func TestRecordMovement_RetriesExhausted(t *testing.T) {
	batches, ledger, parties := new(MockBatchReader), new(MockLedgerStore), new(MockParties)
	rec := newRecorder()
	svc := newService(batches, ledger, parties, rec)

	batches.On("FindByID", mock.Anything, int64(1)).Return(domain.ItemBatch{ID: 1, Quantity: 10, Version: 1}, nil)
	ledger.On("CommitMovement", mock.Anything, 1, 9, mock.Anything).Return(domain.StockTransaction{}, domain.ErrVersionConflict)

	_, err := svc.RecordMovement(context.Background(), nurse, domain.MovementRequest{BatchID: 1, Quantity: 1, TransactionType: "OUT"})

	assert.True(t, apperror.IsKind(err, "CONFLICT"))
	// Uma tentativa inicial mais MaxRetries.
	ledger.AssertNumberOfCalls(t, "CommitMovement", 4)
	assert.Equal(t, 4, rec.conflicts)
	assert.Equal(t, 1, rec.outcomes["OUT/conflict"])
}

func TestRecordMovement_StorageFailure(t *testing.T) {
	batches, ledger, parties := new(MockBatchReader), new(MockLedgerStore), new(MockParties)
	svc := newService(batches, ledger, parties, nil)

	batches.On("FindByID", mock.Anything, int64(1)).Return(domain.ItemBatch{ID: 1, Quantity: 10, Version: 1}, nil)
	ledger.On("CommitMovement", mock.Anything, 1, 9, mock.Anything).Return(domain.StockTransaction{}, errors.New("conexão recusada"))

	_, err := svc.RecordMovement(context.Background(), nurse, domain.MovementRequest{BatchID: 1, Quantity: 1, TransactionType: "OUT"})

	assert.True(t, apperror.IsKind(err, "INTERNAL_ERROR"))
	ledger.AssertNumberOfCalls(t, "CommitMovement", 1)
}

// --- Consultas ---

func TestListTransactions_Scopes(t *testing.T) {
	ctx := context.Background()

	t.Run("mais de um escopo", func(t *testing.T) {
		svc := newService(new(MockBatchReader), new(MockLedgerStore), new(MockParties), nil)
		_, _, err := svc.ListTransactions(ctx, domain.TransactionFilter{BatchID: int64Ptr(1), StaffID: int64Ptr(2)})
		assert.True(t, apperror.IsKind(err, "VALIDATION_ERROR"))
	})

	t.Run("lote inexistente", func(t *testing.T) {
		batches := new(MockBatchReader)
		batches.On("Exists", ctx, int64(7)).Return(false, nil)
		svc := newService(batches, new(MockLedgerStore), new(MockParties), nil)

		_, _, err := svc.ListTransactions(ctx, domain.TransactionFilter{BatchID: int64Ptr(7)})
		assert.True(t, apperror.IsKind(err, "NOT_FOUND"))
	})

	t.Run("paciente sem movimentações", func(t *testing.T) {
		parties, ledger := new(MockParties), new(MockLedgerStore)
		filter := domain.TransactionFilter{PatientID: int64Ptr(8)}
		parties.On("PatientExists", ctx, int64(8), true).Return(true, nil)
		ledger.On("List", ctx, filter).Return([]domain.TransactionView{}, 0, nil)
		svc := newService(new(MockBatchReader), ledger, parties, nil)

		views, total, err := svc.ListTransactions(ctx, filter)
		require.NoError(t, err)
		assert.Empty(t, views)
		assert.Zero(t, total)
	})
}

func TestGetTransaction(t *testing.T) {
	ledger := new(MockLedgerStore)
	svc := newService(new(MockBatchReader), ledger, new(MockParties), nil)
	ctx := context.Background()

	ledger.On("FindByID", ctx, int64(5)).Return(domain.TransactionView{BatchNumber: "L-1"}, nil)

	view, err := svc.GetTransaction(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "L-1", view.BatchNumber)

	_, err = svc.GetTransaction(ctx, 0)
	assert.True(t, apperror.IsKind(err, "VALIDATION_ERROR"))
}

func TestReconcileBatch(t *testing.T) {
	ledger := new(MockLedgerStore)
	svc := newService(new(MockBatchReader), ledger, new(MockParties), nil)
	ctx := context.Background()

	ledger.On("Reconcile", ctx, int64(1)).Return(domain.BatchReconciliation{BatchID: 1, Quantity: 4, LedgerSum: 4, Consistent: true}, nil)

	rec, err := svc.ReconcileBatch(ctx, 1)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
}
