package ledgerservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"clinicstock/internal/domain"
	apperror "clinicstock/internal/errors"
	"clinicstock/internal/pkg/logger"
	"clinicstock/internal/pkg/metrics"
)

// BatchReader lê o estado atual do lote (quantidade e versão).
type BatchReader interface {
	FindByID(ctx context.Context, id int64) (domain.ItemBatch, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// LedgerStore grava e consulta o ledger.
type LedgerStore interface {
	CommitMovement(ctx context.Context, expectedVersion, newQuantity int, txn domain.StockTransaction) (domain.StockTransaction, error)
	FindByID(ctx context.Context, id int64) (domain.TransactionView, error)
	List(ctx context.Context, filter domain.TransactionFilter) ([]domain.TransactionView, int, error)
	Reconcile(ctx context.Context, batchID int64) (domain.BatchReconciliation, error)
}

// PartyDirectory verifica funcionários e pacientes do núcleo da clínica.
type PartyDirectory interface {
	StaffExists(ctx context.Context, id int64, includeDeleted bool) (bool, error)
	PatientExists(ctx context.Context, id int64, includeDeleted bool) (bool, error)
}

// Recorder recebe as métricas do ledger.
type Recorder interface {
	RecordMovement(transactionType, outcome string)
	ObserveCommit(d time.Duration)
	RecordConflict()
}

// RetryPolicy limita as novas tentativas após conflito de versão.
type RetryPolicy struct {
	MaxRetries uint64
	Base       time.Duration
	MaxDelay   time.Duration
}

// DefaultRetryPolicy são os valores usados sem configuração explícita.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, Base: 20 * time.Millisecond, MaxDelay: 500 * time.Millisecond}
}

// Service é o serviço de aplicação do ledger: valida, calcula e efetiva movimentações.
type Service struct {
	batches BatchReader
	ledger  LedgerStore
	parties PartyDirectory
	metrics Recorder
	policy  RetryPolicy
	logger  logger.Logger
}

// NewService cria o serviço do ledger. rec pode ser nil.
func NewService(batches BatchReader, ledger LedgerStore, parties PartyDirectory, rec Recorder, policy RetryPolicy, log logger.Logger) *Service {
	if rec == nil {
		rec = nopRecorder{}
	}
	if policy.Base <= 0 {
		policy.Base = DefaultRetryPolicy().Base
	}
	if policy.MaxDelay < policy.Base {
		policy.MaxDelay = DefaultRetryPolicy().MaxDelay
	}
	return &Service{
		batches: batches,
		ledger:  ledger,
		parties: parties,
		metrics: rec,
		policy:  policy,
		logger:  log,
	}
}

// RecordMovement efetiva uma movimentação de estoque.
//
// Ordem das verificações: papel do principal, lote, funcionário, paciente,
// quantidade e tipo. Nenhuma escrita acontece antes de todas passarem. Se o lote
// mudar entre a leitura e a escrita, o saldo é relido e recalculado até o limite
// da RetryPolicy; esgotadas as tentativas o resultado é ConflictError.
func (s *Service) RecordMovement(ctx context.Context, principal domain.Principal, req domain.MovementRequest) (domain.MovementResult, error) {
	if !principal.HasAnyRole(domain.LedgerWriterRoles...) {
		s.metrics.RecordMovement(typeLabel(req.TransactionType), metrics.OutcomeRejected)
		return domain.MovementResult{}, apperror.NewForbiddenError("Movimentações exigem papel admin, pharmacist ou nurse.")
	}

	batch, err := s.batches.FindByID(ctx, req.BatchID)
	if err != nil {
		s.metrics.RecordMovement(typeLabel(req.TransactionType), outcomeFor(err))
		return domain.MovementResult{}, err
	}

	staffID := req.StaffID
	if staffID == nil {
		staffID = principal.StaffID
	}
	if err := s.checkParties(ctx, staffID, req.PatientID); err != nil {
		s.metrics.RecordMovement(typeLabel(req.TransactionType), outcomeFor(err))
		return domain.MovementResult{}, err
	}

	movement, err := domain.ParseMovement(req.TransactionType, req.Quantity)
	if err != nil {
		s.metrics.RecordMovement(typeLabel(req.TransactionType), metrics.OutcomeRejected)
		return domain.MovementResult{}, movementValidationError(err, req)
	}

	txn := domain.StockTransaction{
		BatchID:         batch.ID,
		Quantity:        movement.Quantity(),
		TransactionType: movement.Type(),
		Notes:           req.Notes,
		StaffID:         staffID,
		PatientID:       req.PatientID,
	}

	var (
		result   domain.MovementResult
		attempts int
	)
	backoff := retry.NewExponential(s.policy.Base)
	backoff = retry.WithCappedDuration(s.policy.MaxDelay, backoff)
	backoff = retry.WithJitterPercent(20, backoff)
	backoff = retry.WithMaxRetries(s.policy.MaxRetries, backoff)

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		if attempts > 1 {
			reloaded, err := s.batches.FindByID(ctx, batch.ID)
			if err != nil {
				return err
			}
			batch = reloaded
		}

		next, err := movement.Apply(batch.Quantity)
		if err != nil {
			return err
		}

		start := time.Now()
		committed, err := s.ledger.CommitMovement(ctx, batch.Version, next, txn)
		s.metrics.ObserveCommit(time.Since(start))
		if errors.Is(err, domain.ErrVersionConflict) {
			s.metrics.RecordConflict()
			s.logger.Debug("Conflito de versão ao gravar movimentação, relendo o lote.", map[string]interface{}{
				"batch_id": batch.ID,
				"attempt":  attempts,
			})
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}

		result = domain.MovementResult{
			Transaction:       committed,
			ResultingQuantity: next,
			BatchVersion:      batch.Version + 1,
		}
		return nil
	})

	kind := string(movement.Type())
	switch {
	case err == nil:
		s.metrics.RecordMovement(kind, metrics.OutcomeCommitted)
		s.logger.Info("Movimentação registrada.", map[string]interface{}{
			"transaction_id":     result.Transaction.ID,
			"batch_id":           batch.ID,
			"transaction_type":   kind,
			"quantity":           movement.Quantity(),
			"resulting_quantity": result.ResultingQuantity,
			"user_id":            principal.UserID,
			"attempts":           attempts,
		})
		return result, nil

	case errors.Is(err, domain.ErrInsufficientQuantity), errors.Is(err, domain.ErrNegativeBalance):
		s.metrics.RecordMovement(kind, metrics.OutcomeInsufficient)
		requested := movement.Quantity()
		if requested < 0 {
			requested = -requested
		}
		return domain.MovementResult{}, apperror.NewInsufficientQuantityError(
			fmt.Sprintf("lote %d possui %d, movimentação %s de %d.", batch.ID, batch.Quantity, kind, movement.Quantity()),
			batch.Quantity, requested,
		)

	case errors.Is(err, domain.ErrQuantityOverflow):
		s.metrics.RecordMovement(kind, metrics.OutcomeRejected)
		return domain.MovementResult{}, apperror.NewValidationErrorWithFields("Quantidade inválida.",
			map[string]string{"quantity": fmt.Sprintf("o saldo do lote %d não pode passar de %d", batch.ID, domain.MaxQuantity)})

	case errors.Is(err, domain.ErrVersionConflict):
		s.metrics.RecordMovement(kind, metrics.OutcomeConflict)
		s.logger.Warn("Tentativas esgotadas por concorrência no lote.", map[string]interface{}{
			"batch_id": batch.ID,
			"attempts": attempts,
		})
		return domain.MovementResult{}, apperror.NewConflictError(
			fmt.Sprintf("O lote %d foi modificado por outras operações. Tente novamente.", batch.ID))

	default:
		s.metrics.RecordMovement(kind, outcomeFor(err))
		if _, ok := apperror.As(err); ok {
			return domain.MovementResult{}, err
		}
		s.logger.Error("Falha inesperada ao registrar movimentação.", err)
		return domain.MovementResult{}, apperror.NewInternalError("Falha interna ao registrar movimentação.", err)
	}
}

func (s *Service) checkParties(ctx context.Context, staffID, patientID *int64) error {
	if staffID != nil {
		ok, err := s.parties.StaffExists(ctx, *staffID, false)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewValidationErrorWithFields("Funcionário inválido.",
				map[string]string{"staffId": fmt.Sprintf("funcionário %d não existe ou foi excluído", *staffID)})
		}
	}
	if patientID != nil {
		ok, err := s.parties.PatientExists(ctx, *patientID, false)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewValidationErrorWithFields("Paciente inválido.",
				map[string]string{"patientId": fmt.Sprintf("paciente %d não existe ou foi excluído", *patientID)})
		}
	}
	return nil
}

func movementValidationError(err error, req domain.MovementRequest) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return apperror.NewValidationErrorWithFields("Quantidade inválida.",
			map[string]string{"quantity": fmt.Sprintf("deve ser positiva (ou um delta diferente de zero para ADJUSTMENT) e no máximo %d em valor absoluto", domain.MaxQuantity)})
	case errors.Is(err, domain.ErrUnknownTransactionType):
		return apperror.NewValidationErrorWithFields("Tipo de movimentação inválido.",
			map[string]string{"transactionType": fmt.Sprintf("%q não é IN, OUT ou ADJUSTMENT", req.TransactionType)})
	default:
		return apperror.NewValidationError(err.Error())
	}
}

// GetTransaction busca uma transação do ledger.
func (s *Service) GetTransaction(ctx context.Context, id int64) (domain.TransactionView, error) {
	if id <= 0 {
		return domain.TransactionView{}, apperror.NewValidationError("ID de transação inválido.")
	}
	return s.ledger.FindByID(ctx, id)
}

// ListTransactions lista o ledger com no máximo um escopo. Um escopo inexistente
// resulta em NotFound; um escopo existente sem movimentações, em lista vazia.
func (s *Service) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.TransactionView, int, error) {
	scopes := 0
	for _, p := range []*int64{filter.BatchID, filter.StaffID, filter.PatientID} {
		if p != nil {
			scopes++
		}
	}
	if scopes > 1 {
		return nil, 0, apperror.NewValidationError("Informe apenas um dos filtros batchId, staffId ou patientId.")
	}

	switch {
	case filter.BatchID != nil:
		ok, err := s.batches.Exists(ctx, *filter.BatchID)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return nil, 0, apperror.NewNotFoundError(fmt.Sprintf("Lote com ID %d não existe.", *filter.BatchID))
		}
	case filter.StaffID != nil:
		ok, err := s.parties.StaffExists(ctx, *filter.StaffID, true)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return nil, 0, apperror.NewNotFoundError(fmt.Sprintf("Funcionário com ID %d não existe.", *filter.StaffID))
		}
	case filter.PatientID != nil:
		ok, err := s.parties.PatientExists(ctx, *filter.PatientID, true)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return nil, 0, apperror.NewNotFoundError(fmt.Sprintf("Paciente com ID %d não existe.", *filter.PatientID))
		}
	}

	return s.ledger.List(ctx, filter)
}

// ReconcileBatch confere o saldo do lote contra a soma do ledger.
func (s *Service) ReconcileBatch(ctx context.Context, batchID int64) (domain.BatchReconciliation, error) {
	rec, err := s.ledger.Reconcile(ctx, batchID)
	if err != nil {
		return domain.BatchReconciliation{}, err
	}
	if !rec.Consistent {
		s.logger.Warn("Reconciliação encontrou divergência.", map[string]interface{}{
			"batch_id":   batchID,
			"quantity":   rec.Quantity,
			"ledger_sum": rec.LedgerSum,
		})
	}
	return rec, nil
}

func outcomeFor(err error) string {
	appErr, ok := apperror.As(err)
	if !ok || appErr.HTTPStatus() >= 500 {
		return metrics.OutcomeError
	}
	return metrics.OutcomeRejected
}

// typeLabel evita que texto livre do cliente vire label de métrica.
func typeLabel(raw string) string {
	if t, ok := domain.ParseTransactionType(raw); ok {
		return string(t)
	}
	return "UNKNOWN"
}

type nopRecorder struct{}

func (nopRecorder) RecordMovement(string, string) {}
func (nopRecorder) ObserveCommit(time.Duration)   {}
func (nopRecorder) RecordConflict()               {}
