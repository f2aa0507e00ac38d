package ledgerrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"clinicstock/internal/domain"
	apperror "clinicstock/internal/errors"
	"clinicstock/internal/pkg/database"
	"clinicstock/internal/pkg/logger"
	"clinicstock/internal/repository/pgerr"
)

const transactionColumns = `id, batch_id, quantity, transaction_type, notes, transaction_date, staff_id, patient_id, created_at, updated_at`

const viewSelect = `
        SELECT t.id, t.batch_id, t.quantity, t.transaction_type, t.notes, t.transaction_date, t.staff_id, t.patient_id,
               t.created_at, t.updated_at,
               b.batch_number, b.item_id, i.name AS item_name,
               s.full_name AS staff_name, p.full_name AS patient_name
        FROM stock_transactions t
        JOIN item_batches b ON b.id = t.batch_id
        LEFT JOIN inventory_items i ON i.id = b.item_id
        LEFT JOIN staff s ON s.id = t.staff_id
        LEFT JOIN patients p ON p.id = t.patient_id`

// LedgerRepository grava e consulta o ledger de movimentações.
type LedgerRepository struct {
	DB        *sqlx.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewLedgerRepository cria o repositório do ledger.
func NewLedgerRepository(db *sqlx.DB, dbTimeout time.Duration, log logger.Logger) *LedgerRepository {
	return &LedgerRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

// CommitMovement atualiza o saldo do lote (condicionado à versão lida) e insere a
// transação, na mesma transação SQL. Se a versão mudou devolve domain.ErrVersionConflict
// e nada é gravado.
func (r *LedgerRepository) CommitMovement(ctx context.Context, expectedVersion, newQuantity int, txn domain.StockTransaction) (domain.StockTransaction, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var committed domain.StockTransaction
	err := database.WithTx(ctxTimeout, r.DB, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctxTimeout, `
            UPDATE item_batches
            SET quantity = $1, version = version + 1, updated_at = NOW()
            WHERE id = $2 AND version = $3`,
			newQuantity, txn.BatchID, expectedVersion,
		)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrVersionConflict
		}

		return tx.GetContext(ctxTimeout, &committed, `
            INSERT INTO stock_transactions (batch_id, quantity, transaction_type, notes, transaction_date, staff_id, patient_id)
            VALUES ($1, $2, $3, $4, NOW(), $5, $6)
            RETURNING `+transactionColumns,
			txn.BatchID, txn.Quantity, txn.TransactionType, txn.Notes, txn.StaffID, txn.PatientID,
		)
	})

	switch {
	case err == nil:
		return committed, nil
	case errors.Is(err, domain.ErrVersionConflict), pgerr.IsSerializationFailure(err):
		r.logger.Warn("Falha no controle de concorrência otimista (OCC). Versão do lote desatualizada.", map[string]interface{}{
			"batch_id":         txn.BatchID,
			"expected_version": expectedVersion,
		})
		return domain.StockTransaction{}, domain.ErrVersionConflict
	case pgerr.IsCheckViolation(err):
		r.logger.Error("Saldo negativo barrado pela constraint do lote.", err)
		return domain.StockTransaction{}, domain.ErrNegativeBalance
	case pgerr.IsForeignKeyViolation(err):
		return domain.StockTransaction{}, apperror.NewValidationError("Funcionário ou paciente referenciado não existe.")
	case pgerr.IsNumericOutOfRange(err):
		return domain.StockTransaction{}, apperror.NewValidationErrorWithFields("Quantidade inválida.",
			map[string]string{"quantity": "valor fora da faixa suportada pelo lote"})
	default:
		r.logger.Error("Falha ao gravar movimentação.", err)
		return domain.StockTransaction{}, apperror.NewDBError("Falha ao gravar movimentação", err)
	}
}

// FindByID busca a transação com os nomes relacionados.
func (r *LedgerRepository) FindByID(ctx context.Context, id int64) (domain.TransactionView, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var v domain.TransactionView
	err := r.DB.GetContext(ctxTimeout, &v, viewSelect+` WHERE t.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TransactionView{}, apperror.NewNotFoundError(fmt.Sprintf("Transação com ID %d não existe.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar transação.", err)
		return domain.TransactionView{}, apperror.NewDBError("Falha ao buscar transação", err)
	}
	return v, nil
}

// List lista transações, mais recentes primeiro, filtradas por lote, funcionário ou paciente.
func (r *LedgerRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]domain.TransactionView, int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var (
		where []string
		args  []interface{}
	)
	if filter.BatchID != nil {
		args = append(args, *filter.BatchID)
		where = append(where, fmt.Sprintf("t.batch_id = $%d", len(args)))
	}
	if filter.StaffID != nil {
		args = append(args, *filter.StaffID)
		where = append(where, fmt.Sprintf("t.staff_id = $%d", len(args)))
	}
	if filter.PatientID != nil {
		args = append(args, *filter.PatientID)
		where = append(where, fmt.Sprintf("t.patient_id = $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.DB.GetContext(ctxTimeout, &total, `SELECT COUNT(*) FROM stock_transactions t`+clause, args...); err != nil {
		r.logger.Error("Falha ao contar transações.", err)
		return nil, 0, apperror.NewDBError("Falha ao listar transações", err)
	}

	page, limit := domain.Pagination(filter.Page, filter.Limit)
	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`%s%s ORDER BY t.transaction_date DESC, t.id DESC LIMIT $%d OFFSET $%d`,
		viewSelect, clause, len(args)-1, len(args))

	views := []domain.TransactionView{}
	if err := r.DB.SelectContext(ctxTimeout, &views, query, args...); err != nil {
		r.logger.Error("Falha ao listar transações.", err)
		return nil, 0, apperror.NewDBError("Falha ao listar transações", err)
	}
	return views, total, nil
}

// Reconcile compara o saldo materializado do lote com a soma do ledger numa única consulta.
func (r *LedgerRepository) Reconcile(ctx context.Context, batchID int64) (domain.BatchReconciliation, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT b.id AS batch_id, b.quantity,
               COALESCE(SUM(CASE WHEN t.transaction_type = 'OUT' THEN -t.quantity ELSE t.quantity END), 0) AS ledger_sum,
               COUNT(t.id) AS transaction_count
        FROM item_batches b
        LEFT JOIN stock_transactions t ON t.batch_id = b.id
        WHERE b.id = $1
        GROUP BY b.id, b.quantity`

	var rec domain.BatchReconciliation
	err := r.DB.GetContext(ctxTimeout, &rec, query, batchID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BatchReconciliation{}, apperror.NewNotFoundError(fmt.Sprintf("Lote com ID %d não existe.", batchID))
	}
	if err != nil {
		r.logger.Error("Falha ao reconciliar lote.", err)
		return domain.BatchReconciliation{}, apperror.NewDBError("Falha ao reconciliar lote", err)
	}

	rec.Consistent = rec.Quantity == rec.LedgerSum
	if !rec.Consistent {
		r.logger.Warn("Lote divergente do ledger.", map[string]interface{}{
			"batch_id":   batchID,
			"quantity":   rec.Quantity,
			"ledger_sum": rec.LedgerSum,
		})
	}
	return rec, nil
}
