package batchrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"clinicstock/internal/domain"
	apperror "clinicstock/internal/errors"
	"clinicstock/internal/pkg/database"
	"clinicstock/internal/pkg/logger"
	"clinicstock/internal/repository/pgerr"
)

const batchColumns = `id, item_id, batch_number, quantity, expiration_date, received_date, cost_per_unit,
        vendor_id, version, created_at, updated_at`

const viewSelect = `
        SELECT b.id, b.item_id, b.batch_number, b.quantity, b.expiration_date, b.received_date, b.cost_per_unit,
               b.vendor_id, b.version, b.created_at, b.updated_at,
               i.name AS item_name, i.is_deleted AS item_is_deleted,
               v.name AS vendor_name, v.is_deleted AS vendor_is_deleted
        FROM item_batches b
        LEFT JOIN inventory_items i ON i.id = b.item_id
        LEFT JOIN vendors v ON v.id = b.vendor_id`

// InitialStockNote é a observação da transação IN gravada junto com o lote.
const InitialStockNote = "Estoque inicial"

// BatchRepository persiste os lotes. O saldo só é escrito aqui na criação;
// as demais mudanças de saldo passam pelo ledger.
type BatchRepository struct {
	DB        *sqlx.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewBatchRepository cria o repositório de lotes.
func NewBatchRepository(db *sqlx.DB, dbTimeout time.Duration, log logger.Logger) *BatchRepository {
	return &BatchRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

// Create insere o lote e, se a quantidade inicial for positiva, a transação IN
// correspondente, na mesma transação SQL.
func (r *BatchRepository) Create(ctx context.Context, b domain.ItemBatch, staffID *int64) (domain.ItemBatch, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var created domain.ItemBatch
	err := database.WithTx(ctxTimeout, r.DB, func(tx *sqlx.Tx) error {
		insertBatch := `
            INSERT INTO item_batches (item_id, batch_number, quantity, expiration_date, received_date, cost_per_unit, vendor_id, version)
            VALUES ($1, $2, $3, $4, $5, $6, $7, 1)
            RETURNING ` + batchColumns
		if err := tx.GetContext(ctxTimeout, &created, insertBatch,
			b.ItemID, b.BatchNumber, b.Quantity, b.ExpirationDate, b.ReceivedDate, b.CostPerUnit, b.VendorID,
		); err != nil {
			return err
		}

		if b.Quantity == 0 {
			return nil
		}
		_, err := tx.ExecContext(ctxTimeout, `
            INSERT INTO stock_transactions (batch_id, quantity, transaction_type, notes, transaction_date, staff_id)
            VALUES ($1, $2, $3, $4, NOW(), $5)`,
			created.ID, b.Quantity, domain.TransactionIn, InitialStockNote, staffID,
		)
		return err
	})

	switch {
	case err == nil:
	case pgerr.IsUniqueViolation(err):
		return domain.ItemBatch{}, apperror.NewConflictError(fmt.Sprintf("Lote %q já cadastrado para este item.", b.BatchNumber))
	case pgerr.IsForeignKeyViolation(err):
		return domain.ItemBatch{}, apperror.NewValidationError("Item, fornecedor ou funcionário referenciado não existe.")
	case pgerr.IsNumericOutOfRange(err):
		return domain.ItemBatch{}, apperror.NewValidationError("Quantidade ou custo fora da faixa suportada.")
	default:
		r.logger.Error("Falha ao criar lote.", err)
		return domain.ItemBatch{}, apperror.NewDBError("Falha ao criar lote", err)
	}

	r.logger.Info("Lote criado.", map[string]interface{}{
		"batch_id": created.ID,
		"quantity": created.Quantity,
	})
	return created, nil
}

// FindByID busca o lote sem junções (usado pelo ledger para ler quantidade e versão).
func (r *BatchRepository) FindByID(ctx context.Context, id int64) (domain.ItemBatch, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var b domain.ItemBatch
	err := r.DB.GetContext(ctxTimeout, &b, `SELECT `+batchColumns+` FROM item_batches WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ItemBatch{}, apperror.NewNotFoundError(fmt.Sprintf("Lote com ID %d não existe.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar lote no DB.", err)
		return domain.ItemBatch{}, apperror.NewDBError("Falha ao buscar lote", err)
	}
	return b, nil
}

// Exists informa se o lote existe.
func (r *BatchRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var exists bool
	if err := r.DB.GetContext(ctxTimeout, &exists, `SELECT EXISTS (SELECT 1 FROM item_batches WHERE id = $1)`, id); err != nil {
		r.logger.Error("Falha ao verificar lote.", err)
		return false, apperror.NewDBError("Falha ao verificar lote", err)
	}
	return exists, nil
}

// FindView busca o lote com nomes de item e fornecedor.
func (r *BatchRepository) FindView(ctx context.Context, id int64) (domain.BatchView, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var v domain.BatchView
	err := r.DB.GetContext(ctxTimeout, &v, viewSelect+` WHERE b.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BatchView{}, apperror.NewNotFoundError(fmt.Sprintf("Lote com ID %d não existe.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar lote no DB.", err)
		return domain.BatchView{}, apperror.NewDBError("Falha ao buscar lote", err)
	}
	return v, nil
}

// ListByItem lista os lotes do item, dos que vencem primeiro para os últimos.
func (r *BatchRepository) ListByItem(ctx context.Context, itemID int64) ([]domain.BatchView, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	views := []domain.BatchView{}
	query := viewSelect + ` WHERE b.item_id = $1 ORDER BY b.expiration_date NULLS LAST, b.id`
	if err := r.DB.SelectContext(ctxTimeout, &views, query, itemID); err != nil {
		r.logger.Error("Falha ao listar lotes do item.", err)
		return nil, apperror.NewDBError("Falha ao listar lotes", err)
	}
	return views, nil
}

// ListExpiring lista lotes com saldo que vencem até o limite informado.
func (r *BatchRepository) ListExpiring(ctx context.Context, until time.Time) ([]domain.BatchView, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	views := []domain.BatchView{}
	query := viewSelect + `
        WHERE b.quantity > 0 AND b.expiration_date IS NOT NULL AND b.expiration_date <= $1
        ORDER BY b.expiration_date, b.id`
	if err := r.DB.SelectContext(ctxTimeout, &views, query, until); err != nil {
		r.logger.Error("Falha ao listar lotes a vencer.", err)
		return nil, apperror.NewDBError("Falha ao listar lotes a vencer", err)
	}
	return views, nil
}

// Update altera apenas os campos descritivos do lote.
func (r *BatchRepository) Update(ctx context.Context, id int64, req domain.BatchUpdateRequest) (domain.ItemBatch, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE item_batches
        SET batch_number = $1, expiration_date = $2, received_date = $3, cost_per_unit = $4, vendor_id = $5, updated_at = NOW()
        WHERE id = $6
        RETURNING ` + batchColumns

	var updated domain.ItemBatch
	err := r.DB.GetContext(ctxTimeout, &updated, query,
		req.BatchNumber, req.ExpirationDate, req.ReceivedDate, req.CostPerUnit, req.VendorID, id,
	)
	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.ItemBatch{}, apperror.NewNotFoundError(fmt.Sprintf("Lote com ID %d não existe.", id))
	case pgerr.IsUniqueViolation(err):
		return domain.ItemBatch{}, apperror.NewConflictError(fmt.Sprintf("Lote %q já cadastrado para este item.", req.BatchNumber))
	case pgerr.IsForeignKeyViolation(err):
		return domain.ItemBatch{}, apperror.NewValidationError("Fornecedor referenciado não existe.")
	case pgerr.IsNumericOutOfRange(err):
		return domain.ItemBatch{}, apperror.NewValidationError("Custo fora da faixa suportada.")
	default:
		r.logger.Error("Falha ao atualizar lote.", err)
		return domain.ItemBatch{}, apperror.NewDBError("Falha ao atualizar lote", err)
	}
}

// Delete remove o lote. Lotes com histórico no ledger são protegidos pela FK RESTRICT.
func (r *BatchRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM item_batches WHERE id = $1`, id)
	if pgerr.IsForeignKeyViolation(err) {
		r.logger.Warn("Exclusão de lote bloqueada por histórico.", map[string]interface{}{"batch_id": id})
		return apperror.NewConflictError(fmt.Sprintf("Lote %d possui movimentações e não pode ser excluído.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao excluir lote.", err)
		return apperror.NewDBError("Falha ao excluir lote", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return apperror.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rows == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Lote com ID %d não existe.", id))
	}

	r.logger.Info("Lote excluído.", map[string]interface{}{"batch_id": id})
	return nil
}
