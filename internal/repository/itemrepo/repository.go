package itemrepo

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
	"clinicstock/internal/pkg/cache"
	"clinicstock/internal/pkg/logger"
	"clinicstock/internal/repository/pgerr"
)

const itemColumns = `id, name, category, unit_of_measure, purchase_price, selling_price, reorder_level,
        lead_time_days, description, vendor_id, is_deleted, created_at, updated_at`

const itemCacheKey = "item:%d"

// ItemRepository persiste o catálogo de itens.
type ItemRepository struct {
	DB        *sqlx.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewItemRepository cria o repositório do catálogo.
func NewItemRepository(db *sqlx.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *ItemRepository {
	return &ItemRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

// Create insere um item ativo.
func (r *ItemRepository) Create(ctx context.Context, item domain.InventoryItem) (domain.InventoryItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO inventory_items (name, category, unit_of_measure, purchase_price, selling_price,
            reorder_level, lead_time_days, description, vendor_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + itemColumns

	var created domain.InventoryItem
	if err := r.DB.GetContext(ctxTimeout, &created, query,
		item.Name, item.Category, item.UnitOfMeasure, item.PurchasePrice, item.SellingPrice,
		item.ReorderLevel, item.LeadTimeDays, item.Description, item.VendorID,
	); err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return domain.InventoryItem{}, vendorMissing(item.VendorID)
		}
		r.logger.Error("Falha ao inserir item do catálogo.", err)
		return domain.InventoryItem{}, apperror.NewDBError("Falha ao criar item", err)
	}

	r.logger.Info("Item do catálogo criado.", map[string]interface{}{"item_id": created.ID, "vendor_id": created.VendorID})
	return created, nil
}

// FindByID busca o item pelo ID usando cache-aside.
func (r *ItemRepository) FindByID(ctx context.Context, id int64, includeDeleted bool) (domain.InventoryItem, error) {
	key := fmt.Sprintf(itemCacheKey, id)

	var item domain.InventoryItem
	if !cache.GetJSON(ctx, r.Cache, key, &item) {
		ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
		defer cancel()

		err := r.DB.GetContext(ctxTimeout, &item, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.InventoryItem{}, apperror.NewNotFoundError(fmt.Sprintf("Item com ID %d não existe.", id))
		}
		if err != nil {
			r.logger.Error("Falha ao buscar item no DB.", err)
			return domain.InventoryItem{}, apperror.NewDBError("Falha ao buscar item", err)
		}

		if err := cache.SetJSON(ctx, r.Cache, key, item, r.CacheTTL); err != nil {
			r.logger.Warn("Falha ao gravar item no cache.", map[string]interface{}{"item_id": id, "error": err.Error()})
		}
	}

	if item.IsDeleted && !includeDeleted {
		return domain.InventoryItem{}, apperror.NewNotFoundError(fmt.Sprintf("Item com ID %d não existe.", id))
	}
	return item, nil
}

// Exists informa se o item existe (e está ativo, salvo includeDeleted).
func (r *ItemRepository) Exists(ctx context.Context, id int64, includeDeleted bool) (bool, error) {
	_, err := r.FindByID(ctx, id, includeDeleted)
	if apperror.IsKind(err, "NOT_FOUND") {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List busca itens por nome, categoria e fornecedor, com paginação.
func (r *ItemRepository) List(ctx context.Context, filter domain.ItemFilter) ([]domain.InventoryItem, int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var (
		where []string
		args  []interface{}
	)
	if !filter.IncludeDeleted {
		where = append(where, "is_deleted = FALSE")
	}
	if name := strings.TrimSpace(filter.Name); name != "" {
		args = append(args, "%"+name+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		args = append(args, category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.VendorID != nil {
		args = append(args, *filter.VendorID)
		where = append(where, fmt.Sprintf("vendor_id = $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.DB.GetContext(ctxTimeout, &total, `SELECT COUNT(*) FROM inventory_items`+clause, args...); err != nil {
		r.logger.Error("Falha ao contar itens.", err)
		return nil, 0, apperror.NewDBError("Falha ao listar itens", err)
	}

	page, limit := domain.Pagination(filter.Page, filter.Limit)
	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`SELECT %s FROM inventory_items%s ORDER BY name, id LIMIT $%d OFFSET $%d`,
		itemColumns, clause, len(args)-1, len(args))

	items := []domain.InventoryItem{}
	if err := r.DB.SelectContext(ctxTimeout, &items, query, args...); err != nil {
		r.logger.Error("Falha ao listar itens.", err)
		return nil, 0, apperror.NewDBError("Falha ao listar itens", err)
	}
	return items, total, nil
}

// Update altera um item ativo.
func (r *ItemRepository) Update(ctx context.Context, item domain.InventoryItem) (domain.InventoryItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE inventory_items
        SET name = $1, category = $2, unit_of_measure = $3, purchase_price = $4, selling_price = $5,
            reorder_level = $6, lead_time_days = $7, description = $8, vendor_id = $9, updated_at = NOW()
        WHERE id = $10 AND is_deleted = FALSE
        RETURNING ` + itemColumns

	var updated domain.InventoryItem
	err := r.DB.GetContext(ctxTimeout, &updated, query,
		item.Name, item.Category, item.UnitOfMeasure, item.PurchasePrice, item.SellingPrice,
		item.ReorderLevel, item.LeadTimeDays, item.Description, item.VendorID, item.ID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.InventoryItem{}, apperror.NewNotFoundError(fmt.Sprintf("Item com ID %d não existe.", item.ID))
	}
	if pgerr.IsForeignKeyViolation(err) {
		return domain.InventoryItem{}, vendorMissing(item.VendorID)
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar item.", err)
		return domain.InventoryItem{}, apperror.NewDBError("Falha ao atualizar item", err)
	}

	r.invalidate(ctx, item.ID)
	return updated, nil
}

// SoftDelete marca o item como excluído. Os lotes permanecem; a visão do lote oculta o item.
func (r *ItemRepository) SoftDelete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout,
		`UPDATE inventory_items SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		r.logger.Error("Falha ao excluir item.", err)
		return apperror.NewDBError("Falha ao excluir item", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return apperror.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rows == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Item com ID %d não existe.", id))
	}

	r.invalidate(ctx, id)
	return nil
}

// Restore reativa um item excluído.
func (r *ItemRepository) Restore(ctx context.Context, id int64) (domain.InventoryItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var restored domain.InventoryItem
	err := r.DB.GetContext(ctxTimeout, &restored, `
        UPDATE inventory_items SET is_deleted = FALSE, updated_at = NOW()
        WHERE id = $1 AND is_deleted = TRUE
        RETURNING `+itemColumns, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.InventoryItem{}, apperror.NewNotFoundError(fmt.Sprintf("Item excluído com ID %d não existe.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao restaurar item.", err)
		return domain.InventoryItem{}, apperror.NewDBError("Falha ao restaurar item", err)
	}

	r.invalidate(ctx, id)
	return restored, nil
}

// ListLowStock devolve os itens ativos cujo saldo somado nos lotes está no nível de reposição ou abaixo.
func (r *ItemRepository) ListLowStock(ctx context.Context) ([]domain.LowStockItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT i.id AS item_id, i.name, i.reorder_level, COALESCE(SUM(b.quantity), 0) AS on_hand, i.lead_time_days
        FROM inventory_items i
        LEFT JOIN item_batches b ON b.item_id = i.id
        WHERE i.is_deleted = FALSE
        GROUP BY i.id, i.name, i.reorder_level, i.lead_time_days
        HAVING COALESCE(SUM(b.quantity), 0) <= i.reorder_level
        ORDER BY COALESCE(SUM(b.quantity), 0) - i.reorder_level, i.name`

	items := []domain.LowStockItem{}
	if err := r.DB.SelectContext(ctxTimeout, &items, query); err != nil {
		r.logger.Error("Falha ao listar itens com estoque baixo.", err)
		return nil, apperror.NewDBError("Falha ao listar itens com estoque baixo", err)
	}
	return items, nil
}

func (r *ItemRepository) invalidate(ctx context.Context, id int64) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Delete(ctx, fmt.Sprintf(itemCacheKey, id)); err != nil {
		r.logger.Warn("Falha ao invalidar cache do item.", map[string]interface{}{"item_id": id, "error": err.Error()})
	}
}

// vendorMissing traduz a violação da FK inventory_items.vendor_id.
func vendorMissing(vendorID int64) error {
	return apperror.NewValidationErrorWithFields("Fornecedor inválido.", map[string]string{
		"vendorId": fmt.Sprintf("fornecedor %d não existe", vendorID),
	})
}
