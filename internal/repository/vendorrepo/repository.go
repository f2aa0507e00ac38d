package vendorrepo

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
)

const vendorColumns = `id, name, contact_person, phone, email, address, notes, is_deleted, created_at, updated_at`

// Define a chave de cache para fornecedores.
const vendorCacheKey = "vendor:%d"

// VendorRepository persiste fornecedores no PostgreSQL com cache-aside no Redis.
type VendorRepository struct {
	DB        *sqlx.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewVendorRepository cria o repositório de fornecedores.
func NewVendorRepository(db *sqlx.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *VendorRepository {
	return &VendorRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

// Create insere um fornecedor ativo.
func (r *VendorRepository) Create(ctx context.Context, v domain.Vendor) (domain.Vendor, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO vendors (name, contact_person, phone, email, address, notes)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + vendorColumns

	var created domain.Vendor
	if err := r.DB.GetContext(ctxTimeout, &created, query,
		v.Name, v.ContactPerson, v.Phone, v.Email, v.Address, v.Notes,
	); err != nil {
		r.logger.Error("Falha ao inserir fornecedor.", err)
		return domain.Vendor{}, apperror.NewDBError("Falha ao criar fornecedor", err)
	}

	r.logger.Info("Fornecedor criado.", map[string]interface{}{"vendor_id": created.ID})
	return created, nil
}

// FindByID busca o fornecedor pelo ID (cache-aside). Fornecedores excluídos
// só são devolvidos com includeDeleted.
func (r *VendorRepository) FindByID(ctx context.Context, id int64, includeDeleted bool) (domain.Vendor, error) {
	key := fmt.Sprintf(vendorCacheKey, id)

	var v domain.Vendor
	if !cache.GetJSON(ctx, r.Cache, key, &v) {
		ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
		defer cancel()

		err := r.DB.GetContext(ctxTimeout, &v, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Vendor{}, apperror.NewNotFoundError(fmt.Sprintf("Fornecedor com ID %d não existe.", id))
		}
		if err != nil {
			r.logger.Error("Falha ao buscar fornecedor no DB.", err)
			return domain.Vendor{}, apperror.NewDBError("Falha ao buscar fornecedor", err)
		}

		if err := cache.SetJSON(ctx, r.Cache, key, v, r.CacheTTL); err != nil {
			r.logger.Warn("Falha ao gravar fornecedor no cache.", map[string]interface{}{"vendor_id": id, "error": err.Error()})
		}
	}

	if v.IsDeleted && !includeDeleted {
		return domain.Vendor{}, apperror.NewNotFoundError(fmt.Sprintf("Fornecedor com ID %d não existe.", id))
	}
	return v, nil
}

// Exists informa se o fornecedor existe (e está ativo, salvo includeDeleted).
func (r *VendorRepository) Exists(ctx context.Context, id int64, includeDeleted bool) (bool, error) {
	_, err := r.FindByID(ctx, id, includeDeleted)
	if apperror.IsKind(err, "NOT_FOUND") {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List busca fornecedores por nome (ILIKE) com paginação. Devolve também o total.
func (r *VendorRepository) List(ctx context.Context, filter domain.VendorFilter) ([]domain.Vendor, int, error) {
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
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.DB.GetContext(ctxTimeout, &total, `SELECT COUNT(*) FROM vendors`+clause, args...); err != nil {
		r.logger.Error("Falha ao contar fornecedores.", err)
		return nil, 0, apperror.NewDBError("Falha ao listar fornecedores", err)
	}

	page, limit := domain.Pagination(filter.Page, filter.Limit)
	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`SELECT %s FROM vendors%s ORDER BY name, id LIMIT $%d OFFSET $%d`,
		vendorColumns, clause, len(args)-1, len(args))

	vendors := []domain.Vendor{}
	if err := r.DB.SelectContext(ctxTimeout, &vendors, query, args...); err != nil {
		r.logger.Error("Falha ao listar fornecedores.", err)
		return nil, 0, apperror.NewDBError("Falha ao listar fornecedores", err)
	}
	return vendors, total, nil
}

// Update altera os dados de um fornecedor ativo.
func (r *VendorRepository) Update(ctx context.Context, v domain.Vendor) (domain.Vendor, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE vendors
        SET name = $1, contact_person = $2, phone = $3, email = $4, address = $5, notes = $6, updated_at = NOW()
        WHERE id = $7 AND is_deleted = FALSE
        RETURNING ` + vendorColumns

	var updated domain.Vendor
	err := r.DB.GetContext(ctxTimeout, &updated, query,
		v.Name, v.ContactPerson, v.Phone, v.Email, v.Address, v.Notes, v.ID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vendor{}, apperror.NewNotFoundError(fmt.Sprintf("Fornecedor com ID %d não existe.", v.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar fornecedor.", err)
		return domain.Vendor{}, apperror.NewDBError("Falha ao atualizar fornecedor", err)
	}

	r.invalidate(ctx, v.ID)
	return updated, nil
}

// SoftDelete marca o fornecedor como excluído.
func (r *VendorRepository) SoftDelete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout,
		`UPDATE vendors SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		r.logger.Error("Falha ao excluir fornecedor.", err)
		return apperror.NewDBError("Falha ao excluir fornecedor", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return apperror.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rows == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Fornecedor com ID %d não existe.", id))
	}

	r.invalidate(ctx, id)
	return nil
}

// Restore reativa um fornecedor excluído.
func (r *VendorRepository) Restore(ctx context.Context, id int64) (domain.Vendor, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var restored domain.Vendor
	err := r.DB.GetContext(ctxTimeout, &restored, `
        UPDATE vendors SET is_deleted = FALSE, updated_at = NOW()
        WHERE id = $1 AND is_deleted = TRUE
        RETURNING `+vendorColumns, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vendor{}, apperror.NewNotFoundError(fmt.Sprintf("Fornecedor excluído com ID %d não existe.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao restaurar fornecedor.", err)
		return domain.Vendor{}, apperror.NewDBError("Falha ao restaurar fornecedor", err)
	}

	r.invalidate(ctx, id)
	return restored, nil
}

func (r *VendorRepository) invalidate(ctx context.Context, id int64) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Delete(ctx, fmt.Sprintf(vendorCacheKey, id)); err != nil {
		r.logger.Warn("Falha ao invalidar cache do fornecedor.", map[string]interface{}{"vendor_id": id, "error": err.Error()})
	}
}
