// Package partyrepo consulta as tabelas de funcionários e pacientes mantidas pelo
// núcleo da clínica. Aqui só existem verificações de existência.
package partyrepo

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	apperror "clinicstock/internal/errors"
	"clinicstock/internal/pkg/logger"
)

// PartyRepository verifica funcionários e pacientes.
type PartyRepository struct {
	DB        *sqlx.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewPartyRepository cria o repositório.
func NewPartyRepository(db *sqlx.DB, dbTimeout time.Duration, log logger.Logger) *PartyRepository {
	return &PartyRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

// StaffExists informa se o funcionário existe (ativo, salvo includeDeleted).
func (r *PartyRepository) StaffExists(ctx context.Context, id int64, includeDeleted bool) (bool, error) {
	return r.exists(ctx, "staff", id, includeDeleted)
}

// PatientExists informa se o paciente existe (ativo, salvo includeDeleted).
func (r *PartyRepository) PatientExists(ctx context.Context, id int64, includeDeleted bool) (bool, error) {
	return r.exists(ctx, "patients", id, includeDeleted)
}

// table vem sempre de uma constante deste pacote.
func (r *PartyRepository) exists(ctx context.Context, table string, id int64, includeDeleted bool) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT EXISTS (SELECT 1 FROM ` + table + ` WHERE id = $1 AND (is_deleted = FALSE OR $2))`

	var found bool
	if err := r.DB.GetContext(ctxTimeout, &found, query, id, includeDeleted); err != nil {
		r.logger.Error("Falha ao verificar "+table+".", err)
		return false, apperror.NewDBError("Falha ao verificar "+table, err)
	}
	return found, nil
}
