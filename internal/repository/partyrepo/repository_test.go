package partyrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperror "clinicstock/internal/errors"
	"clinicstock/internal/pkg/logger"
	"clinicstock/internal/repository/partyrepo"
)

func setup(t *testing.T) (*partyrepo.PartyRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return partyrepo.NewPartyRepository(sqlx.NewDb(mockDB, "postgres"), time.Second, logger.Nop()), mock
}

func TestStaffExists(t *testing.T) {
	repo, mock := setup(t)
	mock.ExpectQuery("SELECT EXISTS \\(SELECT 1 FROM staff WHERE id = \\$1").
		WithArgs(int64(3), false).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.StaffExists(context.Background(), 3, false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPatientExists_IncludeDeleted(t *testing.T) {
	repo, mock := setup(t)
	mock.ExpectQuery("FROM patients").
		WithArgs(int64(8), true).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := repo.PatientExists(context.Background(), 8, true)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExists_DBError(t *testing.T) {
	repo, mock := setup(t)
	mock.ExpectQuery("FROM patients").WillReturnError(errors.New("timeout"))

	_, err := repo.PatientExists(context.Background(), 8, false)
	assert.True(t, apperror.IsKind(err, "INTERNAL_ERROR"))
}
