package params_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicstock/internal/api/params"
	apperror "clinicstock/internal/errors"
)

func withRouteParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestID(t *testing.T) {
	r := withRouteParam(httptest.NewRequest(http.MethodGet, "/v1/batches/12", nil), "id", "12")
	id, err := params.ID(r, "id")
	require.NoError(t, err)
	assert.EqualValues(t, 12, id)

	r = withRouteParam(httptest.NewRequest(http.MethodGet, "/v1/batches/abc", nil), "id", "abc")
	_, err = params.ID(r, "id")
	assert.True(t, apperror.IsKind(err, "VALIDATION_ERROR"))
}

func TestQueryParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/transactions?batchId=3&page=2&includeDeleted=true", nil)

	batchID, err := params.OptionalID(r, "batchId")
	require.NoError(t, err)
	require.NotNil(t, batchID)
	assert.EqualValues(t, 3, *batchID)

	staffID, err := params.OptionalID(r, "staffId")
	require.NoError(t, err)
	assert.Nil(t, staffID)

	page, err := params.Int(r, "page", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page)

	limit, err := params.Int(r, "limit", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, limit)

	assert.True(t, params.Bool(r, "includeDeleted"))
	assert.False(t, params.Bool(r, "ausente"))
}

func TestPaging(t *testing.T) {
	page, limit, err := params.Paging(httptest.NewRequest(http.MethodGet, "/v1/items?page=4&limit=50", nil))
	require.NoError(t, err)
	assert.Equal(t, 4, page)
	assert.Equal(t, 50, limit)

	_, _, err = params.Paging(httptest.NewRequest(http.MethodGet, "/v1/items?page=9223372036854775807", nil))
	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "page")
}

func TestDecodeJSON_Strict(t *testing.T) {
	var dst struct {
		BatchNumber string `json:"batchNumber"`
	}

	r := httptest.NewRequest(http.MethodPut, "/v1/batches/1", strings.NewReader(`{"batchNumber":"L-1","quantity":99}`))
	err := params.DecodeJSON(r, &dst, true)
	assert.True(t, apperror.IsKind(err, "VALIDATION_ERROR"))

	r = httptest.NewRequest(http.MethodPut, "/v1/batches/1", strings.NewReader(`{"batchNumber":"L-1","quantity":99}`))
	require.NoError(t, params.DecodeJSON(r, &dst, false))
	assert.Equal(t, "L-1", dst.BatchNumber)
}
