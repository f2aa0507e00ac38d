package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"clinicstock/internal/pkg/metrics"
)

func TestRecordMovement(t *testing.T) {
	m := metrics.New("clinicstock")

	m.RecordMovement("OUT", metrics.OutcomeCommitted)
	m.RecordMovement("OUT", metrics.OutcomeCommitted)
	m.RecordMovement("OUT", metrics.OutcomeInsufficient)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LedgerMovements.WithLabelValues("OUT", metrics.OutcomeCommitted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LedgerMovements.WithLabelValues("OUT", metrics.OutcomeInsufficient)))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := metrics.New("clinicstock")
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/v1/batches/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/batches/12", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/v1/batches/{id}", "404")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := metrics.New("clinicstock")
	m.LedgerConflicts.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "clinicstock_ledger_conflicts_total 1")
}
