package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados de uma movimentação, usados como label.
const (
	OutcomeCommitted    = "committed"
	OutcomeRejected     = "rejected"
	OutcomeInsufficient = "insufficient"
	OutcomeConflict     = "conflict"
	OutcomeError        = "error"
)

// Metrics agrupa as métricas do ClinicStock num registry próprio.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	LedgerMovements      *prometheus.CounterVec
	LedgerConflicts      prometheus.Counter
	LedgerCommitDuration prometheus.Histogram

	CacheBreakerState prometheus.Gauge
}

// New cria e registra todas as métricas.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total de requisições HTTP.",
	}, []string{"method", "route", "status"})

	m.HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duração das requisições HTTP em segundos.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "route"})

	m.LedgerMovements = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "movements_total",
		Help:      "Movimentações de estoque por tipo e resultado.",
	}, []string{"type", "outcome"})

	m.LedgerConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "conflicts_total",
		Help:      "Conflitos de versão (OCC) detectados no commit de movimentações.",
	})

	m.LedgerCommitDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "commit_duration_seconds",
		Help:      "Duração do commit atômico lote + transação.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	})

	m.CacheBreakerState = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "breaker_state",
		Help:      "Estado do circuit breaker do Redis (0=fechado, 1=meio-aberto, 2=aberto).",
	})

	registry.MustRegister(
		m.HTTPRequestsTotal, m.HTTPRequestDuration,
		m.LedgerMovements, m.LedgerConflicts, m.LedgerCommitDuration,
		m.CacheBreakerState,
	)
	return m
}

// Handler expõe o endpoint /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry devolve o registry (usado em testes).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordMovement contabiliza uma movimentação pelo tipo e resultado.
func (m *Metrics) RecordMovement(transactionType, outcome string) {
	m.LedgerMovements.WithLabelValues(transactionType, outcome).Inc()
}

// Middleware mede as requisições HTTP usando o padrão de rota do chi (evita cardinalidade por ID).
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// ObserveCommit registra a duração de um commit do ledger.
func (m *Metrics) ObserveCommit(d time.Duration) {
	m.LedgerCommitDuration.Observe(d.Seconds())
}

// RecordConflict contabiliza um conflito de versão.
func (m *Metrics) RecordConflict() {
	m.LedgerConflicts.Inc()
}

// BreakerStateChanged acompanha as transições do circuit breaker do cache.
func (m *Metrics) BreakerStateChanged(state int) {
	m.CacheBreakerState.Set(float64(state))
}
