package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"clinicstock/internal/api/batch"
	"clinicstock/internal/api/item"
	"clinicstock/internal/api/ledger"
	"clinicstock/internal/api/vendor"
	"clinicstock/internal/domain"
	"clinicstock/internal/pkg/cache"
	"clinicstock/internal/pkg/logger"
	"clinicstock/internal/pkg/metrics"
	"clinicstock/internal/pkg/middleware"

	_ "clinicstock/docs" // documentação Swagger registrada pelo swag
)

// Handlers agrupa os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Ledger *ledger.Handler
	Batch  *batch.Handler
	Item   *item.Handler
	Vendor *vendor.Handler
}

// Options reúne a infraestrutura usada pelos middlewares.
type Options struct {
	Tokens          middleware.TokenService
	Cache           cache.Client
	Metrics         *metrics.Metrics
	Logger          logger.Logger
	RateLimit       int
	RateLimitWindow time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	// --- 1. Middlewares globais ---
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	// --- 2. Health check, métricas e documentação ---
	r.Get("/ping", PingHandler)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// --- 3. Rotas v1 (autenticadas) ---
	writeLimit := middleware.RateLimiter(opts.Cache, opts.RateLimit, opts.RateLimitWindow, opts.Logger)
	ledgerWriters := middleware.RequireRoles(opts.Logger, domain.LedgerWriterRoles...)
	catalogManagers := middleware.RequireRoles(opts.Logger, domain.CatalogManagerRoles...)
	batchRemovers := middleware.RequireRoles(opts.Logger, domain.BatchRemoverRoles...)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(opts.Tokens, opts.Logger))

		// Ledger
		r.With(writeLimit, ledgerWriters).Post("/movements", h.Ledger.RecordMovementHandler)
		r.Get("/transactions", h.Ledger.ListTransactionsHandler)
		r.Get("/transactions/{id}", h.Ledger.GetTransactionHandler)

		// Lotes
		r.Route("/batches", func(r chi.Router) {
			r.With(writeLimit, catalogManagers).Post("/", h.Batch.CreateBatchHandler)
			r.Get("/expiring", h.Batch.ListExpiringHandler)
			r.Get("/{id}", h.Batch.GetBatchHandler)
			r.With(writeLimit, catalogManagers).Put("/{id}", h.Batch.UpdateBatchHandler)
			r.With(writeLimit, batchRemovers).Delete("/{id}", h.Batch.DeleteBatchHandler)
			r.Get("/{id}/reconcile", h.Ledger.ReconcileBatchHandler)
		})

		// Catálogo
		r.Route("/items", func(r chi.Router) {
			r.Get("/", h.Item.ListItemsHandler)
			r.Get("/low-stock", h.Item.LowStockHandler)
			r.Get("/{id}", h.Item.GetItemHandler)
			r.Get("/{id}/batches", h.Batch.ListByItemHandler)
			r.Group(func(r chi.Router) {
				r.Use(writeLimit, catalogManagers)
				r.Post("/", h.Item.CreateItemHandler)
				r.Put("/{id}", h.Item.UpdateItemHandler)
				r.Delete("/{id}", h.Item.DeleteItemHandler)
				r.Post("/{id}/restore", h.Item.RestoreItemHandler)
			})
		})

		// Fornecedores
		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", h.Vendor.ListVendorsHandler)
			r.Get("/{id}", h.Vendor.GetVendorHandler)
			r.Group(func(r chi.Router) {
				r.Use(writeLimit, catalogManagers)
				r.Post("/", h.Vendor.CreateVendorHandler)
				r.Put("/{id}", h.Vendor.UpdateVendorHandler)
				r.Delete("/{id}", h.Vendor.DeleteVendorHandler)
				r.Post("/{id}/restore", h.Vendor.RestoreVendorHandler)
			})
		})
	})

	return r
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
