package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"

	// Infraestrutura e utilitários
	"clinicstock/config"
	"clinicstock/internal/pkg/cache"
	"clinicstock/internal/pkg/database"
	"clinicstock/internal/pkg/logger"
	"clinicstock/internal/pkg/metrics"
	"clinicstock/internal/pkg/token"

	// Camadas para injeção de dependências
	"clinicstock/internal/api/batch"
	"clinicstock/internal/api/item"
	"clinicstock/internal/api/ledger"
	"clinicstock/internal/api/router"
	"clinicstock/internal/api/vendor"
	"clinicstock/internal/repository/batchrepo"
	"clinicstock/internal/repository/itemrepo"
	"clinicstock/internal/repository/ledgerrepo"
	"clinicstock/internal/repository/partyrepo"
	"clinicstock/internal/repository/vendorrepo"
	"clinicstock/internal/service/batchservice"
	"clinicstock/internal/service/itemservice"
	"clinicstock/internal/service/ledgerservice"
	"clinicstock/internal/service/vendorservice"
)

// @title                       ClinicStock API
// @version                     1.0
// @description                 Ledger de estoque por lote da clínica: movimentações IN/OUT/ADJUSTMENT, lotes, catálogo e fornecedores.
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// 0. Variáveis de ambiente (.env é opcional; em Docker vêm do ambiente)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	appMetrics := metrics.New("clinicstock")

	// 1. Banco de Dados (PostgreSQL)
	pool := database.DefaultPoolConfig()
	pool.MaxOpenConns = cfg.DBMaxOpenConns
	pool.MaxIdleConns = cfg.DBMaxIdleConns
	db, err := database.NewPostgresDB(context.Background(), cfg.DatabaseURL, pool)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// 2. Cache (Redis) atrás do circuit breaker
	breaker := cache.BreakerSettings("redis", func(name string, from, to gobreaker.State) {
		appMetrics.BreakerStateChanged(int(to))
		log.Warn("Circuit breaker do cache mudou de estado.", map[string]interface{}{
			"breaker": name,
			"from":    from.String(),
			"to":      to.String(),
		})
	})
	cacheClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout, breaker)
	if err != nil {
		log.Warn("Redis indisponível na inicialização; seguindo sem cache até o breaker fechar.", map[string]interface{}{"error": err.Error()})
	} else {
		log.Info("Conexão Redis estabelecida.", nil)
	}
	defer cacheClient.Close()

	// 3. Injeção de dependências: Repository -> Service -> Handler
	vendorRepo := vendorrepo.NewVendorRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	itemRepo := itemrepo.NewItemRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	batchRepo := batchrepo.NewBatchRepository(db, cfg.DBTimeout, log)
	ledgerRepo := ledgerrepo.NewLedgerRepository(db, cfg.DBTimeout, log)
	partyRepo := partyrepo.NewPartyRepository(db, cfg.DBTimeout, log)
	log.Debug("Repositórios inicializados.", nil)

	vendorSvc := vendorservice.NewService(vendorRepo, log)
	itemSvc := itemservice.NewService(itemRepo, vendorRepo, log)
	batchSvc := batchservice.NewService(batchRepo, itemRepo, vendorRepo, partyRepo, log)
	ledgerSvc := ledgerservice.NewService(batchRepo, ledgerRepo, partyRepo, appMetrics, ledgerservice.RetryPolicy{
		MaxRetries: uint64(cfg.LedgerMaxRetries),
		Base:       cfg.LedgerRetryBase,
		MaxDelay:   cfg.LedgerRetryMaxDelay,
	}, log)
	log.Debug("Serviços inicializados.", nil)

	tokenSvc := token.NewService(cfg.JWTSecretKey, time.Hour*time.Duration(cfg.JWTExpiryHours))

	// 4. Roteador e servidor
	r := router.NewRouter(router.Handlers{
		Ledger: ledger.NewHandler(ledgerSvc, log),
		Batch:  batch.NewHandler(batchSvc, log),
		Item:   item.NewHandler(itemSvc, log),
		Vendor: vendor.NewHandler(vendorSvc, log),
	}, router.Options{
		Tokens:          tokenSvc,
		Cache:           cacheClient,
		Metrics:         appMetrics,
		Logger:          log,
		RateLimit:       cfg.RateLimitMaxRequests,
		RateLimitWindow: cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e graceful shutdown
	go func() {
		log.Info("Servidor ClinicStock ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
