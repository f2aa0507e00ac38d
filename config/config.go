package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config armazena todas as configurações do ClinicStock.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Banco de Dados (PostgreSQL)
	DatabaseURL    string
	DBTimeout      time.Duration
	DBMaxOpenConns int
	DBMaxIdleConns int

	// Cache (Redis)
	RedisAddr    string
	CacheTimeout time.Duration
	CacheTTL     time.Duration

	// Segurança (JWT)
	JWTSecretKey   string
	JWTExpiryHours int

	// Rate Limiting (rotas de escrita)
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Ledger: tentativas de reprocessamento em conflito de versão (OCC)
	LedgerMaxRetries    int
	LedgerRetryBase     time.Duration
	LedgerRetryMaxDelay time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
// O .env (quando existir) é carregado antes, em cmd/, via godotenv.
func LoadConfig() *Config {
	return &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Banco de Dados (PostgreSQL)
		DatabaseURL:    mustGetEnv("DATABASE_URL"),
		DBTimeout:      getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,
		DBMaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 10),

		// 3. Cache (Redis)
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTimeout: getDurationEnv("CACHE_TIMEOUT_SEC", 2) * time.Second,
		CacheTTL:     getDurationEnv("CACHE_TTL_SEC", 300) * time.Second,

		// 4. Segurança (JWT)
		JWTSecretKey:   mustGetEnv("JWT_SECRET_KEY"),
		JWTExpiryHours: getIntEnv("JWT_EXPIRY_HOURS", 8),

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,

		// 6. Ledger
		LedgerMaxRetries:    getIntEnv("LEDGER_MAX_RETRIES", 3),
		LedgerRetryBase:     getDurationEnv("LEDGER_RETRY_BASE_MS", 20) * time.Millisecond,
		LedgerRetryMaxDelay: getDurationEnv("LEDGER_RETRY_MAX_DELAY_MS", 500) * time.Millisecond,
	}
}

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration (sem unidade).
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil || value < 0 {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
