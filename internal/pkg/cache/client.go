package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sony/gobreaker"
)

// Client define o contrato de cache usado pelos repositórios e pelo rate limiter.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	GetInt(ctx context.Context, key string) (int, error)
	Incr(ctx context.Context, key string) (int64, error)
}

// ErrCacheMiss é retornado quando a chave não é encontrada no cache.
var ErrCacheMiss = redis.Nil

// ErrCacheUnavailable é retornado enquanto o circuit breaker está aberto.
var ErrCacheUnavailable = errors.New("cache indisponível (circuit breaker aberto)")

// cacheMiss marca, dentro do breaker, que a chave não existe (não conta como falha).
type cacheMiss struct{}

// RedisClient é a implementação de Client sobre o Redis, protegida por um circuit breaker:
// após falhas consecutivas as chamadas retornam ErrCacheUnavailable sem tocar o Redis
// e os repositórios seguem direto para o banco.
type RedisClient struct {
	rdb     *redis.Client
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
}

// BreakerSettings devolve a configuração do breaker do cache.
func BreakerSettings(name string, onChange func(name string, from, to gobreaker.State)) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: onChange,
	}
}

// NewRedisClient cria o cliente Redis. O ping inicial não é fatal: com o Redis fora,
// o breaker abre e a aplicação opera sem cache.
func NewRedisClient(addr string, timeout time.Duration, settings gobreaker.Settings) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	pingErr := rdb.Ping(ctx).Err()

	return &RedisClient{
		rdb:     rdb,
		breaker: gobreaker.NewCircuitBreaker(settings),
		timeout: timeout,
	}, pingErr
}

func (c *RedisClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	res, err := c.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrCacheUnavailable
	}
	return res, err
}

// Get recupera o valor associado a uma chave.
func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	res, err := c.execute(func() (interface{}, error) {
		val, err := c.rdb.Get(ctx, key).Result()
		if err == redis.Nil {
			return cacheMiss{}, nil
		}
		return val, err
	})
	if err != nil {
		return "", err
	}
	if _, miss := res.(cacheMiss); miss {
		return "", ErrCacheMiss
	}
	return res.(string), nil
}

// Set define um valor para uma chave com um tempo de expiração.
func (c *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	_, err := c.execute(func() (interface{}, error) {
		return nil, c.rdb.Set(ctx, key, value, expiration).Err()
	})
	return err
}

// Delete remove as chaves do cache (chaves inexistentes são ignoradas).
func (c *RedisClient) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := c.execute(func() (interface{}, error) {
		return nil, c.rdb.Del(ctx, keys...).Err()
	})
	return err
}

// GetInt lê um contador inteiro.
func (c *RedisClient) GetInt(ctx context.Context, key string) (int, error) {
	val, err := c.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

// Incr incrementa um contador e devolve o novo valor.
func (c *RedisClient) Incr(ctx context.Context, key string) (int64, error) {
	res, err := c.execute(func() (interface{}, error) {
		return c.rdb.Incr(ctx, key).Result()
	})
	if err != nil {
		return 0, err
	}
	return res.(int64), nil
}

// State expõe o estado atual do breaker.
func (c *RedisClient) State() gobreaker.State {
	return c.breaker.State()
}

// Close encerra as conexões com o Redis.
func (c *RedisClient) Close() error {
	return c.rdb.Close()
}
