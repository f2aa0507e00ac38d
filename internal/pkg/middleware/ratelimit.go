package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"clinicstock/internal/pkg/cache"
	"clinicstock/internal/pkg/logger"
)

// RateLimiter limita requisições por IP numa janela fixa guardada no cache.
// Com o cache indisponível a requisição segue sem limite.
func RateLimiter(client cache.Client, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip
			ctx := r.Context()

			count, err := client.GetInt(ctx, key)
			switch {
			case errors.Is(err, cache.ErrCacheMiss):
				if setErr := client.Set(ctx, key, 1, window); setErr != nil {
					log.Warn("Falha ao iniciar janela de rate limit", map[string]interface{}{"ip": ip, "error": setErr.Error()})
				}
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-1))
				next.ServeHTTP(w, r)
				return
			case err != nil:
				log.Warn("Rate limit ignorado: cache indisponível", map[string]interface{}{"ip": ip, "error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			if count >= limit {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			if _, err := client.Incr(ctx, key); err != nil {
				log.Warn("Falha ao incrementar rate limit", map[string]interface{}{"ip": ip, "error": err.Error()})
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-count-1))
			next.ServeHTTP(w, r)
		})
	}
}
