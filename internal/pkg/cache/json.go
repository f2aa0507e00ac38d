package cache

import (
	"context"
	"encoding/json"
	"time"
)

// GetJSON lê a chave e desserializa em dst. Devolve false em miss, cache
// indisponível ou conteúdo corrompido; nesses casos o chamador vai ao banco.
func GetJSON(ctx context.Context, c Client, key string, dst interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.Get(ctx, key)
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dst) == nil
}

// SetJSON serializa e grava o valor. Falhas são devolvidas para log, nunca fatais.
func SetJSON(ctx context.Context, c Client, key string, value interface{}, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, payload, ttl)
}
