package rate

import (
	"strings"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

// Config selecciona el backend del limiter.
type Config struct {
	Enabled     bool
	Kind        string // "redis" | "memory"
	MaxRequests int
	Window      time.Duration
}

// Open construye el limiter configurado. Retorna nil si está deshabilitado;
// el middleware trata nil como "sin límite".
func Open(cfg Config, client *rdb.Client) Limiter {
	if !cfg.Enabled {
		return nil
	}
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = 10
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	switch strings.ToLower(cfg.Kind) {
	case "redis":
		if client != nil {
			return NewRedisLimiter(client, "janus:rl:", cfg.MaxRequests, cfg.Window)
		}
		return NewMemoryLimiter(cfg.MaxRequests, cfg.Window)
	default:
		return NewMemoryLimiter(cfg.MaxRequests, cfg.Window)
	}
}
