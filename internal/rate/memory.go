package rate

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryLimiter: fixed window sobre go-cache. Solo para dev/single-node:
// el contador no se comparte entre réplicas.
type MemoryLimiter struct {
	c      *gocache.Cache
	max    int64
	window time.Duration
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		c:      gocache.New(window, time.Minute),
		max:    int64(max),
		window: window,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := time.Now().UTC()
	winStart := now.Truncate(l.window)
	k := fmt.Sprintf("%s:%d", strings.ReplaceAll(key, " ", "_"), winStart.Unix())

	var hits int64
	if err := l.c.Add(k, int64(1), l.window); err != nil {
		n, err := l.c.IncrementInt64(k, 1)
		if err != nil {
			// la entrada expiró entre Add e Increment: ventana nueva
			l.c.Set(k, int64(1), l.window)
			n = 1
		}
		hits = n
	} else {
		hits = 1
	}

	remaining := l.max - hits
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:     hits <= l.max,
		Remaining:   remaining,
		RetryAfter:  winStart.Add(l.window).Sub(now),
		CurrentHits: hits,
	}, nil
}
