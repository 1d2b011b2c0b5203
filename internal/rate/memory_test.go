package rate

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	l := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := l.Allow(ctx, "1.2.3.4|/v1/token")
		if err != nil {
			t.Fatalf("Allow #%d: %v", i, err)
		}
		if !res.Allowed {
			t.Fatalf("Allow #%d denegado dentro del límite", i)
		}
		if res.CurrentHits != int64(i) {
			t.Errorf("CurrentHits = %d, esperado %d", res.CurrentHits, i)
		}
	}

	res, err := l.Allow(ctx, "1.2.3.4|/v1/token")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if res.Allowed {
		t.Error("el cuarto hit debería exceder el límite")
	}
	if res.Remaining != 0 {
		t.Errorf("Remaining = %d, esperado 0", res.Remaining)
	}
	if res.RetryAfter <= 0 || res.RetryAfter > time.Minute {
		t.Errorf("RetryAfter = %v fuera de rango", res.RetryAfter)
	}
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	if res, _ := l.Allow(ctx, "a"); !res.Allowed {
		t.Fatal("primer hit de a denegado")
	}
	if res, _ := l.Allow(ctx, "a"); res.Allowed {
		t.Error("segundo hit de a permitido")
	}
	if res, _ := l.Allow(ctx, "b"); !res.Allowed {
		t.Error("el límite de a contaminó a b")
	}
}

func TestOpen_DisabledReturnsNil(t *testing.T) {
	if l := Open(Config{Enabled: false}, nil); l != nil {
		t.Errorf("Open deshabilitado = %T, esperado nil", l)
	}
}

func TestOpen_MemoryFallbackWithoutRedis(t *testing.T) {
	l := Open(Config{Enabled: true, Kind: "redis", MaxRequests: 5, Window: time.Minute}, nil)
	if _, ok := l.(*MemoryLimiter); !ok {
		t.Errorf("Open sin cliente redis = %T, esperado *MemoryLimiter", l)
	}
}
