package blacklist

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

// fakeZStore implementa zstore en memoria con la misma semántica de sorted
// set que usa el blacklist: miembro único con score, poda por rango de score.
type fakeZStore struct {
	scores map[string]float64
	err    error // si no es nil, todos los comandos fallan
}

func newFakeZStore() *fakeZStore {
	return &fakeZStore{scores: map[string]float64{}}
}

func (f *fakeZStore) ZRemRangeByScore(ctx context.Context, key, min, max string) *rdb.IntCmd {
	if f.err != nil {
		return rdb.NewIntResult(0, f.err)
	}
	cutoff, _ := strconv.ParseFloat(max, 64)
	var removed int64
	for m, s := range f.scores {
		if s <= cutoff {
			delete(f.scores, m)
			removed++
		}
	}
	return rdb.NewIntResult(removed, nil)
}

func (f *fakeZStore) ZAdd(ctx context.Context, key string, members ...rdb.Z) *rdb.IntCmd {
	if f.err != nil {
		return rdb.NewIntResult(0, f.err)
	}
	var added int64
	for _, z := range members {
		m := z.Member.(string)
		if _, ok := f.scores[m]; !ok {
			added++
		}
		f.scores[m] = z.Score
	}
	return rdb.NewIntResult(added, nil)
}

func (f *fakeZStore) ZScore(ctx context.Context, key, member string) *rdb.FloatCmd {
	if f.err != nil {
		return rdb.NewFloatResult(0, f.err)
	}
	s, ok := f.scores[member]
	if !ok {
		return rdb.NewFloatResult(0, rdb.Nil)
	}
	return rdb.NewFloatResult(s, nil)
}

func TestRevokeThenIsRevoked(t *testing.T) {
	z := newFakeZStore()
	bl := newWithStore(z, "blacklist", time.Hour)

	ctx := context.Background()
	if err := bl.Revoke(ctx, "jti-1"); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if !revoked {
		t.Error("jti-1 debería estar revocado")
	}

	revoked, err = bl.IsRevoked(ctx, "jti-otro")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if revoked {
		t.Error("jti-otro no fue revocado")
	}
}

func TestRevoke_Idempotent(t *testing.T) {
	z := newFakeZStore()
	bl := newWithStore(z, "blacklist", time.Hour)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := bl.Revoke(ctx, "jti-1"); err != nil {
			t.Fatalf("Revoke #%d: %v", i, err)
		}
	}

	if len(z.scores) != 1 {
		t.Errorf("el set tiene %d entradas, esperado 1", len(z.scores))
	}
}

func TestPrune_EvictsOutsideWindow(t *testing.T) {
	z := newFakeZStore()
	bl := newWithStore(z, "blacklist", time.Hour)

	base := time.Now()
	bl.now = func() time.Time { return base }

	ctx := context.Background()
	if err := bl.Revoke(ctx, "jti-viejo"); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	// Dentro de la ventana la entrada sigue viva
	bl.now = func() time.Time { return base.Add(59 * time.Minute) }
	revoked, err := bl.IsRevoked(ctx, "jti-viejo")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if !revoked {
		t.Error("la entrada fue podada antes de cumplir la ventana")
	}

	// Pasada la ventana, la próxima operación la poda
	bl.now = func() time.Time { return base.Add(61 * time.Minute) }
	revoked, err = bl.IsRevoked(ctx, "jti-viejo")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if revoked {
		t.Error("la entrada fuera de ventana no fue podada")
	}
	if len(z.scores) != 0 {
		t.Errorf("el set tiene %d entradas tras la poda, esperado 0", len(z.scores))
	}
}

func TestUnavailable_WrapsError(t *testing.T) {
	z := newFakeZStore()
	z.err = errors.New("connection refused")
	bl := newWithStore(z, "blacklist", time.Hour)

	ctx := context.Background()
	if err := bl.Revoke(ctx, "jti-1"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Revoke err = %v, esperado ErrUnavailable", err)
	}
	if _, err := bl.IsRevoked(ctx, "jti-1"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("IsRevoked err = %v, esperado ErrUnavailable", err)
	}
}
