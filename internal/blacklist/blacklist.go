// Package blacklist implementa la lista de revocación de tokens sobre un
// sorted set compartido de Redis.
//
// Miembro = jti del token, score = timestamp de revocación. Antes de cada
// operación se podan las entradas con score anterior a now - TTL: una entrada
// más vieja que la ventana de validez del access token no puede corresponder
// a un token vivo, así que el set queda acotado a una ventana de TTL de
// revocaciones, independiente del volumen histórico. La poda es idempotente
// y segura frente a podas concurrentes.
package blacklist

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

// ErrUnavailable indica que el store de Redis no está accesible.
// El path de autorización lo trata como fail closed: un blacklist
// inalcanzable niega confianza en el token, nunca lo acepta en silencio.
var ErrUnavailable = errors.New("blacklist unavailable")

// zstore es el subconjunto de comandos de sorted set que usa el blacklist.
// *rdb.Client lo satisface; los tests lo fakean en memoria.
type zstore interface {
	ZRemRangeByScore(ctx context.Context, key, min, max string) *rdb.IntCmd
	ZAdd(ctx context.Context, key string, members ...rdb.Z) *rdb.IntCmd
	ZScore(ctx context.Context, key, member string) *rdb.FloatCmd
}

// Blacklist es el set time-windowed de token ids revocados.
type Blacklist struct {
	z   zstore
	key string
	ttl time.Duration
	now func() time.Time
}

// New construye el blacklist sobre un cliente de Redis.
// key es la clave del sorted set compartido; accessTTL es la ventana de
// validez del access token (gobierna la poda).
func New(client *rdb.Client, key string, accessTTL time.Duration) *Blacklist {
	return newWithStore(client, key, accessTTL)
}

func newWithStore(z zstore, key string, accessTTL time.Duration) *Blacklist {
	if key == "" {
		key = "blacklist"
	}
	return &Blacklist{z: z, key: key, ttl: accessTTL, now: time.Now}
}

// Revoke poda las entradas fuera de ventana e inserta tokenID con score now.
// Idempotente: re-revocar un token ya revocado re-inserta el mismo miembro
// (el set no crece más de una entrada por jti).
func (b *Blacklist) Revoke(ctx context.Context, tokenID string) error {
	if err := b.prune(ctx); err != nil {
		return err
	}
	score := float64(b.now().UnixNano()) / float64(time.Second)
	if err := b.z.ZAdd(ctx, b.key, rdb.Z{Score: score, Member: tokenID}).Err(); err != nil {
		return fmt.Errorf("%w: zadd: %v", ErrUnavailable, err)
	}
	return nil
}

// IsRevoked poda y chequea membresía de tokenID.
// Error => ErrUnavailable; el caller decide (fail closed en authorize).
func (b *Blacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if err := b.prune(ctx); err != nil {
		return false, err
	}
	err := b.z.ZScore(ctx, b.key, tokenID).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, rdb.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("%w: zscore: %v", ErrUnavailable, err)
	}
}

// prune elimina entradas con score <= now - ttl. Nunca toca entradas todavía
// dentro de la ventana: no hay falsos negativos para tokens no expirados.
func (b *Blacklist) prune(ctx context.Context) error {
	cutoff := float64(b.now().Add(-b.ttl).UnixNano()) / float64(time.Second)
	max := strconv.FormatFloat(cutoff, 'f', -1, 64)
	if err := b.z.ZRemRangeByScore(ctx, b.key, "-inf", max).Err(); err != nil {
		return fmt.Errorf("%w: zremrangebyscore: %v", ErrUnavailable, err)
	}
	return nil
}
