// Package rbac resuelve sets de roles contra sets de recursos protegidos.
package rbac

import (
	"context"

	"github.com/dropDatabas3/janus/internal/domain/repository"
)

// Resolver computa la matriz de permisos rol→recurso. Es una función pura
// del grafo actual: sin estado propio, seguro de llamar concurrentemente.
// El resultado refleja un snapshot del grafo al momento de la query (sin
// garantía de aislamiento transaccional entre dos llamadas).
type Resolver struct {
	repo repository.AccessRepository
}

func NewResolver(repo repository.AccessRepository) *Resolver {
	return &Resolver{repo: repo}
}

// Authorize mapea cada recurso pedido a su decisión: true (o el value opaco
// del recurso cuando no es null) si es alcanzable desde el set de roles via
// resource_roles, false si no.
//
// Precondición: ambos sets no vacíos. Un input vacío falla con ErrEmptyInput
// antes de tocar el store; el caller lo presenta como "nada permitido".
func (r *Resolver) Authorize(ctx context.Context, roles []int64, resources []string) (map[string]any, error) {
	if len(roles) == 0 || len(resources) == 0 {
		return nil, repository.ErrEmptyInput
	}

	grants, err := r.repo.GrantedResources(ctx, dedupeInt64(roles), dedupeStr(resources))
	if err != nil {
		return nil, err
	}

	out := DenyAll(resources)
	for _, g := range grants {
		if _, requested := out[g.Path]; !requested {
			continue
		}
		if g.Value != nil {
			out[g.Path] = *g.Value
		} else {
			out[g.Path] = true
		}
	}
	return out, nil
}

// DenyAll construye la matriz con todos los recursos pedidos en false.
// Es el resultado para tokens sin claim de roles y el punto de partida
// de Authorize.
func DenyAll(resources []string) map[string]any {
	out := make(map[string]any, len(resources))
	for _, p := range resources {
		out[p] = false
	}
	return out
}

func dedupeInt64(in []int64) []int64 {
	seen := make(map[int64]struct{}, len(in))
	out := make([]int64, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func dedupeStr(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
