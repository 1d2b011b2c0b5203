package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/janus/internal/domain/repository"
)

// GetUserByCredentials: una sola query, LEFT JOIN a user_roles para agregar
// los role ids. Un usuario sin roles autentica con lista vacía. No hay fila
// => ErrNotFound, indistinguible entre username inexistente y password
// incorrecto.
func (s *Store) GetUserByCredentials(ctx context.Context, username, passwordDigest string) (*repository.AuthenticatedUser, error) {
	const q = `
SELECT u.id,
       COALESCE(array_agg(DISTINCT ur.role_id) FILTER (WHERE ur.role_id IS NOT NULL), '{}') AS roles
FROM users u
LEFT JOIN user_roles ur ON u.id = ur.user_id
WHERE u.username = $1 AND u.password_hash = $2
GROUP BY u.id;`

	var out repository.AuthenticatedUser
	err := s.pool.QueryRow(ctx, q, username, passwordDigest).Scan(&out.ID, &out.Roles)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// GetUserWithRolesByUsername: variante para hashers con salt (argon2id),
// donde la igualdad de digests no se puede resolver en SQL.
func (s *Store) GetUserWithRolesByUsername(ctx context.Context, username string) (*repository.User, []int64, error) {
	const q = `
SELECT u.id, u.username, u.password_hash,
       COALESCE(array_agg(DISTINCT ur.role_id) FILTER (WHERE ur.role_id IS NOT NULL), '{}') AS roles
FROM users u
LEFT JOIN user_roles ur ON u.id = ur.user_id
WHERE u.username = $1
GROUP BY u.id;`

	var u repository.User
	var roles []int64
	err := s.pool.QueryRow(ctx, q, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &roles)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, repository.ErrNotFound
		}
		return nil, nil, err
	}
	return &u, roles, nil
}

// GrantedResources: recursos del set pedido alcanzables desde el set de
// roles via resource_roles. DISTINCT porque varios roles pueden alcanzar el
// mismo recurso.
func (s *Store) GrantedResources(ctx context.Context, roleIDs []int64, paths []string) ([]repository.Grant, error) {
	const q = `
SELECT DISTINCT r.path, r.value
FROM resource_roles rr
INNER JOIN resources r ON rr.resource_id = r.id
WHERE r.path = ANY($1) AND rr.role_id = ANY($2);`

	rows, err := s.pool.Query(ctx, q, paths, roleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.Grant
	for rows.Next() {
		var g repository.Grant
		if err := rows.Scan(&g.Path, &g.Value); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// ReachableResources: paths (distinct) alcanzables desde el set de roles.
func (s *Store) ReachableResources(ctx context.Context, roleIDs []int64) ([]string, error) {
	const q = `
SELECT DISTINCT r.path
FROM resource_roles rr
INNER JOIN resources r ON rr.resource_id = r.id
WHERE rr.role_id = ANY($1)
ORDER BY r.path;`

	rows, err := s.pool.Query(ctx, q, roleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
