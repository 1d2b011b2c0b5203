package pg

import (
	"context"

	"github.com/dropDatabas3/janus/internal/domain/repository"
)

// ---------- USERS ----------

func (s *Store) CreateUser(ctx context.Context, u *repository.User) (int64, error) {
	const q = `
INSERT INTO users (username, password_hash, display_name, avatar)
VALUES ($1, $2, $3, $4)
RETURNING id;`
	var id int64
	if err := s.pool.QueryRow(ctx, q, u.Username, u.PasswordHash, u.DisplayName, u.Avatar).Scan(&id); err != nil {
		return 0, mapErr(err)
	}
	return id, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*repository.User, error) {
	const q = `SELECT id, username, password_hash, display_name, avatar FROM users WHERE id = $1;`
	var u repository.User
	if err := s.pool.QueryRow(ctx, q, id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.DisplayName, &u.Avatar); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]repository.User, error) {
	const q = `SELECT id, username, password_hash, display_name, avatar FROM users ORDER BY id;`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.User
	for rows.Next() {
		var u repository.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.DisplayName, &u.Avatar); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateUser: partial update, los campos nil no se tocan.
func (s *Store) UpdateUser(ctx context.Context, id int64, in repository.UpdateUser) error {
	const q = `
UPDATE users SET
  username      = COALESCE($2, username),
  password_hash = COALESCE($3, password_hash),
  display_name  = COALESCE($4, display_name),
  avatar        = COALESCE($5, avatar)
WHERE id = $1;`
	tag, err := s.pool.Exec(ctx, q, id, in.Username, in.PasswordHash, in.DisplayName, in.Avatar)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteUser cascadea sus user_roles del lado de la DB (FK ON DELETE CASCADE).
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ---------- ROLES ----------

func (s *Store) CreateRole(ctx context.Context, r *repository.Role) (int64, error) {
	const q = `INSERT INTO roles (name, description) VALUES ($1, $2) RETURNING id;`
	var id int64
	if err := s.pool.QueryRow(ctx, q, r.Name, r.Description).Scan(&id); err != nil {
		return 0, mapErr(err)
	}
	return id, nil
}

func (s *Store) GetRole(ctx context.Context, id int64) (*repository.Role, error) {
	const q = `SELECT id, name, description FROM roles WHERE id = $1;`
	var r repository.Role
	if err := s.pool.QueryRow(ctx, q, id).Scan(&r.ID, &r.Name, &r.Description); err != nil {
		return nil, mapErr(err)
	}
	return &r, nil
}

func (s *Store) ListRoles(ctx context.Context) ([]repository.Role, error) {
	const q = `SELECT id, name, description FROM roles ORDER BY id;`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.Role
	for rows.Next() {
		var r repository.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.Description); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) UpdateRole(ctx context.Context, id int64, in repository.UpdateRole) error {
	const q = `
UPDATE roles SET
  name        = COALESCE($2, name),
  description = COALESCE($3, description)
WHERE id = $1;`
	tag, err := s.pool.Exec(ctx, q, id, in.Name, in.Description)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteRole cascadea user_roles y resource_roles: un token ya emitido que
// referencie este rol pasa a resolver todo en false.
func (s *Store) DeleteRole(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1;`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ---------- RESOURCES ----------

func (s *Store) CreateResource(ctx context.Context, r *repository.Resource) (int64, error) {
	const q = `INSERT INTO resources (path, description, value) VALUES ($1, $2, $3) RETURNING id;`
	var id int64
	if err := s.pool.QueryRow(ctx, q, r.Path, r.Description, r.Value).Scan(&id); err != nil {
		return 0, mapErr(err)
	}
	return id, nil
}

func (s *Store) GetResource(ctx context.Context, id int64) (*repository.Resource, error) {
	const q = `SELECT id, path, description, value FROM resources WHERE id = $1;`
	var r repository.Resource
	if err := s.pool.QueryRow(ctx, q, id).Scan(&r.ID, &r.Path, &r.Description, &r.Value); err != nil {
		return nil, mapErr(err)
	}
	return &r, nil
}

func (s *Store) ListResources(ctx context.Context) ([]repository.Resource, error) {
	const q = `SELECT id, path, description, value FROM resources ORDER BY id;`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.Resource
	for rows.Next() {
		var r repository.Resource
		if err := rows.Scan(&r.ID, &r.Path, &r.Description, &r.Value); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) UpdateResource(ctx context.Context, id int64, in repository.UpdateResource) error {
	const q = `
UPDATE resources SET
  path        = COALESCE($2, path),
  description = COALESCE($3, description),
  value       = COALESCE($4, value)
WHERE id = $1;`
	tag, err := s.pool.Exec(ctx, q, id, in.Path, in.Description, in.Value)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteResource(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1;`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
