package pg

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/janus/internal/domain/repository"
)

// relation describe un join shape base ↔ junction ↔ sub. Los identificadores
// de tabla y columna son constantes de compile time: las queries se arman
// solo desde este enum fijo, nunca interpolando input del caller.
type relation struct {
	junction string
	baseKey  string
	subKey   string
	sub      string
	subCols  string
}

var (
	relUserRoles     = relation{junction: "user_roles", baseKey: "user_id", subKey: "role_id", sub: "roles", subCols: "s.id, s.name, s.description"}
	relRoleUsers     = relation{junction: "user_roles", baseKey: "role_id", subKey: "user_id", sub: "users", subCols: "s.id, s.username, s.display_name, s.avatar"}
	relRoleResources = relation{junction: "resource_roles", baseKey: "role_id", subKey: "resource_id", sub: "resources", subCols: "s.id, s.path, s.description, s.value"}
	relResourceRoles = relation{junction: "resource_roles", baseKey: "resource_id", subKey: "role_id", sub: "roles", subCols: "s.id, s.name, s.description"}
)

// query arma el SELECT parametrizado del shape. El único placeholder es el
// id de la instancia base ($1).
func (r relation) query() string {
	return fmt.Sprintf(
		"SELECT %s FROM %s j INNER JOIN %s s ON s.id = j.%s WHERE j.%s = $1 ORDER BY s.id;",
		r.subCols, r.junction, r.sub, r.subKey, r.baseKey,
	)
}

// ---------- ESCRITURAS ----------

// LinkUserRole inserta una fila de relación. Atómico por fila: duplicado o
// endpoint inexistente => ErrConflict, sin fila parcial.
func (s *Store) LinkUserRole(ctx context.Context, userID, roleID int64) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2);`, userID, roleID)
	return mapErr(err)
}

func (s *Store) UnlinkUserRole(ctx context.Context, userID, roleID int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2;`, userID, roleID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) LinkResourceRole(ctx context.Context, resourceID, roleID int64) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO resource_roles (resource_id, role_id) VALUES ($1, $2);`, resourceID, roleID)
	return mapErr(err)
}

func (s *Store) UnlinkResourceRole(ctx context.Context, resourceID, roleID int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM resource_roles WHERE resource_id = $1 AND role_id = $2;`, resourceID, roleID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ---------- LECTURAS ----------

func (s *Store) RolesOfUser(ctx context.Context, userID int64) ([]repository.Role, error) {
	return s.scanRoles(ctx, relUserRoles, userID)
}

func (s *Store) RolesOfResource(ctx context.Context, resourceID int64) ([]repository.Role, error) {
	return s.scanRoles(ctx, relResourceRoles, resourceID)
}

func (s *Store) UsersOfRole(ctx context.Context, roleID int64) ([]repository.User, error) {
	rows, err := s.pool.Query(ctx, relRoleUsers.query(), roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.User
	for rows.Next() {
		var u repository.User
		if err := rows.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Avatar); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) ResourcesOfRole(ctx context.Context, roleID int64) ([]repository.Resource, error) {
	rows, err := s.pool.Query(ctx, relRoleResources.query(), roleID)
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

func (s *Store) scanRoles(ctx context.Context, rel relation, baseID int64) ([]repository.Role, error) {
	rows, err := s.pool.Query(ctx, rel.query(), baseID)
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
