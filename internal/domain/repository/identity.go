package repository

import "context"

// User representa un usuario del sistema.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	DisplayName  *string
	Avatar       *string
}

// Role representa un rol asignable a usuarios.
type Role struct {
	ID          int64
	Name        string
	Description *string
}

// Resource representa un recurso protegido. Path funciona como identificador
// de permiso; Value es un valor opaco opcional que se propaga en lugar de
// un booleano cuando no es null (grants con atributo, ej: cuota o scope).
type Resource struct {
	ID          int64
	Path        string
	Description *string
	Value       *string
}

// AuthenticatedUser es el resultado de una autenticación exitosa:
// el id del usuario y el set de roles que tiene asignados.
// Roles puede ser vacío: un usuario sin roles autentica igual.
type AuthenticatedUser struct {
	ID    int64
	Roles []int64
}

// Grant es una fila del resultado de la resolución RBAC.
type Grant struct {
	Path  string
	Value *string
}

// UpdateUser contiene los campos actualizables de un usuario (partial update).
// PasswordHash ya viene digerido por el hasher; el repo nunca ve plaintext.
type UpdateUser struct {
	Username     *string
	PasswordHash *string
	DisplayName  *string
	Avatar       *string
}

// UpdateRole contiene los campos actualizables de un rol.
type UpdateRole struct {
	Name        *string
	Description *string
}

// UpdateResource contiene los campos actualizables de un recurso.
type UpdateResource struct {
	Path        *string
	Description *string
	Value       *string
}

// IdentityRepository define el CRUD sobre users, roles y resources.
// Create retorna ErrConflict en violación de unicidad; Update y Delete
// retornan ErrNotFound si el id no existe. Delete cascadea las filas de
// relación del lado de la base de datos.
type IdentityRepository interface {
	CreateUser(ctx context.Context, u *User) (int64, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, id int64, in UpdateUser) error
	DeleteUser(ctx context.Context, id int64) error

	CreateRole(ctx context.Context, r *Role) (int64, error)
	GetRole(ctx context.Context, id int64) (*Role, error)
	ListRoles(ctx context.Context) ([]Role, error)
	UpdateRole(ctx context.Context, id int64, in UpdateRole) error
	DeleteRole(ctx context.Context, id int64) error

	CreateResource(ctx context.Context, r *Resource) (int64, error)
	GetResource(ctx context.Context, id int64) (*Resource, error)
	ListResources(ctx context.Context) ([]Resource, error)
	UpdateResource(ctx context.Context, id int64, in UpdateResource) error
	DeleteResource(ctx context.Context, id int64) error
}

// CredentialRepository resuelve credenciales contra el store.
type CredentialRepository interface {
	// GetUserByCredentials busca un usuario cuyo username y password digest
	// coincidan, y agrega los role ids via user_roles (left join: sin roles
	// también autentica). Retorna ErrNotFound si no hay fila que matchee;
	// username inexistente y password incorrecto son indistinguibles.
	GetUserByCredentials(ctx context.Context, username, passwordDigest string) (*AuthenticatedUser, error)

	// GetUserWithRolesByUsername trae el usuario (con su hash almacenado) y
	// sus role ids por username. Lo usa el path de autenticación cuando el
	// hasher configurado no es determinista (fetch + Verify en memoria).
	GetUserWithRolesByUsername(ctx context.Context, username string) (*User, []int64, error)
}

// AccessRepository expone las queries de resolución del grafo rol→recurso.
// Son funciones puras del estado actual del grafo: sin caché, sin estado
// oculto, snapshot al momento de la query.
type AccessRepository interface {
	// GrantedResources retorna path y value de los recursos del set pedido
	// que son alcanzables desde el set de roles via resource_roles.
	GrantedResources(ctx context.Context, roleIDs []int64, paths []string) ([]Grant, error)

	// ReachableResources retorna los paths (distinct) alcanzables desde el
	// set de roles, sin filtrar por un set pedido.
	ReachableResources(ctx context.Context, roleIDs []int64) ([]string, error)
}

// RelationRepository opera sobre las tablas de relación many-to-many.
// Los inserts son atómicos por fila: fallan limpio con ErrConflict en
// duplicado o referencia inexistente, nunca dejan fila parcial.
type RelationRepository interface {
	LinkUserRole(ctx context.Context, userID, roleID int64) error
	UnlinkUserRole(ctx context.Context, userID, roleID int64) error
	LinkResourceRole(ctx context.Context, resourceID, roleID int64) error
	UnlinkResourceRole(ctx context.Context, resourceID, roleID int64) error

	// Lecturas many-to-many como sub-recurso. Cada una corresponde a un
	// join shape fijo (base ↔ junction ↔ sub) declarado en el store.
	RolesOfUser(ctx context.Context, userID int64) ([]Role, error)
	UsersOfRole(ctx context.Context, roleID int64) ([]User, error)
	ResourcesOfRole(ctx context.Context, roleID int64) ([]Resource, error)
	RolesOfResource(ctx context.Context, resourceID int64) ([]Role, error)
}

// Store agrupa todos los contratos que implementa el storage concreto.
type Store interface {
	IdentityRepository
	CredentialRepository
	AccessRepository
	RelationRepository

	Ping(ctx context.Context) error
}
