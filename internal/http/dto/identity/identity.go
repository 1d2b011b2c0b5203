// Package identity define los DTOs del CRUD de usuarios, roles y recursos.
package identity

// CreatedResponse devuelve el id de la entidad recién creada.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// IDRequest es el body de los POST de vinculación (junctions).
type IDRequest struct {
	ID int64 `json:"id"`
}

// ─── Users ───

type CreateUserRequest struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	DisplayName *string `json:"display_name,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

type UpdateUserRequest struct {
	Username    *string `json:"username,omitempty"`
	Password    *string `json:"password,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

// UserView nunca expone el hash de password.
type UserView struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	DisplayName *string `json:"display_name,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

// ─── Roles ───

type CreateRoleRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type UpdateRoleRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type RoleView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// ─── Resources ───

type CreateResourceRequest struct {
	Path        string  `json:"path"`
	Description *string `json:"description,omitempty"`
	Value       *string `json:"value,omitempty"`
}

type UpdateResourceRequest struct {
	Path        *string `json:"path,omitempty"`
	Description *string `json:"description,omitempty"`
	Value       *string `json:"value,omitempty"`
}

type ResourceView struct {
	ID          int64   `json:"id"`
	Path        string  `json:"path"`
	Description *string `json:"description,omitempty"`
	Value       *string `json:"value,omitempty"`
}
