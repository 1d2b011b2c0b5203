package identity

import (
	"net/http"

	"github.com/dropDatabas3/janus/internal/domain/repository"
	dto "github.com/dropDatabas3/janus/internal/http/dto/identity"
	"github.com/dropDatabas3/janus/internal/http/helpers"
	"github.com/dropDatabas3/janus/internal/http/httperrors"
	"github.com/dropDatabas3/janus/internal/observability/logger"
	"github.com/dropDatabas3/janus/internal/security/password"
)

// UsersController maneja el CRUD de usuarios y su relación con roles.
// El plaintext del password se digiere acá; el repositorio solo ve hashes.
type UsersController struct {
	store  repository.Store
	hasher password.Hasher
}

// NewUsersController crea una nueva instancia del controller.
func NewUsersController(store repository.Store, hasher password.Hasher) *UsersController {
	return &UsersController{store: store, hasher: hasher}
}

// Create maneja POST /v1/users
func (c *UsersController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("UsersController.Create"))

	var req dto.CreateUserRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if req.Username == "" || req.Password == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("username y password son obligatorios"))
		return
	}

	digest, err := c.hasher.Hash(req.Password)
	if err != nil {
		log.Error("password hash failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	id, err := c.store.CreateUser(ctx, &repository.User{
		Username:     req.Username,
		PasswordHash: digest,
		DisplayName:  req.DisplayName,
		Avatar:       req.Avatar,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	log.Info("user created", logger.UserID(id), logger.Username(req.Username))
	helpers.WriteJSON(w, http.StatusCreated, dto.CreatedResponse{ID: id})
}

// List maneja GET /v1/users
func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.store.ListUsers(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	views := make([]dto.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, userView(&u))
	}
	helpers.WriteJSON(w, http.StatusOK, views)
}

// Get maneja GET /v1/users/{id}
func (c *UsersController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	u, err := c.store.GetUser(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, userView(u))
}

// Update maneja PATCH /v1/users/{id}
func (c *UsersController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("UsersController.Update"))

	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	upd := repository.UpdateUser{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Avatar:      req.Avatar,
	}
	if req.Password != nil {
		digest, err := c.hasher.Hash(*req.Password)
		if err != nil {
			log.Error("password hash failed", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
			return
		}
		upd.PasswordHash = &digest
	}

	if err := c.store.UpdateUser(ctx, id, upd); err != nil {
		writeStoreError(w, err)
		return
	}

	log.Info("user updated", logger.UserID(id))
	w.WriteHeader(http.StatusNoContent)
}

// Delete maneja DELETE /v1/users/{id}
// Las filas de user_roles caen por cascade en la base.
func (c *UsersController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if err := c.store.DeleteUser(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}

	logger.From(r.Context()).Info("user deleted", logger.UserID(id))
	w.WriteHeader(http.StatusNoContent)
}

// ─── Sub-recurso: roles del usuario ───

// ListRoles maneja GET /v1/users/{id}/roles
func (c *UsersController) ListRoles(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	roles, err := c.store.RolesOfUser(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	views := make([]dto.RoleView, 0, len(roles))
	for _, ro := range roles {
		views = append(views, dto.RoleView{ID: ro.ID, Name: ro.Name, Description: ro.Description})
	}
	helpers.WriteJSON(w, http.StatusOK, views)
}

// LinkRole maneja POST /v1/users/{id}/roles
func (c *UsersController) LinkRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	var req dto.IDRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}
	if req.ID <= 0 {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("id es obligatorio"))
		return
	}

	if err := c.store.LinkUserRole(r.Context(), id, req.ID); err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnlinkRole maneja DELETE /v1/users/{id}/roles/{roleID}
func (c *UsersController) UnlinkRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	roleID, err := pathID(r, "roleID")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if err := c.store.UnlinkUserRole(r.Context(), id, roleID); err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func userView(u *repository.User) dto.UserView {
	return dto.UserView{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
	}
}
