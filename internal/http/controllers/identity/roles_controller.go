package identity

import (
	"net/http"

	"github.com/dropDatabas3/janus/internal/domain/repository"
	dto "github.com/dropDatabas3/janus/internal/http/dto/identity"
	"github.com/dropDatabas3/janus/internal/http/helpers"
	"github.com/dropDatabas3/janus/internal/http/httperrors"
	"github.com/dropDatabas3/janus/internal/observability/logger"
)

// RolesController maneja el CRUD de roles y sus relaciones con usuarios y recursos.
type RolesController struct {
	store repository.Store
}

// NewRolesController crea una nueva instancia del controller.
func NewRolesController(store repository.Store) *RolesController {
	return &RolesController{store: store}
}

// Create maneja POST /v1/roles
func (c *RolesController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RolesController.Create"))

	var req dto.CreateRoleRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if req.Name == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("name es obligatorio"))
		return
	}

	id, err := c.store.CreateRole(ctx, &repository.Role{Name: req.Name, Description: req.Description})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	log.Info("role created", logger.Any("role_id", id), logger.Any("name", req.Name))
	helpers.WriteJSON(w, http.StatusCreated, dto.CreatedResponse{ID: id})
}

// List maneja GET /v1/roles
func (c *RolesController) List(w http.ResponseWriter, r *http.Request) {
	roles, err := c.store.ListRoles(r.Context())
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

// Get maneja GET /v1/roles/{id}
func (c *RolesController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	ro, err := c.store.GetRole(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.RoleView{ID: ro.ID, Name: ro.Name, Description: ro.Description})
}

// Update maneja PATCH /v1/roles/{id}
func (c *RolesController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	var req dto.UpdateRoleRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if err := c.store.UpdateRole(r.Context(), id, repository.UpdateRole{
		Name:        req.Name,
		Description: req.Description,
	}); err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete maneja DELETE /v1/roles/{id}
// Las filas de user_roles y resource_roles caen por cascade en la base.
func (c *RolesController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if err := c.store.DeleteRole(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ─── Sub-recurso: usuarios del rol ───

// ListUsers maneja GET /v1/roles/{id}/users
func (c *RolesController) ListUsers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	users, err := c.store.UsersOfRole(r.Context(), id)
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

// LinkUser maneja POST /v1/roles/{id}/users
func (c *RolesController) LinkUser(w http.ResponseWriter, r *http.Request) {
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

	if err := c.store.LinkUserRole(r.Context(), req.ID, id); err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnlinkUser maneja DELETE /v1/roles/{id}/users/{userID}
func (c *RolesController) UnlinkUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	userID, err := pathID(r, "userID")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if err := c.store.UnlinkUserRole(r.Context(), userID, id); err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ─── Sub-recurso: recursos del rol ───

// ListResources maneja GET /v1/roles/{id}/resources
func (c *RolesController) ListResources(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resources, err := c.store.ResourcesOfRole(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	views := make([]dto.ResourceView, 0, len(resources))
	for _, res := range resources {
		views = append(views, dto.ResourceView{ID: res.ID, Path: res.Path, Description: res.Description, Value: res.Value})
	}
	helpers.WriteJSON(w, http.StatusOK, views)
}

// LinkResource maneja POST /v1/roles/{id}/resources
func (c *RolesController) LinkResource(w http.ResponseWriter, r *http.Request) {
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

	if err := c.store.LinkResourceRole(r.Context(), req.ID, id); err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnlinkResource maneja DELETE /v1/roles/{id}/resources/{resourceID}
func (c *RolesController) UnlinkResource(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	resourceID, err := pathID(r, "resourceID")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if err := c.store.UnlinkResourceRole(r.Context(), resourceID, id); err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
