package identity

import (
	"net/http"

	"github.com/dropDatabas3/janus/internal/domain/repository"
	dto "github.com/dropDatabas3/janus/internal/http/dto/identity"
	"github.com/dropDatabas3/janus/internal/http/helpers"
	"github.com/dropDatabas3/janus/internal/http/httperrors"
	"github.com/dropDatabas3/janus/internal/observability/logger"
)

// ResourcesController maneja el CRUD de recursos y su relación con roles.
type ResourcesController struct {
	store repository.Store
}

// NewResourcesController crea una nueva instancia del controller.
func NewResourcesController(store repository.Store) *ResourcesController {
	return &ResourcesController{store: store}
}

// Create maneja POST /v1/resources
func (c *ResourcesController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ResourcesController.Create"))

	var req dto.CreateResourceRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if req.Path == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("path es obligatorio"))
		return
	}

	id, err := c.store.CreateResource(ctx, &repository.Resource{
		Path:        req.Path,
		Description: req.Description,
		Value:       req.Value,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	log.Info("resource created", logger.Any("resource_id", id), logger.ResourcePath(req.Path))
	helpers.WriteJSON(w, http.StatusCreated, dto.CreatedResponse{ID: id})
}

// List maneja GET /v1/resources
func (c *ResourcesController) List(w http.ResponseWriter, r *http.Request) {
	resources, err := c.store.ListResources(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	views := make([]dto.ResourceView, 0, len(resources))
	for _, res := range resources {
		views = append(views, resourceView(&res))
	}
	helpers.WriteJSON(w, http.StatusOK, views)
}

// Get maneja GET /v1/resources/{id}
func (c *ResourcesController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	res, err := c.store.GetResource(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resourceView(res))
}

// Update maneja PATCH /v1/resources/{id}
func (c *ResourcesController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	var req dto.UpdateResourceRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if err := c.store.UpdateResource(r.Context(), id, repository.UpdateResource{
		Path:        req.Path,
		Description: req.Description,
		Value:       req.Value,
	}); err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete maneja DELETE /v1/resources/{id}
// Las filas de resource_roles caen por cascade en la base.
func (c *ResourcesController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if err := c.store.DeleteResource(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ─── Sub-recurso: roles del recurso ───

// ListRoles maneja GET /v1/resources/{id}/roles
func (c *ResourcesController) ListRoles(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	roles, err := c.store.RolesOfResource(r.Context(), id)
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

// LinkRole maneja POST /v1/resources/{id}/roles
func (c *ResourcesController) LinkRole(w http.ResponseWriter, r *http.Request) {
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

	if err := c.store.LinkResourceRole(r.Context(), id, req.ID); err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnlinkRole maneja DELETE /v1/resources/{id}/roles/{roleID}
func (c *ResourcesController) UnlinkRole(w http.ResponseWriter, r *http.Request) {
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

	if err := c.store.UnlinkResourceRole(r.Context(), id, roleID); err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func resourceView(res *repository.Resource) dto.ResourceView {
	return dto.ResourceView{
		ID:          res.ID,
		Path:        res.Path,
		Description: res.Description,
		Value:       res.Value,
	}
}
