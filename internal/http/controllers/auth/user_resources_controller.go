package auth

import (
	"net/http"

	authsvc "github.com/dropDatabas3/janus/internal/auth"
	dto "github.com/dropDatabas3/janus/internal/http/dto/auth"
	"github.com/dropDatabas3/janus/internal/http/helpers"
	"github.com/dropDatabas3/janus/internal/http/httperrors"
	"github.com/dropDatabas3/janus/internal/http/middlewares"
	"github.com/dropDatabas3/janus/internal/observability/logger"
)

// UserResourcesController lista los recursos alcanzables por el token autenticado.
type UserResourcesController struct {
	service *authsvc.Service
}

// NewUserResourcesController crea un nuevo controller de user resources.
func NewUserResourcesController(service *authsvc.Service) *UserResourcesController {
	return &UserResourcesController{service: service}
}

// List maneja GET /v1/user_resources
// Requiere RequireAuth: las claims ya validadas vienen en el contexto.
func (c *UserResourcesController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("UserResourcesController.List"))

	claims := middlewares.GetClaims(ctx)
	if claims == nil {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	resources, err := c.service.UserResources(ctx, claims)
	if err != nil {
		log.Error("user resources lookup failed", logger.UserID(claims.Subject), logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("no se pudo resolver los recursos"))
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.UserResourcesResponse{Resources: resources})
}
