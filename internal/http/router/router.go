// Package router arma el árbol de rutas del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authsvc "github.com/dropDatabas3/janus/internal/auth"
	"github.com/dropDatabas3/janus/internal/domain/repository"
	authctrl "github.com/dropDatabas3/janus/internal/http/controllers/auth"
	identityctrl "github.com/dropDatabas3/janus/internal/http/controllers/identity"
	"github.com/dropDatabas3/janus/internal/http/helpers"
	mw "github.com/dropDatabas3/janus/internal/http/middlewares"
	"github.com/dropDatabas3/janus/internal/rate"
)

// Recursos de acceso que protegen la API de administración de identidades.
// Se siembran en el bootstrap junto con el rol admin.
const (
	ResourceUsersAccess     = "users-access"
	ResourceRolesAccess     = "roles-access"
	ResourceResourcesAccess = "resources-access"
)

// Deps contiene todas las dependencias del router.
type Deps struct {
	Auth     *authsvc.Service
	AuthCtrl *authctrl.Controllers
	Identity *identityctrl.Controllers

	Store    repository.Store
	Registry *prometheus.Registry

	// Limiter opcional para los endpoints de credenciales. nil = sin límite.
	Limiter rate.Limiter
}

// New construye el router HTTP completo.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	base := func(route string) []mw.Middleware {
		return []mw.Middleware{
			mw.WithRequestID(),
			mw.WithRecover(),
			mw.WithLogging(route),
		}
	}

	mount := func(method, pattern, route string, h http.HandlerFunc, extra ...mw.Middleware) {
		r.Method(method, pattern, mw.ChainFunc(h, append(base(route), extra...)...))
	}

	requireAuth := mw.RequireAuth(deps.Auth)
	usersGuard := mw.RequireResources(deps.Auth, ResourceUsersAccess)
	rolesGuard := mw.RequireResources(deps.Auth, ResourceRolesAccess)
	resourcesGuard := mw.RequireResources(deps.Auth, ResourceResourcesAccess)

	// ─── Tokens y autorización ───

	mount(http.MethodPost, "/v1/token", "/v1/token", deps.AuthCtrl.Token.Issue, mw.WithRateLimit(deps.Limiter))
	mount(http.MethodPost, "/v1/revoke", "/v1/revoke", deps.AuthCtrl.Revoke.Revoke)
	mount(http.MethodPost, "/v1/authorize", "/v1/authorize", deps.AuthCtrl.Authorize.Authorize)
	mount(http.MethodGet, "/v1/user_resources", "/v1/user_resources", deps.AuthCtrl.UserResources.List, requireAuth)

	// ─── Administración de usuarios ───

	mount(http.MethodPost, "/v1/users", "/v1/users", deps.Identity.Users.Create, requireAuth, usersGuard)
	mount(http.MethodGet, "/v1/users", "/v1/users", deps.Identity.Users.List, requireAuth, usersGuard)
	mount(http.MethodGet, "/v1/users/{id}", "/v1/users/{id}", deps.Identity.Users.Get, requireAuth, usersGuard)
	mount(http.MethodPatch, "/v1/users/{id}", "/v1/users/{id}", deps.Identity.Users.Update, requireAuth, usersGuard)
	mount(http.MethodDelete, "/v1/users/{id}", "/v1/users/{id}", deps.Identity.Users.Delete, requireAuth, usersGuard)

	mount(http.MethodGet, "/v1/users/{id}/roles", "/v1/users/{id}/roles", deps.Identity.Users.ListRoles, requireAuth, usersGuard)
	mount(http.MethodPost, "/v1/users/{id}/roles", "/v1/users/{id}/roles", deps.Identity.Users.LinkRole, requireAuth, usersGuard)
	mount(http.MethodDelete, "/v1/users/{id}/roles/{roleID}", "/v1/users/{id}/roles/{roleID}", deps.Identity.Users.UnlinkRole, requireAuth, usersGuard)

	// ─── Administración de roles ───

	mount(http.MethodPost, "/v1/roles", "/v1/roles", deps.Identity.Roles.Create, requireAuth, rolesGuard)
	mount(http.MethodGet, "/v1/roles", "/v1/roles", deps.Identity.Roles.List, requireAuth, rolesGuard)
	mount(http.MethodGet, "/v1/roles/{id}", "/v1/roles/{id}", deps.Identity.Roles.Get, requireAuth, rolesGuard)
	mount(http.MethodPatch, "/v1/roles/{id}", "/v1/roles/{id}", deps.Identity.Roles.Update, requireAuth, rolesGuard)
	mount(http.MethodDelete, "/v1/roles/{id}", "/v1/roles/{id}", deps.Identity.Roles.Delete, requireAuth, rolesGuard)

	mount(http.MethodGet, "/v1/roles/{id}/users", "/v1/roles/{id}/users", deps.Identity.Roles.ListUsers, requireAuth, rolesGuard)
	mount(http.MethodPost, "/v1/roles/{id}/users", "/v1/roles/{id}/users", deps.Identity.Roles.LinkUser, requireAuth, rolesGuard)
	mount(http.MethodDelete, "/v1/roles/{id}/users/{userID}", "/v1/roles/{id}/users/{userID}", deps.Identity.Roles.UnlinkUser, requireAuth, rolesGuard)

	mount(http.MethodGet, "/v1/roles/{id}/resources", "/v1/roles/{id}/resources", deps.Identity.Roles.ListResources, requireAuth, rolesGuard)
	mount(http.MethodPost, "/v1/roles/{id}/resources", "/v1/roles/{id}/resources", deps.Identity.Roles.LinkResource, requireAuth, rolesGuard)
	mount(http.MethodDelete, "/v1/roles/{id}/resources/{resourceID}", "/v1/roles/{id}/resources/{resourceID}", deps.Identity.Roles.UnlinkResource, requireAuth, rolesGuard)

	// ─── Administración de recursos ───

	mount(http.MethodPost, "/v1/resources", "/v1/resources", deps.Identity.Resources.Create, requireAuth, resourcesGuard)
	mount(http.MethodGet, "/v1/resources", "/v1/resources", deps.Identity.Resources.List, requireAuth, resourcesGuard)
	mount(http.MethodGet, "/v1/resources/{id}", "/v1/resources/{id}", deps.Identity.Resources.Get, requireAuth, resourcesGuard)
	mount(http.MethodPatch, "/v1/resources/{id}", "/v1/resources/{id}", deps.Identity.Resources.Update, requireAuth, resourcesGuard)
	mount(http.MethodDelete, "/v1/resources/{id}", "/v1/resources/{id}", deps.Identity.Resources.Delete, requireAuth, resourcesGuard)

	mount(http.MethodGet, "/v1/resources/{id}/roles", "/v1/resources/{id}/roles", deps.Identity.Resources.ListRoles, requireAuth, resourcesGuard)
	mount(http.MethodPost, "/v1/resources/{id}/roles", "/v1/resources/{id}/roles", deps.Identity.Resources.LinkRole, requireAuth, resourcesGuard)
	mount(http.MethodDelete, "/v1/resources/{id}/roles/{roleID}", "/v1/resources/{id}/roles/{roleID}", deps.Identity.Resources.UnlinkRole, requireAuth, resourcesGuard)

	// ─── Operacional ───

	r.Get("/healthz", healthHandler(deps.Store))

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	return r
}

// healthHandler responde ok si la base de datos contesta el ping.
func healthHandler(store repository.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			helpers.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
