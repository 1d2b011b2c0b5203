package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/janus/internal/auth"
	"github.com/dropDatabas3/janus/internal/http/httperrors"
	"github.com/dropDatabas3/janus/internal/observability/logger"
)

// RequireResources verifica que los roles del token autenticado tengan
// acceso a TODOS los recursos indicados. Debe usarse después de RequireAuth.
func RequireResources(svc *auth.Service, resources ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				httperrors.WriteError(w, httperrors.ErrUnauthorized)
				return
			}

			grants, err := svc.AuthorizeRoles(r.Context(), claims.Roles, resources)
			if err != nil {
				logger.From(r.Context()).Error("resource guard failed",
					logger.Op("RequireResources"),
					logger.Err(err),
				)
				httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("no se pudo resolver el acceso"))
				return
			}

			for _, res := range resources {
				if v, ok := grants[res]; !ok || v == false {
					logger.From(r.Context()).Debug("access denied",
						logger.UserID(claims.Subject),
						logger.RoleIDs(claims.Roles),
						logger.ResourcePath(res),
					)
					httperrors.WriteError(w, httperrors.ErrForbidden.WithDetail("acceso denegado a "+res))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
