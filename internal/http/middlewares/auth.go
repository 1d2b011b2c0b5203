package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dropDatabas3/janus/internal/auth"
	"github.com/dropDatabas3/janus/internal/blacklist"
	"github.com/dropDatabas3/janus/internal/http/httperrors"
	jwtx "github.com/dropDatabas3/janus/internal/jwt"
)

// RequireAuth valida Authorization: Bearer <JWT> y guarda las claims en el contexto.
// Un token revocado o expirado responde 401; si la blacklist no está
// disponible el request se rechaza con 503 (fail closed).
func RequireAuth(svc *auth.Service) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="missing bearer token"`)
				httperrors.WriteError(w, httperrors.ErrUnauthorized.WithDetail("missing bearer token"))
				return
			}

			claims, err := svc.ValidateToken(r.Context(), raw)
			if err != nil {
				writeTokenError(w, err)
				return
			}

			ctx := WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extrae el token del header Authorization.
func bearerToken(r *http.Request) (string, bool) {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(ah[len("Bearer "):])
	return raw, raw != ""
}

// writeTokenError mapea errores de validación de token a respuestas HTTP.
func writeTokenError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="token expired"`)
		httperrors.WriteError(w, httperrors.ErrUnauthorized.WithDetail("token expirado"))

	case errors.Is(err, auth.ErrRevoked):
		w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="token revoked"`)
		httperrors.WriteError(w, httperrors.ErrUnauthorized.WithDetail("token revocado"))

	case errors.Is(err, jwtx.ErrMalformed), errors.Is(err, jwtx.ErrInvalidSignature):
		w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
		httperrors.WriteError(w, httperrors.ErrUnauthorized.WithDetail("token inválido"))

	case errors.Is(err, blacklist.ErrUnavailable):
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("blacklist no disponible"))

	default:
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
