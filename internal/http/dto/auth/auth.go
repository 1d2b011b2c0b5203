// Package auth define los DTOs de los endpoints de tokens y autorización.
package auth

// TokenRequest es el body de POST /v1/token
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse devuelve el token firmado.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

// RevokeRequest es el body de POST /v1/revoke. El token también puede venir
// como Bearer en el header Authorization.
type RevokeRequest struct {
	Token string `json:"token"`
}

// AuthorizeRequest es el body de POST /v1/authorize
type AuthorizeRequest struct {
	Token     string   `json:"token"`
	Resources []string `json:"resources"`
}

// AuthorizeResponse ecoa el token consultado y mapea cada recurso a su
// grant: false (denegado), true (permitido) o el value configurado.
type AuthorizeResponse struct {
	Token     string         `json:"token"`
	Resources map[string]any `json:"resources"`
}

// UserResourcesResponse lista los paths alcanzables por los roles del token.
type UserResourcesResponse struct {
	Resources []string `json:"resources"`
}
