// Package auth contiene los controllers de emisión, revocación y autorización de tokens.
package auth

import (
	authsvc "github.com/dropDatabas3/janus/internal/auth"
)

// Controllers agrupa todos los controllers del dominio auth.
type Controllers struct {
	Token         *TokenController
	Revoke        *RevokeController
	Authorize     *AuthorizeController
	UserResources *UserResourcesController
}

// NewControllers crea el agregador de controllers auth.
func NewControllers(s *authsvc.Service) *Controllers {
	return &Controllers{
		Token:         NewTokenController(s),
		Revoke:        NewRevokeController(s),
		Authorize:     NewAuthorizeController(s),
		UserResources: NewUserResourcesController(s),
	}
}
