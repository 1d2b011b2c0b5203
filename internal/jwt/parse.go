package jwt

import (
	"errors"
	"strconv"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Decode valida firma (HS256 únicamente) y claims temporales, y devuelve las
// claims tipadas. Las claims de un token solo son confiables si la firma
// verifica y el token no expiró; la revocación se chequea aparte (blacklist).
func (i *Issuer) Decode(token string) (*Claims, error) {
	keyfunc := func(t *jwtv5.Token) (any, error) {
		return i.Secret, nil
	}

	tok, err := jwtv5.Parse(token, keyfunc,
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithIssuedAt(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwtv5.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwtv5.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}
	if !tok.Valid {
		return nil, ErrMalformed
	}

	mc, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, ErrMalformed
	}

	// iss check: un token de otro emisor no es de este sistema
	if i.Iss != "" {
		if iss, _ := mc["iss"].(string); iss != i.Iss {
			return nil, ErrInvalidSignature
		}
	}

	subStr, _ := mc["sub"].(string)
	sub, err := strconv.ParseInt(subStr, 10, 64)
	if err != nil {
		return nil, ErrMalformed
	}
	jti, _ := mc["jti"].(string)
	if jti == "" {
		return nil, ErrMalformed
	}

	cl := &Claims{Subject: sub, TokenID: jti}

	if iatf, ok := mc["iat"].(float64); ok {
		cl.IssuedAt = time.Unix(int64(iatf), 0).UTC()
	}
	if expf, ok := mc["exp"].(float64); ok {
		cl.ExpiresAt = time.Unix(int64(expf), 0).UTC()
	}

	// roles puede faltar: se trata como cero roles, no como error duro.
	// El resolver igual ejecuta y deniega todo.
	if raw, ok := mc["roles"]; ok {
		cl.HasRoles = true
		if list, ok := raw.([]any); ok {
			cl.Roles = make([]int64, 0, len(list))
			for _, v := range list {
				if f, ok := v.(float64); ok {
					cl.Roles = append(cl.Roles, int64(f))
				}
			}
		}
	}

	return cl, nil
}
