package jwt

import (
	"strconv"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultAccessTTL es la ventana de validez por defecto del access token.
// Hereda los 10803 minutos (~180h) del sistema original.
const DefaultAccessTTL = 10803 * time.Minute

// Claims es el payload de un token emitido. Inmutable una vez firmado;
// no se persiste.
type Claims struct {
	Subject   int64
	TokenID   string // jti, clave de revocación en el blacklist
	Roles     []int64
	HasRoles  bool // false si el claim "roles" no vino en el token
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer firma y consume bearer tokens self-contained con el secret
// simétrico del proceso (HS256).
type Issuer struct {
	Iss       string
	Secret    []byte
	AccessTTL time.Duration
}

func NewIssuer(iss string, secret []byte, accessTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	return &Issuer{Iss: iss, Secret: secret, AccessTTL: accessTTL}
}

// Issue emite un access token para el subject con sus role ids.
// exp = issuedAt + AccessTTL; jti es un uuid único por token.
func (i *Issuer) Issue(subject int64, roles []int64, issuedAt time.Time) (string, *Claims, error) {
	now := issuedAt.UTC().Truncate(time.Second)
	exp := now.Add(i.AccessTTL)
	jti := uuid.NewString()

	if roles == nil {
		roles = []int64{}
	}

	mc := jwtv5.MapClaims{
		"iss":   i.Iss,
		"sub":   strconv.FormatInt(subject, 10),
		"jti":   jti,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   exp.Unix(),
		"roles": roles,
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, mc)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.Secret)
	if err != nil {
		return "", nil, err
	}
	return signed, &Claims{
		Subject:   subject,
		TokenID:   jti,
		Roles:     roles,
		HasRoles:  true,
		IssuedAt:  now,
		ExpiresAt: exp,
	}, nil
}
