package jwt_test

import (
	"errors"
	"testing"
	"time"

	jwtx "github.com/dropDatabas3/janus/internal/jwt"
)

var secret = []byte("test-secret-0123456789")

func TestIssueAndDecode_RoundTrip(t *testing.T) {
	issuer := jwtx.NewIssuer("janus", secret, time.Hour)

	signed, issued, err := issuer.Issue(42, []int64{1, 3}, time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if issued.TokenID == "" {
		t.Fatal("Issue dejó jti vacío")
	}

	cl, err := issuer.Decode(signed)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cl.Subject != 42 {
		t.Errorf("Subject = %d, esperado 42", cl.Subject)
	}
	if cl.TokenID != issued.TokenID {
		t.Errorf("TokenID = %q, esperado %q", cl.TokenID, issued.TokenID)
	}
	if !cl.HasRoles {
		t.Error("HasRoles = false con claim roles presente")
	}
	if len(cl.Roles) != 2 || cl.Roles[0] != 1 || cl.Roles[1] != 3 {
		t.Errorf("Roles = %v, esperado [1 3]", cl.Roles)
	}
	if got := cl.ExpiresAt.Sub(cl.IssuedAt); got != time.Hour {
		t.Errorf("ventana de validez = %v, esperado 1h", got)
	}
}

func TestDecode_Expired(t *testing.T) {
	issuer := jwtx.NewIssuer("janus", secret, time.Minute)

	signed, _, err := issuer.Issue(7, nil, time.Now().Add(-2*time.Minute))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = issuer.Decode(signed)
	if !errors.Is(err, jwtx.ErrExpired) {
		t.Fatalf("Decode err = %v, esperado ErrExpired", err)
	}
}

func TestDecode_WrongSecret(t *testing.T) {
	issuer := jwtx.NewIssuer("janus", secret, time.Hour)
	other := jwtx.NewIssuer("janus", []byte("otro-secret-distinto"), time.Hour)

	signed, _, err := issuer.Issue(7, []int64{1}, time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = other.Decode(signed)
	if !errors.Is(err, jwtx.ErrInvalidSignature) {
		t.Fatalf("Decode err = %v, esperado ErrInvalidSignature", err)
	}
}

func TestDecode_WrongIssuer(t *testing.T) {
	a := jwtx.NewIssuer("janus", secret, time.Hour)
	b := jwtx.NewIssuer("otro-sistema", secret, time.Hour)

	signed, _, err := a.Issue(7, []int64{1}, time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = b.Decode(signed)
	if !errors.Is(err, jwtx.ErrInvalidSignature) {
		t.Fatalf("Decode err = %v, esperado ErrInvalidSignature", err)
	}
}

func TestDecode_Malformed(t *testing.T) {
	issuer := jwtx.NewIssuer("janus", secret, time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := issuer.Decode(tok); !errors.Is(err, jwtx.ErrMalformed) {
			t.Errorf("Decode(%q) err = %v, esperado ErrMalformed", tok, err)
		}
	}
}

func TestDecode_EmptyRoles(t *testing.T) {
	issuer := jwtx.NewIssuer("janus", secret, time.Hour)

	// nil roles se emite como lista vacía: HasRoles queda true y Roles vacío
	signed, _, err := issuer.Issue(7, nil, time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cl, err := issuer.Decode(signed)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !cl.HasRoles {
		t.Error("HasRoles = false, el claim roles se emite siempre")
	}
	if len(cl.Roles) != 0 {
		t.Errorf("Roles = %v, esperado vacío", cl.Roles)
	}
}
