package password

import (
	"strings"
	"testing"
)

func TestSHA512_Deterministic(t *testing.T) {
	h := SHA512{}

	a, err := h.Hash("hunter22")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := h.Hash("hunter22")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a != b {
		t.Error("el mismo plaintext produjo digests distintos")
	}
	if !h.Deterministic() {
		t.Error("Deterministic() = false")
	}
	// sha512 hexdigest: 128 chars hex
	if len(a) != 128 {
		t.Errorf("digest de %d chars, esperado 128", len(a))
	}
}

func TestSHA512_KnownVector(t *testing.T) {
	h := SHA512{}
	got, err := h.Hash("abc")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	const want = "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"
	if got != want {
		t.Errorf("Hash(abc) = %s, esperado %s", got, want)
	}
}

func TestSHA512_Verify(t *testing.T) {
	h := SHA512{}
	digest, _ := h.Hash("hunter22")

	if !h.Verify("hunter22", digest) {
		t.Error("Verify rechazó el password correcto")
	}
	if h.Verify("otro", digest) {
		t.Error("Verify aceptó un password incorrecto")
	}
}

func TestArgon2id_RoundTrip(t *testing.T) {
	h := Argon2id{Params: DefaultParams}

	stored, err := h.Hash("hunter22")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(stored, "$argon2id$v=19$") {
		t.Errorf("formato PHC inesperado: %s", stored)
	}

	if !h.Verify("hunter22", stored) {
		t.Error("Verify rechazó el password correcto")
	}
	if h.Verify("otro", stored) {
		t.Error("Verify aceptó un password incorrecto")
	}
	if h.Deterministic() {
		t.Error("Deterministic() = true para un hasher con salt")
	}
}

func TestArgon2id_SaltedHashesDiffer(t *testing.T) {
	h := Argon2id{Params: DefaultParams}

	a, _ := h.Hash("hunter22")
	b, _ := h.Hash("hunter22")
	if a == b {
		t.Error("dos hashes del mismo plaintext son iguales: falta salt")
	}
}

func TestArgon2id_RejectsMalformedStored(t *testing.T) {
	h := Argon2id{Params: DefaultParams}

	for _, stored := range []string{"", "plaintext", "$argon2id$v=19$m=1,t=1,p=1$!!$!!"} {
		if h.Verify("x", stored) {
			t.Errorf("Verify aceptó digest malformado %q", stored)
		}
	}
}

func TestNew_Schemes(t *testing.T) {
	if h, err := New(""); err != nil || !h.Deterministic() {
		t.Errorf("New(\"\") = %T, %v; esperado SHA512", h, err)
	}
	if h, err := New("argon2id"); err != nil || h.Deterministic() {
		t.Errorf("New(argon2id) = %T, %v; esperado Argon2id", h, err)
	}
	if _, err := New("bcrypt"); err == nil {
		t.Error("New(bcrypt) no falló")
	}
}
