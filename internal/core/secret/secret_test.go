package secret

import (
	"strings"
	"testing"

	perr "spedicija/internal/platform/errors"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptRoundTrip(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)
	hash, err := h.Hash("tajna123")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "tajna123" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("hash = %q", hash)
	}
	if !h.Verify("tajna123", hash) {
		t.Fatal("Verify should accept the original password")
	}
	if h.Verify("pogresna", hash) {
		t.Fatal("Verify should reject a different password")
	}
	if h.Verify("tajna123", "not-a-hash") {
		t.Fatal("Verify should reject garbage hashes")
	}
}

func TestBcryptSalts(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)
	a, _ := h.Hash("x")
	b, _ := h.Hash("x")
	if a == b {
		t.Fatal("two hashes of one password should differ")
	}
}

func TestBcryptTooLong(t *testing.T) {
	_, err := NewBcrypt(bcrypt.MinCost).Hash(strings.Repeat("a", 73))
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v", err)
	}
}

func TestNewBcryptCost(t *testing.T) {
	if NewBcrypt(0).Cost != bcrypt.DefaultCost || NewBcrypt(99).Cost != bcrypt.DefaultCost {
		t.Fatal("out of range cost should fall back to default")
	}
	if NewBcrypt(5).Cost != 5 {
		t.Fatal("valid cost kept")
	}
}

var _ Hasher = Bcrypt{}
