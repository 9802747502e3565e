package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_Format(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash should be PHC argon2id format, got %s", hash)
	}
	if len(strings.Split(hash, "$")) != 6 {
		t.Errorf("hash should have 6 PHC segments, got %s", hash)
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	match, err := VerifyPassword("Password123", hash)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if !match {
		t.Error("correct password should verify")
	}

	match, err = VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if match {
		t.Error("wrong password should not verify")
	}
}

func TestVerifyPassword_Unique(t *testing.T) {
	t.Parallel()

	// Each hash uses a fresh salt.
	h1, _ := HashPassword("Password123")
	h2, _ := HashPassword("Password123")
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}

func TestVerifyPassword_InvalidFormat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "bcrypt style", hash: "$2b$10$abcdefghijklmnopqrstuv"},
		{name: "missing segments", hash: "$argon2id$v=19$m=65536"},
		{name: "bad base64 salt", hash: "$argon2id$v=19$m=65536,t=3,p=4$!!!$AAAA"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := VerifyPassword("x", tc.hash); err == nil {
				t.Error("expected an error for malformed hash")
			}
		})
	}
}
