package crypto

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hasher := PasswordHasher{}

	hash, err := hasher.Hash("sekret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "sekret" {
		t.Fatal("hash equals plaintext")
	}

	if !hasher.Verify("sekret", hash) {
		t.Fatal("expected correct password to verify")
	}
	if hasher.Verify("wrong", hash) {
		t.Fatal("expected wrong password to fail")
	}
}

func TestHashIsSalted(t *testing.T) {
	hasher := PasswordHasher{}

	first, err := hasher.Hash("sekret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := hasher.Hash("sekret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct hashes for the same password")
	}
}
