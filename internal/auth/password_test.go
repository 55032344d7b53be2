package auth

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret!" {
		t.Fatal("hash must not be plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}

	// Salted: hashing twice yields different output.
	again, _ := HashPassword("s3cret!")
	if again == hash {
		t.Error("two hashes of the same password should differ")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	tests := []struct {
		name  string
		plain string
		hash  string
		want  bool
	}{
		{name: "match", plain: "correct horse", hash: hash, want: true},
		{name: "wrong password", plain: "battery staple", hash: hash, want: false},
		{name: "empty password", plain: "", hash: hash, want: false},
		{name: "malformed hash", plain: "correct horse", hash: "not-a-hash", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyPassword(tt.plain, tt.hash); got != tt.want {
				t.Errorf("VerifyPassword = %v, want %v", got, tt.want)
			}
		})
	}
}
