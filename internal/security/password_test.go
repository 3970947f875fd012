package security

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	password := "testPassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == "" {
		t.Error("HashPassword() returned empty string")
	}

	if hash == password {
		t.Error("HashPassword() returned unhashed password")
	}

	parts := strings.Split(hash, ":")
	if len(parts) != 2 {
		t.Fatalf("HashPassword() = %q, want digest:salt format", hash)
	}
	if len(parts[0]) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(parts[0]))
	}
	if len(parts[1]) != 32 {
		t.Errorf("salt length = %d, want 32 hex chars", len(parts[1]))
	}

	// Test same password produces different hashes (due to salt)
	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == hash2 {
		t.Error("HashPassword() should produce different hashes due to salt")
	}

	// Both records still verify against the original password
	if !CheckPassword(password, hash) || !CheckPassword(password, hash2) {
		t.Error("CheckPassword() should accept both salted records")
	}
}

func TestCheckPassword(t *testing.T) {
	password := "mySecurePassword"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{
			name:     "correct password",
			password: password,
			hash:     hash,
			want:     true,
		},
		{
			name:     "incorrect password",
			password: "wrongPassword",
			hash:     hash,
			want:     false,
		},
		{
			name:     "empty password",
			password: "",
			hash:     hash,
			want:     false,
		},
		{
			name:     "empty record",
			password: password,
			hash:     "",
			want:     false,
		},
		{
			name:     "record without separator",
			password: password,
			hash:     "deadbeef",
			want:     false,
		},
		{
			name:     "record with two separators",
			password: password,
			hash:     "dead:beef:cafe",
			want:     false,
		},
		{
			name:     "record with empty digest",
			password: password,
			hash:     ":abcdef",
			want:     false,
		},
		{
			name:     "record with empty salt",
			password: password,
			hash:     "abcdef:",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckPassword(tt.password, tt.hash)
			if result != tt.want {
				t.Errorf("CheckPassword() = %v, want %v", result, tt.want)
			}
		})
	}
}

func TestGenerateCode(t *testing.T) {
	codes := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateCode(16)
		if err != nil {
			t.Fatalf("GenerateCode() error = %v", err)
		}
		if len(code) != 32 {
			t.Errorf("code length = %d, want 32 hex chars", len(code))
		}
		if codes[code] {
			t.Errorf("duplicate code generated: %s", code)
		}
		codes[code] = true
	}
}
