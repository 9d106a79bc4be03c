package security

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*24*time.Hour)

	token, err := issuer.Issue(42, "alice")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want alice", claims.Username)
	}
	if claims.ID == "" {
		t.Error("token should carry a jti")
	}
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -1*time.Hour)

	token, err := issuer.Issue(1, "bob")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	_, err = issuer.Verify(token)
	if err != ErrTokenExpired {
		t.Errorf("Verify() error = %v, want ErrTokenExpired", err)
	}
}

func TestTokenInvalid(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := issuer.Verify(tt.token); err != ErrInvalidToken {
				t.Errorf("Verify(%q) error = %v, want ErrInvalidToken", tt.token, err)
			}
		})
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenIssuer("different-secret", time.Hour)
		token, err := other.Issue(1, "eve")
		if err != nil {
			t.Fatalf("Issue() error: %v", err)
		}
		if _, err := issuer.Verify(token); err != ErrInvalidToken {
			t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
		}
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}

	if hash == "secret1" {
		t.Error("hash must not equal the plaintext")
	}
	if !CheckPassword("secret1", hash) {
		t.Error("CheckPassword should accept the original password")
	}
	if CheckPassword("wrong", hash) {
		t.Error("CheckPassword should reject a wrong password")
	}
}
