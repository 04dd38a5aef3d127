package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "super-secret-signing-key"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestVerifyValidToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "user-123",
		"email": "manager@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	identity, err := NewJWTVerifier(testSecret).Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.UserID != "user-123" || identity.Email != "manager@x.com" {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := NewJWTVerifier(testSecret).Verify(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token := signToken(t, "some-other-secret", jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := NewJWTVerifier(testSecret).Verify(token); err == nil {
		t.Fatal("expected error for wrong signing key")
	}
}

func TestVerifyMissingSubject(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "manager@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := NewJWTVerifier(testSecret).Verify(token)
	if err == nil || !strings.Contains(err.Error(), "subject") {
		t.Fatalf("expected missing subject error, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	if _, err := NewJWTVerifier(testSecret).Verify("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
