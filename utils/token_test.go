package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
)

func makeToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestTokenExpired(t *testing.T) {
	valid := makeToken(t, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(time.Hour).Unix()})
	if TokenExpired(valid) {
		t.Fatal("token with future expiry reported expired")
	}

	expired := makeToken(t, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Minute).Unix()})
	if !TokenExpired(expired) {
		t.Fatal("token with past expiry reported valid")
	}

	noExp := makeToken(t, jwt.MapClaims{"sub": "u1"})
	if !TokenExpired(noExp) {
		t.Fatal("token without exp claim must be treated as expired")
	}

	if !TokenExpired("not-a-jwt") {
		t.Fatal("garbage token must be treated as expired")
	}
}

func TestTokenSubject(t *testing.T) {
	token := makeToken(t, jwt.MapClaims{"sub": "u42", "exp": time.Now().Add(time.Hour).Unix()})
	sub, err := TokenSubject(token)
	if err != nil {
		t.Fatalf("TokenSubject: %v", err)
	}
	if sub != "u42" {
		t.Fatalf("expected u42, got %s", sub)
	}

	if _, err := TokenSubject("garbage"); err == nil {
		t.Fatal("expected error for garbage token")
	}

	noSub := makeToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	if _, err := TokenSubject(noSub); err == nil {
		t.Fatal("expected error for token without sub")
	}
}
