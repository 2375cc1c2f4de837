package auth

import (
	"errors"
	"testing"
	"time"

	"rewards-tracker/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

func newService(expires time.Duration) *TokenService {
	return NewTokenService(config.Config{JWTSecret: "test-secret", JWTExpiresIn: expires})
}

func TestGenerateAndParseToken(t *testing.T) {
	ts := newService(time.Hour)

	token, err := ts.GenerateToken("reporting-dashboard")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	clientID, err := ts.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if clientID != "reporting-dashboard" {
		t.Fatalf("expected reporting-dashboard, got %q", clientID)
	}
}

func TestGenerateTokenRequiresClientID(t *testing.T) {
	if _, err := newService(time.Hour).GenerateToken(""); err == nil {
		t.Fatal("expected error for empty client id")
	}
}

func TestParseTokenRejects(t *testing.T) {
	expired, err := newService(-time.Minute).GenerateToken("old-client")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	otherKey, err := NewTokenService(config.Config{JWTSecret: "another", JWTExpiresIn: time.Hour}).GenerateToken("client")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "client"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	cases := map[string]string{
		"expired":     expired,
		"wrong key":   otherKey,
		"alg none":    none,
		"garbage":     "not-a-token",
		"empty token": "",
	}
	ts := newService(time.Hour)
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ts.ParseToken(token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
