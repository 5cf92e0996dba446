package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssuer_IssueAndParse(t *testing.T) {
	issuer := NewIssuer(testSigningKey, "clinic-manager", "clinic-manager", 3*time.Hour)

	tokenStr, expires, err := issuer.Issue(42, "doctor", "doc@clinic.test")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if until := time.Until(expires); until < 2*time.Hour+59*time.Minute || until > 3*time.Hour {
		t.Errorf("expected roughly 3h expiry, got %v", until)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return testSigningKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithIssuer("clinic-manager"), jwt.WithAudience("clinic-manager"))
	if err != nil || !token.Valid {
		t.Fatalf("issued token failed to parse: %v", err)
	}

	if claims.Subject != "42" {
		t.Errorf("expected subject 42, got %q", claims.Subject)
	}
	if claims.Role != "doctor" {
		t.Errorf("expected role doctor, got %q", claims.Role)
	}
	if claims.Email != "doc@clinic.test" {
		t.Errorf("expected email claim, got %q", claims.Email)
	}
	if claims.ID == "" {
		t.Error("expected a jti claim")
	}
}

func TestIssuer_UniqueTokenIDs(t *testing.T) {
	issuer := NewIssuer(testSigningKey, "clinic-manager", "clinic-manager", time.Hour)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		tokenStr, _, err := issuer.Issue(1, "admin", "")
		if err != nil {
			t.Fatalf("Issue() error: %v", err)
		}
		claims := &Claims{}
		if _, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return testSigningKey, nil
		}); err != nil {
			t.Fatalf("parse error: %v", err)
		}
		if seen[claims.ID] {
			t.Fatalf("duplicate jti %q", claims.ID)
		}
		seen[claims.ID] = true
	}
}

func TestIssuer_RoundTripThroughMiddleware(t *testing.T) {
	issuer := NewIssuer(testSigningKey, "clinic-manager", "clinic-manager", time.Hour)
	tokenStr, _, err := issuer.Issue(9, "assistant", "")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return testSigningKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		t.Fatalf("parse error: %v", err)
	}
	if claims.Role != "assistant" {
		t.Errorf("role mismatch: %q", claims.Role)
	}
}
