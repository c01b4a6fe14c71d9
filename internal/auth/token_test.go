package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/taskenda/taskenda-backend/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       1,
		Username: "alice",
		Email:    "alice@x.com",
		Role:     models.RoleUser,
	}
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := NewTokenService("test-secret", 24*time.Hour)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("subject = %q, want %q", claims.Subject, "alice")
	}
	if claims.Role != models.RoleUser {
		t.Errorf("role = %q, want %q", claims.Role, models.RoleUser)
	}
	if claims.ExpiresAt.Time.Before(time.Now()) {
		t.Error("expiry is in the past")
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Hour)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	_, err = svc.Validate(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Validate() error = %v, want ErrTokenExpired", err)
	}
}

func TestTokenService_Invalid(t *testing.T) {
	svc := NewTokenService("test-secret", 24*time.Hour)
	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"two segments", "abc.def"},
		{"tampered signature", tamperSignature(t, token)},
		{"wrong secret", mustIssue(t, NewTokenService("other-secret", 24*time.Hour))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			if !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("Validate(%q) error = %v, want ErrTokenInvalid", tt.token, err)
			}
		})
	}
}

// tamperSignature flips the last character of the signature segment to a
// different base64url character
func tamperSignature(t *testing.T, token string) string {
	t.Helper()
	last := token[len(token)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	return token[:len(token)-1] + string(replacement)
}

func mustIssue(t *testing.T, svc *TokenService) string {
	t.Helper()
	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	return token
}
