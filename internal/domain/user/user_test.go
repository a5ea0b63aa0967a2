package user_test

import (
	"errors"
	"testing"

	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/user"
)

func TestNewUser(t *testing.T) {
	u, err := user.NewUser("test@example.com", "testuser", "$2a$10$hash")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if u.ID().IsZero() {
		t.Error("expected generated ID")
	}
	if u.EmailVerified() {
		t.Error("new email account must start unverified")
	}
	if u.AuthMethod() != user.AuthMethodEmail {
		t.Errorf("expected auth method %s, got %s", user.AuthMethodEmail, u.AuthMethod())
	}
	if !u.HasPassword() {
		t.Error("email account must carry a password hash")
	}
}

func TestNewUser_Validation(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		username string
		hash     string
	}{
		{"missing email", "", "testuser", "hash"},
		{"missing username", "test@example.com", "", "hash"},
		{"missing password", "test@example.com", "testuser", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := user.NewUser(tc.email, tc.username, tc.hash)
			if !errors.Is(err, errs.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got: %v", err)
			}
		})
	}
}

func TestNewThirdPartyUser(t *testing.T) {
	u, err := user.NewThirdPartyUser("oauth@example.com", "oauthuser")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if !u.EmailVerified() {
		t.Error("third-party account must start verified")
	}
	if u.AuthMethod() != user.AuthMethodThirdParty {
		t.Errorf("expected auth method %s, got %s", user.AuthMethodThirdParty, u.AuthMethod())
	}
	if u.HasPassword() {
		t.Error("third-party account must not carry a password")
	}
}

func TestUser_WithVerifiedEmail_DoesNotMutateOriginal(t *testing.T) {
	original, _ := user.NewUser("test@example.com", "testuser", "hash")

	verified := original.WithVerifiedEmail()

	if original.EmailVerified() {
		t.Error("original user must stay unverified")
	}
	if !verified.EmailVerified() {
		t.Error("copy must be verified")
	}
	if verified.ID() != original.ID() {
		t.Error("copy must keep the same ID")
	}
}

func TestUser_WithPasswordHash(t *testing.T) {
	original, _ := user.NewUser("test@example.com", "testuser", "old-hash")

	updated, err := original.WithPasswordHash("new-hash")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if *original.PasswordHash() != "old-hash" {
		t.Error("original hash must be unchanged")
	}
	if *updated.PasswordHash() != "new-hash" {
		t.Error("copy must carry the new hash")
	}

	if _, err = original.WithPasswordHash(""); !errors.Is(err, errs.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty hash, got: %v", err)
	}
}

