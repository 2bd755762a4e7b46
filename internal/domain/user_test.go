package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  alice ", "pw1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Username != "alice" {
		t.Errorf("Expected username %q, got %q", "alice", user.Username)
	}

	if user.Password != "pw1" {
		t.Errorf("Expected plaintext password to be kept until hashing, got %q", user.Password)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if _, err = NewUser("", "pw1"); err != ErrEmptyUsername {
		t.Errorf("Expected error %v, got %v", ErrEmptyUsername, err)
	}

	if _, err = NewUser(strings.Repeat("a", MaxUsernameLength+1), "pw1"); err != ErrUsernameTooLong {
		t.Errorf("Expected error %v, got %v", ErrUsernameTooLong, err)
	}

	if _, err = NewUser("alice", ""); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}

	if _, err = NewUser("alice", strings.Repeat("x", MaxPasswordLength+1)); err != ErrPasswordTooLong {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             uuid.New(),
		Username:       "bob",
		HashedPassword: "$2a$12$abcdefghijklmnopqrstuv",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected valid user, got error: %v", err)
	}

	noID := validUser
	noID.ID = uuid.Nil
	if err := noID.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}

	noHash := validUser
	noHash.HashedPassword = ""
	if err := noHash.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}

func TestUserValidationErrorsWrapErrValidation(t *testing.T) {
	for _, err := range []error{
		ErrEmptyUserID, ErrEmptyUsername, ErrUsernameTooLong,
		ErrEmptyPassword, ErrPasswordTooLong, ErrEmptyHashedPassword,
	} {
		if !errors.Is(err, ErrValidation) {
			t.Errorf("Expected %v to wrap ErrValidation", err)
		}
	}
}

func TestUserIdentity(t *testing.T) {
	user := &User{ID: uuid.New(), Username: "carol", HashedPassword: "secret-hash"}

	identity := user.Identity()

	if identity.ID != user.ID || identity.Username != user.Username {
		t.Errorf("Expected identity %v/%s, got %v/%s", user.ID, user.Username, identity.ID, identity.Username)
	}
}
