package identity

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/filamentgenius/backend/internal/model"
	"github.com/filamentgenius/backend/internal/store/memory"
)

func newService() *Service {
	return New(memory.New(), zerolog.Nop())
}

func TestRegister_ReturnsStrippedUser(t *testing.T) {
	s := newService()
	ctx := context.Background()

	u, err := s.Register(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID == "" || u.Email != "a@x.com" || u.DisplayName != "a" || u.JoinedAt == 0 {
		t.Fatalf("unexpected user: %+v", u)
	}

	// The serialized User view must not leak the secret.
	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	if strings.Contains(string(b), "pw1") || strings.Contains(string(b), "secret") {
		t.Fatalf("user view leaks the secret: %s", b)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newService()
	ctx := context.Background()

	first, err := s.Register(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := s.Register(ctx, "a@x.com", "other"); !errors.Is(err, model.ErrDuplicateAccount) {
		t.Fatalf("want ErrDuplicateAccount, got %v", err)
	}

	// The first account still logs in with its original secret.
	u, err := s.Login(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Login after duplicate attempt: %v", err)
	}
	if u.ID != first.ID {
		t.Fatalf("account changed by duplicate attempt: %s != %s", u.ID, first.ID)
	}
}

func TestRegister_Validation(t *testing.T) {
	s := newService()
	ctx := context.Background()

	for _, email := range []string{"", "no-at-sign", "@x.com", "a@"} {
		if _, err := s.Register(ctx, email, "pw"); !errors.Is(err, model.ErrValidation) {
			t.Fatalf("email %q: want ErrValidation, got %v", email, err)
		}
	}
	if _, err := s.Register(ctx, "a@x.com", ""); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("empty secret: want ErrValidation, got %v", err)
	}
}

func TestLogin_ExactMatchOnly(t *testing.T) {
	s := newService()
	ctx := context.Background()

	if _, err := s.Register(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cases := []struct{ email, secret string }{
		{"a@x.com", "pw2"},
		{"a@x.com", "PW1"},
		{"A@x.com", "pw1"},
		{"b@x.com", "pw1"},
		{"a@x.com", ""},
	}
	for _, c := range cases {
		if _, err := s.Login(ctx, c.email, c.secret); !errors.Is(err, model.ErrInvalidCredentials) {
			t.Fatalf("login %q/%q: want ErrInvalidCredentials, got %v", c.email, c.secret, err)
		}
	}

	u, err := s.Login(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("valid login: %v", err)
	}
	if u.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
}
