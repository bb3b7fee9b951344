// Package identity registers and authenticates users against the users
// collection. Auth is demo-grade by design: secrets are stored as given and
// compared exactly.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/filamentgenius/backend/internal/model"
	"github.com/filamentgenius/backend/internal/store"
)

// Service owns the email uniqueness invariant.
type Service struct {
	store store.Store
	log   zerolog.Logger
}

// New creates the identity service.
func New(s store.Store, log zerolog.Logger) *Service {
	return &Service{store: s, log: log}
}

// Register creates a new account. The returned User never carries the secret.
func (s *Service) Register(ctx context.Context, email, secret string) (*model.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if secret == "" {
		return nil, model.NewValidationError("secret", "secret is required")
	}

	if _, err := s.store.Users().GetByEmail(ctx, email); err == nil {
		return nil, model.ErrDuplicateAccount
	} else if !errors.Is(err, model.ErrNotFound) {
		s.log.Error().Stack().Err(err).Msg("register: users lookup failed")
		return nil, fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}

	rec := &model.AuthRecord{
		User: model.User{
			ID:          uuid.New().String(),
			Email:       email,
			DisplayName: displayNameFor(email),
			JoinedAt:    time.Now().UnixMilli(),
		},
		Secret: secret,
	}

	created, err := s.store.Users().Create(ctx, rec)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateAccount) {
			return nil, model.ErrDuplicateAccount
		}
		s.log.Error().Stack().Err(err).Msg("register: users append failed")
		return nil, fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}

	s.log.Info().Str("userID", created.ID).Msg("account registered")
	user := created.User
	return &user, nil
}

// Login authenticates by exact, case-sensitive email and secret match.
func (s *Service) Login(ctx context.Context, email, secret string) (*model.User, error) {
	if email == "" || secret == "" {
		return nil, model.ErrInvalidCredentials
	}

	rec, err := s.store.Users().FindByCredentials(ctx, email, secret)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		// The secret must never reach the log.
		s.log.Error().Stack().Err(err).Msg("login: credentials lookup failed")
		return nil, fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}

	s.log.Info().Str("userID", rec.ID).Msg("login succeeded")
	user := rec.User
	return &user, nil
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return model.NewValidationError("email", "a valid email address is required")
	}
	return nil
}

// displayNameFor derives the display name from the email local part.
func displayNameFor(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
