package store

import (
	"context"

	"github.com/filamentgenius/backend/internal/model"
)

// Store exposes the persistence collections required by services. Each
// collection maps to one namespace of the persisted state layout.
// Implementations live under internal/store/<driver>/ (memory, sqlite,
// postgres).
type Store interface {
	Users() Users
	Projects() Projects
}

// Users is the users namespace: the full set of AuthRecords.
type Users interface {
	// Create appends a new AuthRecord. Returns model.ErrDuplicateAccount
	// when the email is already taken.
	Create(ctx context.Context, rec *model.AuthRecord) (*model.AuthRecord, error)

	// GetByEmail returns the record for an email, or model.ErrNotFound.
	// Matching is exact and case-sensitive.
	GetByEmail(ctx context.Context, email string) (*model.AuthRecord, error)

	// FindByCredentials returns the record matching both email and secret
	// exactly, or model.ErrNotFound.
	FindByCredentials(ctx context.Context, email, secret string) (*model.AuthRecord, error)
}

// Projects is the projects namespace.
type Projects interface {
	// Create appends a fully populated Project record.
	Create(ctx context.Context, p *model.Project) (*model.Project, error)

	// ListByOwner returns the owner's projects ordered by CreatedAt
	// descending; ties keep insertion order.
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Project, error)

	// Delete removes the project with the given id. Deleting an absent id is
	// a no-op, not an error.
	Delete(ctx context.Context, projectID string) error
}
