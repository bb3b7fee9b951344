// Package sqlite implements store.Store on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/filamentgenius/backend/internal/model"
	"github.com/filamentgenius/backend/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    seq          INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id      TEXT NOT NULL UNIQUE,
    email        TEXT NOT NULL UNIQUE,
    secret       TEXT NOT NULL,
    display_name TEXT NOT NULL,
    joined_at    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS projects (
    seq             INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id      TEXT NOT NULL UNIQUE,
    owner_id        TEXT NOT NULL,
    title           TEXT NOT NULL,
    created_at      INTEGER NOT NULL,
    display_date    TEXT NOT NULL,
    category        TEXT NOT NULL,
    thumbnail_ref   TEXT NOT NULL,
    recommendations TEXT,
    chat_history    TEXT
);
CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects(owner_id, created_at);
`

type sqliteStore struct{ db *sql.DB }

// New opens (or creates) the database file and bootstraps the schema.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires the store onto an existing connection.
func NewWithDB(db *sql.DB) (store.Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Users() store.Users       { return &users{db: s.db} }
func (s *sqliteStore) Projects() store.Projects { return &projects{db: s.db} }

// HealthPing implements health.Pinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB exposes the underlying connection (tests only).
func (s *sqliteStore) DB() *sql.DB { return s.db }

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, rec *model.AuthRecord) (*model.AuthRecord, error) {
	_, err := u.db.ExecContext(ctx,
		`INSERT INTO users (user_id, email, secret, display_name, joined_at) VALUES (?,?,?,?,?)`,
		rec.ID, rec.Email, rec.Secret, rec.DisplayName, rec.JoinedAt)
	if err != nil {
		// Only an email collision is a duplicate account; a user_id collision
		// is a bug and must surface as-is.
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return nil, model.ErrDuplicateAccount
		}
		return nil, err
	}
	out := *rec
	return &out, nil
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.AuthRecord, error) {
	row := u.db.QueryRowContext(ctx,
		`SELECT user_id, email, secret, display_name, joined_at FROM users WHERE email = ?`, email)
	return scanAuthRecord(row)
}

func (u *users) FindByCredentials(ctx context.Context, email, secret string) (*model.AuthRecord, error) {
	row := u.db.QueryRowContext(ctx,
		`SELECT user_id, email, secret, display_name, joined_at FROM users WHERE email = ? AND secret = ?`,
		email, secret)
	return scanAuthRecord(row)
}

func scanAuthRecord(row *sql.Row) (*model.AuthRecord, error) {
	var rec model.AuthRecord
	err := row.Scan(&rec.ID, &rec.Email, &rec.Secret, &rec.DisplayName, &rec.JoinedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// --- Projects ---

type projects struct{ db *sql.DB }

func (p *projects) Create(ctx context.Context, proj *model.Project) (*model.Project, error) {
	recsJSON, err := marshalContent(proj.Recommendations)
	if err != nil {
		return nil, err
	}
	chatJSON, err := marshalContent(proj.ChatHistory)
	if err != nil {
		return nil, err
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO projects (project_id, owner_id, title, created_at, display_date, category, thumbnail_ref, recommendations, chat_history)
         VALUES (?,?,?,?,?,?,?,?,?)`,
		proj.ID, proj.OwnerID, proj.Title, proj.CreatedAt, proj.DisplayDate,
		proj.Category, proj.ThumbnailRef, recsJSON, chatJSON)
	if err != nil {
		return nil, err
	}
	out := *proj
	return &out, nil
}

func (p *projects) ListByOwner(ctx context.Context, ownerID string) ([]*model.Project, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT project_id, owner_id, title, created_at, display_date, category, thumbnail_ref, recommendations, chat_history
         FROM projects WHERE owner_id = ? ORDER BY created_at DESC, seq ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Project
	for rows.Next() {
		var proj model.Project
		var recsJSON, chatJSON sql.NullString
		if err := rows.Scan(&proj.ID, &proj.OwnerID, &proj.Title, &proj.CreatedAt, &proj.DisplayDate,
			&proj.Category, &proj.ThumbnailRef, &recsJSON, &chatJSON); err != nil {
			return nil, err
		}
		// Corrupted content payloads decode to empty rather than failing the
		// whole listing.
		proj.Recommendations = decodeRecommendations(recsJSON)
		proj.ChatHistory = decodeMessages(chatJSON)
		out = append(out, &proj)
	}
	return out, rows.Err()
}

func (p *projects) Delete(ctx context.Context, projectID string) error {
	// Deleting an absent id affects zero rows, which is fine.
	_, err := p.db.ExecContext(ctx, `DELETE FROM projects WHERE project_id = ?`, projectID)
	return err
}

func marshalContent(v interface{}) (sql.NullString, error) {
	switch c := v.(type) {
	case []model.Recommendation:
		if len(c) == 0 {
			return sql.NullString{}, nil
		}
	case []model.Message:
		if len(c) == 0 {
			return sql.NullString{}, nil
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeRecommendations(s sql.NullString) []model.Recommendation {
	if !s.Valid || s.String == "" {
		return nil
	}
	var recs []model.Recommendation
	if err := json.Unmarshal([]byte(s.String), &recs); err != nil {
		return nil
	}
	return recs
}

func decodeMessages(s sql.NullString) []model.Message {
	if !s.Valid || s.String == "" {
		return nil
	}
	var msgs []model.Message
	if err := json.Unmarshal([]byte(s.String), &msgs); err != nil {
		return nil
	}
	return msgs
}
