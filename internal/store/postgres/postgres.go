// Package postgres implements store.Store on PostgreSQL via the pgx stdlib
// driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/filamentgenius/backend/internal/model"
	"github.com/filamentgenius/backend/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    seq          BIGSERIAL PRIMARY KEY,
    user_id      TEXT NOT NULL UNIQUE,
    email        TEXT NOT NULL UNIQUE,
    secret       TEXT NOT NULL,
    display_name TEXT NOT NULL,
    joined_at    BIGINT NOT NULL
);
CREATE TABLE IF NOT EXISTS projects (
    seq             BIGSERIAL PRIMARY KEY,
    project_id      TEXT NOT NULL UNIQUE,
    owner_id        TEXT NOT NULL,
    title           TEXT NOT NULL,
    created_at      BIGINT NOT NULL,
    display_date    TEXT NOT NULL,
    category        TEXT NOT NULL,
    thumbnail_ref   TEXT NOT NULL,
    recommendations TEXT,
    chat_history    TEXT
);
CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects(owner_id, created_at);
`

// Open opens a PostgreSQL connection and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Bootstrap creates the schema if it does not exist.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

// NewWithDB constructs a Postgres-backed store on an existing connection.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users       { return &users{db: s.db} }
func (s *pgStore) Projects() store.Projects { return &projects{db: s.db} }

// HealthPing implements health.Pinger.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, rec *model.AuthRecord) (*model.AuthRecord, error) {
	_, err := u.db.ExecContext(ctx,
		`INSERT INTO users (user_id, email, secret, display_name, joined_at) VALUES ($1,$2,$3,$4,$5)`,
		rec.ID, rec.Email, rec.Secret, rec.DisplayName, rec.JoinedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrDuplicateAccount
		}
		return nil, err
	}
	out := *rec
	return &out, nil
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.AuthRecord, error) {
	row := u.db.QueryRowContext(ctx,
		`SELECT user_id, email, secret, display_name, joined_at FROM users WHERE email = $1`, email)
	return scanAuthRecord(row)
}

func (u *users) FindByCredentials(ctx context.Context, email, secret string) (*model.AuthRecord, error) {
	row := u.db.QueryRowContext(ctx,
		`SELECT user_id, email, secret, display_name, joined_at FROM users WHERE email = $1 AND secret = $2`,
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
	recsJSON, err := marshalSlice(proj.Recommendations)
	if err != nil {
		return nil, err
	}
	chatJSON, err := marshalSlice(proj.ChatHistory)
	if err != nil {
		return nil, err
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO projects (project_id, owner_id, title, created_at, display_date, category, thumbnail_ref, recommendations, chat_history)
         VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
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
         FROM projects WHERE owner_id = $1 ORDER BY created_at DESC, seq ASC`, ownerID)
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
		if recsJSON.Valid && recsJSON.String != "" {
			// Corrupted payloads decode to empty rather than failing the listing.
			_ = json.Unmarshal([]byte(recsJSON.String), &proj.Recommendations)
		}
		if chatJSON.Valid && chatJSON.String != "" {
			_ = json.Unmarshal([]byte(chatJSON.String), &proj.ChatHistory)
		}
		out = append(out, &proj)
	}
	return out, rows.Err()
}

func (p *projects) Delete(ctx context.Context, projectID string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM projects WHERE project_id = $1`, projectID)
	return err
}

func marshalSlice(v interface{}) (sql.NullString, error) {
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
