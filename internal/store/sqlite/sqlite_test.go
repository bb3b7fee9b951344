package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/filamentgenius/backend/internal/model"
	"github.com/filamentgenius/backend/internal/store"
	"github.com/filamentgenius/backend/internal/store/storetest"
)

func makeStore(t *testing.T) store.Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "filament.db"))
	if err != nil {
		t.Fatalf("sqlite New: %v", err)
	}
	return s
}

func TestSqliteStore_Compliance(t *testing.T) {
	storetest.Run(t, makeStore)
}

func TestSqliteStore_CorruptedContentDecodesEmpty(t *testing.T) {
	s := makeStore(t)
	ctx := context.Background()

	db := s.(*sqliteStore).DB()
	_, err := db.ExecContext(ctx,
		`INSERT INTO projects (project_id, owner_id, title, created_at, display_date, category, thumbnail_ref, recommendations, chat_history)
         VALUES ('p1','owner-1','Broken',100,'1 Jan 2026','Engineering','ref','{not json',NULL)`)
	if err != nil {
		t.Fatalf("seed corrupted row: %v", err)
	}

	lst, err := s.Projects().ListByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(lst) != 1 {
		t.Fatalf("want 1 project, got %d", len(lst))
	}
	if len(lst[0].Recommendations) != 0 || len(lst[0].ChatHistory) != 0 {
		t.Fatalf("corrupted content should decode to empty, got %+v", lst[0])
	}
}

func TestSqliteStore_UserIDCollisionIsNotDuplicateAccount(t *testing.T) {
	s := makeStore(t)
	ctx := context.Background()

	rec := &model.AuthRecord{
		User:   model.User{ID: "u-1", Email: "a@x.com", DisplayName: "a", JoinedAt: 100},
		Secret: "pw1",
	}
	if _, err := s.Users().Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	clash := &model.AuthRecord{
		User:   model.User{ID: "u-1", Email: "b@x.com", DisplayName: "b", JoinedAt: 101},
		Secret: "pw2",
	}
	_, err := s.Users().Create(ctx, clash)
	if err == nil {
		t.Fatalf("id collision must fail")
	}
	if errors.Is(err, model.ErrDuplicateAccount) {
		t.Fatalf("id collision must not map to ErrDuplicateAccount, got %v", err)
	}
}

func TestSqliteStore_HealthPing(t *testing.T) {
	s := makeStore(t)
	if err := s.(*sqliteStore).HealthPing(context.Background()); err != nil {
		t.Fatalf("HealthPing: %v", err)
	}
}
