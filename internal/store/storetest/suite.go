// Package storetest holds a compliance suite shared by all store drivers.
package storetest

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/filamentgenius/backend/internal/model"
	"github.com/filamentgenius/backend/internal/store"
)

// Run exercises the compliance suite against a store.Store implementation.
// makeStore must return a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Unique identifiers so the suite can run against shared databases.
	ownerID := "u-" + uuid.New().String()
	email := ownerID + "@example.test"

	// Users: create and read back.
	rec := &model.AuthRecord{
		User:   model.User{ID: ownerID, Email: email, DisplayName: "tester", JoinedAt: 1700000000000},
		Secret: "pw1",
	}
	if _, err := s.Users().Create(ctx, rec); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	got, err := s.Users().GetByEmail(ctx, email)
	if err != nil || got == nil || got.ID != ownerID {
		t.Fatalf("GetByEmail: got=%v err=%v", got, err)
	}

	// Duplicate email is rejected and the first record stays intact.
	dup := &model.AuthRecord{
		User:   model.User{ID: "u-" + uuid.New().String(), Email: email, DisplayName: "other", JoinedAt: 1700000000001},
		Secret: "pw2",
	}
	if _, err := s.Users().Create(ctx, dup); !errors.Is(err, model.ErrDuplicateAccount) {
		t.Fatalf("duplicate Create: want ErrDuplicateAccount, got %v", err)
	}
	if got, err := s.Users().GetByEmail(ctx, email); err != nil || got.Secret != "pw1" || got.ID != ownerID {
		t.Fatalf("first record changed after duplicate attempt: got=%v err=%v", got, err)
	}

	// Credentials must match both fields exactly, case-sensitive.
	if _, err := s.Users().FindByCredentials(ctx, email, "pw1"); err != nil {
		t.Fatalf("FindByCredentials (match): %v", err)
	}
	if _, err := s.Users().FindByCredentials(ctx, email, "PW1"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("FindByCredentials (wrong case): want ErrNotFound, got %v", err)
	}
	if _, err := s.Users().FindByCredentials(ctx, "nobody@example.test", "pw1"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("FindByCredentials (unknown email): want ErrNotFound, got %v", err)
	}

	// Projects: ordering is CreatedAt descending with ties kept in insertion
	// order, and listing is scoped to the owner.
	recs := []model.Recommendation{
		{
			Name: "PolyLite PLA", Brand: "Polymaker", Material: "PLA",
			Reason: "easy to print", PriceEstimate: "AUD 30",
			ProductURL: "https://3dprintergear.com.au/polylite-pla",
			IsTopPick:  true,
			TechnicalSpecs: model.TechnicalSpecs{
				NozzleTemp: "200-220C", BedTemp: "60C", NozzleType: "Brass", Notes: "dry box",
			},
		},
		{
			Name: "eSun PETG", Brand: "eSun", Material: "PETG",
			Reason: "durable", PriceEstimate: "AUD 35",
			ProductURL:     "https://3dprintergear.com.au/esun-petg",
			TechnicalSpecs: model.TechnicalSpecs{NozzleTemp: "230-250C", BedTemp: "80C", NozzleType: "Brass"},
		},
	}
	mkProject := func(id string, createdAt int64, content func(*model.Project)) *model.Project {
		p := &model.Project{
			ID: id, OwnerID: ownerID, Title: "t-" + id,
			CreatedAt: createdAt, DisplayDate: "1 Jan 2026",
			Category: "Engineering", ThumbnailRef: "https://picsum.photos/400/300?random=7",
		}
		content(p)
		return p
	}
	pOld := mkProject(uuid.New().String(), 100, func(p *model.Project) { p.Recommendations = recs })
	pTieA := mkProject(uuid.New().String(), 200, func(p *model.Project) {
		p.ChatHistory = []model.Message{{ID: "m1", Role: model.RoleUser, Text: "hello", Timestamp: 200}}
	})
	pTieB := mkProject(uuid.New().String(), 200, func(p *model.Project) {
		p.ChatHistory = []model.Message{{ID: "m2", Role: model.RoleModel, Text: "hi there", Timestamp: 201}}
	})
	for _, p := range []*model.Project{pOld, pTieA, pTieB} {
		if _, err := s.Projects().Create(ctx, p); err != nil {
			t.Fatalf("CreateProject %s: %v", p.ID, err)
		}
	}

	// A second owner's project must never leak into the listing.
	otherOwner := "u-" + uuid.New().String()
	foreign := mkProject(uuid.New().String(), 300, func(p *model.Project) { p.Recommendations = recs[:1] })
	foreign.OwnerID = otherOwner
	if _, err := s.Projects().Create(ctx, foreign); err != nil {
		t.Fatalf("CreateProject (foreign): %v", err)
	}

	lst, err := s.Projects().ListByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(lst) != 3 {
		t.Fatalf("ListByOwner: want 3 projects, got %d", len(lst))
	}
	if lst[0].ID != pTieA.ID || lst[1].ID != pTieB.ID || lst[2].ID != pOld.ID {
		t.Fatalf("ListByOwner order: got %s,%s,%s", lst[0].ID, lst[1].ID, lst[2].ID)
	}
	for _, p := range lst {
		if p.OwnerID != ownerID {
			t.Fatalf("ListByOwner leaked project owned by %s", p.OwnerID)
		}
	}

	// Serialization round-trip: field values come back exactly as saved.
	if len(lst[2].Recommendations) != len(recs) {
		t.Fatalf("round-trip: want %d recommendations, got %d", len(recs), len(lst[2].Recommendations))
	}
	if !reflect.DeepEqual(lst[2].Recommendations, recs) {
		t.Fatalf("round-trip: recommendations differ\nwant %+v\ngot  %+v", recs, lst[2].Recommendations)
	}
	if !reflect.DeepEqual(lst[0].ChatHistory, pTieA.ChatHistory) {
		t.Fatalf("round-trip: chat history differs\nwant %+v\ngot  %+v", pTieA.ChatHistory, lst[0].ChatHistory)
	}

	// Delete is idempotent and scoped to the given id.
	if err := s.Projects().Delete(ctx, pOld.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Projects().Delete(ctx, pOld.ID); err != nil {
		t.Fatalf("Delete (repeat): %v", err)
	}
	if err := s.Projects().Delete(ctx, "does-not-exist"); err != nil {
		t.Fatalf("Delete (absent id): %v", err)
	}
	lst, err = s.Projects().ListByOwner(ctx, ownerID)
	if err != nil || len(lst) != 2 {
		t.Fatalf("ListByOwner after delete: n=%d err=%v", len(lst), err)
	}
}
