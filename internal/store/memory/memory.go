// Package memory provides an in-memory store.Store driver. It backs unit
// tests and the demo mode; nothing survives process exit.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/filamentgenius/backend/internal/model"
	"github.com/filamentgenius/backend/internal/store"
)

type memStore struct {
	mu       sync.RWMutex
	users    []*model.AuthRecord
	projects []*model.Project
}

// New constructs an empty in-memory store.
func New() store.Store { return &memStore{} }

func (s *memStore) Users() store.Users       { return &users{s} }
func (s *memStore) Projects() store.Projects { return &projects{s} }

// HealthPing implements health.Pinger; an in-memory store is always up.
func (s *memStore) HealthPing(ctx context.Context) error { return ctx.Err() }

// --- Users ---

type users struct{ s *memStore }

func (u *users) Create(ctx context.Context, rec *model.AuthRecord) (*model.AuthRecord, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if existing.Email == rec.Email {
			return nil, model.ErrDuplicateAccount
		}
	}
	cp := *rec
	u.s.users = append(u.s.users, &cp)
	out := cp
	return &out, nil
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.AuthRecord, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, rec := range u.s.users {
		if rec.Email == email {
			out := *rec
			return &out, nil
		}
	}
	return nil, model.ErrNotFound
}

func (u *users) FindByCredentials(ctx context.Context, email, secret string) (*model.AuthRecord, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, rec := range u.s.users {
		if rec.Email == email && rec.Secret == secret {
			out := *rec
			return &out, nil
		}
	}
	return nil, model.ErrNotFound
}

// --- Projects ---

type projects struct{ s *memStore }

func (p *projects) Create(ctx context.Context, proj *model.Project) (*model.Project, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	cp := cloneProject(proj)
	p.s.projects = append(p.s.projects, cp)
	return cloneProject(cp), nil
}

func (p *projects) ListByOwner(ctx context.Context, ownerID string) ([]*model.Project, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	var out []*model.Project
	for _, proj := range p.s.projects {
		if proj.OwnerID == ownerID {
			out = append(out, cloneProject(proj))
		}
	}
	// Stable sort keeps insertion order for equal timestamps.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (p *projects) Delete(ctx context.Context, projectID string) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	kept := p.s.projects[:0]
	for _, proj := range p.s.projects {
		if proj.ID != projectID {
			kept = append(kept, proj)
		}
	}
	p.s.projects = kept
	return nil
}

func cloneProject(p *model.Project) *model.Project {
	cp := *p
	if p.Recommendations != nil {
		cp.Recommendations = append([]model.Recommendation(nil), p.Recommendations...)
	}
	if p.ChatHistory != nil {
		cp.ChatHistory = append([]model.Message(nil), p.ChatHistory...)
	}
	return &cp
}
