// Package project implements CRUD over Project records scoped by owning
// user. The service is the sole mutator of the projects collection.
package project

import (
	"context"
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/filamentgenius/backend/internal/model"
	"github.com/filamentgenius/backend/internal/store"
)

// Content carries the single content kind of a project being saved.
type Content struct {
	Recommendations []model.Recommendation
	ChatHistory     []model.Message
}

// Service owns project ordering and thumbnail-seed derivation.
type Service struct {
	store store.Store
	log   zerolog.Logger
	now   func() time.Time
}

// New creates the project service.
func New(s store.Store, log zerolog.Logger) *Service {
	return &Service{store: s, log: log, now: time.Now}
}

// List returns the owner's projects, most recent first. Storage read
// failures degrade to an empty listing so the app stays usable.
func (s *Service) List(ctx context.Context, ownerID string) []*model.Project {
	if ownerID == "" {
		return nil
	}
	lst, err := s.store.Projects().ListByOwner(ctx, ownerID)
	if err != nil {
		s.log.Warn().Err(err).Str("ownerID", ownerID).Msg("project listing unavailable, returning empty")
		return nil
	}
	return lst
}

// Save validates the content invariant, fills in id, timestamps and the
// thumbnail reference, persists the project and returns it.
func (s *Service) Save(ctx context.Context, ownerID, title, category string, content Content) (*model.Project, error) {
	if ownerID == "" {
		return nil, model.NewValidationError("ownerID", "owner ID is required")
	}
	if title == "" {
		return nil, model.NewValidationError("title", "title is required")
	}
	if category == "" {
		return nil, model.NewValidationError("category", "category is required")
	}
	hasRecs := len(content.Recommendations) > 0
	hasChat := len(content.ChatHistory) > 0
	if hasRecs && hasChat {
		return nil, model.NewValidationError("content", "a project holds either recommendations or a chat history, not both")
	}
	if !hasRecs && !hasChat {
		return nil, model.NewValidationError("content", "a project needs recommendations or a chat history")
	}

	now := s.now()
	proj := &model.Project{
		ID:              uuid.New().String(),
		OwnerID:         ownerID,
		Title:           title,
		CreatedAt:       now.UnixMilli(),
		DisplayDate:     now.Format("2 Jan 2006"),
		Category:        titleCase(category),
		ThumbnailRef:    thumbnailRef(title, category, content.Recommendations),
		Recommendations: content.Recommendations,
		ChatHistory:     content.ChatHistory,
	}

	created, err := s.store.Projects().Create(ctx, proj)
	if err != nil {
		s.log.Error().Stack().Err(err).Str("ownerID", ownerID).Msg("project save failed")
		return nil, fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}

	s.log.Info().Str("ownerID", ownerID).Str("projectID", created.ID).Str("category", created.Category).Msg("project saved")
	return created, nil
}

// Delete removes a project by id. Deleting an absent id is a no-op.
func (s *Service) Delete(ctx context.Context, projectID string) error {
	if projectID == "" {
		return model.NewValidationError("projectID", "project ID is required")
	}
	if err := s.store.Projects().Delete(ctx, projectID); err != nil {
		s.log.Error().Stack().Err(err).Str("projectID", projectID).Msg("project delete failed")
		return fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}
	s.log.Info().Str("projectID", projectID).Msg("project deleted")
	return nil
}

// thumbnailRef derives stable placeholder imagery per project. The seed
// combines the title length with either the first recommendation's material
// length or the category length; it is reproducible, not meaningful.
func thumbnailRef(title, category string, recs []model.Recommendation) string {
	seed := len(title)
	if len(recs) > 0 {
		seed += len(recs[0].Material)
	} else {
		seed += len(category)
	}
	return fmt.Sprintf("https://picsum.photos/400/300?random=%d", seed)
}

// titleCase upper-cases the first rune only ("engineering" -> "Engineering").
func titleCase(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
