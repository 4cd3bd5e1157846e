// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content implements the blog use cases: listing, searching and
// reading posts, writing and deleting them with ownership checks, appending
// comments, and managing categories. It is the single place that turns
// store results into domain errors.
package content

import (
	"context"

	"github.com/google/uuid"

	"quillpress/internal/metrics"
	"quillpress/internal/models"
	"quillpress/internal/sanitize"
)

// Default paging.
const (
	DefaultPageSize = 9
	MaxPageSize     = 50
)

// PostRepository is the post store contract. store.PostStore and
// memstore.PostStore implement it.
type PostRepository interface {
	Find(ctx context.Context, f models.PostFilter) ([]models.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	Update(ctx context.Context, id uuid.UUID, c models.PostChanges) (*models.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AppendComment(ctx context.Context, postID uuid.UUID, c models.Comment) (*models.Post, error)
	IncrementViewCount(ctx context.Context, id uuid.UUID) (*models.Post, error)
	Populate(ctx context.Context, posts []models.Post) ([]models.PostView, error)
}

// CategoryRepository is the category store contract.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, p models.CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service orchestrates the content use cases.
type Service struct {
	posts      PostRepository
	categories CategoryRepository
	sanitizer  *sanitize.Sanitizer
	metrics    metrics.Recorder

	defaultPageSize int
	maxPageSize     int
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder reports post and comment events to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) { s.metrics = r }
}

// WithPageSize overrides the default and maximum page sizes. Non-positive
// values keep the built-in defaults.
func WithPageSize(def, max int) Option {
	return func(s *Service) {
		if def > 0 {
			s.defaultPageSize = def
		}
		if max > 0 {
			s.maxPageSize = max
		}
	}
}

// NewService creates a content service.
func NewService(posts PostRepository, categories CategoryRepository, opts ...Option) *Service {
	s := &Service{
		posts:           posts,
		categories:      categories,
		sanitizer:       sanitize.New(),
		metrics:         metrics.Discard,
		defaultPageSize: DefaultPageSize,
		maxPageSize:     MaxPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.defaultPageSize > s.maxPageSize {
		s.defaultPageSize = s.maxPageSize
	}
	return s
}

// populateOne resolves the references of a single post.
func (s *Service) populateOne(ctx context.Context, p *models.Post) (*models.PostView, error) {
	views, err := s.posts.Populate(ctx, []models.Post{*p})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &views[0], nil
}

// parseRef parses a reference submitted in a request body. A malformed id
// cannot match any row, so it is reported as not found.
func parseRef(raw, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, models.NewNotFoundError(resource)
	}
	return id, nil
}
