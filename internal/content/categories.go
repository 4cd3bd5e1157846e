// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"quillpress/internal/models"
	"quillpress/internal/slug"
)

// ListCategories returns every category ordered by name.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	items, err := s.categories.List(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

// CreateCategory stores a new category. Names and slugs are unique.
func (s *Service) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := checkSluggable(in.Name); err != nil {
		return nil, err
	}

	c, err := s.categories.Create(ctx, &models.Category{Name: in.Name, Description: in.Description})
	if errors.Is(err, models.ErrDuplicate) {
		return nil, models.NewValidationError("category already exists")
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	slog.Info("category created", "category_id", c.ID, "slug", c.Slug)
	return c, nil
}

// UpdateCategory renames or re-describes a category. A rename regenerates
// the slug.
func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, patch models.CategoryPatch) (*models.Category, error) {
	patch.Normalize()
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if err := checkSluggable(*patch.Name); err != nil {
			return nil, err
		}
	}

	c, err := s.categories.Update(ctx, id, patch)
	if errors.Is(err, models.ErrDuplicate) {
		return nil, models.NewValidationError("category already exists")
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if c == nil {
		return nil, models.NewNotFoundError("category")
	}
	return c, nil
}

// DeleteCategory removes a category. Its posts remain with no category.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return models.NewInternalError(err)
	}
	if c == nil {
		return models.NewNotFoundError("category")
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return models.NewInternalError(err)
	}

	slog.Info("category deleted", "category_id", id)
	return nil
}

// checkSluggable rejects names whose slug would be empty, such as "!!!".
func checkSluggable(name string) error {
	if slug.Generate(name) == "" {
		return models.NewValidationError("category name must contain letters or digits")
	}
	return nil
}
