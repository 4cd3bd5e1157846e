// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package memstore

import (
	"bytes"
	"context"
	"sort"

	"github.com/google/uuid"

	"quillpress/internal/models"
	"quillpress/internal/slug"
)

// CategoryStore is the in-memory counterpart of store.CategoryStore.
type CategoryStore struct {
	s *Store
}

// List returns all categories ordered by name.
func (cs *CategoryStore) List(_ context.Context) ([]models.Category, error) {
	s := cs.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		items = append(items, *c)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return bytes.Compare(items[i].ID[:], items[j].ID[:]) < 0
	})
	return items, nil
}

// FindByID returns the category or nil.
func (cs *CategoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	s := cs.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

// FindByIDs returns the listed categories keyed by id.
func (cs *CategoryStore) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := cs.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[uuid.UUID]*models.Category, len(ids))
	for _, id := range ids {
		if c, ok := s.categories[id]; ok {
			cp := *c
			out[id] = &cp
		}
	}
	return out, nil
}

// Create stores a new category with a slug derived from its name.
func (cs *CategoryStore) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	s := cs.s
	s.mu.Lock()
	defer s.mu.Unlock()

	created := *c
	created.Slug = slug.Generate(c.Name)
	if s.clashes(uuid.Nil, created.Name, created.Slug) {
		return nil, models.ErrDuplicate
	}

	created.ID = uuid.New()
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt
	s.categories[created.ID] = &created

	out := created
	return &out, nil
}

// Update applies a partial change, regenerating the slug on rename.
func (cs *CategoryStore) Update(_ context.Context, id uuid.UUID, p models.CategoryPatch) (*models.Category, error) {
	s := cs.s
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.categories[id]
	if !ok {
		return nil, nil
	}

	next := *existing
	if p.Name != nil {
		next.Name = *p.Name
		next.Slug = slug.Generate(*p.Name)
		if s.clashes(id, next.Name, next.Slug) {
			return nil, models.ErrDuplicate
		}
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	next.UpdatedAt = s.now()
	s.categories[id] = &next

	out := next
	return &out, nil
}

// Delete removes a category and nulls it on every post that used it.
func (cs *CategoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s := cs.s
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.categories, id)
	for _, p := range s.posts {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
		}
	}
	return nil
}

// clashes reports whether another category already uses the name or slug.
// Callers must hold the lock.
func (s *Store) clashes(self uuid.UUID, name, categorySlug string) bool {
	for id, c := range s.categories {
		if id != self && (c.Name == name || c.Slug == categorySlug) {
			return true
		}
	}
	return false
}
