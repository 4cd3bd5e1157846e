// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package memstore

import (
	"context"

	"github.com/google/uuid"

	"quillpress/internal/models"
)

// UserStore is the in-memory counterpart of store.UserStore.
type UserStore struct {
	s *Store
}

// Create stores a new user. Username and email must be unused.
func (us *UserStore) Create(_ context.Context, u *models.User) (*models.User, error) {
	s := us.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, models.ErrDuplicate
		}
	}

	created := *u
	created.ID = uuid.New()
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt
	s.users[created.ID] = &created

	out := created
	return &out, nil
}

// FindByID returns the user or nil.
func (us *UserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s := us.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

// FindByLogin matches the username exactly or the email after
// normalisation.
func (us *UserStore) FindByLogin(_ context.Context, identifier string) (*models.User, error) {
	s := us.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	email := models.NormalizeEmail(identifier)
	for _, u := range s.users {
		if u.Username == identifier || u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

// FindByIDs returns the listed users keyed by id.
func (us *UserStore) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := us.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[uuid.UUID]*models.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			cp := *u
			out[id] = &cp
		}
	}
	return out, nil
}

// Delete removes a user and nulls their authorship on posts, mirroring
// ON DELETE SET NULL. The API never deletes users; tests use this to
// exercise dangling references.
func (us *UserStore) Delete(_ context.Context, id uuid.UUID) error {
	s := us.s
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	for _, p := range s.posts {
		if p.AuthorID != nil && *p.AuthorID == id {
			p.AuthorID = nil
		}
	}
	return nil
}
