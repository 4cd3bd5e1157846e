// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package memstore is an in-memory implementation of the content store
// contracts. It backs STORE_DRIVER=memory for local runs and the service
// and handler tests. Semantics follow the PostgreSQL stores: (nil, nil) on
// not-found, models.ErrDuplicate on unique clashes, category deletes null
// the reference on posts.
package memstore

import (
	"bytes"
	"sync"
	"time"

	"github.com/google/uuid"

	"quillpress/internal/models"
)

// Store holds all entities behind a single lock. Use Users, Categories and
// Posts to get the per-entity views.
type Store struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]*models.User
	categories map[uuid.UUID]*models.Category
	posts      map[uuid.UUID]*models.Post
	last       time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:      make(map[uuid.UUID]*models.User),
		categories: make(map[uuid.UUID]*models.Category),
		posts:      make(map[uuid.UUID]*models.Post),
	}
}

// Users returns the user view of the store.
func (s *Store) Users() *UserStore { return &UserStore{s: s} }

// Categories returns the category view of the store.
func (s *Store) Categories() *CategoryStore { return &CategoryStore{s: s} }

// Posts returns the post view of the store.
func (s *Store) Posts() *PostStore { return &PostStore{s: s} }

// now returns a strictly increasing timestamp at microsecond precision,
// matching PostgreSQL's resolution, so creation order is always
// observable. Callers must hold the write lock.
func (s *Store) now() time.Time {
	t := time.Now().UTC().Truncate(time.Microsecond)
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

// newerFirst orders by creation time descending, then id descending.
func newerFirst(a, b *models.Post) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) > 0
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Tags = append(models.Tags{}, p.Tags...)
	c.Comments = append([]models.Comment{}, p.Comments...)
	if p.CategoryID != nil {
		id := *p.CategoryID
		c.CategoryID = &id
	}
	if p.AuthorID != nil {
		id := *p.AuthorID
		c.AuthorID = &id
	}
	return &c
}
