// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"quillpress/internal/models"
	"quillpress/internal/store"
)

// PostStore is the in-memory counterpart of store.PostStore.
type PostStore struct {
	s *Store
}

// Find returns one page of posts matching the filter, with the same
// visibility, matching and ordering rules as the PostgreSQL store.
func (ps *PostStore) Find(_ context.Context, f models.PostFilter) ([]models.Post, error) {
	s := ps.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(f.Query)
	var matched []*models.Post
	for _, p := range s.posts {
		if !p.IsPublished && (f.ViewerID == nil || !p.OwnedBy(*f.ViewerID)) {
			continue
		}
		if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
			continue
		}
		if query != "" && !matches(p, query) {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		if query != "" {
			ti := strings.Contains(strings.ToLower(matched[i].Title), query)
			tj := strings.Contains(strings.ToLower(matched[j].Title), query)
			if ti != tj {
				return ti
			}
		}
		return newerFirst(matched[i], matched[j])
	})

	posts := []models.Post{}
	start := f.Offset()
	if start < 0 || start >= len(matched) {
		return posts, nil
	}
	end := len(matched)
	if f.PageSize > 0 && f.PageSize < end-start {
		end = start + f.PageSize
	}
	for _, p := range matched[start:end] {
		posts = append(posts, *clonePost(p))
	}
	return posts, nil
}

// matches reports a case-insensitive substring match on title, content,
// excerpt or any tag. query must already be lower-cased.
func matches(p *models.Post, query string) bool {
	for _, field := range []string{p.Title, p.Content, p.Excerpt} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// FindByID returns the post or nil.
func (ps *PostStore) FindByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	s := ps.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	return clonePost(p), nil
}

// Create stores a new post with an empty comment list.
func (ps *PostStore) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	s := ps.s
	s.mu.Lock()
	defer s.mu.Unlock()

	created := clonePost(p)
	created.ID = uuid.New()
	created.ViewCount = 0
	created.Comments = []models.Comment{}
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt
	s.posts[created.ID] = created

	return clonePost(created), nil
}

// Update merges the non-nil fields of c into the post.
func (ps *PostStore) Update(_ context.Context, id uuid.UUID, c models.PostChanges) (*models.Post, error) {
	s := ps.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	if c.Title != nil {
		p.Title = *c.Title
	}
	if c.Content != nil {
		p.Content = *c.Content
	}
	if c.Excerpt != nil {
		p.Excerpt = *c.Excerpt
	}
	if c.CategoryID != nil {
		catID := *c.CategoryID
		p.CategoryID = &catID
	}
	if c.Tags != nil {
		p.Tags = append(models.Tags{}, (*c.Tags)...)
	}
	if c.IsPublished != nil {
		p.IsPublished = *c.IsPublished
	}
	p.UpdatedAt = s.now()
	return clonePost(p), nil
}

// Delete removes a post and its comments. Missing ids are ignored.
func (ps *PostStore) Delete(_ context.Context, id uuid.UUID) error {
	s := ps.s
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.posts, id)
	return nil
}

// AppendComment adds a comment to the end of the post's list.
func (ps *PostStore) AppendComment(_ context.Context, postID uuid.UUID, c models.Comment) (*models.Post, error) {
	s := ps.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return nil, nil
	}
	p.Comments = append(p.Comments, c)
	p.UpdatedAt = s.now()
	return clonePost(p), nil
}

// IncrementViewCount bumps the counter and returns the updated post.
func (ps *PostStore) IncrementViewCount(_ context.Context, id uuid.UUID) (*models.Post, error) {
	s := ps.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	p.ViewCount++
	return clonePost(p), nil
}

// Populate resolves references using the shared read-side join.
func (ps *PostStore) Populate(ctx context.Context, posts []models.Post) ([]models.PostView, error) {
	userIDs, categoryIDs := store.ReferencedIDs(posts)
	users, err := ps.s.Users().FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("populate authors: %w", err)
	}
	cats, err := ps.s.Categories().FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("populate categories: %w", err)
	}
	return store.JoinPosts(posts, users, cats), nil
}
