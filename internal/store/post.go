// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"quillpress/internal/models"
)

// PostStore handles all post-related database operations. Comments live
// in a JSONB array on the post row, so a post and its comments are always
// read and deleted together.
type PostStore struct {
	db         *sql.DB
	users      *UserStore
	categories *CategoryStore
}

// NewPostStore creates a new PostStore. The user and category stores are
// used to populate references on read.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{
		db:         db,
		users:      NewUserStore(db),
		categories: NewCategoryStore(db),
	}
}

const postColumns = `id, title, content, excerpt, category_id, author_id, tags,
	is_published, view_count, comments, created_at, updated_at`

// scanPost scans a row into a Post, decoding the JSONB columns.
func scanPost(scanner rowScanner) (*models.Post, error) {
	var p models.Post
	var tags, comments []byte
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.CategoryID, &p.AuthorID, &tags,
		&p.IsPublished, &p.ViewCount, &comments, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Tags = models.Tags{}
	if err := json.Unmarshal(tags, &p.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	p.Comments = []models.Comment{}
	if err := json.Unmarshal(comments, &p.Comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	return &p, nil
}

// Find returns one page of posts matching the filter. Unpublished posts
// are included only when authored by filter.ViewerID. Results are newest
// first; with a query, title matches come before other matches.
func (s *PostStore) Find(ctx context.Context, f models.PostFilter) ([]models.Post, error) {
	var pattern string
	if f.Query != "" {
		pattern = containsPattern(f.Query)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE (is_published OR author_id = $1::uuid)
		  AND ($2::uuid IS NULL OR category_id = $2::uuid)
		  AND ($3::text = '' OR title ILIKE $3 OR content ILIKE $3 OR excerpt ILIKE $3
		       OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) AS tag WHERE tag ILIKE $3))
		ORDER BY CASE WHEN $3::text <> '' AND title ILIKE $3 THEN 0 ELSE 1 END,
		         created_at DESC, id DESC
		LIMIT $4 OFFSET $5
	`, f.ViewerID, f.CategoryID, pattern, f.PageSize, f.Offset())
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// FindByID retrieves a post by ID. Returns nil if not found.
func (s *PostStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// Create inserts a new post with an empty comment list.
func (s *PostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	tags := p.Tags
	if tags == nil {
		tags = models.Tags{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (title, content, excerpt, category_id, author_id, tags, is_published)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)
		RETURNING `+postColumns,
		p.Title, p.Content, p.Excerpt, p.CategoryID, p.AuthorID, string(tagsJSON), p.IsPublished,
	)
	result, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// Update merges the non-nil fields of c into the post. The author is not
// part of PostChanges and cannot be altered. Returns nil if the post does
// not exist.
func (s *PostStore) Update(ctx context.Context, id uuid.UUID, c models.PostChanges) (*models.Post, error) {
	var tagsJSON *string
	if c.Tags != nil {
		tags := *c.Tags
		if tags == nil {
			tags = models.Tags{}
		}
		b, err := json.Marshal(tags)
		if err != nil {
			return nil, fmt.Errorf("encode tags: %w", err)
		}
		encoded := string(b)
		tagsJSON = &encoded
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE posts SET
			title = COALESCE($2, title),
			content = COALESCE($3, content),
			excerpt = COALESCE($4, excerpt),
			category_id = COALESCE($5::uuid, category_id),
			tags = COALESCE($6::jsonb, tags),
			is_published = COALESCE($7, is_published),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+postColumns,
		id, c.Title, c.Content, c.Excerpt, c.CategoryID, tagsJSON, c.IsPublished,
	)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return p, nil
}

// Delete removes a post and its embedded comments. Deleting a missing id
// is not an error.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// AppendComment atomically adds a comment to the end of the post's list.
// Returns nil if the post does not exist.
func (s *PostStore) AppendComment(ctx context.Context, postID uuid.UUID, c models.Comment) (*models.Post, error) {
	commentJSON, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode comment: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE posts SET
			comments = comments || jsonb_build_array($2::jsonb),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+postColumns,
		postID, string(commentJSON),
	)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("append comment: %w", err)
	}
	return p, nil
}

// IncrementViewCount bumps the view counter in a single statement and
// returns the updated post. Returns nil if the post does not exist.
func (s *PostStore) IncrementViewCount(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE posts SET view_count = view_count + 1
		WHERE id = $1
		RETURNING `+postColumns, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("increment view count: %w", err)
	}
	return p, nil
}

// Populate resolves the authors, categories and comment authors of posts
// with one batched query per table, then joins them with JoinPosts.
func (s *PostStore) Populate(ctx context.Context, posts []models.Post) ([]models.PostView, error) {
	userIDs, categoryIDs := ReferencedIDs(posts)

	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("populate authors: %w", err)
	}
	cats, err := s.categories.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("populate categories: %w", err)
	}
	return JoinPosts(posts, users, cats), nil
}
