// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"quillpress/internal/markdown"
	"quillpress/internal/models"
)

// ListParams are the reader-supplied listing options. Page is 1-based and
// required; Limit <= 0 selects the default page size; Category is an
// optional category id; Query is an optional free-text search.
type ListParams struct {
	Page     int
	Limit    int
	Category string
	Query    string
}

// ListPosts returns one populated page of posts visible to viewer, which
// may be nil for anonymous readers. Callers detect further pages by
// comparing the result length with the requested limit.
func (s *Service) ListPosts(ctx context.Context, viewer *models.Identity, params ListParams) ([]models.PostView, error) {
	if params.Page < 1 {
		return nil, models.NewValidationError("page must be a positive integer")
	}

	limit := params.Limit
	switch {
	case limit <= 0:
		limit = s.defaultPageSize
	case limit > s.maxPageSize:
		limit = s.maxPageSize
	}

	filter := models.PostFilter{
		Query:    strings.TrimSpace(params.Query),
		Page:     params.Page,
		PageSize: limit,
	}
	if c := strings.TrimSpace(params.Category); c != "" {
		id, err := uuid.Parse(c)
		if err != nil {
			return nil, models.NewValidationError("category must be a valid id")
		}
		filter.CategoryID = &id
	}
	if viewer != nil {
		filter.ViewerID = &viewer.ID
	}

	if limit > 0 && params.Page > math.MaxInt/limit {
		// No store holds that many rows; the offset would overflow.
		return []models.PostView{}, nil
	}

	posts, err := s.posts.Find(ctx, filter)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	views, err := s.posts.Populate(ctx, posts)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return views, nil
}

// GetPost returns a populated post and counts the read. Drafts of other
// authors are reported as not found.
func (s *Service) GetPost(ctx context.Context, viewer *models.Identity, id uuid.UUID) (*models.PostView, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil || !post.VisibleTo(viewer) {
		return nil, models.NewNotFoundError("post")
	}

	post, err = s.posts.IncrementViewCount(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		// Deleted between the two calls.
		return nil, models.NewNotFoundError("post")
	}
	return s.populateOne(ctx, post)
}

// CreatePost stores a new post authored by author. Any author the client
// tried to supply is not part of PostInput and never reaches the store.
func (s *Service) CreatePost(ctx context.Context, author *models.Identity, in models.PostInput) (*models.PostView, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	body, err := s.renderBody(in.Format, in.Content)
	if err != nil {
		return nil, err
	}
	in.Content = body

	categoryID, err := s.requireCategory(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.Create(ctx, &models.Post{
		Title:       in.Title,
		Content:     in.Content,
		Excerpt:     in.Excerpt,
		CategoryID:  &categoryID,
		AuthorID:    &author.ID,
		Tags:        in.Tags,
		IsPublished: in.IsPublished,
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	s.metrics.RecordPostCreated()
	slog.Info("post created", "post_id", post.ID, "author_id", author.ID, "published", post.IsPublished)
	return s.populateOne(ctx, post)
}

// UpdatePost merges the patch into a post owned by editor. Only title,
// content, excerpt, category, tags and isPublished can change.
func (s *Service) UpdatePost(ctx context.Context, editor *models.Identity, id uuid.UUID, patch models.PostPatch) (*models.PostView, error) {
	if _, err := s.ownedPost(ctx, editor, id, "you can only edit your own posts"); err != nil {
		return nil, err
	}

	patch.Normalize()
	format := models.FormatHTML
	if patch.Format != nil {
		format = *patch.Format
	}
	if err := models.ValidateFormat(format); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Content != nil {
		body, err := s.renderBody(format, *patch.Content)
		if err != nil {
			return nil, err
		}
		patch.Content = &body
	}

	changes := models.PostChanges{
		Title:       patch.Title,
		Content:     patch.Content,
		Excerpt:     patch.Excerpt,
		Tags:        patch.Tags,
		IsPublished: patch.IsPublished,
	}
	if patch.Category != nil {
		categoryID, err := s.requireCategory(ctx, *patch.Category)
		if err != nil {
			return nil, err
		}
		changes.CategoryID = &categoryID
	}

	post, err := s.posts.Update(ctx, id, changes)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post")
	}

	slog.Info("post updated", "post_id", post.ID, "author_id", editor.ID)
	return s.populateOne(ctx, post)
}

// DeletePost removes a post owned by editor together with its comments.
func (s *Service) DeletePost(ctx context.Context, editor *models.Identity, id uuid.UUID) error {
	if _, err := s.ownedPost(ctx, editor, id, "you can only delete your own posts"); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return models.NewInternalError(err)
	}

	s.metrics.RecordPostDeleted()
	slog.Info("post deleted", "post_id", id, "author_id", editor.ID)
	return nil
}

// AddComment appends a comment by commenter to a post the commenter can
// see and returns the updated post.
func (s *Service) AddComment(ctx context.Context, commenter *models.Identity, postID uuid.UUID, text string) (*models.PostView, error) {
	text = strings.TrimSpace(text)
	if err := models.ValidateComment(text); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(s.sanitizer.Comment(text))
	if text == "" {
		return nil, models.NewValidationError("comment is required")
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil || !post.VisibleTo(commenter) {
		return nil, models.NewNotFoundError("post")
	}

	post, err = s.posts.AppendComment(ctx, postID, models.Comment{
		UserID:    commenter.ID,
		Content:   text,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post")
	}

	s.metrics.RecordCommentAdded()
	return s.populateOne(ctx, post)
}

// renderBody turns a validated post body into sanitised HTML, converting
// Markdown first when asked to. A body with nothing left after sanitising
// is rejected.
func (s *Service) renderBody(format, body string) (string, error) {
	if err := models.ValidateFormat(format); err != nil {
		return "", err
	}
	if format == models.FormatMarkdown {
		html, err := markdown.ToHTML(body)
		if err != nil {
			return "", models.NewInternalError(err)
		}
		body = html
	}
	body = strings.TrimSpace(s.sanitizer.Content(body))
	if body == "" {
		return "", models.NewValidationError("content is required")
	}
	return body, nil
}

// ownedPost loads a post and checks that editor wrote it.
func (s *Service) ownedPost(ctx context.Context, editor *models.Identity, id uuid.UUID, forbidden string) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post")
	}
	if !post.OwnedBy(editor.ID) {
		return nil, models.NewForbiddenError(forbidden)
	}
	return post, nil
}

// requireCategory resolves a category reference from a request body.
func (s *Service) requireCategory(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := parseRef(raw, "category")
	if err != nil {
		return uuid.Nil, err
	}
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return uuid.Nil, models.NewInternalError(err)
	}
	if c == nil {
		return uuid.Nil, models.NewNotFoundError("category")
	}
	return id, nil
}
