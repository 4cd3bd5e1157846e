// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Validation limits for posts and comments.
const (
	MinTitleLen   = 3
	MaxTitleLen   = 200
	MinContentLen = 10
	MaxContentLen = 100_000
	MaxExcerptLen = 200
	MaxCommentLen = 2_000
)

// Body formats accepted when writing a post. HTML is the default.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Tags is an ordered list of free-text labels. Order and duplicates are
// preserved exactly as submitted.
type Tags []string

// UnmarshalJSON accepts either a JSON array of strings or a single
// comma-separated string such as "go, web, go".
func (t *Tags) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*t = Tags(list)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return NewValidationError("tags must be an array of strings or a comma-separated string")
	}
	*t = ParseTags(s)
	return nil
}

// ParseTags splits a comma-separated string, trimming each item and
// dropping empty ones.
func ParseTags(s string) Tags {
	tags := Tags{}
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Comment is an entry embedded in a post's comment list. The JSON tags
// describe the stored form; responses use CommentView.
type Comment struct {
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Post is a blog entry. AuthorID is set once at creation and never changes;
// it and CategoryID become nil if the referenced row is deleted.
type Post struct {
	ID          uuid.UUID
	Title       string
	Content     string
	Excerpt     string
	CategoryID  *uuid.UUID
	AuthorID    *uuid.UUID
	Tags        Tags
	IsPublished bool
	ViewCount   int64
	Comments    []Comment
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy reports whether the post was written by the given user.
func (p *Post) OwnedBy(userID uuid.UUID) bool {
	return p.AuthorID != nil && *p.AuthorID == userID
}

// VisibleTo reports whether a reader may see the post. Drafts are only
// visible to their author; viewer may be nil for anonymous readers.
func (p *Post) VisibleTo(viewer *Identity) bool {
	if p.IsPublished {
		return true
	}
	return viewer != nil && p.OwnedBy(viewer.ID)
}

// PostView is a post with its author, category and comment authors
// resolved. It is the only post shape returned to clients.
type PostView struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	Excerpt     string           `json:"excerpt"`
	Category    *CategorySummary `json:"category"`
	Author      *UserSummary     `json:"author"`
	Tags        Tags             `json:"tags"`
	IsPublished bool             `json:"isPublished"`
	ViewCount   int64            `json:"viewCount"`
	Comments    []CommentView    `json:"comments"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CommentView is a comment with its author resolved. User is nil when the
// commenting account no longer exists.
type CommentView struct {
	User      *UserSummary `json:"user"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"createdAt"`
}

// PostFilter selects a page of posts.
type PostFilter struct {
	CategoryID *uuid.UUID
	Query      string
	ViewerID   *uuid.UUID // unpublished posts by this user are included
	Page       int        // 1-based
	PageSize   int
}

// Offset returns the number of rows to skip for the filter's page.
func (f PostFilter) Offset() int {
	if f.Page < 1 || f.PageSize < 1 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.PageSize {
		return math.MaxInt
	}
	return (f.Page - 1) * f.PageSize
}

// PostInput is the body of a post create request. Any author field the
// client sends is not part of the type and is dropped during decoding.
type PostInput struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Excerpt     string `json:"excerpt"`
	Category    string `json:"category"`
	Tags        Tags   `json:"tags"`
	IsPublished bool   `json:"isPublished"`
	Format      string `json:"format"` // FormatHTML or FormatMarkdown; applies to Content
}

// Normalize trims text fields and guarantees a non-nil tag list.
func (in *PostInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Excerpt = strings.TrimSpace(in.Excerpt)
	in.Category = strings.TrimSpace(in.Category)
	in.Format = normalizeFormat(in.Format)
	if in.Tags == nil {
		in.Tags = Tags{}
	}
}

// Validate checks required fields and length limits.
func (in *PostInput) Validate() error {
	if err := validateTitle(in.Title); err != nil {
		return err
	}
	if err := validateContent(in.Content); err != nil {
		return err
	}
	if err := validateExcerpt(in.Excerpt); err != nil {
		return err
	}
	if in.Category == "" {
		return NewValidationError("category is required")
	}
	return nil
}

// PostPatch is the body of a post update request. Nil fields are left
// unchanged; author and id are not patchable.
type PostPatch struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Excerpt     *string `json:"excerpt"`
	Category    *string `json:"category"`
	Tags        *Tags   `json:"tags"`
	IsPublished *bool   `json:"isPublished"`
	Format      *string `json:"format"`
}

// Normalize trims every present text field.
func (p *PostPatch) Normalize() {
	trimPtr(p.Title)
	trimPtr(p.Content)
	trimPtr(p.Excerpt)
	trimPtr(p.Category)
	if p.Format != nil {
		f := normalizeFormat(*p.Format)
		p.Format = &f
	}
}

// Validate checks every present field with the same rules as PostInput.
func (p *PostPatch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Content != nil {
		if err := validateContent(*p.Content); err != nil {
			return err
		}
	}
	if p.Excerpt != nil {
		if err := validateExcerpt(*p.Excerpt); err != nil {
			return err
		}
	}
	if p.Category != nil && *p.Category == "" {
		return NewValidationError("category is required")
	}
	return nil
}

// PostChanges is the store-level form of a patch with references resolved.
type PostChanges struct {
	Title       *string
	Content     *string
	Excerpt     *string
	CategoryID  *uuid.UUID
	Tags        *Tags
	IsPublished *bool
}

// ValidateFormat rejects body formats other than html and markdown.
func ValidateFormat(format string) error {
	switch format {
	case FormatHTML, FormatMarkdown:
		return nil
	}
	return NewValidationError("format must be html or markdown")
}

// normalizeFormat lower-cases a format name; empty selects HTML.
func normalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return FormatHTML
	}
	return format
}

// ValidateComment checks the content of a new comment.
func ValidateComment(content string) error {
	if content == "" {
		return NewValidationError("comment is required")
	}
	if utf8.RuneCountInString(content) > MaxCommentLen {
		return NewValidationError("comment must be at most 2000 characters")
	}
	return nil
}

func validateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n == 0 {
		return NewValidationError("title is required")
	}
	if n < MinTitleLen {
		return NewValidationError("title must be at least 3 characters")
	}
	if n > MaxTitleLen {
		return NewValidationError("title must be at most 200 characters")
	}
	return nil
}

func validateContent(content string) error {
	n := utf8.RuneCountInString(content)
	if n == 0 {
		return NewValidationError("content is required")
	}
	if n < MinContentLen {
		return NewValidationError("content must be at least 10 characters")
	}
	if n > MaxContentLen {
		return NewValidationError("content is too long (max 100,000 characters)")
	}
	return nil
}

func validateExcerpt(excerpt string) error {
	if utf8.RuneCountInString(excerpt) > MaxExcerptLen {
		return NewValidationError("excerpt cannot be more than 200 characters")
	}
	return nil
}
