// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Category limits.
const (
	MaxCategoryNameLen        = 50
	MaxCategoryDescriptionLen = 200
)

// Category groups posts. The slug is derived from the name and regenerated
// whenever the name changes.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// URL returns the public path of the category listing.
func (c *Category) URL() string {
	return "/categories/" + c.Slug
}

// MarshalJSON adds the computed url field.
func (c Category) MarshalJSON() ([]byte, error) {
	type plain Category
	return json.Marshal(struct {
		plain
		URL string `json:"url"`
	}{plain: plain(c), URL: c.URL()})
}

// Summary returns the populated form embedded into posts.
func (c *Category) Summary() *CategorySummary {
	return &CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug, URL: c.URL()}
}

// CategorySummary is the populated form of a category reference.
type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
	URL  string    `json:"url"`
}

// CategoryInput is the body of a category create request.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Normalize trims both fields.
func (in *CategoryInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
}

// Validate checks required fields and length limits.
func (in *CategoryInput) Validate() error {
	if err := validateCategoryName(in.Name); err != nil {
		return err
	}
	return validateCategoryDescription(in.Description)
}

// CategoryPatch is the body of a category update request. Nil fields are
// left unchanged.
type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Normalize trims every present field.
func (p *CategoryPatch) Normalize() {
	trimPtr(p.Name)
	trimPtr(p.Description)
}

// Validate checks every present field.
func (p *CategoryPatch) Validate() error {
	if p.Name != nil {
		if err := validateCategoryName(*p.Name); err != nil {
			return err
		}
	}
	if p.Description != nil {
		return validateCategoryDescription(*p.Description)
	}
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return NewValidationError("category name is required")
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLen {
		return NewValidationError("category name must be under 50 characters")
	}
	return nil
}

func validateCategoryDescription(desc string) error {
	if utf8.RuneCountInString(desc) > MaxCategoryDescriptionLen {
		return NewValidationError("description can be max 200 characters")
	}
	return nil
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
