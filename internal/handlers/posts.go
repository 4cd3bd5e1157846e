// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"quillpress/internal/content"
	"quillpress/internal/middleware"
	"quillpress/internal/models"
)

// Posts groups the post and comment endpoints.
type Posts struct {
	content *content.Service
}

// NewPosts creates a new Posts handler group.
func NewPosts(contentSvc *content.Service) *Posts {
	return &Posts{content: contentSvc}
}

type commentRequest struct {
	Content string `json:"content"`
}

// List handles GET /api/posts?page=&limit=&category=&q=. The requester's
// own drafts are included when a valid token is supplied.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	posts, err := h.content.ListPosts(r.Context(), middleware.IdentityFromCtx(r.Context()), params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Search handles GET /api/posts/search?q=. It is List with a required
// query.
func (h *Posts) Search(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if params.Query == "" {
		writeError(w, r, models.NewValidationError("search query is required"))
		return
	}

	posts, err := h.content.ListPosts(r.Context(), middleware.IdentityFromCtx(r.Context()), params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Get handles GET /api/posts/{id}. Each successful read counts a view.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "post")
	if err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.content.GetPost(r.Context(), middleware.IdentityFromCtx(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Create handles POST /api/posts.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.content.CreatePost(r.Context(), middleware.IdentityFromCtx(r.Context()), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// Update handles PUT /api/posts/{id}.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "post")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch models.PostPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.content.UpdatePost(r.Context(), middleware.IdentityFromCtx(r.Context()), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/posts/{id}.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "post")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.content.DeletePost(r.Context(), middleware.IdentityFromCtx(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddComment handles POST /api/posts/{id}/comments and returns the
// updated post.
func (h *Posts) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "post")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.content.AddComment(r.Context(), middleware.IdentityFromCtx(r.Context()), id, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// listParams reads the paging, category and search parameters. page
// defaults to 1; "search" is accepted as an alias of "q".
func listParams(q url.Values) (content.ListParams, error) {
	params := content.ListParams{
		Page:     1,
		Category: strings.TrimSpace(q.Get("category")),
		Query:    strings.TrimSpace(q.Get("q")),
	}
	if params.Query == "" {
		params.Query = strings.TrimSpace(q.Get("search"))
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return params, models.NewValidationError("page must be a positive integer")
		}
		params.Page = page
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return params, models.NewValidationError("limit must be an integer")
		}
		params.Limit = limit
	}
	return params, nil
}
