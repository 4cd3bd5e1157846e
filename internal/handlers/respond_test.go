// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quillpress/internal/models"
)

func TestWriteError_StatusByKind(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   models.ErrorKind
	}{
		{"validation", models.NewValidationError("title is required"), http.StatusBadRequest, models.KindValidation},
		{"authentication", models.NewAuthenticationError(), http.StatusUnauthorized, models.KindAuthentication},
		{"invalid token", models.NewInvalidTokenError("token expired"), http.StatusUnauthorized, models.KindInvalidToken},
		{"forbidden", models.NewForbiddenError("not yours"), http.StatusForbidden, models.KindForbidden},
		{"not found", models.NewNotFoundError("post"), http.StatusNotFound, models.KindNotFound},
		{"internal", models.NewInternalError(errors.New("disk on fire")), http.StatusInternalServerError, models.KindInternal},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, models.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assertError(t, rec, tt.status, tt.kind)
		})
	}
}

func TestWriteError_HidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), models.NewInternalError(errors.New("password=hunter2")))

	if strings.Contains(rec.Body.String(), "hunter2") {
		t.Errorf("internal cause leaked into response: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), models.InternalMessage) {
		t.Errorf("body %q should contain the generic message", rec.Body.String())
	}
}

func TestWriteJSON_ContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, map[string]string{"status": "ok"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content-type: got %q", ct)
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
		var in models.PostInput
		if got := models.KindOf(decodeJSON(r, &in)); got != models.KindValidation {
			t.Errorf("kind: got %q, want validation", got)
		}
	})

	t.Run("bad tags keep their message", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"tags":42}`))
		var in models.PostInput
		err := decodeJSON(r, &in)
		if err == nil || !strings.Contains(err.Error(), "tags") {
			t.Errorf("error should mention tags, got %v", err)
		}
	})

	t.Run("too large", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"`+strings.Repeat("a", 64)+`"}`))
		r.Body = http.MaxBytesReader(rec, r.Body, 16)
		var in models.PostInput
		err := decodeJSON(r, &in)
		if err == nil || !strings.Contains(err.Error(), "too large") {
			t.Errorf("expected too large error, got %v", err)
		}
	})

	t.Run("unknown fields ignored", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Hello","author":"someone-else"}`))
		var in models.PostInput
		if err := decodeJSON(r, &in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Title != "Hello" {
			t.Errorf("title: got %q", in.Title)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader("")))
		var in models.PostInput
		if got := models.KindOf(decodeJSON(r, &in)); got != models.KindValidation {
			t.Errorf("kind: got %q, want validation", got)
		}
	})
}

func TestPathID(t *testing.T) {
	r := newRequest(t, http.MethodGet, "/", nil, nil, "id", "not-a-uuid")
	if _, err := pathID(r, "id", "post"); models.KindOf(err) != models.KindNotFound {
		t.Errorf("malformed id: got %v, want not found", err)
	}

	r = newRequest(t, http.MethodGet, "/", nil, nil, "id", "6f1c1f0e-6c55-4c8a-9a57-0d3f1f0f7a11")
	id, err := pathID(r, "id", "post")
	if err != nil {
		t.Fatalf("valid id: %v", err)
	}
	if id.String() != "6f1c1f0e-6c55-4c8a-9a57-0d3f1f0f7a11" {
		t.Errorf("id: got %s", id)
	}
}
