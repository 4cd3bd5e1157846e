// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"quillpress/internal/auth"
	"quillpress/internal/content"
	"quillpress/internal/handlers"
	"quillpress/internal/metrics"
	"quillpress/internal/models"
	"quillpress/internal/store/memstore"
)

// testServer is the fully wired router over an in-memory store.
type testServer struct {
	t      *testing.T
	router chi.Router
}

func newTestServer(t *testing.T, health handlers.Pinger) *testServer {
	t.Helper()

	tokens, err := auth.NewTokenIssuer(auth.TokenConfig{Secret: []byte("router-test-secret")})
	if err != nil {
		t.Fatalf("token issuer: %v", err)
	}

	mem := memstore.New()
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	authSvc := auth.NewService(mem.Users(), tokens, auth.WithHashCost(bcrypt.MinCost), auth.WithRecorder(collector))
	contentSvc := content.NewService(mem.Posts(), mem.Categories(), content.WithRecorder(collector))

	deps := Deps{
		Verifier:   authSvc,
		Observer:   collector,
		Metrics:    metrics.Handler(registry),
		Health:     handlers.NewHealth(health),
		Users:      handlers.NewUsers(authSvc),
		Posts:      handlers.NewPosts(contentSvc),
		Categories: handlers.NewCategories(contentSvc),
	}
	return &testServer{t: t, router: New(deps)}
}

// do sends a request through the router. body is JSON-encoded unless it
// is already a string.
func (s *testServer) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
		reader = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// login registers an account and returns a bearer token for it.
func (s *testServer) login(username string) string {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/api/users/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	}, "")
	if rec.Code != http.StatusCreated {
		s.t.Fatalf("register %s: status %d body %q", username, rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodPost, "/api/users/login", map[string]string{
		"identifier": username,
		"password":   "password123",
	}, "")
	if rec.Code != http.StatusOK {
		s.t.Fatalf("login %s: status %d body %q", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decode(s.t, rec, &resp)
	return resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v (body %q)", err, rec.Body.String())
	}
}

func errorKind(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorKind {
	t.Helper()
	var body struct {
		Error struct {
			Kind    models.ErrorKind `json:"kind"`
			Message string           `json:"message"`
		} `json:"error"`
	}
	decode(t, rec, &body)
	return body.Error.Kind
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		pinger handlers.Pinger
		status int
		want   string
	}{
		{"no database", nil, http.StatusOK, "ok"},
		{"database up", fakePinger{}, http.StatusOK, "ok"},
		{"database down", fakePinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.pinger)
			rec := srv.do(http.MethodGet, "/health", nil, "")

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("content-type: got %q", ct)
			}
			var body map[string]string
			decode(t, rec, &body)
			if body["status"] != tt.want {
				t.Errorf("status field: got %q, want %q", body["status"], tt.want)
			}
		})
	}
}

func TestSecurityHeadersOnEveryResponse(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, path := range []string{"/health", "/api/posts", "/does-not-exist"} {
		rec := srv.do(http.MethodGet, path, nil, "")
		if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
			t.Errorf("%s: X-Content-Type-Options = %q", path, got)
		}
		if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
			t.Errorf("%s: X-Frame-Options = %q", path, got)
		}
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t, nil)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users/me"},
		{http.MethodPost, "/api/posts"},
		{http.MethodPut, "/api/posts/00000000-0000-0000-0000-000000000001"},
		{http.MethodDelete, "/api/posts/00000000-0000-0000-0000-000000000001"},
		{http.MethodPost, "/api/posts/00000000-0000-0000-0000-000000000001/comments"},
		{http.MethodPost, "/api/categories"},
		{http.MethodPut, "/api/categories/00000000-0000-0000-0000-000000000001"},
		{http.MethodDelete, "/api/categories/00000000-0000-0000-0000-000000000001"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := srv.do(rt.method, rt.path, map[string]string{"title": "x"}, "")
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status: got %d, want 401", rec.Code)
			}
			if kind := errorKind(t, rec); kind != models.KindInvalidToken {
				t.Errorf("kind: got %q, want invalid_token", kind)
			}
		})
	}
}

func TestInvalidTokenIsRejected(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, header := range []string{"Bearer not-a-jwt", "Basic dXNlcjpwYXNz", "Bearer"} {
		t.Run(header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			req.Header.Set("Authorization", header)
			rec := httptest.NewRecorder()
			srv.router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want 401", rec.Code)
			}
		})
	}

	// A bad token on a public route is ignored, not rejected.
	rec := srv.do(http.MethodGet, "/api/posts", nil, "garbage")
	if rec.Code != http.StatusOK {
		t.Errorf("public list with bad token: got %d, want 200", rec.Code)
	}
}

func TestUnauthenticatedCreatePersistsNothing(t *testing.T) {
	srv := newTestServer(t, nil)
	token := srv.login("alice")

	rec := srv.do(http.MethodPost, "/api/categories", map[string]string{"name": "Go"}, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category: %d", rec.Code)
	}
	var cat struct {
		ID string `json:"id"`
	}
	decode(t, rec, &cat)

	rec = srv.do(http.MethodPost, "/api/posts", map[string]any{
		"title": "Anonymous", "content": "Should never be stored", "category": cat.ID, "isPublished": true,
	}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}

	rec = srv.do(http.MethodGet, "/api/posts", nil, token)
	var posts []json.RawMessage
	decode(t, rec, &posts)
	if len(posts) != 0 {
		t.Errorf("posts stored: %d", len(posts))
	}
}

func TestBlogFlow(t *testing.T) {
	srv := newTestServer(t, nil)
	alice := srv.login("alice")
	bob := srv.login("bob")

	rec := srv.do(http.MethodGet, "/api/users/me", nil, alice)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: %d", rec.Code)
	}

	rec = srv.do(http.MethodPost, "/api/categories", map[string]string{"name": "Travel"}, alice)
	var cat struct {
		ID string `json:"id"`
	}
	decode(t, rec, &cat)

	rec = srv.do(http.MethodPost, "/api/posts", map[string]any{
		"title":       "Lisbon in spring",
		"content":     "Trams, tiles and pastel de nata.",
		"category":    cat.ID,
		"tags":        "travel, portugal",
		"isPublished": true,
	}, alice)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post: %d %s", rec.Code, rec.Body.String())
	}
	var post models.PostView
	decode(t, rec, &post)
	postPath := "/api/posts/" + post.ID.String()

	// Bob can read, comment, but not edit or delete.
	if rec := srv.do(http.MethodGet, postPath, nil, ""); rec.Code != http.StatusOK {
		t.Errorf("anonymous get: %d", rec.Code)
	}
	rec = srv.do(http.MethodPost, postPath+"/comments", map[string]string{"content": "Lovely!"}, bob)
	if rec.Code != http.StatusCreated {
		t.Fatalf("comment: %d %s", rec.Code, rec.Body.String())
	}
	decode(t, rec, &post)
	if len(post.Comments) != 1 || post.Comments[0].User == nil || post.Comments[0].User.Username != "bob" {
		t.Errorf("comments: %+v", post.Comments)
	}
	if rec := srv.do(http.MethodPut, postPath, map[string]string{"title": "Mine now"}, bob); rec.Code != http.StatusForbidden {
		t.Errorf("bob update: got %d, want 403", rec.Code)
	}
	if rec := srv.do(http.MethodDelete, postPath, nil, bob); rec.Code != http.StatusForbidden {
		t.Errorf("bob delete: got %d, want 403", rec.Code)
	}

	// Search route is not captured by /{id}.
	rec = srv.do(http.MethodGet, "/api/posts/search?q=lisbon", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("search: %d %s", rec.Code, rec.Body.String())
	}
	var found []models.PostView
	decode(t, rec, &found)
	if len(found) != 1 || found[0].ID != post.ID {
		t.Errorf("search results: %+v", found)
	}

	// Alice deletes; the post and further comments are gone.
	if rec := srv.do(http.MethodDelete, postPath, nil, alice); rec.Code != http.StatusNoContent {
		t.Fatalf("alice delete: got %d, want 204", rec.Code)
	}
	if rec := srv.do(http.MethodGet, postPath, nil, ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: got %d, want 404", rec.Code)
	}
	if rec := srv.do(http.MethodPost, postPath+"/comments", map[string]string{"content": "Hello?"}, bob); rec.Code != http.StatusNotFound {
		t.Errorf("comment after delete: got %d, want 404", rec.Code)
	}
}

func TestMalformedIDIsNotFound(t *testing.T) {
	srv := newTestServer(t, nil)
	token := srv.login("alice")

	for _, rt := range []struct{ method, path string }{
		{http.MethodGet, "/api/posts/not-a-uuid"},
		{http.MethodPut, "/api/posts/not-a-uuid"},
		{http.MethodDelete, "/api/posts/not-a-uuid"},
		{http.MethodPost, "/api/posts/not-a-uuid/comments"},
		{http.MethodDelete, "/api/categories/not-a-uuid"},
	} {
		rec := srv.do(rt.method, rt.path, map[string]string{"content": "x"}, token)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s: got %d, want 404", rt.method, rt.path, rec.Code)
		}
	}
}

func TestBodyTooLarge(t *testing.T) {
	srv := newTestServer(t, nil)

	huge := `{"username":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	rec := srv.do(http.MethodPost, "/api/users/register", huge, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	if kind := errorKind(t, rec); kind != models.KindValidation {
		t.Errorf("kind: got %q", kind)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.do(http.MethodGet, "/health", nil, "")
	srv.login("alice")

	rec := srv.do(http.MethodGet, "/metrics", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`quillpress_http_requests_total{method="GET",route="/health",status="200"} 1`,
		`quillpress_logins_total{result="success"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t, nil)
	if rec := srv.do(http.MethodGet, "/api/nope", nil, ""); rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}
