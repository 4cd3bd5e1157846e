// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the handler
// tests. Handlers run against the in-memory store, so no external service
// is needed.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"quillpress/internal/auth"
	"quillpress/internal/content"
	"quillpress/internal/middleware"
	"quillpress/internal/models"
	"quillpress/internal/store/memstore"
)

// testEnv holds the handler groups and the store behind them.
type testEnv struct {
	Store      *memstore.Store
	Auth       *auth.Service
	Content    *content.Service
	Users      *Users
	Posts      *Posts
	Categories *Categories
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens, err := auth.NewTokenIssuer(auth.TokenConfig{Secret: []byte("test-secret"), Issuer: "quillpress-test"})
	if err != nil {
		t.Fatalf("token issuer: %v", err)
	}

	mem := memstore.New()
	authSvc := auth.NewService(mem.Users(), tokens, auth.WithHashCost(bcrypt.MinCost))
	contentSvc := content.NewService(mem.Posts(), mem.Categories())

	return &testEnv{
		Store:      mem,
		Auth:       authSvc,
		Content:    contentSvc,
		Users:      NewUsers(authSvc),
		Posts:      NewPosts(contentSvc),
		Categories: NewCategories(contentSvc),
	}
}

// createUser registers an account and returns its identity.
func (e *testEnv) createUser(t *testing.T, username string) *models.Identity {
	t.Helper()
	u, err := e.Auth.Register(context.Background(), models.Registration{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return &models.Identity{ID: u.ID, Username: u.Username}
}

func (e *testEnv) createCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	c, err := e.Content.CreateCategory(context.Background(), models.CategoryInput{Name: name})
	if err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return c
}

func (e *testEnv) createPost(t *testing.T, author *models.Identity, category *models.Category, title string, published bool) *models.PostView {
	t.Helper()
	p, err := e.Content.CreatePost(context.Background(), author, models.PostInput{
		Title:       title,
		Content:     "Body text long enough to pass validation.",
		Category:    category.ID.String(),
		IsPublished: published,
	})
	if err != nil {
		t.Fatalf("create post %s: %v", title, err)
	}
	return p
}

// newRequest builds a request with an optional JSON body, identity and
// chi URL parameters given as key/value pairs.
func newRequest(t *testing.T, method, target string, body any, identity *models.Identity, params ...string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	ctx := req.Context()
	if identity != nil {
		ctx = middleware.WithIdentity(ctx, identity)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for i := 0; i+1 < len(params); i += 2 {
			rctx.URLParams.Add(params[i], params[i+1])
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

// decodeBody decodes the recorded JSON response into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v (body %q)", err, rec.Body.String())
	}
}

// assertError checks the status code and error kind of a failed response.
func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, kind models.ErrorKind) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status: got %d, want %d (body %q)", rec.Code, status, rec.Body.String())
	}
	var body errorResponse
	decodeBody(t, rec, &body)
	if body.Error.Kind != kind {
		t.Errorf("error kind: got %q, want %q", body.Error.Kind, kind)
	}
	if body.Error.Message == "" {
		t.Error("error message is empty")
	}
}
