// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP endpoints of the blog API.
// Handlers decode requests, call the auth and content services, and map
// domain errors onto HTTP status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quillpress/internal/models"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    models.ErrorKind `json:"kind"`
	Message string           `json:"message"`
}

// statusByKind maps domain error kinds to HTTP status codes.
var statusByKind = map[models.ErrorKind]int{
	models.KindValidation:     http.StatusBadRequest,
	models.KindAuthentication: http.StatusUnauthorized,
	models.KindInvalidToken:   http.StatusUnauthorized,
	models.KindForbidden:      http.StatusForbidden,
	models.KindNotFound:       http.StatusNotFound,
	models.KindInternal:       http.StatusInternalServerError,
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError renders err as a JSON error. Errors that are not domain
// errors, and internal errors, are logged with their cause and reported
// with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *models.Error
	if !errors.As(err, &domainErr) || domainErr.Kind == models.KindInternal {
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorDetail{Kind: models.KindInternal, Message: models.InternalMessage},
		})
		return
	}

	status, ok := statusByKind[domainErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, errorResponse{
		Error: errorDetail{Kind: domainErr.Kind, Message: domainErr.Message},
	})
}

// decodeJSON reads a JSON request body into v. Unknown fields are
// ignored, so clients cannot set fields the request types do not declare.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}

	var domainErr *models.Error
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return models.NewValidationError("request body too large")
	}
	return models.NewValidationError("request body must be valid JSON")
}

// pathID parses a UUID path parameter. Malformed ids cannot name an
// existing resource, so they are reported as not found.
func pathID(r *http.Request, param, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, models.NewNotFoundError(resource)
	}
	return id, nil
}
