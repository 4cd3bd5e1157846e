// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"encoding/json"
	"net/http"

	"quillpress/internal/models"
)

// errorBody is the JSON error envelope shared with the handlers package.
type errorBody struct {
	Error struct {
		Kind    models.ErrorKind `json:"kind"`
		Message string           `json:"message"`
	} `json:"error"`
}

// writeError writes a JSON error response. Middleware cannot depend on
// the handlers package, so it carries its own minimal writer.
func writeError(w http.ResponseWriter, status int, kind models.ErrorKind, message string) {
	var body errorBody
	body.Error.Kind = kind
	body.Error.Message = message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
