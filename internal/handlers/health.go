// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger reports whether a backing service is reachable. *sql.DB
// implements it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health serves the liveness endpoint.
type Health struct {
	db Pinger
}

// NewHealth creates a Health handler. db may be nil when the in-memory
// store is used.
func NewHealth(db Pinger) *Health {
	return &Health{db: db}
}

// ServeHTTP handles GET /health: 200 when the database answers a ping
// within two seconds, 503 otherwise.
func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			slog.Warn("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
