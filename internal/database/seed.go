// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"quillpress/internal/slug"
)

// DefaultCategories are created by Seed on an empty database.
var DefaultCategories = []struct {
	Name        string
	Description string
}{
	{"General", "Posts that do not fit anywhere else"},
	{"Technology", "Software, hardware and the web"},
	{"Travel", "Places, routes and notes from the road"},
}

// Seed populates the database with initial development data. It creates
// the default categories if no category exists yet.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	for _, c := range DefaultCategories {
		_, err := db.Exec(`
			INSERT INTO categories (name, description, slug)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING
		`, c.Name, c.Description, slug.Generate(c.Name))
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.Name, err)
		}
	}

	slog.Info("database seeded with default categories", "count", len(DefaultCategories))
	return nil
}
