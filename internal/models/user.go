// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Username and password limits.
const (
	MinUsernameLen = 3
	MaxUsernameLen = 30
	MinPasswordLen = 6
	MaxPasswordLen = 72 // bcrypt ignores anything past 72 bytes
	MaxEmailLen    = 254
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// User represents a registered author or commenter.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Summary returns the public projection embedded into posts and comments.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Username: u.Username}
}

// UserSummary is the populated form of a user reference.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Registration holds the fields submitted when creating an account.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims the username and lower-cases the email.
func (r *Registration) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = NormalizeEmail(r.Email)
}

// Validate checks the shape of a registration. Uniqueness is enforced by
// the store.
func (r *Registration) Validate() error {
	n := utf8.RuneCountInString(r.Username)
	switch {
	case r.Username == "":
		return NewValidationError("username is required")
	case n < MinUsernameLen || n > MaxUsernameLen:
		return NewValidationError("username must be between 3 and 30 characters")
	case !usernamePattern.MatchString(r.Username):
		return NewValidationError("username may only contain letters, digits, '.', '_' and '-'")
	}

	if r.Email == "" {
		return NewValidationError("email is required")
	}
	if len(r.Email) > MaxEmailLen || !isEmail(r.Email) {
		return NewValidationError("email is not a valid address")
	}

	if len(r.Password) < MinPasswordLen {
		return NewValidationError("password must be at least 6 characters")
	}
	if len(r.Password) > MaxPasswordLen {
		return NewValidationError("password must be at most 72 bytes")
	}
	return nil
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isEmail accepts bare addresses only ("a@b.c"), not "Name <a@b.c>".
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}
