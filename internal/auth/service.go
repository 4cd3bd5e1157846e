// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth implements account registration, password login and the
// signed session tokens used by the API's bearer authentication.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"quillpress/internal/metrics"
	"quillpress/internal/models"
)

// UserRepository is the subset of the user store the credential service
// needs.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByLogin(ctx context.Context, identifier string) (*models.User, error)
}

// Service registers users, checks passwords and issues tokens.
type Service struct {
	users    UserRepository
	tokens   *TokenIssuer
	hashCost int
	metrics  metrics.Recorder

	dummyOnce sync.Once
	dummyHash []byte
}

// Option configures a Service.
type Option func(*Service)

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

// WithRecorder reports login attempts to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) { s.metrics = r }
}

// NewService creates a credential service.
func NewService(users UserRepository, tokens *TokenIssuer, opts ...Option) *Service {
	s := &Service{
		users:    users,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
		metrics:  metrics.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates the registration, hashes the password and stores the
// new user. A taken username or email is a validation error.
func (s *Service) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	reg.Normalize()
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.hashCost)
	if err != nil {
		return nil, models.NewInternalError(fmt.Errorf("hash password: %w", err))
	}

	user, err := s.users.Create(ctx, &models.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: string(hash),
	})
	if errors.Is(err, models.ErrDuplicate) {
		return nil, models.NewValidationError("username or email already in use")
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login looks the user up by username or email and verifies the password.
// Unknown identifiers and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, identifier, password string) (string, *models.User, error) {
	if identifier == "" || password == "" {
		return "", nil, models.NewValidationError("identifier and password are required")
	}

	user, err := s.users.FindByLogin(ctx, identifier)
	if err != nil {
		return "", nil, models.NewInternalError(err)
	}

	if user == nil {
		// Burn the same bcrypt time as a real comparison.
		bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		s.metrics.RecordLogin(false)
		return "", nil, models.NewAuthenticationError()
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.metrics.RecordLogin(false)
		return "", nil, models.NewAuthenticationError()
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}

	s.metrics.RecordLogin(true)
	slog.Info("user logged in", "user_id", user.ID)
	return token, user, nil
}

// IssueToken signs a session token for the user.
func (s *Service) IssueToken(user *models.User) (string, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

// VerifyToken resolves a token into the identity it was issued for.
func (s *Service) VerifyToken(token string) (*models.Identity, error) {
	return s.tokens.Verify(token)
}

// Me returns the stored account behind an identity. A token for a user
// that no longer exists is treated as invalid.
func (s *Service) Me(ctx context.Context, identity *models.Identity) (*models.User, error) {
	user, err := s.users.FindByID(ctx, identity.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if user == nil {
		return nil, models.NewInvalidTokenError("invalid token")
	}
	return user, nil
}

// dummy returns a hash at the service's cost, generated once.
func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.hashCost)
	})
	return s.dummyHash
}
