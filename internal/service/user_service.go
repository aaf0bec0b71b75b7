package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/auth"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/store"
)

// ErrInvalidCredentials is returned on a failed login. The message is
// deliberately the same for unknown email and wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService handles account creation and credential issuance.
type UserService struct {
	store  store.Store
	tokens *auth.TokenAuth
	now    func() time.Time
}

// NewUserService creates a UserService.
func NewUserService(st store.Store, tokens *auth.TokenAuth) *UserService {
	return &UserService{
		store:  st,
		tokens: tokens,
		now:    time.Now,
	}
}

// SignupInput is the payload for Signup.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput is the payload for Login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new user. The email must not already be in use.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, NewValidationError("All fields are required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, NewValidationError("User already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Id:           uuid.New().String(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and returns the user plus a signed session
// token.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*model.User, string, error) {
	if in.Email == "" || in.Password == "" {
		return nil, "", NewValidationError("Email and password required")
	}

	user, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user.Id, user.Name, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUser returns the stored profile for a user id.
func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.store.GetUser(ctx, userID)
}
