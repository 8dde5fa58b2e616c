package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"kidquest/internal/apperr"
	"kidquest/internal/models"
	"kidquest/internal/security"
	"kidquest/internal/validation"
)

// AuthService handles parent registration and login
type AuthService struct {
	store  ParentStore
	tokens *security.TokenManager
	email  *EmailService
}

// NewAuthService creates a new auth service
func NewAuthService(store ParentStore, tokens *security.TokenManager, email *EmailService) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
		email:  email,
	}
}

// Register creates a new parent account and returns it with a signed token
func (s *AuthService) Register(ctx context.Context, name, email, password, phone string) (*models.Parent, string, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, "", apperr.InvalidArgument(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, "", apperr.InvalidArgument(err.Error())
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, "", apperr.InvalidArgument(err.Error())
	}

	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.store.GetParentByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing parent: %w", err)
	}
	if existing != nil {
		return nil, "", apperr.InvalidState("email already registered")
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	parent := &models.Parent{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: passwordHash,
		PhoneNumber:  phone,
		Children:     []models.Child{},
		IsActive:     true,
	}

	if err := s.store.CreateParent(parent); err != nil {
		return nil, "", fmt.Errorf("failed to create parent: %w", err)
	}

	// Registration should not fail on email delivery.
	if err := s.email.SendWelcomeEmail(ctx, parent.Email, parent.Name); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", parent.Email, err)
	}

	token, err := s.tokens.Issue(parent.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return parent, token, nil
}

// Login verifies credentials and returns the parent with a signed token
func (s *AuthService) Login(email, password string) (*models.Parent, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	parent, err := s.store.GetParentByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get parent: %w", err)
	}
	if parent == nil || !security.CheckPassword(password, parent.PasswordHash) {
		return nil, "", apperr.Unauthorized("invalid email or password")
	}
	if !parent.IsActive {
		return nil, "", apperr.Unauthorized("account is deactivated")
	}

	token, err := s.tokens.Issue(parent.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return parent, token, nil
}
