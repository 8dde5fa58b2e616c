package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kidquest/internal/apperr"
	"kidquest/internal/security"
)

func newAuthService(store ParentStore) *AuthService {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	email, _ := NewEmailService("", "", "", "", false) // disabled
	return NewAuthService(store, tokens, email)
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(store)

	parent, token, err := svc.Register(context.Background(), "Alex", "Alex@Example.com", "password123", "")
	require.NoError(t, err)
	assert.NotEmpty(t, parent.ID)
	assert.Equal(t, "alex@example.com", parent.Email)
	assert.True(t, parent.IsActive)
	assert.NotEmpty(t, token)
	assert.Empty(t, parent.Children)

	// The stored hash never equals the raw password.
	stored, err := store.GetParentByEmail("alex@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.PasswordHash)

	loggedIn, token, err := svc.Login("alex@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, parent.ID, loggedIn.ID)
	assert.NotEmpty(t, token)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(store)

	_, _, err := svc.Register(context.Background(), "Alex", "alex@example.com", "password123", "")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "Sam", "alex@example.com", "password456", "")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidState))
}

func TestRegister_Validation(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(store)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"bad email", "Alex", "not-an-email", "password123"},
		{"short password", "Alex", "alex@example.com", "short"},
		{"empty name", "", "alex@example.com", "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password, "")
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
		})
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(store)

	_, _, err := svc.Register(context.Background(), "Alex", "alex@example.com", "password123", "")
	require.NoError(t, err)

	_, _, err = svc.Login("alex@example.com", "wrongpass")
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))

	_, _, err = svc.Login("nobody@example.com", "password123")
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(store)

	parent, _, err := svc.Register(context.Background(), "Alex", "alex@example.com", "password123", "")
	require.NoError(t, err)

	parent.IsActive = false
	require.NoError(t, store.SaveParent(parent))

	_, _, err = svc.Login("alex@example.com", "password123")
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}
