package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentease-backend/internal/apperror"
	"rentease-backend/internal/clock"
	"rentease-backend/internal/domain"
	"rentease-backend/internal/repository/memory"
	"rentease-backend/internal/security"
)

func newAuthService() (AuthService, security.TokenManager) {
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	return NewAuthService(memory.NewStore(), tokens, clock.NewFake(day("2025-01-01")), nil), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, tokens := newAuthService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Ada", " Ada@Example.com ", "correct horse", domain.RoleLandlord)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	id, err := tokens.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, domain.RoleLandlord, id.Role)

	_, _, err = svc.Register(ctx, "Ada again", "ada@example.com", "another pass", domain.RoleTenant)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	logged, token, err := svc.Login(ctx, "ADA@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrong")
	assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
	_, _, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	tests := []struct {
		name, userName, email, password string
		role                            domain.Role
	}{
		{"missing name", "", "a@b.co", "password1", domain.RoleTenant},
		{"bad email", "A", "not-an-email", "password1", domain.RoleTenant},
		{"short password", "A", "a@b.co", "short", domain.RoleTenant},
		{"unknown role", "A", "a@b.co", "password1", domain.Role("admin")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tt.userName, tt.email, tt.password, tt.role)
			assert.True(t, apperror.Is(err, apperror.KindValidation), "got %v", err)
		})
	}
}
