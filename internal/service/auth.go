package service

import (
	"context"
	"net/mail"
	"strings"

	"rentease-backend/internal/apperror"
	"rentease-backend/internal/clock"
	"rentease-backend/internal/domain"
	"rentease-backend/internal/logger"
	"rentease-backend/internal/metrics"
	"rentease-backend/internal/repository"
	"rentease-backend/internal/security"
)

const (
	prefixUser = "user"

	minPasswordLength = 8
)

type authService struct {
	store   repository.Store
	tokens  security.TokenManager
	clock   clock.Clock
	metrics *metrics.Metrics
}

func NewAuthService(store repository.Store, tokens security.TokenManager, clk clock.Clock, m *metrics.Metrics) AuthService {
	return &authService{
		store:   store,
		tokens:  tokens,
		clock:   clk,
		metrics: m,
	}
}

// Register creates a user and returns an access token for it.
func (s *authService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, string, error) {
	logger.EnterMethod("authService.Register", "email", email, "role", role)
	now := s.clock.Now()

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, "", finish("register", s.metrics, apperror.Validation("name is required"))
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", finish("register", s.metrics, apperror.Validation("invalid email address"))
	}
	if len(password) < minPasswordLength {
		return nil, "", finish("register", s.metrics, apperror.Validation("password must be at least %d characters", minPasswordLength))
	}
	if !role.Valid() {
		return nil, "", finish("register", s.metrics, apperror.Validation("unknown role %q", role))
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, "", finish("register", s.metrics, apperror.Internal(err, "failed to hash password"))
	}

	var user domain.User
	err = update(ctx, s.store, s.metrics, func(tx *recordTx) error {
		for _, u := range tx.Users {
			if u.Email == email {
				return apperror.Conflict("email is already registered")
			}
		}
		user = domain.User{
			ID:           s.store.GenerateID(prefixUser),
			Email:        email,
			Name:         name,
			PasswordHash: hash,
			Role:         role,
			CreatedOn:    now,
			UpdatedOn:    now,
		}
		tx.Users = append(tx.Users, user)
		tx.touch(repository.CollectionUsers)
		return nil
	})
	if err != nil {
		return nil, "", finish("register", s.metrics, err)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, "", finish("register", s.metrics, apperror.Internal(err, "failed to issue token"))
	}

	logger.Info("User registered", "user_id", user.ID, "role", user.Role)
	logger.ExitMethod("authService.Register", "userID", user.ID)
	return &user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	logger.EnterMethod("authService.Login", "email", email)
	email = strings.ToLower(strings.TrimSpace(email))

	var user domain.User
	err := view(ctx, s.store, func(snap *repository.Snapshot) error {
		for _, u := range snap.Users {
			if u.Email == email {
				user = u
				return nil
			}
		}
		return apperror.Unauthenticated("invalid email or password")
	})
	if err != nil {
		return nil, "", finish("login", s.metrics, err)
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, "", finish("login", s.metrics, apperror.Unauthenticated("invalid email or password"))
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, "", finish("login", s.metrics, apperror.Internal(err, "failed to issue token"))
	}

	logger.ExitMethod("authService.Login", "userID", user.ID)
	return &user, token, nil
}
