package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"complaint-desk/internal/event"
	"complaint-desk/internal/model"
	"complaint-desk/internal/repository"
	"complaint-desk/pkg/apierror"
)

type AuthService struct {
	store  repository.Store
	hasher PasswordHasher
	tokens *TokenCodec
	events event.Publisher
}

func NewAuthService(store repository.Store, hasher PasswordHasher, tokens *TokenCodec, events event.Publisher) *AuthService {
	if events == nil {
		events = event.Discard{}
	}
	return &AuthService{store: store, hasher: hasher, tokens: tokens, events: events}
}

// Register creates a complainer account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.TokenResponse, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.TokenResponse{}, err
	}

	user := model.User{
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        optional(req.Phone),
		Role:         model.RoleComplainer,
	}

	var token string
	err = s.store.InTx(ctx, func(tx repository.Tx) error {
		if err := tx.Users().Create(ctx, &user); err != nil {
			return err
		}
		token, err = s.tokens.Issue(user.ID)
		return err
	})
	if errors.Is(err, model.ErrEmailTaken) {
		return model.TokenResponse{}, apierror.Conflict("email already registered", user.Email)
	}
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("register user: %w", err)
	}

	slog.Info("complainer registered", "user_id", user.ID)
	s.events.Publish(event.New(event.TypeUserRegistered, user.ID, map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	}))

	return model.TokenResponse{Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenResponse, error) {
	var user model.User
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		var err error
		user, err = tx.Users().FindByEmail(ctx, normalizeEmail(req.Email))
		return err
	})
	if errors.Is(err, model.ErrUserNotFound) {
		return model.TokenResponse{}, apierror.Unauthorized("invalid email or password")
	}
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		return model.TokenResponse{}, apierror.Unauthorized("invalid email or password")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return model.TokenResponse{}, err
	}
	return model.TokenResponse{Token: token}, nil
}

// VerifyToken resolves a bearer token to the user it was issued for.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (model.User, error) {
	claims, err := s.tokens.Parse(strings.TrimSpace(token))
	if errors.Is(err, model.ErrTokenExpired) {
		return model.User{}, apierror.Unauthorized("token expired")
	}
	if err != nil {
		return model.User{}, apierror.Unauthorized("invalid token")
	}

	var user model.User
	err = s.store.InTx(ctx, func(tx repository.Tx) error {
		user, err = tx.Users().FindByID(ctx, claims.UserID)
		return err
	})
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, apierror.Unauthorized("invalid token")
	}
	if err != nil {
		return model.User{}, fmt.Errorf("resolve token subject: %w", err)
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, caller model.User, req model.ChangePasswordRequest) error {
	if req.NewPassword == req.OldPassword {
		return apierror.Validation(map[string]string{
			"new_password": "cannot be the same as old_password",
		})
	}

	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		current, err := tx.Users().FindByID(ctx, caller.ID)
		if err != nil {
			return err
		}
		if !s.hasher.Verify(current.PasswordHash, req.OldPassword) {
			return apierror.Unauthorized("old password is incorrect")
		}

		hash, err := s.hasher.Hash(req.NewPassword)
		if err != nil {
			return err
		}
		return tx.Users().UpdatePassword(ctx, current.ID, hash)
	})
	if errors.Is(err, model.ErrUserNotFound) {
		return apierror.Unauthorized("invalid token")
	}
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	slog.Info("password changed", "user_id", caller.ID)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
