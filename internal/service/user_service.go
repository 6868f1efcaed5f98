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

// UserService provisions staff accounts.
type UserService struct {
	store  repository.Store
	hasher PasswordHasher
	events event.Publisher
}

func NewUserService(store repository.Store, hasher PasswordHasher, events event.Publisher) *UserService {
	if events == nil {
		events = event.Discard{}
	}
	return &UserService{store: store, hasher: hasher, events: events}
}

func (s *UserService) CreateStaff(ctx context.Context, actor model.User, req model.CreateStaffRequest) (model.User, error) {
	role, err := model.ParseRole(req.Role)
	if err != nil || !role.IsStaff() {
		return model.User{}, apierror.Validation(map[string]string{"role": "must be one of: admin, approver"})
	}

	certificate := optional(req.Certificate)
	if role == model.RoleApprover && certificate == nil {
		return model.User{}, apierror.Validation(map[string]string{"certificate": "is required when role is approver"})
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.User{}, err
	}

	user := model.User{
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        optional(req.Phone),
		Role:         role,
		Certificate:  certificate,
	}

	err = s.store.InTx(ctx, func(tx repository.Tx) error {
		return tx.Users().Create(ctx, &user)
	})
	if errors.Is(err, model.ErrEmailTaken) {
		return model.User{}, apierror.Conflict("email already registered", user.Email)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("create staff user: %w", err)
	}

	slog.Info("staff user created", "user_id", user.ID, "role", user.Role, "created_by", actor.ID)
	s.events.Publish(event.New(event.TypeStaffCreated, actor.ID, map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	}))

	return user, nil
}

// EnsureAdmin creates the bootstrap admin unless an account with that email
// already exists. An existing account is left untouched whatever its role.
func (s *UserService) EnsureAdmin(ctx context.Context, email string, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	created := false
	err = s.store.InTx(ctx, func(tx repository.Tx) error {
		existing, err := tx.Users().FindByEmail(ctx, email)
		if err == nil {
			if existing.Role != model.RoleAdmin {
				slog.Warn("bootstrap admin email belongs to a non-admin account", "user_id", existing.ID, "role", existing.Role)
			}
			return nil
		}
		if !errors.Is(err, model.ErrUserNotFound) {
			return err
		}

		created = true
		return tx.Users().Create(ctx, &model.User{
			Email:        email,
			PasswordHash: hash,
			FirstName:    "System",
			LastName:     "Admin",
			Role:         model.RoleAdmin,
		})
	})
	if err != nil {
		return fmt.Errorf("ensure bootstrap admin: %w", err)
	}

	if created {
		slog.Info("bootstrap admin created", "email", email)
	}
	return nil
}
