package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/features/permission"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	ListUsers(ctx context.Context) ([]User, error)
	Employees(ctx context.Context) ([]User, error)
	NonDevelopers(ctx context.Context) ([]User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	CreateUser(ctx context.Context, actorID string, input CreateUserInput) (*User, error)
	UpdateUser(ctx context.Context, actorID, id string, input UpdateUserInput) (*User, error)
	ToggleUserActive(ctx context.Context, actorID, id string) (*User, error)
	DeleteUser(ctx context.Context, actorID, id string) error
	UpdateUserPermissions(ctx context.Context, actorID, id string, updates permission.Permissions) (*User, error)
	PermissionsFor(ctx context.Context, userID string) (permission.Permissions, error)
}

type UserServiceImpl struct {
	UserRepo UserRepository
	Logger   *zap.Logger
}

func NewUserService(userRepo UserRepository, logger *zap.Logger) UserService {
	return &UserServiceImpl{
		UserRepo: userRepo,
		Logger:   logger,
	}
}

// requireDeveloper loads the actor and rejects everyone but developers.
// Every directory mutation funnels through this single gate.
func (s *UserServiceImpl) requireDeveloper(ctx context.Context, actorID string) (*User, error) {
	actor, err := s.UserRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, apperr.Forbiddenf("unknown actor")
	}
	if !actor.IsDeveloper() {
		return nil, apperr.Forbiddenf("only developers can manage users")
	}
	return actor, nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]User, error) {
	return s.UserRepo.List(ctx, nil)
}

func (s *UserServiceImpl) Employees(ctx context.Context) ([]User, error) {
	return s.UserRepo.List(ctx, RoleFilter(permission.RoleEmployee))
}

func (s *UserServiceImpl) NonDevelopers(ctx context.Context) ([]User, error) {
	return s.UserRepo.List(ctx, NonDeveloperFilter())
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id string) (*User, error) {
	return s.UserRepo.FindByID(ctx, id)
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, actorID string, input CreateUserInput) (*User, error) {
	if _, err := s.requireDeveloper(ctx, actorID); err != nil {
		return nil, err
	}

	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" {
		return nil, apperr.Validationf("name and email are required")
	}
	if !input.Role.Valid() {
		return nil, apperr.Validationf("unknown role %q", input.Role)
	}

	if existing, err := s.UserRepo.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, apperr.ErrDuplicateEmail
	} else if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	newUser := &User{
		Name:        input.Name,
		Email:       input.Email,
		Password:    string(hashed),
		Role:        input.Role,
		Avatar:      input.Avatar,
		Permissions: permission.DefaultPermissions(input.Role),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.UserRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	s.Logger.Info("user created",
		zap.String("userId", newUser.ID.Hex()),
		zap.String("role", string(newUser.Role)))
	return newUser, nil
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, actorID, id string, input UpdateUserInput) (*User, error) {
	actor, err := s.requireDeveloper(ctx, actorID)
	if err != nil {
		return nil, err
	}

	target, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A developer account is editable only by itself
	if target.IsDeveloper() && target.ID != actor.ID {
		return nil, apperr.Forbiddenf("developer accounts cannot be edited by others")
	}

	if input.Name != nil {
		target.Name = *input.Name
	}
	if input.Email != nil {
		target.Email = strings.TrimSpace(*input.Email)
	}
	if input.Avatar != nil {
		target.Avatar = *input.Avatar
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperr.Validationf("unknown role %q", *input.Role)
		}
		target.Role = *input.Role
	}
	if input.IsActive != nil {
		target.IsActive = *input.IsActive
	}
	target.UpdatedAt = time.Now()

	if err := s.UserRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	s.Logger.Info("user updated", zap.String("userId", id))
	return target, nil
}

func (s *UserServiceImpl) ToggleUserActive(ctx context.Context, actorID, id string) (*User, error) {
	if _, err := s.requireDeveloper(ctx, actorID); err != nil {
		return nil, err
	}

	target, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target.IsDeveloper() {
		return nil, apperr.Forbiddenf("developer accounts cannot be deactivated")
	}

	target.IsActive = !target.IsActive
	target.UpdatedAt = time.Now()

	if err := s.UserRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	s.Logger.Info("user active flag toggled",
		zap.String("userId", id),
		zap.Bool("isActive", target.IsActive))
	return target, nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, actorID, id string) error {
	actor, err := s.requireDeveloper(ctx, actorID)
	if err != nil {
		return err
	}

	target, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if target.IsDeveloper() {
		return apperr.Forbiddenf("developer accounts cannot be deleted")
	}
	if target.ID == actor.ID {
		return apperr.Forbiddenf("self-deletion is not allowed")
	}

	if err := s.UserRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.Logger.Info("user deleted", zap.String("userId", id))
	return nil
}

func (s *UserServiceImpl) UpdateUserPermissions(ctx context.Context, actorID, id string, updates permission.Permissions) (*User, error) {
	if _, err := s.requireDeveloper(ctx, actorID); err != nil {
		return nil, err
	}

	target, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target.Permissions = target.Permissions.Merge(updates)
	target.UpdatedAt = time.Now()

	if err := s.UserRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	s.Logger.Info("user permissions updated", zap.String("userId", id))
	return target, nil
}

// PermissionsFor backs the RequirePermission middleware. Deactivated users
// keep their stored flags but are denied everything while inactive.
func (s *UserServiceImpl) PermissionsFor(ctx context.Context, userID string) (permission.Permissions, error) {
	u, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return permission.Permissions{}, nil
		}
		return nil, err
	}
	if !u.IsActive {
		return permission.Permissions{}, nil
	}
	return u.Permissions, nil
}
