package auth

import (
	"context"
	"errors"
	"time"

	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/config"
	"go-fieldops/internal/features/permission"
	"go-fieldops/internal/features/user"
	"go-fieldops/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *user.User, error)
	// Impersonate issues a token for the target account without credentials.
	// Developer-only escape hatch for preview and support.
	Impersonate(ctx context.Context, actorID, targetID string) (string, *user.User, error)
	Me(ctx context.Context, userID string) (*user.User, error)
	// Bootstrap creates the initial developer account when the directory
	// is empty, so a fresh deployment is reachable.
	Bootstrap(ctx context.Context) error
}

type AuthServiceImpl struct {
	UserRepo user.UserRepository
	Config   *config.Config
	Logger   *zap.Logger
}

func NewAuthService(userRepo user.UserRepository, cfg *config.Config, logger *zap.Logger) AuthService {
	utils.SetSecret(cfg.JWTSecret)
	return &AuthServiceImpl{
		UserRepo: userRepo,
		Config:   cfg,
		Logger:   logger,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	usr, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if !usr.IsActive {
		return "", nil, errors.New("account inactive")
	}

	token, err := utils.GenerateToken(usr.ID, string(usr.Role))
	if err != nil {
		return "", nil, err
	}

	s.Logger.Info("login", zap.String("userId", usr.ID.Hex()))
	return token, usr, nil
}

func (s *AuthServiceImpl) Impersonate(ctx context.Context, actorID, targetID string) (string, *user.User, error) {
	actor, err := s.UserRepo.FindByID(ctx, actorID)
	if err != nil || !actor.IsDeveloper() {
		return "", nil, apperr.Forbiddenf("only developers can impersonate users")
	}

	target, err := s.UserRepo.FindByID(ctx, targetID)
	if err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateToken(target.ID, string(target.Role))
	if err != nil {
		return "", nil, err
	}

	s.Logger.Warn("impersonation",
		zap.String("userId", actor.ID.Hex()),
		zap.String("target", target.ID.Hex()))
	return token, target, nil
}

func (s *AuthServiceImpl) Me(ctx context.Context, userID string) (*user.User, error) {
	return s.UserRepo.FindByID(ctx, userID)
}

func (s *AuthServiceImpl) Bootstrap(ctx context.Context) error {
	count, err := s.UserRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.Config.BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	dev := &user.User{
		Name:        "Developer",
		Email:       s.Config.BootstrapEmail,
		Password:    string(hashed),
		Role:        permission.RoleDeveloper,
		Permissions: permission.DefaultPermissions(permission.RoleDeveloper),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.UserRepo.Create(ctx, dev); err != nil {
		return err
	}

	s.Logger.Info("bootstrap developer account created", zap.String("email", dev.Email))
	return nil
}
