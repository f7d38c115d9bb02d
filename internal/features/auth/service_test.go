package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/config"
	"go-fieldops/internal/features/permission"
	"go-fieldops/internal/features/user"
	"go-fieldops/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	users map[string]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*user.User)}
}

func (r *memUserRepo) Create(ctx context.Context, u *user.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.ID.Hex()] = u
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFoundf("user %s", id)
	}
	return u, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, apperr.NotFoundf("user %s", email)
}

func (r *memUserRepo) List(ctx context.Context, filter bson.M) ([]user.User, error) {
	return nil, nil
}

func (r *memUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (r *memUserRepo) Delete(ctx context.Context, id string) error    { return nil }

func (r *memUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *memUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

func addAccount(t *testing.T, repo *memUserRepo, email string, role permission.Role, active bool) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := &user.User{
		ID:          primitive.NewObjectID(),
		Name:        email,
		Email:       email,
		Password:    string(hash),
		Role:        role,
		Permissions: permission.DefaultPermissions(role),
		IsActive:    active,
	}
	repo.users[u.ID.Hex()] = u
	return u
}

func newTestAuthService() (*AuthServiceImpl, *memUserRepo) {
	utils.SetSecret("test-secret")
	repo := newMemUserRepo()
	svc := &AuthServiceImpl{
		UserRepo: repo,
		Config: &config.Config{
			JWTSecret:         "test-secret",
			BootstrapEmail:    "admin@fieldops.local",
			BootstrapPassword: "changeme",
		},
		Logger: zap.NewNop(),
	}
	return svc, repo
}

func TestLogin(t *testing.T) {
	svc, repo := newTestAuthService()
	acct := addAccount(t, repo, "maya@example.com", permission.RoleManager, true)

	token, got, err := svc.Login(context.Background(), "maya@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if got.ID != acct.ID {
		t.Errorf("logged in as %s, want %s", got.ID.Hex(), acct.ID.Hex())
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != acct.ID.Hex() || claims.Role != string(permission.RoleManager) {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, repo := newTestAuthService()
	addAccount(t, repo, "maya@example.com", permission.RoleManager, true)

	if _, _, err := svc.Login(context.Background(), "maya@example.com", "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "password123"); err == nil {
		t.Error("unknown email accepted")
	}
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc, repo := newTestAuthService()
	addAccount(t, repo, "ghost@example.com", permission.RoleEmployee, false)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "password123"); err == nil {
		t.Error("inactive account accepted")
	}
}

func TestImpersonateDeveloperOnly(t *testing.T) {
	svc, repo := newTestAuthService()
	dev := addAccount(t, repo, "dev@example.com", permission.RoleDeveloper, true)
	manager := addAccount(t, repo, "maya@example.com", permission.RoleManager, true)
	employee := addAccount(t, repo, "jon@example.com", permission.RoleEmployee, true)

	token, target, err := svc.Impersonate(context.Background(), dev.ID.Hex(), employee.ID.Hex())
	if err != nil {
		t.Fatalf("Impersonate() error = %v", err)
	}
	if target.ID != employee.ID {
		t.Errorf("target = %s, want %s", target.ID.Hex(), employee.ID.Hex())
	}
	claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != employee.ID.Hex() {
		t.Errorf("token subject = %s, want %s", claims.UserID, employee.ID.Hex())
	}

	if _, _, err := svc.Impersonate(context.Background(), manager.ID.Hex(), employee.ID.Hex()); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("manager impersonation: got %v, want forbidden", err)
	}
}

func TestBootstrap(t *testing.T) {
	svc, repo := newTestAuthService()

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("got %d users, want 1", len(repo.users))
	}

	dev, err := repo.FindByEmail(context.Background(), "admin@fieldops.local")
	if err != nil {
		t.Fatalf("bootstrap account missing: %v", err)
	}
	if dev.Role != permission.RoleDeveloper || !dev.IsActive {
		t.Errorf("bootstrap account = %+v", dev)
	}

	// A populated directory must not be touched
	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("second Bootstrap() error = %v", err)
	}
	if len(repo.users) != 1 {
		t.Errorf("second bootstrap added accounts")
	}
}
