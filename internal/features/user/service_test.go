package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/features/permission"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memUserRepo struct {
	users map[string]*User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*User)}
}

func (r *memUserRepo) Create(ctx context.Context, u *User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	r.users[u.ID.Hex()] = &cp
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFoundf("user %s", id)
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFoundf("user %s", email)
}

func (r *memUserRepo) List(ctx context.Context, filter bson.M) ([]User, error) {
	var out []User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepo) Update(ctx context.Context, u *User) error {
	if _, ok := r.users[u.ID.Hex()]; !ok {
		return apperr.NotFoundf("user %s", u.ID.Hex())
	}
	cp := *u
	r.users[u.ID.Hex()] = &cp
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return apperr.NotFoundf("user %s", id)
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *memUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

func seedUser(t *testing.T, repo *memUserRepo, name string, role permission.Role, active bool) *User {
	t.Helper()
	u := &User{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Email:       strings.ToLower(name) + "@example.com",
		Role:        role,
		Permissions: permission.DefaultPermissions(role),
		IsActive:    active,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return u
}

func newTestUserService(t *testing.T) (*UserServiceImpl, *memUserRepo, *User, *User) {
	t.Helper()
	repo := newMemUserRepo()
	dev := seedUser(t, repo, "dev", permission.RoleDeveloper, true)
	manager := seedUser(t, repo, "manager", permission.RoleManager, true)
	svc := &UserServiceImpl{UserRepo: repo, Logger: zap.NewNop()}
	return svc, repo, dev, manager
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _, dev, manager := newTestUserService(t)

	_, err := svc.CreateUser(context.Background(), dev.ID.Hex(), CreateUserInput{
		Name:     "Other",
		Email:    strings.ToUpper(manager.Email),
		Password: "secret",
		Role:     permission.RoleEmployee,
	})
	if !errors.Is(err, apperr.ErrDuplicateEmail) {
		t.Errorf("got %v, want duplicate email error", err)
	}
}

func TestCreateUserRequiresDeveloper(t *testing.T) {
	svc, _, _, manager := newTestUserService(t)

	_, err := svc.CreateUser(context.Background(), manager.ID.Hex(), CreateUserInput{
		Name:     "New",
		Email:    "new@example.com",
		Password: "secret",
		Role:     permission.RoleEmployee,
	})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("manager create: got %v, want forbidden", err)
	}
}

func TestCreateUserGetsRoleDefaults(t *testing.T) {
	svc, _, dev, _ := newTestUserService(t)

	created, err := svc.CreateUser(context.Background(), dev.ID.Hex(), CreateUserInput{
		Name:     "Worker",
		Email:    "worker@example.com",
		Password: "secret",
		Role:     permission.RoleEmployee,
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if !created.IsActive {
		t.Error("new users should start active")
	}
	if created.Can(permission.ManagePermissions) {
		t.Error("employee should not hold managePermissions")
	}
	if !created.Can(permission.ViewTasks) {
		t.Error("employee should hold viewTasks")
	}
	if created.Password == "secret" {
		t.Error("password stored in clear")
	}
}

func TestUpdateDeveloperByOtherForbidden(t *testing.T) {
	svc, repo, dev, _ := newTestUserService(t)
	otherDev := seedUser(t, repo, "dev2", permission.RoleDeveloper, true)

	name := "Renamed"
	_, err := svc.UpdateUser(context.Background(), otherDev.ID.Hex(), dev.ID.Hex(), UpdateUserInput{Name: &name})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("got %v, want forbidden", err)
	}

	// A developer may edit itself
	if _, err := svc.UpdateUser(context.Background(), dev.ID.Hex(), dev.ID.Hex(), UpdateUserInput{Name: &name}); err != nil {
		t.Errorf("self edit: %v", err)
	}
}

func TestToggleActiveNeverOnDevelopers(t *testing.T) {
	svc, _, dev, manager := newTestUserService(t)

	if _, err := svc.ToggleUserActive(context.Background(), dev.ID.Hex(), dev.ID.Hex()); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("got %v, want forbidden", err)
	}

	toggled, err := svc.ToggleUserActive(context.Background(), dev.ID.Hex(), manager.ID.Hex())
	if err != nil {
		t.Fatalf("ToggleUserActive() error = %v", err)
	}
	if toggled.IsActive {
		t.Error("manager should be inactive after toggle")
	}
}

func TestDeleteRules(t *testing.T) {
	svc, repo, dev, manager := newTestUserService(t)

	if err := svc.DeleteUser(context.Background(), dev.ID.Hex(), dev.ID.Hex()); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("delete developer: got %v, want forbidden", err)
	}

	if err := svc.DeleteUser(context.Background(), dev.ID.Hex(), manager.ID.Hex()); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if _, ok := repo.users[manager.ID.Hex()]; ok {
		t.Error("manager still present after delete")
	}
}

func TestUpdatePermissionsMerges(t *testing.T) {
	svc, _, dev, manager := newTestUserService(t)

	updated, err := svc.UpdateUserPermissions(context.Background(), dev.ID.Hex(), manager.ID.Hex(), permission.Permissions{
		permission.ViewAdminPanel: true,
		permission.ViewStock:      false,
	})
	if err != nil {
		t.Fatalf("UpdateUserPermissions() error = %v", err)
	}
	if !updated.Can(permission.ViewAdminPanel) {
		t.Error("viewAdminPanel should be granted")
	}
	if updated.Can(permission.ViewStock) {
		t.Error("viewStock should be revoked")
	}
	if !updated.Can(permission.ViewProjects) {
		t.Error("untouched flags should survive the merge")
	}
}

func TestPermissionsFor(t *testing.T) {
	svc, repo, _, manager := newTestUserService(t)
	ctx := context.Background()

	perms, err := svc.PermissionsFor(ctx, manager.ID.Hex())
	if err != nil {
		t.Fatalf("PermissionsFor() error = %v", err)
	}
	if !perms.Has(permission.ViewProjects) {
		t.Error("active manager should hold viewProjects")
	}

	inactive := seedUser(t, repo, "ghost", permission.RoleEmployee, false)
	perms, err = svc.PermissionsFor(ctx, inactive.ID.Hex())
	if err != nil {
		t.Fatalf("PermissionsFor() error = %v", err)
	}
	if len(perms) != 0 {
		t.Error("inactive users should be denied everything")
	}

	perms, err = svc.PermissionsFor(ctx, primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("PermissionsFor() unknown user error = %v", err)
	}
	if len(perms) != 0 {
		t.Error("unknown users should be denied everything")
	}
}
