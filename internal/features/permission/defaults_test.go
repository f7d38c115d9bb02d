package permission

import "testing"

func TestDefaultPermissionsCoverEveryFlag(t *testing.T) {
	for _, role := range []Role{RoleDeveloper, RoleManager, RoleEmployee} {
		perms := DefaultPermissions(role)
		if len(perms) != len(AllFlags) {
			t.Errorf("role %s: got %d flags, want %d", role, len(perms), len(AllFlags))
		}
		for _, flag := range AllFlags {
			if _, ok := perms[flag]; !ok {
				t.Errorf("role %s: flag %s missing", role, flag)
			}
		}
	}
}

func TestDeveloperDefaultsAllTrue(t *testing.T) {
	perms := DefaultPermissions(RoleDeveloper)
	for flag, allowed := range perms {
		if !allowed {
			t.Errorf("developer should hold %s", flag)
		}
	}
}

func TestManagerDefaults(t *testing.T) {
	perms := DefaultPermissions(RoleManager)

	for _, flag := range []Flag{ManagePermissions, ViewAdminPanel} {
		if perms[flag] {
			t.Errorf("manager should not hold %s", flag)
		}
	}
	for flag, allowed := range perms {
		if flag == ManagePermissions || flag == ViewAdminPanel {
			continue
		}
		if !allowed {
			t.Errorf("manager should hold %s", flag)
		}
	}
}

func TestEmployeeDefaults(t *testing.T) {
	perms := DefaultPermissions(RoleEmployee)

	granted := []Flag{ViewDashboard, ViewProjects, ViewTasks, EditTasks, ViewStock, EditStock, SendMessages, ViewNotifications}
	for _, flag := range granted {
		if !perms[flag] {
			t.Errorf("employee should hold %s", flag)
		}
	}

	denied := []Flag{CreateProjects, DeleteProjects, ManageEmployees, ManagePermissions, ViewAdminPanel, DeleteStock}
	for _, flag := range denied {
		if perms[flag] {
			t.Errorf("employee should not hold %s", flag)
		}
	}
}

func TestUnknownRoleGetsEmployeeDefaults(t *testing.T) {
	got := DefaultPermissions(Role("intern"))
	want := DefaultPermissions(RoleEmployee)
	for flag, allowed := range want {
		if got[flag] != allowed {
			t.Errorf("flag %s: got %v, want %v", flag, got[flag], allowed)
		}
	}
}

func TestMerge(t *testing.T) {
	base := DefaultPermissions(RoleEmployee)
	merged := base.Merge(Permissions{CreateProjects: true, ViewDashboard: false})

	if !merged.Has(CreateProjects) {
		t.Error("merge should grant createProjects")
	}
	if merged.Has(ViewDashboard) {
		t.Error("merge should revoke viewDashboard")
	}
	if !merged.Has(ViewTasks) {
		t.Error("merge should keep untouched flags")
	}
	if base.Has(CreateProjects) {
		t.Error("merge must not mutate the receiver")
	}
}
