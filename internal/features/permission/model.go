package permission

// Role is the closed set of account roles.
type Role string

const (
	RoleDeveloper Role = "developer"
	RoleManager   Role = "manager"
	RoleEmployee  Role = "employee"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDeveloper, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Flag names a single capability. Every mutating or viewing operation in the
// system is gated by exactly one flag.
type Flag string

const (
	ViewDashboard     Flag = "viewDashboard"
	ViewProjects      Flag = "viewProjects"
	CreateProjects    Flag = "createProjects"
	EditProjects      Flag = "editProjects"
	DeleteProjects    Flag = "deleteProjects"
	ViewTasks         Flag = "viewTasks"
	CreateTasks       Flag = "createTasks"
	EditTasks         Flag = "editTasks"
	DeleteTasks       Flag = "deleteTasks"
	AssignTasks       Flag = "assignTasks"
	ViewWorkflow      Flag = "viewWorkflow"
	EditWorkflow      Flag = "editWorkflow"
	ViewStock         Flag = "viewStock"
	EditStock         Flag = "editStock"
	AddStock          Flag = "addStock"
	DeleteStock       Flag = "deleteStock"
	ViewCalendar      Flag = "viewCalendar"
	ViewEmployees     Flag = "viewEmployees"
	ManageEmployees   Flag = "manageEmployees"
	ViewFiles         Flag = "viewFiles"
	UploadFiles       Flag = "uploadFiles"
	DownloadFiles     Flag = "downloadFiles"
	DeleteFiles       Flag = "deleteFiles"
	SendFiles         Flag = "sendFiles"
	ViewReports       Flag = "viewReports"
	CreateReports     Flag = "createReports"
	ViewSettings      Flag = "viewSettings"
	ManagePermissions Flag = "managePermissions"
	ViewAdminPanel    Flag = "viewAdminPanel"
	SendMessages      Flag = "sendMessages"
	ReceiveMessages   Flag = "receiveMessages"
	ViewNotifications Flag = "viewNotifications"
)

// AllFlags lists every capability in declaration order. Used by the admin
// panel to render the permission matrix and by DefaultPermissions.
var AllFlags = []Flag{
	ViewDashboard,
	ViewProjects, CreateProjects, EditProjects, DeleteProjects,
	ViewTasks, CreateTasks, EditTasks, DeleteTasks, AssignTasks,
	ViewWorkflow, EditWorkflow,
	ViewStock, EditStock, AddStock, DeleteStock,
	ViewCalendar,
	ViewEmployees, ManageEmployees,
	ViewFiles, UploadFiles, DownloadFiles, DeleteFiles, SendFiles,
	ViewReports, CreateReports,
	ViewSettings, ManagePermissions, ViewAdminPanel,
	SendMessages, ReceiveMessages, ViewNotifications,
}

// Permissions is a capability map. A missing flag denies.
type Permissions map[Flag]bool

// Has reports whether the flag is explicitly granted.
func (p Permissions) Has(flag Flag) bool {
	return p[flag]
}

// Merge returns a copy of p with the entries of updates applied on top.
func (p Permissions) Merge(updates Permissions) Permissions {
	merged := make(Permissions, len(p)+len(updates))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range updates {
		merged[k] = v
	}
	return merged
}
