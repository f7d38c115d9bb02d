package permission

// DefaultPermissions returns the capability set a freshly created account of
// the given role receives. Total over the role enum; unknown roles get the
// employee set.
func DefaultPermissions(role Role) Permissions {
	p := make(Permissions, len(AllFlags))

	switch role {
	case RoleDeveloper:
		for _, f := range AllFlags {
			p[f] = true
		}

	case RoleManager:
		for _, f := range AllFlags {
			p[f] = true
		}
		// Admin surface stays developer-only
		p[ManagePermissions] = false
		p[ViewAdminPanel] = false

	default: // RoleEmployee and anything unknown
		for _, f := range AllFlags {
			p[f] = false
		}
		for _, f := range []Flag{
			ViewDashboard,
			ViewProjects,
			ViewTasks, EditTasks,
			ViewWorkflow,
			ViewStock, EditStock,
			ViewCalendar,
			ViewFiles, UploadFiles, DownloadFiles, SendFiles,
			ViewReports, CreateReports,
			ViewSettings,
			SendMessages, ReceiveMessages,
			ViewNotifications,
		} {
			p[f] = true
		}
	}

	return p
}
