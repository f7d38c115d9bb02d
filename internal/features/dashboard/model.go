package dashboard

// DashboardStats is the aggregate snapshot shown on the home screen.
// PendingTasks counts tasks that still need work, pending plus in progress.
type DashboardStats struct {
	TotalProjects     int `json:"totalProjects"`
	ActiveProjects    int `json:"activeProjects"`
	CompletedProjects int `json:"completedProjects"`
	PausedProjects    int `json:"pausedProjects"`
	TotalTasks        int `json:"totalTasks"`
	CompletedTasks    int `json:"completedTasks"`
	PendingTasks      int `json:"pendingTasks"`
	TotalEmployees    int `json:"totalEmployees"`
	LowStockItems     int `json:"lowStockItems"`
}
