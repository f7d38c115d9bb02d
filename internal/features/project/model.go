package project

import (
	"time"

	"go-fieldops/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectStatus string

const (
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectPaused     ProjectStatus = "paused"
	ProjectCompleted  ProjectStatus = "completed"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskPaused     TaskStatus = "paused"
	TaskCompleted  TaskStatus = "completed"
)

// Location is a site address with coordinates.
type Location struct {
	Address   string  `bson:"address" json:"address"`
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// TaskComment is a free-text remark on a task.
type TaskComment struct {
	ID          string                  `bson:"id" json:"id"`
	UserID      string                  `bson:"user_id" json:"userId"`
	UserName    string                  `bson:"user_name" json:"userName"`
	Content     string                  `bson:"content" json:"content"`
	Attachments []models.FileAttachment `bson:"attachments" json:"attachments"`
	CreatedAt   time.Time               `bson:"created_at" json:"createdAt"`
}

// TaskReport is a progress update on a task. Immutable once submitted;
// reports accumulate and are never removed. UserName is a snapshot taken at
// submission time so renaming the author later does not rewrite history.
type TaskReport struct {
	ID          string                  `bson:"id" json:"id"`
	TaskID      string                  `bson:"task_id" json:"taskId"`
	UserID      string                  `bson:"user_id" json:"userId"`
	UserName    string                  `bson:"user_name" json:"userName"`
	Content     string                  `bson:"content" json:"content"`
	Attachments []models.FileAttachment `bson:"attachments" json:"attachments"`
	CreatedAt   time.Time               `bson:"created_at" json:"createdAt"`
}

// Task numbers are unique per project across all stages and are never
// reused, even after deletion.
type Task struct {
	ID          string                  `bson:"id" json:"id"`
	Number      int                     `bson:"number" json:"number"`
	Description string                  `bson:"description" json:"description"`
	Status      TaskStatus              `bson:"status" json:"status"`
	AssignedTo  []string                `bson:"assigned_to" json:"assignedTo"`
	ProjectID   string                  `bson:"project_id" json:"projectId"`
	StageID     string                  `bson:"stage_id" json:"stageId"`
	Comments    []TaskComment           `bson:"comments" json:"comments"`
	Attachments []models.FileAttachment `bson:"attachments" json:"attachments"`
	Reports     []TaskReport            `bson:"reports" json:"reports"`
	CreatedAt   time.Time               `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time               `bson:"updated_at" json:"updatedAt"`
}

// WorkflowStage belongs to exactly one project; deleting the project or the
// stage drops its tasks. Order values keep their gaps after deletions.
type WorkflowStage struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Order int    `bson:"order" json:"order"`
	Tasks []Task `bson:"tasks" json:"tasks"`
}

// Project is the aggregate root: the whole workflow is embedded and every
// mutation rewrites the document, mirroring the single-writer model the
// mobile client had.
type Project struct {
	ID                primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	Name              string                  `bson:"name" json:"name"`
	Number            string                  `bson:"number" json:"number"`
	Location          Location                `bson:"location" json:"location"`
	StartDate         time.Time               `bson:"start_date" json:"startDate"`
	Status            ProjectStatus           `bson:"status" json:"status"`
	Workflow          []WorkflowStage         `bson:"workflow" json:"workflow"`
	AssignedEmployees []string                `bson:"assigned_employees" json:"assignedEmployees"`
	Files             []models.FileAttachment `bson:"files" json:"files"`
	CreatedAt         time.Time               `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time               `bson:"updated_at" json:"updatedAt"`
}

// Stage finds an embedded stage by id.
func (p *Project) Stage(stageID string) *WorkflowStage {
	for i := range p.Workflow {
		if p.Workflow[i].ID == stageID {
			return &p.Workflow[i]
		}
	}
	return nil
}

// NextTaskNumber computes max task number across all stages plus one.
// Gaps left by deleted tasks are never compacted.
func (p *Project) NextTaskNumber() int {
	max := 0
	for i := range p.Workflow {
		for j := range p.Workflow[i].Tasks {
			if n := p.Workflow[i].Tasks[j].Number; n > max {
				max = n
			}
		}
	}
	return max + 1
}

// AllTasks flattens the workflow in stage order.
func (p *Project) AllTasks() []Task {
	var tasks []Task
	for i := range p.Workflow {
		tasks = append(tasks, p.Workflow[i].Tasks...)
	}
	return tasks
}

// TaskLocation is the result of a task lookup: the task plus its owning
// project and stage.
type TaskLocation struct {
	Task    Task    `json:"task"`
	Project Project `json:"project"`
	StageID string  `json:"stageId"`
	Stage   string  `json:"stage"`
}

type CreateProjectInput struct {
	Name              string        `json:"name"`
	Number            string        `json:"number"`
	Location          Location      `json:"location"`
	StartDate         time.Time     `json:"startDate"`
	Status            ProjectStatus `json:"status"`
	AssignedEmployees []string      `json:"assignedEmployees"`
}

type UpdateProjectInput struct {
	Name              *string        `json:"name"`
	Number            *string        `json:"number"`
	Location          *Location      `json:"location"`
	StartDate         *time.Time     `json:"startDate"`
	Status            *ProjectStatus `json:"status"`
	AssignedEmployees *[]string      `json:"assignedEmployees"`
}

type AddTaskInput struct {
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	AssignedTo  []string   `json:"assignedTo"`
}

type UpdateTaskInput struct {
	Description *string     `json:"description"`
	Status      *TaskStatus `json:"status"`
	AssignedTo  *[]string   `json:"assignedTo"`
}

type ReportInput struct {
	Content     string                  `json:"content"`
	Attachments []models.FileAttachment `json:"attachments"`
}

type CommentInput struct {
	Content     string                  `json:"content"`
	Attachments []models.FileAttachment `json:"attachments"`
}
