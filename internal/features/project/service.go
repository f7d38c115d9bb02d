package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/common/models"
	"go-fieldops/internal/features/automation"
	"go-fieldops/internal/features/notification"
	"go-fieldops/internal/features/user"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ProjectService interface {
	CreateProject(ctx context.Context, input CreateProjectInput) (*Project, error)
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	UpdateProject(ctx context.Context, id string, input UpdateProjectInput) (*Project, error)
	DeleteProject(ctx context.Context, id string) error
	LaunchProject(ctx context.Context, id string) (*Project, error)

	AddStage(ctx context.Context, projectID, name string) (*Project, error)
	RenameStage(ctx context.Context, projectID, stageID, name string) (*Project, error)
	DeleteStage(ctx context.Context, projectID, stageID string) (*Project, error)

	AddTask(ctx context.Context, projectID, stageID string, input AddTaskInput) (*Task, error)
	UpdateTask(ctx context.Context, projectID, stageID, taskID string, input UpdateTaskInput) (*Task, error)
	DeleteTask(ctx context.Context, projectID, stageID, taskID string) error
	FindTask(ctx context.Context, taskID string) (*TaskLocation, error)

	AddTaskReport(ctx context.Context, actorID, projectID, stageID, taskID string, input ReportInput) (*TaskReport, error)
	AddTaskComment(ctx context.Context, actorID, projectID, stageID, taskID string, input CommentInput) (*TaskComment, error)
}

type ProjectServiceImpl struct {
	ProjectRepo         ProjectRepository
	UserRepo            user.UserRepository
	NotificationService notification.NotificationService
	Dispatcher          automation.Dispatcher
	Logger              *zap.Logger
}

func NewProjectService(
	projectRepo ProjectRepository,
	userRepo user.UserRepository,
	notificationService notification.NotificationService,
	dispatcher automation.Dispatcher,
	logger *zap.Logger,
) ProjectService {
	return &ProjectServiceImpl{
		ProjectRepo:         projectRepo,
		UserRepo:            userRepo,
		NotificationService: notificationService,
		Dispatcher:          dispatcher,
		Logger:              logger,
	}
}

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, input CreateProjectInput) (*Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperr.Validationf("project name is required")
	}
	status := input.Status
	if status == "" {
		status = ProjectInProgress
	}
	if !validProjectStatus(status) {
		return nil, apperr.Validationf("unknown project status %q", status)
	}

	now := time.Now()
	p := &Project{
		Name:              input.Name,
		Number:            input.Number,
		Location:          input.Location,
		StartDate:         input.StartDate,
		Status:            status,
		Workflow:          []WorkflowStage{},
		AssignedEmployees: input.AssignedEmployees,
		Files:             []models.FileAttachment{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.ProjectRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Info("project created",
		zap.String("projectId", p.ID.Hex()),
		zap.String("name", p.Name))
	return p, nil
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, id string) (*Project, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.ProjectRepo.FindByID(ctx, oid)
}

func (s *ProjectServiceImpl) ListProjects(ctx context.Context) ([]Project, error) {
	return s.ProjectRepo.List(ctx, bson.M{})
}

func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, id string, input UpdateProjectInput) (*Project, error) {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperr.Validationf("project name cannot be empty")
		}
		p.Name = *input.Name
	}
	if input.Number != nil {
		p.Number = *input.Number
	}
	if input.Location != nil {
		p.Location = *input.Location
	}
	if input.StartDate != nil {
		p.StartDate = *input.StartDate
	}
	if input.Status != nil {
		if !validProjectStatus(*input.Status) {
			return nil, apperr.Validationf("unknown project status %q", *input.Status)
		}
		p.Status = *input.Status
	}
	if input.AssignedEmployees != nil {
		p.AssignedEmployees = *input.AssignedEmployees
	}
	p.UpdatedAt = time.Now()

	if err := s.ProjectRepo.Replace(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProject removes the document; all stages, tasks and their reports go
// with it.
func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.ProjectRepo.Delete(ctx, oid); err != nil {
		return err
	}
	s.Logger.Info("project deleted", zap.String("projectId", id))
	return nil
}

// LaunchProject flips the project to in_progress, announces it on the
// notification feed and fires the project.launched automation event.
func (s *ProjectServiceImpl) LaunchProject(ctx context.Context, id string) (*Project, error) {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Status = ProjectInProgress
	p.UpdatedAt = time.Now()
	if err := s.ProjectRepo.Replace(ctx, p); err != nil {
		return nil, err
	}

	if _, err := s.NotificationService.Add(ctx, notification.AddNotificationInput{
		Title:     "Project launched",
		Message:   p.Name + " is now in progress",
		Type:      notification.NotificationTypeProject,
		RelatedID: p.ID.Hex(),
	}); err != nil {
		s.Logger.Warn("launch notification failed", zap.Error(err))
	}

	s.Dispatcher.Dispatch(ctx, automation.EventProjectLaunched, map[string]interface{}{
		"id":     p.ID.Hex(),
		"name":   p.Name,
		"number": p.Number,
	})

	s.Logger.Info("project launched", zap.String("projectId", id))
	return p, nil
}

// AddStage appends a stage with order len(workflow)+1. Existing orders are
// never renumbered.
func (s *ProjectServiceImpl) AddStage(ctx context.Context, projectID, name string) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validationf("stage name is required")
	}
	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	p.Workflow = append(p.Workflow, WorkflowStage{
		ID:    uuid.NewString(),
		Name:  name,
		Order: len(p.Workflow) + 1,
		Tasks: []Task{},
	})
	p.UpdatedAt = time.Now()

	if err := s.ProjectRepo.Replace(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectServiceImpl) RenameStage(ctx context.Context, projectID, stageID, name string) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validationf("stage name is required")
	}
	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	st := p.Stage(stageID)
	if st == nil {
		return nil, apperr.NotFoundf("stage %s not found", stageID)
	}

	st.Name = name
	p.UpdatedAt = time.Now()

	if err := s.ProjectRepo.Replace(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteStage drops the stage with its tasks. Remaining stage orders keep
// their values.
func (s *ProjectServiceImpl) DeleteStage(ctx context.Context, projectID, stageID string) (*Project, error) {
	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range p.Workflow {
		if p.Workflow[i].ID == stageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperr.NotFoundf("stage %s not found", stageID)
	}

	p.Workflow = append(p.Workflow[:idx], p.Workflow[idx+1:]...)
	p.UpdatedAt = time.Now()

	if err := s.ProjectRepo.Replace(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectServiceImpl) AddTask(ctx context.Context, projectID, stageID string, input AddTaskInput) (*Task, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperr.Validationf("task description is required")
	}
	status := input.Status
	if status == "" {
		status = TaskPending
	}
	if !validTaskStatus(status) {
		return nil, apperr.Validationf("unknown task status %q", status)
	}

	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	st := p.Stage(stageID)
	if st == nil {
		return nil, apperr.NotFoundf("stage %s not found", stageID)
	}

	now := time.Now()
	task := Task{
		ID:          uuid.NewString(),
		Number:      p.NextTaskNumber(),
		Description: input.Description,
		Status:      status,
		AssignedTo:  input.AssignedTo,
		ProjectID:   p.ID.Hex(),
		StageID:     st.ID,
		Comments:    []TaskComment{},
		Reports:     []TaskReport{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	st.Tasks = append(st.Tasks, task)
	p.UpdatedAt = now

	if err := s.ProjectRepo.Replace(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Info("task added",
		zap.String("projectId", p.ID.Hex()),
		zap.Int("number", task.Number))
	return &task, nil
}

func (s *ProjectServiceImpl) UpdateTask(ctx context.Context, projectID, stageID, taskID string, input UpdateTaskInput) (*Task, error) {
	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task, _, err := findTask(p, stageID, taskID)
	if err != nil {
		return nil, err
	}

	statusChanged := false
	oldStatus := task.Status

	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			return nil, apperr.Validationf("task description cannot be empty")
		}
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !validTaskStatus(*input.Status) {
			return nil, apperr.Validationf("unknown task status %q", *input.Status)
		}
		statusChanged = task.Status != *input.Status
		task.Status = *input.Status
	}
	if input.AssignedTo != nil {
		task.AssignedTo = *input.AssignedTo
	}

	now := time.Now()
	task.UpdatedAt = now
	p.UpdatedAt = now

	if err := s.ProjectRepo.Replace(ctx, p); err != nil {
		return nil, err
	}

	if statusChanged {
		s.Dispatcher.Dispatch(ctx, automation.EventTaskStatusChanged, map[string]interface{}{
			"id":          task.ID,
			"number":      task.Number,
			"description": task.Description,
			"project_id":  task.ProjectID,
			"old_status":  string(oldStatus),
			"status":      string(task.Status),
		})
	}
	return task, nil
}

func (s *ProjectServiceImpl) DeleteTask(ctx context.Context, projectID, stageID, taskID string) error {
	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	st := p.Stage(stageID)
	if st == nil {
		return apperr.NotFoundf("stage %s not found", stageID)
	}

	idx := -1
	for i := range st.Tasks {
		if st.Tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFoundf("task %s not found", taskID)
	}

	st.Tasks = append(st.Tasks[:idx], st.Tasks[idx+1:]...)
	p.UpdatedAt = time.Now()

	return s.ProjectRepo.Replace(ctx, p)
}

// FindTask resolves a task by its id alone, scanning every project.
func (s *ProjectServiceImpl) FindTask(ctx context.Context, taskID string) (*TaskLocation, error) {
	projects, err := s.ProjectRepo.List(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	for pi := range projects {
		p := &projects[pi]
		for si := range p.Workflow {
			st := &p.Workflow[si]
			for ti := range st.Tasks {
				if st.Tasks[ti].ID == taskID {
					return &TaskLocation{
						Task:    st.Tasks[ti],
						Project: *p,
						StageID: st.ID,
						Stage:   st.Name,
					}, nil
				}
			}
		}
	}
	return nil, apperr.NotFoundf("task %s not found", taskID)
}

func (s *ProjectServiceImpl) AddTaskReport(ctx context.Context, actorID, projectID, stageID, taskID string, input ReportInput) (*TaskReport, error) {
	if strings.TrimSpace(input.Content) == "" && len(input.Attachments) == 0 {
		return nil, apperr.Validationf("report needs content or attachments")
	}

	actor, err := s.UserRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task, _, err := findTask(p, stageID, taskID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := TaskReport{
		ID:          uuid.NewString(),
		TaskID:      task.ID,
		UserID:      actor.ID.Hex(),
		UserName:    actor.Name,
		Content:     input.Content,
		Attachments: input.Attachments,
		CreatedAt:   now,
	}
	task.Reports = append(task.Reports, report)
	task.UpdatedAt = now
	p.UpdatedAt = now

	if err := s.ProjectRepo.Replace(ctx, p); err != nil {
		return nil, err
	}

	if _, err := s.NotificationService.Add(ctx, notification.AddNotificationInput{
		Title:     "New task report",
		Message:   fmt.Sprintf("%s reported on task #%d", actor.Name, task.Number),
		Type:      notification.NotificationTypeReport,
		RelatedID: task.ID,
		SenderID:  actor.ID.Hex(),
	}); err != nil {
		s.Logger.Warn("report notification failed", zap.Error(err))
	}
	return &report, nil
}

func (s *ProjectServiceImpl) AddTaskComment(ctx context.Context, actorID, projectID, stageID, taskID string, input CommentInput) (*TaskComment, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, apperr.Validationf("comment content is required")
	}

	actor, err := s.UserRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task, _, err := findTask(p, stageID, taskID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comment := TaskComment{
		ID:          uuid.NewString(),
		UserID:      actor.ID.Hex(),
		UserName:    actor.Name,
		Content:     input.Content,
		Attachments: input.Attachments,
		CreatedAt:   now,
	}
	task.Comments = append(task.Comments, comment)
	task.UpdatedAt = now
	p.UpdatedAt = now

	if err := s.ProjectRepo.Replace(ctx, p); err != nil {
		return nil, err
	}
	return &comment, nil
}

func findTask(p *Project, stageID, taskID string) (*Task, *WorkflowStage, error) {
	st := p.Stage(stageID)
	if st == nil {
		return nil, nil, apperr.NotFoundf("stage %s not found", stageID)
	}
	for i := range st.Tasks {
		if st.Tasks[i].ID == taskID {
			return &st.Tasks[i], st, nil
		}
	}
	return nil, nil, apperr.NotFoundf("task %s not found", taskID)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.NotFoundf("project %s not found", id)
	}
	return oid, nil
}

func validProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectInProgress, ProjectPaused, ProjectCompleted:
		return true
	}
	return false
}

func validTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskPending, TaskInProgress, TaskPaused, TaskCompleted:
		return true
	}
	return false
}
