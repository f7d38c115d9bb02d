package project

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/features/automation"
	"go-fieldops/internal/features/notification"
	"go-fieldops/internal/features/permission"
	"go-fieldops/internal/features/user"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeProjectRepo struct {
	projects map[string]*Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*Project)}
}

func (r *fakeProjectRepo) Create(ctx context.Context, p *Project) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	r.projects[p.ID.Hex()] = &cp
	return nil
}

func (r *fakeProjectRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*Project, error) {
	p, ok := r.projects[id.Hex()]
	if !ok {
		return nil, apperr.NotFoundf("project %s not found", id.Hex())
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) List(ctx context.Context, filter bson.M) ([]Project, error) {
	var out []Project
	for _, p := range r.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProjectRepo) Replace(ctx context.Context, p *Project) error {
	if _, ok := r.projects[p.ID.Hex()]; !ok {
		return apperr.NotFoundf("project %s not found", p.ID.Hex())
	}
	cp := *p
	r.projects[p.ID.Hex()] = &cp
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.projects[id.Hex()]; !ok {
		return apperr.NotFoundf("project %s not found", id.Hex())
	}
	delete(r.projects, id.Hex())
	return nil
}

func (r *fakeProjectRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(r.projects)), nil
}

type fakeUserRepo struct {
	users map[string]*user.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	r.users[u.ID.Hex()] = u
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFoundf("user %s", id)
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFoundf("user %s", email)
}

func (r *fakeUserRepo) List(ctx context.Context, filter bson.M) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (r *fakeUserRepo) Delete(ctx context.Context, id string) error    { return nil }
func (r *fakeUserRepo) Count(ctx context.Context) (int64, error)       { return int64(len(r.users)), nil }
func (r *fakeUserRepo) EnsureIndexes(ctx context.Context) error        { return nil }

type fakeNotifier struct {
	added []notification.AddNotificationInput
}

func (n *fakeNotifier) Add(ctx context.Context, input notification.AddNotificationInput) (*notification.Notification, error) {
	n.added = append(n.added, input)
	return &notification.Notification{Title: input.Title}, nil
}

func (n *fakeNotifier) List(ctx context.Context) ([]notification.Notification, error) {
	return nil, nil
}
func (n *fakeNotifier) MarkRead(ctx context.Context, id string) error    { return nil }
func (n *fakeNotifier) UnreadCount(ctx context.Context) (int64, error)   { return 0, nil }
func (n *fakeNotifier) ClearAll(ctx context.Context) error               { return nil }

type fakeDispatcher struct {
	events   []string
	payloads []map[string]interface{}
}

func (d *fakeDispatcher) Dispatch(ctx context.Context, event string, payload map[string]interface{}) {
	d.events = append(d.events, event)
	d.payloads = append(d.payloads, payload)
}

func newTestProjectService(t *testing.T) (*ProjectServiceImpl, *fakeNotifier, *fakeDispatcher, string) {
	t.Helper()

	reporter := &user.User{
		ID:       primitive.NewObjectID(),
		Name:     "Jon Reyes",
		Email:    "jon@example.com",
		Role:     permission.RoleEmployee,
		IsActive: true,
	}
	users := &fakeUserRepo{users: map[string]*user.User{reporter.ID.Hex(): reporter}}
	notifier := &fakeNotifier{}
	dispatcher := &fakeDispatcher{}

	svc := &ProjectServiceImpl{
		ProjectRepo:         newFakeProjectRepo(),
		UserRepo:            users,
		NotificationService: notifier,
		Dispatcher:          dispatcher,
		Logger:              zap.NewNop(),
	}
	return svc, notifier, dispatcher, reporter.ID.Hex()
}

func mustCreateProject(t *testing.T, svc *ProjectServiceImpl) *Project {
	t.Helper()
	p, err := svc.CreateProject(context.Background(), CreateProjectInput{
		Name:      "Warehouse",
		Number:    "P-001",
		StartDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	return p
}

func mustAddStage(t *testing.T, svc *ProjectServiceImpl, projectID, name string) *WorkflowStage {
	t.Helper()
	p, err := svc.AddStage(context.Background(), projectID, name)
	if err != nil {
		t.Fatalf("AddStage(%s) error = %v", name, err)
	}
	return &p.Workflow[len(p.Workflow)-1]
}

func TestStageOrderAssignment(t *testing.T) {
	svc, _, _, _ := newTestProjectService(t)
	p := mustCreateProject(t, svc)

	first := mustAddStage(t, svc, p.ID.Hex(), "Foundations")
	second := mustAddStage(t, svc, p.ID.Hex(), "Framing")

	if first.Order != 1 || second.Order != 2 {
		t.Errorf("orders = %d, %d, want 1, 2", first.Order, second.Order)
	}

	// Deleting the first stage must not renumber the second
	if _, err := svc.DeleteStage(context.Background(), p.ID.Hex(), first.ID); err != nil {
		t.Fatalf("DeleteStage() error = %v", err)
	}
	got, err := svc.GetProject(context.Background(), p.ID.Hex())
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if len(got.Workflow) != 1 || got.Workflow[0].Order != 2 {
		t.Errorf("surviving stage order = %d, want 2", got.Workflow[0].Order)
	}

	// The next appended stage gets len+1
	third := mustAddStage(t, svc, p.ID.Hex(), "Roofing")
	if third.Order != 2 {
		t.Errorf("appended stage order = %d, want 2", third.Order)
	}
}

func TestTaskNumbersSpanStages(t *testing.T) {
	svc, _, _, _ := newTestProjectService(t)
	ctx := context.Background()
	p := mustCreateProject(t, svc)

	stageA := mustAddStage(t, svc, p.ID.Hex(), "A")
	stageB := mustAddStage(t, svc, p.ID.Hex(), "B")

	t1, err := svc.AddTask(ctx, p.ID.Hex(), stageA.ID, AddTaskInput{Description: "dig"})
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	t2, err := svc.AddTask(ctx, p.ID.Hex(), stageB.ID, AddTaskInput{Description: "pour"})
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	if t1.Number != 1 || t2.Number != 2 {
		t.Errorf("numbers = %d, %d, want 1, 2", t1.Number, t2.Number)
	}

	// Deleting task 1 leaves a gap; the next task continues from the max
	if err := svc.DeleteTask(ctx, p.ID.Hex(), stageA.ID, t1.ID); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	t3, err := svc.AddTask(ctx, p.ID.Hex(), stageA.ID, AddTaskInput{Description: "cure"})
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	if t3.Number != 3 {
		t.Errorf("number after deletion = %d, want 3", t3.Number)
	}
}

func TestDeleteStageCascadesTasks(t *testing.T) {
	svc, _, _, _ := newTestProjectService(t)
	ctx := context.Background()
	p := mustCreateProject(t, svc)
	stage := mustAddStage(t, svc, p.ID.Hex(), "Demolition")

	task, err := svc.AddTask(ctx, p.ID.Hex(), stage.ID, AddTaskInput{Description: "tear down"})
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	if _, err := svc.DeleteStage(ctx, p.ID.Hex(), stage.ID); err != nil {
		t.Fatalf("DeleteStage() error = %v", err)
	}

	if _, err := svc.FindTask(ctx, task.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("FindTask after cascade: got %v, want not found", err)
	}
}

func TestUpdateTaskStatusDispatchesEvent(t *testing.T) {
	svc, _, dispatcher, _ := newTestProjectService(t)
	ctx := context.Background()
	p := mustCreateProject(t, svc)
	stage := mustAddStage(t, svc, p.ID.Hex(), "Finishing")

	task, err := svc.AddTask(ctx, p.ID.Hex(), stage.ID, AddTaskInput{Description: "paint"})
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	done := TaskCompleted
	if _, err := svc.UpdateTask(ctx, p.ID.Hex(), stage.ID, task.ID, UpdateTaskInput{Status: &done}); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	if len(dispatcher.events) != 1 || dispatcher.events[0] != automation.EventTaskStatusChanged {
		t.Fatalf("events = %v, want [%s]", dispatcher.events, automation.EventTaskStatusChanged)
	}
	if dispatcher.payloads[0]["status"] != string(TaskCompleted) {
		t.Errorf("payload status = %v, want %s", dispatcher.payloads[0]["status"], TaskCompleted)
	}

	// A non-status edit must not fire again
	desc := "repaint"
	if _, err := svc.UpdateTask(ctx, p.ID.Hex(), stage.ID, task.ID, UpdateTaskInput{Description: &desc}); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if len(dispatcher.events) != 1 {
		t.Errorf("description edit dispatched an event")
	}
}

func TestAddTaskReportSnapshotsUserName(t *testing.T) {
	svc, notifier, _, reporterID := newTestProjectService(t)
	ctx := context.Background()
	p := mustCreateProject(t, svc)
	stage := mustAddStage(t, svc, p.ID.Hex(), "Foundations")

	task, err := svc.AddTask(ctx, p.ID.Hex(), stage.ID, AddTaskInput{Description: "dig"})
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	report, err := svc.AddTaskReport(ctx, reporterID, p.ID.Hex(), stage.ID, task.ID, ReportInput{Content: "half done"})
	if err != nil {
		t.Fatalf("AddTaskReport() error = %v", err)
	}
	if report.UserName != "Jon Reyes" {
		t.Errorf("userName = %q, want %q", report.UserName, "Jon Reyes")
	}
	if report.TaskID != task.ID {
		t.Errorf("taskId = %q, want %q", report.TaskID, task.ID)
	}

	loc, err := svc.FindTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("FindTask() error = %v", err)
	}
	if len(loc.Task.Reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(loc.Task.Reports))
	}

	if len(notifier.added) != 1 || notifier.added[0].Type != notification.NotificationTypeReport {
		t.Errorf("report should add one report notification, got %+v", notifier.added)
	}
}

func TestLaunchProject(t *testing.T) {
	svc, notifier, dispatcher, _ := newTestProjectService(t)
	ctx := context.Background()
	p := mustCreateProject(t, svc)

	paused := ProjectPaused
	if _, err := svc.UpdateProject(ctx, p.ID.Hex(), UpdateProjectInput{Status: &paused}); err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}

	launched, err := svc.LaunchProject(ctx, p.ID.Hex())
	if err != nil {
		t.Fatalf("LaunchProject() error = %v", err)
	}
	if launched.Status != ProjectInProgress {
		t.Errorf("status = %s, want %s", launched.Status, ProjectInProgress)
	}

	if len(notifier.added) != 1 || notifier.added[0].Type != notification.NotificationTypeProject {
		t.Errorf("launch should add a project notification, got %+v", notifier.added)
	}
	if len(dispatcher.events) != 1 || dispatcher.events[0] != automation.EventProjectLaunched {
		t.Errorf("events = %v, want [%s]", dispatcher.events, automation.EventProjectLaunched)
	}
}

func TestFindTaskAcrossProjects(t *testing.T) {
	svc, _, _, _ := newTestProjectService(t)
	ctx := context.Background()

	p1 := mustCreateProject(t, svc)
	p2, err := svc.CreateProject(ctx, CreateProjectInput{Name: "Depot", Number: "P-002"})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	s1 := mustAddStage(t, svc, p1.ID.Hex(), "A")
	s2 := mustAddStage(t, svc, p2.ID.Hex(), "B")

	if _, err := svc.AddTask(ctx, p1.ID.Hex(), s1.ID, AddTaskInput{Description: "one"}); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	target, err := svc.AddTask(ctx, p2.ID.Hex(), s2.ID, AddTaskInput{Description: "two"})
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	loc, err := svc.FindTask(ctx, target.ID)
	if err != nil {
		t.Fatalf("FindTask() error = %v", err)
	}
	if loc.Project.ID != p2.ID {
		t.Errorf("resolved project = %s, want %s", loc.Project.ID.Hex(), p2.ID.Hex())
	}
	if loc.Stage != "B" {
		t.Errorf("resolved stage = %q, want %q", loc.Stage, "B")
	}
}
