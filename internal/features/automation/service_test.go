package automation

import (
	"context"
	"errors"
	"testing"

	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/features/notification"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memRuleRepo struct {
	rules map[string]*Rule
}

func newMemRuleRepo() *memRuleRepo {
	return &memRuleRepo{rules: make(map[string]*Rule)}
}

func (r *memRuleRepo) Create(ctx context.Context, rule *Rule) error {
	if rule.ID.IsZero() {
		rule.ID = primitive.NewObjectID()
	}
	cp := *rule
	r.rules[rule.ID.Hex()] = &cp
	return nil
}

func (r *memRuleRepo) FindByID(ctx context.Context, id string) (*Rule, error) {
	rule, ok := r.rules[id]
	if !ok {
		return nil, apperr.NotFoundf("rule %s", id)
	}
	cp := *rule
	return &cp, nil
}

func (r *memRuleRepo) List(ctx context.Context) ([]Rule, error) {
	var out []Rule
	for _, rule := range r.rules {
		out = append(out, *rule)
	}
	return out, nil
}

func (r *memRuleRepo) ActiveForEvent(ctx context.Context, event string) ([]Rule, error) {
	var out []Rule
	for _, rule := range r.rules {
		if rule.Active && rule.Event == event {
			out = append(out, *rule)
		}
	}
	return out, nil
}

func (r *memRuleRepo) Update(ctx context.Context, rule *Rule) error {
	if _, ok := r.rules[rule.ID.Hex()]; !ok {
		return apperr.NotFoundf("rule %s", rule.ID.Hex())
	}
	cp := *rule
	r.rules[rule.ID.Hex()] = &cp
	return nil
}

func (r *memRuleRepo) Delete(ctx context.Context, id string) error {
	delete(r.rules, id)
	return nil
}

type captureNotifier struct {
	added []notification.AddNotificationInput
}

func (n *captureNotifier) Add(ctx context.Context, input notification.AddNotificationInput) (*notification.Notification, error) {
	n.added = append(n.added, input)
	return &notification.Notification{Title: input.Title}, nil
}

func (n *captureNotifier) List(ctx context.Context) ([]notification.Notification, error) {
	return nil, nil
}
func (n *captureNotifier) MarkRead(ctx context.Context, id string) error  { return nil }
func (n *captureNotifier) UnreadCount(ctx context.Context) (int64, error) { return 0, nil }
func (n *captureNotifier) ClearAll(ctx context.Context) error             { return nil }

func newTestAutomationService() (*AutomationServiceImpl, *memRuleRepo, *captureNotifier) {
	repo := newMemRuleRepo()
	notifier := &captureNotifier{}
	svc := &AutomationServiceImpl{
		RuleRepo:            repo,
		NotificationService: notifier,
		Logger:              zap.NewNop(),
	}
	return svc, repo, notifier
}

func TestCreateRuleValidation(t *testing.T) {
	svc, _, _ := newTestAutomationService()
	ctx := context.Background()

	tests := []struct {
		name  string
		input RuleInput
	}{
		{"missing name", RuleInput{Event: EventStockUpdated, Script: `x := 1`}},
		{"unknown event", RuleInput{Name: "r", Event: "stock.vanished", Script: `x := 1`}},
		{"broken script", RuleInput{Name: "r", Event: EventStockUpdated, Script: `if {`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateRule(ctx, tt.input); !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestCreateRuleAcceptsGlobals(t *testing.T) {
	svc, _, _ := newTestAutomationService()

	_, err := svc.CreateRule(context.Background(), RuleInput{
		Name:   "low stock ping",
		Event:  EventStockUpdated,
		Script: `if payload.status == "low" { notify_title = "Low: " + payload.name }`,
		Active: true,
	})
	if err != nil {
		t.Fatalf("CreateRule() error = %v", err)
	}
}

func TestDispatchEmitsNotification(t *testing.T) {
	svc, _, notifier := newTestAutomationService()
	ctx := context.Background()

	_, err := svc.CreateRule(ctx, RuleInput{
		Name:  "low stock ping",
		Event: EventStockUpdated,
		Script: `if payload.status == "low" {
	notify_title = "Low stock"
	notify_message = payload.name + " is running low"
}`,
		Active: true,
	})
	if err != nil {
		t.Fatalf("CreateRule() error = %v", err)
	}

	svc.Dispatch(ctx, EventStockUpdated, map[string]interface{}{
		"id":     "abc",
		"name":   "Helmets",
		"status": "low",
	})

	if len(notifier.added) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifier.added))
	}
	got := notifier.added[0]
	if got.Title != "Low stock" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Message != "Helmets is running low" {
		t.Errorf("message = %q", got.Message)
	}
	if got.RelatedID != "abc" {
		t.Errorf("relatedId = %q, want abc", got.RelatedID)
	}
	if got.Type != notification.NotificationTypeSystem {
		t.Errorf("type = %s, want system", got.Type)
	}

	// Status available should not trip the rule
	svc.Dispatch(ctx, EventStockUpdated, map[string]interface{}{
		"id":     "abc",
		"name":   "Helmets",
		"status": "available",
	})
	if len(notifier.added) != 1 {
		t.Errorf("rule fired on non-matching payload")
	}
}

func TestDispatchSkipsInactiveRules(t *testing.T) {
	svc, _, notifier := newTestAutomationService()
	ctx := context.Background()

	_, err := svc.CreateRule(ctx, RuleInput{
		Name:   "dormant",
		Event:  EventProjectLaunched,
		Script: `notify_title = "launched"`,
		Active: false,
	})
	if err != nil {
		t.Fatalf("CreateRule() error = %v", err)
	}

	svc.Dispatch(ctx, EventProjectLaunched, map[string]interface{}{"id": "p1"})
	if len(notifier.added) != 0 {
		t.Errorf("inactive rule fired")
	}
}

func TestDispatchRecordsRuntimeFailure(t *testing.T) {
	svc, repo, notifier := newTestAutomationService()
	ctx := context.Background()

	rule, err := svc.CreateRule(ctx, RuleInput{
		Name:   "fragile",
		Event:  EventTaskStatusChanged,
		Script: `notify_title = payload.missing.field`,
		Active: true,
	})
	if err != nil {
		t.Fatalf("CreateRule() error = %v", err)
	}

	svc.Dispatch(ctx, EventTaskStatusChanged, map[string]interface{}{"id": "t1"})

	if len(notifier.added) != 0 {
		t.Errorf("failed rule still emitted a notification")
	}
	stored, err := repo.FindByID(ctx, rule.ID.Hex())
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if stored.LastError == "" {
		t.Error("failure not recorded on the rule")
	}
}

func TestTypeForEvent(t *testing.T) {
	if got := typeForEvent(EventTaskStatusChanged); got != notification.NotificationTypeTask {
		t.Errorf("task event type = %s", got)
	}
	if got := typeForEvent(EventProjectLaunched); got != notification.NotificationTypeProject {
		t.Errorf("project event type = %s", got)
	}
	if got := typeForEvent(EventStockUpdated); got != notification.NotificationTypeSystem {
		t.Errorf("stock event type = %s", got)
	}
}
