package automation

import (
	"context"
	"slices"
	"time"

	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/features/notification"

	"github.com/d5/tengo/v2"
	"go.uber.org/zap"
)

// Dispatcher is the narrow interface stores use to publish domain events
// without importing the whole automation feature.
type Dispatcher interface {
	Dispatch(ctx context.Context, event string, payload map[string]interface{})
}

type AutomationService interface {
	Dispatcher
	CreateRule(ctx context.Context, input RuleInput) (*Rule, error)
	GetRule(ctx context.Context, id string) (*Rule, error)
	ListRules(ctx context.Context) ([]Rule, error)
	UpdateRule(ctx context.Context, id string, input RuleInput) (*Rule, error)
	DeleteRule(ctx context.Context, id string) error
}

type AutomationServiceImpl struct {
	RuleRepo            RuleRepository
	NotificationService notification.NotificationService
	Logger              *zap.Logger
}

func NewAutomationService(ruleRepo RuleRepository, notificationService notification.NotificationService, logger *zap.Logger) AutomationService {
	return &AutomationServiceImpl{
		RuleRepo:            ruleRepo,
		NotificationService: notificationService,
		Logger:              logger,
	}
}

func (s *AutomationServiceImpl) CreateRule(ctx context.Context, input RuleInput) (*Rule, error) {
	if err := validateRuleInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	rule := &Rule{
		Name:      input.Name,
		Event:     input.Event,
		Script:    input.Script,
		Active:    input.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.RuleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}

	s.Logger.Info("automation rule created",
		zap.String("rule", rule.Name),
		zap.String("event", rule.Event))
	return rule, nil
}

func (s *AutomationServiceImpl) GetRule(ctx context.Context, id string) (*Rule, error) {
	return s.RuleRepo.FindByID(ctx, id)
}

func (s *AutomationServiceImpl) ListRules(ctx context.Context) ([]Rule, error) {
	return s.RuleRepo.List(ctx)
}

func (s *AutomationServiceImpl) UpdateRule(ctx context.Context, id string, input RuleInput) (*Rule, error) {
	if err := validateRuleInput(input); err != nil {
		return nil, err
	}

	rule, err := s.RuleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rule.Name = input.Name
	rule.Event = input.Event
	rule.Script = input.Script
	rule.Active = input.Active
	rule.UpdatedAt = time.Now()

	if err := s.RuleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *AutomationServiceImpl) DeleteRule(ctx context.Context, id string) error {
	if _, err := s.RuleRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.RuleRepo.Delete(ctx, id)
}

// Dispatch runs every active rule subscribed to the event. Failures are
// recorded on the rule and logged; they never propagate to the caller.
func (s *AutomationServiceImpl) Dispatch(ctx context.Context, event string, payload map[string]interface{}) {
	rules, err := s.RuleRepo.ActiveForEvent(ctx, event)
	if err != nil {
		s.Logger.Error("automation rule lookup failed", zap.String("event", event), zap.Error(err))
		return
	}

	for i := range rules {
		rule := rules[i]
		if err := s.runRule(ctx, &rule, event, payload); err != nil {
			s.Logger.Warn("automation rule failed",
				zap.String("rule", rule.Name),
				zap.String("event", event),
				zap.Error(err))

			rule.LastError = err.Error()
			rule.UpdatedAt = time.Now()
			_ = s.RuleRepo.Update(ctx, &rule)
		}
	}
}

func (s *AutomationServiceImpl) runRule(ctx context.Context, rule *Rule, event string, payload map[string]interface{}) error {
	script := tengo.NewScript([]byte(rule.Script))

	_ = script.Add("event", event)
	_ = script.Add("payload", payload)
	// Output slots the script may fill to emit a notification
	_ = script.Add("notify_title", "")
	_ = script.Add("notify_message", "")

	compiled, err := script.RunContext(ctx)
	if err != nil {
		return err
	}

	title := compiled.Get("notify_title").String()
	if title == "" {
		return nil
	}

	relatedID, _ := payload["id"].(string)
	_, err = s.NotificationService.Add(ctx, notification.AddNotificationInput{
		Title:     title,
		Message:   compiled.Get("notify_message").String(),
		Type:      typeForEvent(event),
		RelatedID: relatedID,
	})
	return err
}

func typeForEvent(event string) notification.NotificationType {
	switch event {
	case EventTaskStatusChanged:
		return notification.NotificationTypeTask
	case EventProjectLaunched:
		return notification.NotificationTypeProject
	default:
		return notification.NotificationTypeSystem
	}
}

func validateRuleInput(input RuleInput) error {
	if input.Name == "" || input.Script == "" {
		return apperr.Validationf("name and script are required")
	}
	if !slices.Contains(KnownEvents, input.Event) {
		return apperr.Validationf("unknown event %q", input.Event)
	}
	// Compile eagerly so broken scripts are rejected at save time. The
	// probe binds the same globals Dispatch provides, otherwise valid
	// scripts would fail with unresolved references.
	probe := tengo.NewScript([]byte(input.Script))
	_ = probe.Add("event", "")
	_ = probe.Add("payload", map[string]interface{}{})
	_ = probe.Add("notify_title", "")
	_ = probe.Add("notify_message", "")
	if _, err := probe.Compile(); err != nil {
		return apperr.Validationf("script does not compile: %v", err)
	}
	return nil
}
