package notification

import (
	"context"
	"time"

	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/realtime"

	"go.uber.org/zap"
)

type NotificationService interface {
	Add(ctx context.Context, input AddNotificationInput) (*Notification, error)
	List(ctx context.Context) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
	UnreadCount(ctx context.Context) (int64, error)
	ClearAll(ctx context.Context) error
}

type NotificationServiceImpl struct {
	NotificationRepo NotificationRepository
	Hub              *realtime.Hub
	Logger           *zap.Logger
}

func NewNotificationService(notificationRepo NotificationRepository, hub *realtime.Hub, logger *zap.Logger) NotificationService {
	return &NotificationServiceImpl{
		NotificationRepo: notificationRepo,
		Hub:              hub,
		Logger:           logger,
	}
}

func (s *NotificationServiceImpl) Add(ctx context.Context, input AddNotificationInput) (*Notification, error) {
	if input.Title == "" {
		return nil, apperr.Validationf("notification title is required")
	}
	if input.Type == "" {
		input.Type = NotificationTypeSystem
	}

	n := &Notification{
		Title:     input.Title,
		Message:   input.Message,
		Type:      input.Type,
		RelatedID: input.RelatedID,
		SenderID:  input.SenderID,
		Read:      false,
		CreatedAt: time.Now(),
	}

	if err := s.NotificationRepo.Insert(ctx, n); err != nil {
		return nil, err
	}

	s.Hub.Broadcast(realtime.Event{Kind: "notification", Payload: n})

	s.Logger.Info("notification added",
		zap.String("type", string(n.Type)),
		zap.String("title", n.Title))
	return n, nil
}

func (s *NotificationServiceImpl) List(ctx context.Context) ([]Notification, error) {
	return s.NotificationRepo.List(ctx)
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, id string) error {
	return s.NotificationRepo.MarkRead(ctx, id)
}

func (s *NotificationServiceImpl) UnreadCount(ctx context.Context) (int64, error) {
	return s.NotificationRepo.CountUnread(ctx)
}

func (s *NotificationServiceImpl) ClearAll(ctx context.Context) error {
	return s.NotificationRepo.Clear(ctx)
}
