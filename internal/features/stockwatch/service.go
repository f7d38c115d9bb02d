package stockwatch

import (
	"context"
	"fmt"

	"go-fieldops/internal/config"
	"go-fieldops/internal/features/notification"
	"go-fieldops/internal/features/stock"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StockWatcher runs the daily inventory scan. Every run lists items at or
// below their reorder threshold and posts one notification per item, so a
// shortage keeps resurfacing until someone restocks.
type StockWatcher interface {
	Start(ctx context.Context) error
	Stop() error
	// ScanOnce is the scheduled body, exposed for manual triggering.
	ScanOnce(ctx context.Context) (int, error)
}

type StockWatcherImpl struct {
	StockService        stock.StockService
	NotificationService notification.NotificationService
	Logger              *zap.Logger

	schedule  string
	scheduler *cron.Cron
}

func NewStockWatcher(
	stockService stock.StockService,
	notificationService notification.NotificationService,
	cfg *config.Config,
	logger *zap.Logger,
) StockWatcher {
	return &StockWatcherImpl{
		StockService:        stockService,
		NotificationService: notificationService,
		Logger:              logger,
		schedule:            cfg.StockScanSchedule,
	}
}

func (s *StockWatcherImpl) Start(ctx context.Context) error {
	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid stock scan schedule %q: %w", s.schedule, err)
	}

	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc(s.schedule, func() {
		if _, err := s.ScanOnce(context.Background()); err != nil {
			s.Logger.Error("stock scan failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	s.scheduler.Start()
	s.Logger.Info("stock watcher started", zap.String("schedule", s.schedule))
	return nil
}

func (s *StockWatcherImpl) Stop() error {
	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
	}
	return nil
}

func (s *StockWatcherImpl) ScanOnce(ctx context.Context) (int, error) {
	items, err := s.StockService.LowItems(ctx)
	if err != nil {
		return 0, err
	}

	for i := range items {
		item := &items[i]
		title := "Low stock"
		message := fmt.Sprintf("%s is down to %d %s (minimum %d)", item.Name, item.Quantity, item.Unit, item.MinQuantity)
		if item.Status == stock.StatusOutOfStock {
			title = "Out of stock"
			message = fmt.Sprintf("%s is out of stock", item.Name)
		}

		if _, err := s.NotificationService.Add(ctx, notification.AddNotificationInput{
			Title:     title,
			Message:   message,
			Type:      notification.NotificationTypeSystem,
			RelatedID: item.ID.Hex(),
		}); err != nil {
			s.Logger.Warn("stock scan notification failed",
				zap.String("item", item.Name),
				zap.Error(err))
		}
	}

	s.Logger.Info("stock scan completed", zap.Int("flagged", len(items)))
	return len(items), nil
}
