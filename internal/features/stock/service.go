package stock

import (
	"context"
	"time"

	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/features/automation"

	"go.uber.org/zap"
)

type StockService interface {
	Add(ctx context.Context, input AddStockItemInput) (*StockItem, error)
	Get(ctx context.Context, id string) (*StockItem, error)
	List(ctx context.Context) ([]StockItem, error)
	Update(ctx context.Context, id string, input UpdateStockItemInput) (*StockItem, error)
	// Adjust changes quantity by a delta, clamping at zero.
	Adjust(ctx context.Context, id string, delta int) (*StockItem, error)
	Delete(ctx context.Context, id string) error
	// LowItems returns every item at or below its reorder threshold.
	LowItems(ctx context.Context) ([]StockItem, error)
}

type StockServiceImpl struct {
	StockRepo  StockRepository
	Dispatcher automation.Dispatcher
	Logger     *zap.Logger
}

func NewStockService(stockRepo StockRepository, dispatcher automation.Dispatcher, logger *zap.Logger) StockService {
	return &StockServiceImpl{
		StockRepo:  stockRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	}
}

func (s *StockServiceImpl) Add(ctx context.Context, input AddStockItemInput) (*StockItem, error) {
	if input.Name == "" {
		return nil, apperr.Validationf("name is required")
	}
	if input.Quantity < 0 || input.MinQuantity < 0 {
		return nil, apperr.Validationf("quantities must be non-negative")
	}

	item := &StockItem{
		Name:        input.Name,
		Quantity:    input.Quantity,
		MinQuantity: input.MinQuantity,
		Unit:        input.Unit,
		Category:    input.Category,
		Status:      DeriveStatus(input.Quantity, input.MinQuantity),
		LastUpdated: time.Now(),
	}

	if err := s.StockRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.Logger.Info("stock item added",
		zap.String("item", item.Name),
		zap.Int("quantity", item.Quantity))
	return item, nil
}

func (s *StockServiceImpl) Get(ctx context.Context, id string) (*StockItem, error) {
	return s.StockRepo.FindByID(ctx, id)
}

func (s *StockServiceImpl) List(ctx context.Context) ([]StockItem, error) {
	return s.StockRepo.List(ctx)
}

func (s *StockServiceImpl) Update(ctx context.Context, id string, input UpdateStockItemInput) (*StockItem, error) {
	item, err := s.StockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, apperr.Validationf("quantity must be non-negative")
		}
		item.Quantity = *input.Quantity
	}
	if input.MinQuantity != nil {
		if *input.MinQuantity < 0 {
			return nil, apperr.Validationf("minQuantity must be non-negative")
		}
		item.MinQuantity = *input.MinQuantity
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.Category != nil {
		item.Category = *input.Category
	}

	// Status always follows the post-merge quantity and threshold
	item.Status = DeriveStatus(item.Quantity, item.MinQuantity)
	item.LastUpdated = time.Now()

	if err := s.StockRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.dispatchUpdated(ctx, item)
	return item, nil
}

func (s *StockServiceImpl) Adjust(ctx context.Context, id string, delta int) (*StockItem, error) {
	item, err := s.StockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Quantity += delta
	if item.Quantity < 0 {
		item.Quantity = 0
	}
	item.Status = DeriveStatus(item.Quantity, item.MinQuantity)
	item.LastUpdated = time.Now()

	if err := s.StockRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.dispatchUpdated(ctx, item)
	return item, nil
}

func (s *StockServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.StockRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.StockRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.Logger.Info("stock item deleted", zap.String("itemId", id))
	return nil
}

func (s *StockServiceImpl) LowItems(ctx context.Context) ([]StockItem, error) {
	return s.StockRepo.ListByStatus(ctx, StatusLow, StatusOutOfStock)
}

func (s *StockServiceImpl) dispatchUpdated(ctx context.Context, item *StockItem) {
	s.Dispatcher.Dispatch(ctx, automation.EventStockUpdated, map[string]interface{}{
		"id":           item.ID.Hex(),
		"name":         item.Name,
		"quantity":     item.Quantity,
		"min_quantity": item.MinQuantity,
		"status":       string(item.Status),
	})
}
