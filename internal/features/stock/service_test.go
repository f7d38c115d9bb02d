package stock

import (
	"context"
	"errors"
	"testing"

	"go-fieldops/internal/common/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeStockRepo struct {
	items map[string]*StockItem
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{items: make(map[string]*StockItem)}
}

func (r *fakeStockRepo) Create(ctx context.Context, item *StockItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	cp := *item
	r.items[item.ID.Hex()] = &cp
	return nil
}

func (r *fakeStockRepo) FindByID(ctx context.Context, id string) (*StockItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, apperr.NotFoundf("stock item %s", id)
	}
	cp := *item
	return &cp, nil
}

func (r *fakeStockRepo) List(ctx context.Context) ([]StockItem, error) {
	var out []StockItem
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *fakeStockRepo) ListByStatus(ctx context.Context, statuses ...StockStatus) ([]StockItem, error) {
	var out []StockItem
	for _, item := range r.items {
		for _, st := range statuses {
			if item.Status == st {
				out = append(out, *item)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeStockRepo) Update(ctx context.Context, item *StockItem) error {
	if _, ok := r.items[item.ID.Hex()]; !ok {
		return apperr.NotFoundf("stock item %s", item.ID.Hex())
	}
	cp := *item
	r.items[item.ID.Hex()] = &cp
	return nil
}

func (r *fakeStockRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return apperr.NotFoundf("stock item %s", id)
	}
	delete(r.items, id)
	return nil
}

type fakeDispatcher struct {
	events   []string
	payloads []map[string]interface{}
}

func (d *fakeDispatcher) Dispatch(ctx context.Context, event string, payload map[string]interface{}) {
	d.events = append(d.events, event)
	d.payloads = append(d.payloads, payload)
}

func newTestStockService() (*StockServiceImpl, *fakeStockRepo, *fakeDispatcher) {
	repo := newFakeStockRepo()
	dispatcher := &fakeDispatcher{}
	svc := &StockServiceImpl{
		StockRepo:  repo,
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	}
	return svc, repo, dispatcher
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name        string
		quantity    int
		minQuantity int
		want        StockStatus
	}{
		{"zero quantity wins over threshold", 0, 0, StatusOutOfStock},
		{"at threshold is low", 5, 5, StatusLow},
		{"below threshold is low", 1, 2, StatusLow},
		{"above threshold is available", 6, 5, StatusAvailable},
		{"zero min with positive qty", 3, 0, StatusAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.quantity, tt.minQuantity); got != tt.want {
				t.Errorf("DeriveStatus(%d, %d) = %s, want %s", tt.quantity, tt.minQuantity, got, tt.want)
			}
		})
	}
}

func TestAddDerivesStatus(t *testing.T) {
	svc, _, _ := newTestStockService()

	item, err := svc.Add(context.Background(), AddStockItemInput{Name: "Helmets", Quantity: 5, MinQuantity: 5, Unit: "pcs"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if item.Status != StatusLow {
		t.Errorf("status = %s, want %s", item.Status, StatusLow)
	}
}

func TestAddRejectsNegativeQuantities(t *testing.T) {
	svc, _, _ := newTestStockService()

	if _, err := svc.Add(context.Background(), AddStockItemInput{Name: "Wire", Quantity: -1}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("negative quantity: got %v, want validation error", err)
	}
	if _, err := svc.Add(context.Background(), AddStockItemInput{Name: "Wire", MinQuantity: -2}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("negative minQuantity: got %v, want validation error", err)
	}
}

func TestUpdateRederivesStatusAndDispatches(t *testing.T) {
	svc, _, dispatcher := newTestStockService()
	ctx := context.Background()

	item, err := svc.Add(ctx, AddStockItemInput{Name: "Cement", Quantity: 50, MinQuantity: 10, Unit: "bags"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if item.Status != StatusAvailable {
		t.Fatalf("status = %s, want %s", item.Status, StatusAvailable)
	}

	zero := 0
	updated, err := svc.Update(ctx, item.ID.Hex(), UpdateStockItemInput{Quantity: &zero})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Status != StatusOutOfStock {
		t.Errorf("status = %s, want %s", updated.Status, StatusOutOfStock)
	}

	found := false
	for _, ev := range dispatcher.events {
		if ev == "stock.updated" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected stock.updated event, got %v", dispatcher.events)
	}
}

func TestAdjustClampsAtZero(t *testing.T) {
	svc, _, _ := newTestStockService()
	ctx := context.Background()

	item, err := svc.Add(ctx, AddStockItemInput{Name: "Screws", Quantity: 3, MinQuantity: 1, Unit: "boxes"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	adjusted, err := svc.Adjust(ctx, item.ID.Hex(), -10)
	if err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
	if adjusted.Quantity != 0 {
		t.Errorf("quantity = %d, want 0", adjusted.Quantity)
	}
	if adjusted.Status != StatusOutOfStock {
		t.Errorf("status = %s, want %s", adjusted.Status, StatusOutOfStock)
	}

	adjusted, err = svc.Adjust(ctx, item.ID.Hex(), 4)
	if err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
	if adjusted.Quantity != 4 {
		t.Errorf("quantity = %d, want 4", adjusted.Quantity)
	}
	if adjusted.Status != StatusAvailable {
		t.Errorf("status = %s, want %s", adjusted.Status, StatusAvailable)
	}
}

func TestLowItems(t *testing.T) {
	svc, _, _ := newTestStockService()
	ctx := context.Background()

	specs := []AddStockItemInput{
		{Name: "A", Quantity: 10, MinQuantity: 2},
		{Name: "B", Quantity: 2, MinQuantity: 2},
		{Name: "C", Quantity: 0, MinQuantity: 1},
	}
	for _, in := range specs {
		if _, err := svc.Add(ctx, in); err != nil {
			t.Fatalf("Add(%s) error = %v", in.Name, err)
		}
	}

	low, err := svc.LowItems(ctx)
	if err != nil {
		t.Fatalf("LowItems() error = %v", err)
	}
	if len(low) != 2 {
		t.Errorf("got %d low items, want 2", len(low))
	}
	for _, item := range low {
		if item.Name == "A" {
			t.Errorf("item A should not be flagged")
		}
	}
}
