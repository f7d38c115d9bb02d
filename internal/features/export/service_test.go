package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"go-fieldops/internal/features/stock"
)

type stubStockService struct {
	items []stock.StockItem
}

func (s *stubStockService) Add(ctx context.Context, input stock.AddStockItemInput) (*stock.StockItem, error) {
	return nil, nil
}
func (s *stubStockService) Get(ctx context.Context, id string) (*stock.StockItem, error) {
	return nil, nil
}
func (s *stubStockService) List(ctx context.Context) ([]stock.StockItem, error) {
	return s.items, nil
}
func (s *stubStockService) Update(ctx context.Context, id string, input stock.UpdateStockItemInput) (*stock.StockItem, error) {
	return nil, nil
}
func (s *stubStockService) Adjust(ctx context.Context, id string, delta int) (*stock.StockItem, error) {
	return nil, nil
}
func (s *stubStockService) Delete(ctx context.Context, id string) error { return nil }
func (s *stubStockService) LowItems(ctx context.Context) ([]stock.StockItem, error) {
	return nil, nil
}

func TestStockToCSV(t *testing.T) {
	svc := &ExportServiceImpl{
		StockService: &stubStockService{items: []stock.StockItem{
			{Name: "Helmets", Category: "safety", Quantity: 8, MinQuantity: 10, Unit: "pcs", Status: stock.StatusLow, LastUpdated: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		}},
	}

	data, filename, err := svc.StockToCSV(context.Background())
	if err != nil {
		t.Fatalf("StockToCSV() error = %v", err)
	}
	if !strings.HasPrefix(filename, "inventory_") || !strings.HasSuffix(filename, ".csv") {
		t.Errorf("filename = %q", filename)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d rows, want 2", len(records))
	}
	if records[0][0] != "Name" {
		t.Errorf("header = %v", records[0])
	}
	row := records[1]
	if row[0] != "Helmets" || row[2] != "8" || row[5] != "low" {
		t.Errorf("row = %v", row)
	}
}

func TestStockToExcelProducesWorkbook(t *testing.T) {
	svc := &ExportServiceImpl{
		StockService: &stubStockService{items: []stock.StockItem{
			{Name: "Cement", Quantity: 50, MinQuantity: 10, Unit: "bags", Status: stock.StatusAvailable, LastUpdated: time.Now()},
		}},
	}

	data, filename, err := svc.StockToExcel(context.Background())
	if err != nil {
		t.Fatalf("StockToExcel() error = %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q", filename)
	}
	// xlsx files are zip archives
	if len(data) < 4 || data[0] != 'P' || data[1] != 'K' {
		t.Error("output is not a zip archive")
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Riverside warehouse", "riverside_warehouse"},
		{"  P-001 / North  ", "p_001___north"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := sanitize(tt.in); got != tt.want {
			t.Errorf("sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
