package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-fieldops/internal/features/project"
	"go-fieldops/internal/features/stock"

	"github.com/xuri/excelize/v2"
)

type ExportService interface {
	// StockToExcel renders the whole inventory on one sheet.
	StockToExcel(ctx context.Context) ([]byte, string, error)
	// StockToCSV is the plain-text variant of the same listing.
	StockToCSV(ctx context.Context) ([]byte, string, error)
	// ProjectTasksToExcel renders every task of one project, one row per
	// task, grouped by stage order.
	ProjectTasksToExcel(ctx context.Context, projectID string) ([]byte, string, error)
}

type ExportServiceImpl struct {
	StockService   stock.StockService
	ProjectService project.ProjectService
}

func NewExportService(stockService stock.StockService, projectService project.ProjectService) ExportService {
	return &ExportServiceImpl{
		StockService:   stockService,
		ProjectService: projectService,
	}
}

var stockColumns = []string{"Name", "Category", "Quantity", "Min Quantity", "Unit", "Status", "Last Updated"}

func (s *ExportServiceImpl) StockToExcel(ctx context.Context) ([]byte, string, error) {
	items, err := s.StockService.List(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Inventory"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range stockColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, item := range items {
		row := rowIdx + 2
		setRow(f, sheetName, row,
			item.Name,
			item.Category,
			item.Quantity,
			item.MinQuantity,
			item.Unit,
			string(item.Status),
			item.LastUpdated.Format("2006-01-02 15:04:05"),
		)
	}

	for i := range stockColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("inventory_%s.xlsx", time.Now().Format("20060102_150405"))
	return buffer.Bytes(), filename, nil
}

func (s *ExportServiceImpl) StockToCSV(ctx context.Context) ([]byte, string, error) {
	items, err := s.StockService.List(ctx)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(stockColumns); err != nil {
		return nil, "", err
	}
	for _, item := range items {
		row := []string{
			item.Name,
			item.Category,
			strconv.Itoa(item.Quantity),
			strconv.Itoa(item.MinQuantity),
			item.Unit,
			string(item.Status),
			item.LastUpdated.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			return nil, "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("inventory_%s.csv", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

var taskColumns = []string{"Number", "Stage", "Description", "Status", "Assigned To", "Reports", "Created", "Updated"}

func (s *ExportServiceImpl) ProjectTasksToExcel(ctx context.Context, projectID string) ([]byte, string, error) {
	p, err := s.ProjectService.GetProject(ctx, projectID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Tasks"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range taskColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	row := 2
	for si := range p.Workflow {
		st := &p.Workflow[si]
		for ti := range st.Tasks {
			t := &st.Tasks[ti]
			setRow(f, sheetName, row,
				t.Number,
				st.Name,
				t.Description,
				string(t.Status),
				strings.Join(t.AssignedTo, ", "),
				len(t.Reports),
				t.CreatedAt.Format("2006-01-02 15:04:05"),
				t.UpdatedAt.Format("2006-01-02 15:04:05"),
			)
			row++
		}
	}

	for i := range taskColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s_tasks_%s.xlsx", sanitize(p.Name), time.Now().Format("20060102_150405"))
	return buffer.Bytes(), filename, nil
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

func sanitize(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}
