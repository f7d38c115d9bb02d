package export

import (
	"go-fieldops/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

type ExportController struct {
	service ExportService
}

func NewExportController(service ExportService) *ExportController {
	return &ExportController{
		service: service,
	}
}

func sendFile(ctx *fiber.Ctx, data []byte, filename, contentType string) error {
	ctx.Set(fiber.HeaderContentType, contentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Send(data)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Stock godoc
// @Summary      Export inventory
// @Description  Download the stock inventory as xlsx or csv
// @Tags         export
// @Produce      application/octet-stream
// @Param        format query string false "xlsx (default) or csv"
// @Success      200 {file} file
// @Router       /api/export/stock [get]
func (c *ExportController) Stock(ctx *fiber.Ctx) error {
	if ctx.Query("format") == "csv" {
		data, filename, err := c.service.StockToCSV(ctx.Context())
		if err != nil {
			return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return sendFile(ctx, data, filename, "text/csv")
	}

	data, filename, err := c.service.StockToExcel(ctx.Context())
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return sendFile(ctx, data, filename, xlsxContentType)
}

// ProjectTasks godoc
// @Summary      Export project tasks
// @Description  Download every task of a project as xlsx
// @Tags         export
// @Produce      application/octet-stream
// @Param        id path string true "Project ID"
// @Success      200 {file} file
// @Router       /api/export/projects/{id}/tasks [get]
func (c *ExportController) ProjectTasks(ctx *fiber.Ctx) error {
	data, filename, err := c.service.ProjectTasksToExcel(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return sendFile(ctx, data, filename, xlsxContentType)
}
