package stock

import (
	"go-fieldops/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

type StockController struct {
	service StockService
}

func NewStockController(service StockService) *StockController {
	return &StockController{
		service: service,
	}
}

// List godoc
// @Summary      List stock items
// @Tags         stock
// @Produce      json
// @Success      200  {object} map[string]interface{}
// @Router       /api/stock [get]
func (c *StockController) List(ctx *fiber.Ctx) error {
	items, err := c.service.List(ctx.Context())
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": items})
}

// Low godoc
// @Summary      List low and out-of-stock items
// @Tags         stock
// @Produce      json
// @Success      200  {object} map[string]interface{}
// @Router       /api/stock/low [get]
func (c *StockController) Low(ctx *fiber.Ctx) error {
	items, err := c.service.LowItems(ctx.Context())
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": items})
}

// Get godoc
// @Summary      Get a stock item
// @Tags         stock
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200  {object} StockItem
// @Failure      404  {string} string "Not found"
// @Router       /api/stock/{id} [get]
func (c *StockController) Get(ctx *fiber.Ctx) error {
	item, err := c.service.Get(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(item)
}

// Add godoc
// @Summary      Add a stock item
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        input body AddStockItemInput true "Item Input"
// @Success      201  {object} StockItem
// @Failure      400  {string} string "Invalid request body"
// @Router       /api/stock [post]
func (c *StockController) Add(ctx *fiber.Ctx) error {
	var input AddStockItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	item, err := c.service.Add(ctx.Context(), input)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(item)
}

// Update godoc
// @Summary      Update a stock item
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID"
// @Param        input body UpdateStockItemInput true "Item Input"
// @Success      200  {object} StockItem
// @Failure      404  {string} string "Not found"
// @Router       /api/stock/{id} [put]
func (c *StockController) Update(ctx *fiber.Ctx) error {
	var input UpdateStockItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	item, err := c.service.Update(ctx.Context(), ctx.Params("id"), input)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(item)
}

// Adjust godoc
// @Summary      Adjust a stock item's quantity by a delta
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID"
// @Param        input body AdjustStockInput true "Quantity delta"
// @Success      200  {object} StockItem
// @Failure      404  {string} string "Not found"
// @Router       /api/stock/{id}/adjust [post]
func (c *StockController) Adjust(ctx *fiber.Ctx) error {
	var input AdjustStockInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	item, err := c.service.Adjust(ctx.Context(), ctx.Params("id"), input.Delta)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(item)
}

// Delete godoc
// @Summary      Delete a stock item
// @Tags         stock
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200  {object} map[string]string
// @Failure      404  {string} string "Not found"
// @Router       /api/stock/{id} [delete]
func (c *StockController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}
