package automation

import (
	"go-fieldops/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

type AutomationController struct {
	service AutomationService
}

func NewAutomationController(service AutomationService) *AutomationController {
	return &AutomationController{
		service: service,
	}
}

// List godoc
// @Summary      List automation rules
// @Tags         automation
// @Produce      json
// @Success      200  {object} map[string]interface{}
// @Router       /api/automation [get]
func (c *AutomationController) List(ctx *fiber.Ctx) error {
	rules, err := c.service.ListRules(ctx.Context())
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": rules})
}

// Get godoc
// @Summary      Get an automation rule
// @Tags         automation
// @Produce      json
// @Param        id path string true "Rule ID"
// @Success      200  {object} Rule
// @Failure      404  {string} string "Not found"
// @Router       /api/automation/{id} [get]
func (c *AutomationController) Get(ctx *fiber.Ctx) error {
	rule, err := c.service.GetRule(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(rule)
}

// Create godoc
// @Summary      Create an automation rule
// @Description  The script is compiled before the rule is accepted
// @Tags         automation
// @Accept       json
// @Produce      json
// @Param        input body RuleInput true "Rule Input"
// @Success      201  {object} Rule
// @Failure      400  {string} string "Invalid rule"
// @Router       /api/automation [post]
func (c *AutomationController) Create(ctx *fiber.Ctx) error {
	var input RuleInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	rule, err := c.service.CreateRule(ctx.Context(), input)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(rule)
}

// Update godoc
// @Summary      Update an automation rule
// @Tags         automation
// @Accept       json
// @Produce      json
// @Param        id path string true "Rule ID"
// @Param        input body RuleInput true "Rule Input"
// @Success      200  {object} Rule
// @Failure      400  {string} string "Invalid rule"
// @Failure      404  {string} string "Not found"
// @Router       /api/automation/{id} [put]
func (c *AutomationController) Update(ctx *fiber.Ctx) error {
	var input RuleInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	rule, err := c.service.UpdateRule(ctx.Context(), ctx.Params("id"), input)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(rule)
}

// Delete godoc
// @Summary      Delete an automation rule
// @Tags         automation
// @Produce      json
// @Param        id path string true "Rule ID"
// @Success      200  {object} map[string]string
// @Failure      404  {string} string "Not found"
// @Router       /api/automation/{id} [delete]
func (c *AutomationController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.DeleteRule(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}
