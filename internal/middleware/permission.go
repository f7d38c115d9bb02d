package middleware

import (
	"context"

	"go-fieldops/internal/features/permission"

	"github.com/gofiber/fiber/v2"
)

// PermissionSource resolves the capability set of a user. Implemented by the
// user service; the indirection keeps middleware free of feature imports.
type PermissionSource interface {
	PermissionsFor(ctx context.Context, userID string) (permission.Permissions, error)
}

// RequirePermission is the single authorization gate: every mutating route
// mounts it with the flag that guards the operation. The source app checked
// permissions ad hoc at some call sites and not at others; here enforcement
// is uniform.
func RequirePermission(source PermissionSource, skipAuth bool, flag permission.Flag) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipAuth {
			return c.Next()
		}

		claims, ok := Claims(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		perms, err := source.PermissionsFor(c.Context(), claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			})
		}

		if !perms.Has(flag) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Insufficient permissions",
			})
		}

		return c.Next()
	}
}
