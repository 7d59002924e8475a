package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gradtrack/gradtrack-api/internal/models"
	"github.com/gradtrack/gradtrack-api/internal/utils"
)

// RequireRole ensures the authenticated user holds one of the allowed roles.
func RequireRole(roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		value, _ := c.Locals("user_role").(string)
		role := models.Role(strings.ToLower(strings.TrimSpace(value)))
		if _, ok := allowed[role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// RequireStaff admits any of the three reviewing roles.
func RequireStaff() fiber.Handler {
	return RequireRole(models.RoleSupervisor, models.RoleAssistant, models.RoleDirector)
}
