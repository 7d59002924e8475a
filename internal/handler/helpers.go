package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gradtrack/gradtrack-api/internal/service"
)

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	value := c.Params(key)
	if value == "" {
		return 0, errors.New("missing " + key)
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return uint(parsed), nil
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func userIDFromContext(c *fiber.Ctx) uint {
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func userEmailFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_email"); v != nil {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}

// identityFromContext rebuilds the authenticated identity that the JWT
// middleware bound to the request.
func identityFromContext(c *fiber.Ctx) (service.Identity, bool) {
	identity := service.Identity{
		UserID: userIDFromContext(c),
		Email:  userEmailFromContext(c),
	}
	return identity, identity.UserID != 0 && identity.Email != ""
}
