package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gradtrack/gradtrack-api/internal/service"
	"github.com/gradtrack/gradtrack-api/internal/utils"
)

// DashboardHandler serves the aggregated student home view.
type DashboardHandler struct {
	dashboard service.DashboardService
	roles     service.RoleService
	logger    zerolog.Logger
}

// NewDashboardHandler builds a dashboard handler instance.
func NewDashboardHandler(dashboard service.DashboardService, roles service.RoleService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		roles:     roles,
		logger:    logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/student", h.student)
}

func (h *DashboardHandler) student(c *fiber.Ctx) error {
	identity, ok := identityFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	actor, err := h.roles.Resolve(c.UserContext(), identity)
	if err != nil {
		return h.handleError(c, err)
	}

	dashboard, err := h.dashboard.GetStudentDashboard(c.UserContext(), actor)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}

func (h *DashboardHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrProfileNotFound):
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	case errors.Is(err, service.ErrNotAuthorized), errors.Is(err, service.ErrInvalidRole):
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
