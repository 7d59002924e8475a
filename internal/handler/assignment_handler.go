package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gradtrack/gradtrack-api/internal/dto"
	"github.com/gradtrack/gradtrack-api/internal/models"
	"github.com/gradtrack/gradtrack-api/internal/service"
	"github.com/gradtrack/gradtrack-api/internal/utils"
)

// AssignmentHandler exposes the supervision hierarchy registry.
type AssignmentHandler struct {
	assignments service.AssignmentService
	roles       service.RoleService
	logger      zerolog.Logger
}

// NewAssignmentHandler builds an assignment handler instance.
func NewAssignmentHandler(assignments service.AssignmentService, roles service.RoleService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignments: assignments,
		roles:       roles,
		logger:      logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AssignmentHandler) Register(router fiber.Router) {
	router.Get("/candidates", h.candidates)
	router.Get("", h.assigned)
	router.Post("", h.assign)
	router.Delete("/:targetID", h.unassign)
	router.Get("/supervisor", h.supervisor)
}

func (h *AssignmentHandler) candidates(c *fiber.Ctx) error {
	actor, err := h.resolveActor(c)
	if err != nil {
		return h.handleError(c, err)
	}

	candidates, err := h.assignments.ListCandidates(c.UserContext(), actor)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "candidates retrieved", candidates)
}

func (h *AssignmentHandler) assigned(c *fiber.Ctx) error {
	actor, err := h.resolveActor(c)
	if err != nil {
		return h.handleError(c, err)
	}

	assignees, err := h.assignments.ListAssigned(c.UserContext(), actor)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignments retrieved", assignees)
}

func (h *AssignmentHandler) assign(c *fiber.Ctx) error {
	actor, err := h.resolveActor(c)
	if err != nil {
		return h.handleError(c, err)
	}

	var payload dto.AssignRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if payload.TargetID == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "target_id is required")
	}

	if err := h.assignments.Assign(c.UserContext(), actor, payload.TargetID); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment created", nil)
}

func (h *AssignmentHandler) unassign(c *fiber.Ctx) error {
	actor, err := h.resolveActor(c)
	if err != nil {
		return h.handleError(c, err)
	}

	targetID, err := parseUintParam(c, "targetID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.assignments.Unassign(c.UserContext(), actor, targetID); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignment released", nil)
}

// supervisor returns the calling student's active supervisor.
func (h *AssignmentHandler) supervisor(c *fiber.Ctx) error {
	actor, err := h.resolveActor(c)
	if err != nil {
		return h.handleError(c, err)
	}
	if actor.Role != models.RoleStudent {
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}

	supervisor, err := h.assignments.ResolveSupervisorFor(c.UserContext(), actor.ProfileID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "supervisor resolved", supervisor)
}

func (h *AssignmentHandler) resolveActor(c *fiber.Ctx) (service.RoleContext, error) {
	identity, ok := identityFromContext(c)
	if !ok {
		return service.RoleContext{}, service.ErrUserNotFound
	}
	return h.roles.Resolve(c.UserContext(), identity)
}

func (h *AssignmentHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrAlreadyAssigned):
		return utils.SendError(c, fiber.StatusConflict, "target already has an active assignment")
	case errors.Is(err, service.ErrAssignmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
	case errors.Is(err, service.ErrNotAuthorized):
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrProfileNotFound):
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	case errors.Is(err, service.ErrInvalidRole):
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
