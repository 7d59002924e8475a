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

// FormHandler exposes the progress form workflow. Approve and reject are
// single endpoints that dispatch on the caller's resolved role.
type FormHandler struct {
	forms     service.FormService
	roles     service.RoleService
	dashboard service.DashboardService
	logger    zerolog.Logger
}

// NewFormHandler builds a form handler instance.
func NewFormHandler(forms service.FormService, roles service.RoleService, dashboard service.DashboardService, logger zerolog.Logger) *FormHandler {
	return &FormHandler{
		forms:     forms,
		roles:     roles,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "form_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *FormHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Put("/:id/review", h.saveReview)
	router.Post("/:id/approve", h.approve)
	router.Post("/:id/reject", h.reject)
}

func (h *FormHandler) submit(c *fiber.Ctx) error {
	actor, err := h.resolveActor(c)
	if err != nil {
		return h.handleError(c, err)
	}

	var payload dto.FormSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	form, err := h.forms.Submit(c.UserContext(), actor, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	h.dashboard.InvalidateStudentDashboard(c.UserContext(), form.StudentID)

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "progress form submitted", form)
}

func (h *FormHandler) list(c *fiber.Ctx) error {
	actor, err := h.resolveActor(c)
	if err != nil {
		return h.handleError(c, err)
	}

	filter := dto.FormFilter{}
	if state := c.Query("state"); state != "" {
		filter.State = &state
	}
	if term := c.Query("term"); term != "" {
		filter.Term = &term
	}

	forms, err := h.forms.List(c.UserContext(), actor, filter)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "progress forms retrieved", forms)
}

func (h *FormHandler) get(c *fiber.Ctx) error {
	actor, err := h.resolveActor(c)
	if err != nil {
		return h.handleError(c, err)
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	form, err := h.forms.Get(c.UserContext(), actor, id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "progress form retrieved", form)
}

// saveReview stores supervisor annotations without advancing the workflow.
func (h *FormHandler) saveReview(c *fiber.Ctx) error {
	actor, err := h.resolveActor(c)
	if err != nil {
		return h.handleError(c, err)
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.SupervisorReviewRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	form, err := h.forms.SaveSupervisorReview(c.UserContext(), actor, id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "review saved", form)
}

func (h *FormHandler) approve(c *fiber.Ctx) error {
	actor, err := h.resolveActor(c)
	if err != nil {
		return h.handleError(c, err)
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var form dto.FormResponse
	switch actor.Role {
	case models.RoleSupervisor:
		var payload dto.SupervisorReviewRequest
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
		}
		form, err = h.forms.SupervisorApprove(c.UserContext(), actor, id, payload)
	case models.RoleAssistant:
		var payload dto.AssistantReviewRequest
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
		}
		form, err = h.forms.AssistantApprove(c.UserContext(), actor, id, payload)
	case models.RoleDirector:
		var payload dto.DirectorReviewRequest
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
		}
		form, err = h.forms.DirectorApprove(c.UserContext(), actor, id, payload)
	default:
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}
	if err != nil {
		return h.handleError(c, err)
	}

	h.dashboard.InvalidateStudentDashboard(c.UserContext(), form.StudentID)

	return utils.SendSuccess(c, "progress form approved", form)
}

func (h *FormHandler) reject(c *fiber.Ctx) error {
	actor, err := h.resolveActor(c)
	if err != nil {
		return h.handleError(c, err)
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.RejectRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	var form dto.FormResponse
	switch actor.Role {
	case models.RoleSupervisor:
		form, err = h.forms.SupervisorReject(c.UserContext(), actor, id, payload)
	case models.RoleAssistant:
		form, err = h.forms.AssistantReject(c.UserContext(), actor, id, payload)
	case models.RoleDirector:
		form, err = h.forms.DirectorReject(c.UserContext(), actor, id, payload)
	default:
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}
	if err != nil {
		return h.handleError(c, err)
	}

	h.dashboard.InvalidateStudentDashboard(c.UserContext(), form.StudentID)

	return utils.SendSuccess(c, "progress form returned", form)
}

func (h *FormHandler) resolveActor(c *fiber.Ctx) (service.RoleContext, error) {
	identity, ok := identityFromContext(c)
	if !ok {
		return service.RoleContext{}, service.ErrUserNotFound
	}
	return h.roles.Resolve(c.UserContext(), identity)
}

func (h *FormHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrFormNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "progress form not found")
	case errors.Is(err, service.ErrNoSupervisorAssigned):
		return utils.SendError(c, fiber.StatusConflict, "no supervisor assigned")
	case errors.Is(err, service.ErrIncompleteReview):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, "review is incomplete")
	case errors.Is(err, service.ErrInvalidTransition):
		return utils.SendError(c, fiber.StatusConflict, "action not allowed in current state")
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
