package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gradtrack/gradtrack-api/internal/dto"
	"github.com/gradtrack/gradtrack-api/internal/service"
	"github.com/gradtrack/gradtrack-api/internal/utils"
)

// ProfileHandler manages role-profile completion and the current-user view.
type ProfileHandler struct {
	profiles service.ProfileService
	roles    service.RoleService
	logger   zerolog.Logger
}

// NewProfileHandler builds a profile handler instance.
func NewProfileHandler(profiles service.ProfileService, roles service.RoleService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		roles:    roles,
		logger:   logger.With().Str("component", "profile_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ProfileHandler) Register(router fiber.Router) {
	router.Post("/student", h.createStudent)
	router.Post("/staff", h.createStaff)
	router.Get("/me", h.me)
}

func (h *ProfileHandler) createStudent(c *fiber.Ctx) error {
	identity, ok := identityFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.StudentProfileCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	profile, err := h.profiles.CreateStudentProfile(c.UserContext(), identity, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student profile created", profile)
}

func (h *ProfileHandler) createStaff(c *fiber.Ctx) error {
	identity, ok := identityFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.StaffProfileCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	profile, err := h.profiles.CreateStaffProfile(c.UserContext(), identity, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "staff profile created", profile)
}

// RegisterUsers attaches the ownership-checked user lookup route.
func (h *ProfileHandler) RegisterUsers(router fiber.Router) {
	router.Get("/:id", h.user)
}

func (h *ProfileHandler) user(c *fiber.Ctx) error {
	identity, ok := identityFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.roles.AuthorizeUser(c.UserContext(), identity, id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "user retrieved", dto.NewUserResponse(user))
}

// me resolves the caller's account and role profile in one round trip.
func (h *ProfileHandler) me(c *fiber.Ctx) error {
	identity, ok := identityFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	actor, err := h.roles.Resolve(c.UserContext(), identity)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "profile resolved", fiber.Map{
		"user_id":    actor.UserID,
		"email":      actor.Email,
		"role":       string(actor.Role),
		"profile_id": actor.ProfileID,
	})
}

func (h *ProfileHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrProfileNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "profile not found")
	case errors.Is(err, service.ErrProfileExists):
		return utils.SendError(c, fiber.StatusConflict, "profile already exists")
	case errors.Is(err, service.ErrNotAuthorized):
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	case errors.Is(err, service.ErrRoleMismatch):
		return utils.SendError(c, fiber.StatusConflict, "profile role does not match account role")
	case errors.Is(err, service.ErrInvalidRole):
		return utils.SendError(c, fiber.StatusBadRequest, "unknown role")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
