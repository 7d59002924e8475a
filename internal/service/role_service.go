package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gradtrack/gradtrack-api/internal/models"
	"github.com/gradtrack/gradtrack-api/internal/repository"
)

// ErrUserNotFound indicates no account exists for the identity; the caller
// must complete the profile-creation flow first.
var ErrUserNotFound = errors.New("user not found")

// ErrProfileNotFound indicates the account exists but its role-specific
// profile row is missing.
var ErrProfileNotFound = errors.New("profile not found")

// ErrNotAuthorized indicates the caller may not act on the addressed resource.
var ErrNotAuthorized = errors.New("not authorized")

// ErrInvalidRole indicates a role value outside the four known roles.
var ErrInvalidRole = errors.New("invalid role")

// Identity is the authenticated caller as established by the JWT middleware.
type Identity struct {
	UserID uint
	Email  string
}

// RoleContext is an identity resolved to its domain role and profile row.
// Every workflow operation receives it explicitly; nothing is held in
// ambient session state.
type RoleContext struct {
	UserID    uint
	Email     string
	Role      models.Role
	ProfileID uint
}

// RoleService maps authenticated identities to domain roles and profiles.
type RoleService interface {
	Resolve(ctx context.Context, identity Identity) (RoleContext, error)
	AuthorizeUser(ctx context.Context, identity Identity, userID uint) (models.User, error)
}

type roleService struct {
	users    repository.UserRepository
	students repository.StudentRepository
	staff    repository.StaffRepository
	logger   zerolog.Logger
}

// NewRoleService constructs the role resolver.
func NewRoleService(users repository.UserRepository, students repository.StudentRepository, staff repository.StaffRepository, logger zerolog.Logger) RoleService {
	return &roleService{
		users:    users,
		students: students,
		staff:    staff,
		logger:   logger.With().Str("component", "role_service").Logger(),
	}
}

// Resolve looks up the caller's account by email and attaches the profile id
// for their role. It is a pure lookup with no side effects.
func (s *roleService) Resolve(ctx context.Context, identity Identity) (RoleContext, error) {
	user, err := s.users.GetByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleContext{}, ErrUserNotFound
		}
		return RoleContext{}, err
	}

	rc := RoleContext{UserID: user.ID, Email: user.Email, Role: user.Role}

	switch user.Role {
	case models.RoleStudent:
		student, err := s.students.GetByUserID(ctx, user.ID)
		if err != nil {
			return RoleContext{}, profileLookupError(err)
		}
		rc.ProfileID = student.ID
	case models.RoleSupervisor:
		supervisor, err := s.staff.GetSupervisorByUserID(ctx, user.ID)
		if err != nil {
			return RoleContext{}, profileLookupError(err)
		}
		rc.ProfileID = supervisor.ID
	case models.RoleAssistant:
		assistant, err := s.staff.GetAssistantByUserID(ctx, user.ID)
		if err != nil {
			return RoleContext{}, profileLookupError(err)
		}
		rc.ProfileID = assistant.ID
	case models.RoleDirector:
		director, err := s.staff.GetDirectorByUserID(ctx, user.ID)
		if err != nil {
			return RoleContext{}, profileLookupError(err)
		}
		rc.ProfileID = director.ID
	default:
		s.logger.Error().Str("role", string(user.Role)).Uint("user_id", user.ID).Msg("account carries unknown role")
		return RoleContext{}, ErrInvalidRole
	}

	return rc, nil
}

// AuthorizeUser fetches the addressed user row and verifies the caller's
// identity owns it. Cross-account access returns ErrNotAuthorized.
func (s *roleService) AuthorizeUser(ctx context.Context, identity Identity, userID uint) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if user.Email != identity.Email {
		return models.User{}, ErrNotAuthorized
	}

	return user, nil
}

func profileLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProfileNotFound
	}
	return err
}
