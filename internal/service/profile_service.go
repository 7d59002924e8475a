package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gradtrack/gradtrack-api/internal/dto"
	"github.com/gradtrack/gradtrack-api/internal/models"
	"github.com/gradtrack/gradtrack-api/internal/repository"
)

// ErrProfileExists indicates the account already has its profile row.
var ErrProfileExists = errors.New("profile already exists")

// ErrRoleMismatch indicates the profile being created does not match the
// role the account registered with.
var ErrRoleMismatch = errors.New("profile role does not match account role")

// ProfileService completes accounts with their role-specific profile row.
type ProfileService interface {
	CreateStudentProfile(ctx context.Context, identity Identity, payload dto.StudentProfileCreateRequest) (dto.StudentProfileResponse, error)
	CreateStaffProfile(ctx context.Context, identity Identity, payload dto.StaffProfileCreateRequest) (dto.StaffProfileResponse, error)
	GetStudentProfile(ctx context.Context, userID uint) (dto.StudentProfileResponse, error)
}

type profileService struct {
	users     repository.UserRepository
	students  repository.StudentRepository
	staff     repository.StaffRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

func NewProfileService(users repository.UserRepository, students repository.StudentRepository, staff repository.StaffRepository, validate *validator.Validate, logger zerolog.Logger) ProfileService {
	return &profileService{
		users:     users,
		students:  students,
		staff:     staff,
		validator: validate,
		logger:    logger.With().Str("component", "profile_service").Logger(),
	}
}

func (s *profileService) CreateStudentProfile(ctx context.Context, identity Identity, payload dto.StudentProfileCreateRequest) (dto.StudentProfileResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentProfileResponse{}, err
	}

	user, err := s.lookupUser(ctx, identity.UserID)
	if err != nil {
		return dto.StudentProfileResponse{}, err
	}
	if user.Role != models.RoleStudent {
		return dto.StudentProfileResponse{}, ErrRoleMismatch
	}

	if _, err := s.students.GetByUserID(ctx, user.ID); err == nil {
		return dto.StudentProfileResponse{}, ErrProfileExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.StudentProfileResponse{}, err
	}

	student := models.Student{
		UserID:      user.ID,
		Program:     strings.TrimSpace(payload.Program),
		Degree:      strings.TrimSpace(payload.Degree),
		YearOfStudy: payload.YearOfStudy,
	}
	if err := s.students.Create(ctx, &student); err != nil {
		return dto.StudentProfileResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Uint("student_id", student.ID).Msg("student profile created")

	return dto.NewStudentProfileResponse(student), nil
}

func (s *profileService) CreateStaffProfile(ctx context.Context, identity Identity, payload dto.StaffProfileCreateRequest) (dto.StaffProfileResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StaffProfileResponse{}, err
	}

	role, err := models.RoleFromTitle(payload.Role)
	if err != nil {
		return dto.StaffProfileResponse{}, ErrInvalidRole
	}

	user, err := s.lookupUser(ctx, identity.UserID)
	if err != nil {
		return dto.StaffProfileResponse{}, err
	}
	if user.Role != role {
		return dto.StaffProfileResponse{}, ErrRoleMismatch
	}

	department := strings.TrimSpace(payload.Department)

	switch role {
	case models.RoleSupervisor:
		if _, err := s.staff.GetSupervisorByUserID(ctx, user.ID); err == nil {
			return dto.StaffProfileResponse{}, ErrProfileExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StaffProfileResponse{}, err
		}
		supervisor := models.Supervisor{UserID: user.ID, Department: department}
		if err := s.staff.CreateSupervisor(ctx, &supervisor); err != nil {
			return dto.StaffProfileResponse{}, err
		}
		return s.staffResponse(supervisor.ID, user.ID, department, role)
	case models.RoleAssistant:
		if _, err := s.staff.GetAssistantByUserID(ctx, user.ID); err == nil {
			return dto.StaffProfileResponse{}, ErrProfileExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StaffProfileResponse{}, err
		}
		assistant := models.ProgramAssistant{UserID: user.ID, Department: department}
		if err := s.staff.CreateAssistant(ctx, &assistant); err != nil {
			return dto.StaffProfileResponse{}, err
		}
		return s.staffResponse(assistant.ID, user.ID, department, role)
	case models.RoleDirector:
		if _, err := s.staff.GetDirectorByUserID(ctx, user.ID); err == nil {
			return dto.StaffProfileResponse{}, ErrProfileExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StaffProfileResponse{}, err
		}
		director := models.ProgramDirector{UserID: user.ID, Department: department}
		if err := s.staff.CreateDirector(ctx, &director); err != nil {
			return dto.StaffProfileResponse{}, err
		}
		return s.staffResponse(director.ID, user.ID, department, role)
	default:
		return dto.StaffProfileResponse{}, ErrRoleMismatch
	}
}

func (s *profileService) GetStudentProfile(ctx context.Context, userID uint) (dto.StudentProfileResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return dto.StudentProfileResponse{}, profileLookupError(err)
	}
	return dto.NewStudentProfileResponse(student), nil
}

func (s *profileService) staffResponse(profileID, userID uint, department string, role models.Role) (dto.StaffProfileResponse, error) {
	s.logger.Info().Uint("user_id", userID).Uint("profile_id", profileID).Str("role", string(role)).Msg("staff profile created")

	return dto.StaffProfileResponse{
		ID:         profileID,
		UserID:     userID,
		Department: department,
		Role:       string(role),
	}, nil
}

func (s *profileService) lookupUser(ctx context.Context, userID uint) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
