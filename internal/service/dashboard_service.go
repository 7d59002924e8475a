package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gradtrack/gradtrack-api/internal/dto"
	"github.com/gradtrack/gradtrack-api/internal/models"
	"github.com/gradtrack/gradtrack-api/internal/repository"
)

// DashboardService aggregates the student home view: account, profile,
// current supervisor, and submission history.
type DashboardService interface {
	GetStudentDashboard(ctx context.Context, actor RoleContext) (dto.StudentDashboardResponse, error)
	InvalidateStudentDashboard(ctx context.Context, studentID uint)
}

type dashboardService struct {
	users       repository.UserRepository
	students    repository.StudentRepository
	assignments repository.AssignmentRepository
	forms       repository.FormRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewDashboardService builds the dashboard aggregator. cache may be nil.
func NewDashboardService(users repository.UserRepository, students repository.StudentRepository, assignments repository.AssignmentRepository, forms repository.FormRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		users:       users,
		students:    students,
		assignments: assignments,
		forms:       forms,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) GetStudentDashboard(ctx context.Context, actor RoleContext) (dto.StudentDashboardResponse, error) {
	if actor.Role != models.RoleStudent {
		return dto.StudentDashboardResponse{}, ErrNotAuthorized
	}

	cacheKey := s.cacheKey(actor.ProfileID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.StudentDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", actor.ProfileID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	response, err := s.buildResponse(ctx, actor)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

// InvalidateStudentDashboard drops the cached view after a workflow change.
func (s *dashboardService) InvalidateStudentDashboard(ctx context.Context, studentID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cacheKey(studentID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("failed to invalidate dashboard cache")
	}
}

func (s *dashboardService) buildResponse(ctx context.Context, actor RoleContext) (dto.StudentDashboardResponse, error) {
	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentDashboardResponse{}, ErrUserNotFound
		}
		return dto.StudentDashboardResponse{}, err
	}

	response := dto.StudentDashboardResponse{User: dto.NewUserResponse(user)}

	student, err := s.students.GetByID(ctx, actor.ProfileID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentDashboardResponse{}, err
		}
	} else {
		profile := dto.NewStudentProfileResponse(student)
		response.Profile = &profile
	}

	assignment, err := s.assignments.ActiveSupervisionForStudent(ctx, actor.ProfileID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentDashboardResponse{}, err
		}
	} else {
		response.Supervisor = &dto.SupervisorInfoResponse{
			SupervisorID: assignment.SupervisorID,
			Name:         assignment.Supervisor.User.Name,
			Email:        assignment.Supervisor.User.Email,
			Department:   assignment.Supervisor.Department,
		}
	}

	forms, err := s.forms.List(ctx, repository.FormFilter{StudentID: &actor.ProfileID})
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	summaries := make([]dto.FormSummary, 0, len(forms))
	for _, form := range forms {
		summaries = append(summaries, dto.NewFormSummary(form))
	}
	response.Submissions = summaries

	return response, nil
}

func (s *dashboardService) cacheKey(studentID uint) string {
	return fmt.Sprintf("dashboard:student:%d", studentID)
}
