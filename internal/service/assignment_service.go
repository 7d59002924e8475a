package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gradtrack/gradtrack-api/internal/dto"
	"github.com/gradtrack/gradtrack-api/internal/models"
	"github.com/gradtrack/gradtrack-api/internal/repository"
)

// ErrAlreadyAssigned indicates the target already has an active superior at
// this level; the existing assignment must be released first.
var ErrAlreadyAssigned = errors.New("target already has an active assignment")

// ErrAssignmentNotFound indicates no active assignment links the two parties.
var ErrAssignmentNotFound = errors.New("assignment not found")

// Candidate is a bare directory entry for someone who can still be claimed
// at the caller's level.
type Candidate struct {
	ProfileID uint   `json:"profile_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// Assignee is an active subordinate of the caller.
type Assignee struct {
	ProfileID uint   `json:"profile_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Since     string `json:"since"`
}

// AssignmentService maintains the supervision hierarchy. Each staff level
// claims subordinates one level down: supervisors claim students, assistants
// claim supervisors, directors claim assistants. A party holds at most one
// active superior per level.
type AssignmentService interface {
	ListCandidates(ctx context.Context, actor RoleContext) ([]Candidate, error)
	ListAssigned(ctx context.Context, actor RoleContext) ([]Assignee, error)
	Assign(ctx context.Context, actor RoleContext, targetID uint) error
	Unassign(ctx context.Context, actor RoleContext, targetID uint) error
	ResolveSupervisorFor(ctx context.Context, studentID uint) (dto.SupervisorInfoResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	logger      zerolog.Logger
	now         func() time.Time
}

func NewAssignmentService(assignments repository.AssignmentRepository, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assignmentService) ListCandidates(ctx context.Context, actor RoleContext) ([]Candidate, error) {
	switch actor.Role {
	case models.RoleSupervisor:
		students, err := s.assignments.ListUnassignedStudents(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Candidate, 0, len(students))
		for _, st := range students {
			out = append(out, Candidate{ProfileID: st.ID, Name: st.User.Name, Email: st.User.Email})
		}
		return out, nil
	case models.RoleAssistant:
		supervisors, err := s.assignments.ListUnassignedSupervisors(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Candidate, 0, len(supervisors))
		for _, sup := range supervisors {
			out = append(out, Candidate{ProfileID: sup.ID, Name: sup.User.Name, Email: sup.User.Email})
		}
		return out, nil
	case models.RoleDirector:
		assistants, err := s.assignments.ListUnassignedAssistants(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Candidate, 0, len(assistants))
		for _, as := range assistants {
			out = append(out, Candidate{ProfileID: as.ID, Name: as.User.Name, Email: as.User.Email})
		}
		return out, nil
	case models.RoleStudent:
		return nil, ErrNotAuthorized
	default:
		return nil, ErrInvalidRole
	}
}

func (s *assignmentService) ListAssigned(ctx context.Context, actor RoleContext) ([]Assignee, error) {
	switch actor.Role {
	case models.RoleSupervisor:
		assignments, err := s.assignments.ActiveSupervisionsForSupervisor(ctx, actor.ProfileID)
		if err != nil {
			return nil, err
		}
		out := make([]Assignee, 0, len(assignments))
		for _, a := range assignments {
			out = append(out, Assignee{
				ProfileID: a.StudentID,
				Name:      a.Student.User.Name,
				Email:     a.Student.User.Email,
				Since:     a.CreatedAt.Format(time.RFC3339),
			})
		}
		return out, nil
	case models.RoleAssistant:
		assignments, err := s.assignments.ActiveAssistantAssignments(ctx, actor.ProfileID)
		if err != nil {
			return nil, err
		}
		out := make([]Assignee, 0, len(assignments))
		for _, a := range assignments {
			out = append(out, Assignee{
				ProfileID: a.SupervisorID,
				Name:      a.Supervisor.User.Name,
				Email:     a.Supervisor.User.Email,
				Since:     a.CreatedAt.Format(time.RFC3339),
			})
		}
		return out, nil
	case models.RoleDirector:
		assignments, err := s.assignments.ActiveDirectorAssignments(ctx, actor.ProfileID)
		if err != nil {
			return nil, err
		}
		out := make([]Assignee, 0, len(assignments))
		for _, a := range assignments {
			out = append(out, Assignee{
				ProfileID: a.AssistantID,
				Name:      a.Assistant.User.Name,
				Email:     a.Assistant.User.Email,
				Since:     a.CreatedAt.Format(time.RFC3339),
			})
		}
		return out, nil
	case models.RoleStudent:
		return nil, ErrNotAuthorized
	default:
		return nil, ErrInvalidRole
	}
}

func (s *assignmentService) Assign(ctx context.Context, actor RoleContext, targetID uint) error {
	switch actor.Role {
	case models.RoleSupervisor:
		return s.assignStudent(ctx, actor.ProfileID, targetID)
	case models.RoleAssistant:
		return s.assignSupervisor(ctx, actor.ProfileID, targetID)
	case models.RoleDirector:
		return s.assignAssistant(ctx, actor.ProfileID, targetID)
	case models.RoleStudent:
		return ErrNotAuthorized
	default:
		return ErrInvalidRole
	}
}

func (s *assignmentService) Unassign(ctx context.Context, actor RoleContext, targetID uint) error {
	switch actor.Role {
	case models.RoleSupervisor:
		assignment, err := s.assignments.FindSupervision(ctx, targetID, actor.ProfileID)
		if err != nil {
			return s.notFound(err)
		}
		if !assignment.Active() {
			return ErrAssignmentNotFound
		}
		assignment.Status = models.AssignmentStatusInactive
		return s.assignments.SaveSupervision(ctx, &assignment)
	case models.RoleAssistant:
		assignment, err := s.assignments.FindAssistantAssignment(ctx, targetID, actor.ProfileID)
		if err != nil {
			return s.notFound(err)
		}
		if !assignment.Active() {
			return ErrAssignmentNotFound
		}
		assignment.Status = models.AssignmentStatusInactive
		return s.assignments.SaveAssistantAssignment(ctx, &assignment)
	case models.RoleDirector:
		assignment, err := s.assignments.FindDirectorAssignment(ctx, targetID, actor.ProfileID)
		if err != nil {
			return s.notFound(err)
		}
		if !assignment.Active() {
			return ErrAssignmentNotFound
		}
		assignment.Status = models.AssignmentStatusInactive
		return s.assignments.SaveDirectorAssignment(ctx, &assignment)
	case models.RoleStudent:
		return ErrNotAuthorized
	default:
		return ErrInvalidRole
	}
}

func (s *assignmentService) ResolveSupervisorFor(ctx context.Context, studentID uint) (dto.SupervisorInfoResponse, error) {
	assignment, err := s.assignments.ActiveSupervisionForStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SupervisorInfoResponse{}, ErrAssignmentNotFound
		}
		return dto.SupervisorInfoResponse{}, err
	}

	return dto.SupervisorInfoResponse{
		SupervisorID: assignment.SupervisorID,
		Name:         assignment.Supervisor.User.Name,
		Email:        assignment.Supervisor.User.Email,
		Department:   assignment.Supervisor.Department,
	}, nil
}

// assignStudent claims a student, reviving a prior inactive link when one
// exists so history stays on a single row.
func (s *assignmentService) assignStudent(ctx context.Context, supervisorID, studentID uint) error {
	if _, err := s.assignments.ActiveSupervisionForStudent(ctx, studentID); err == nil {
		return ErrAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	existing, err := s.assignments.FindSupervision(ctx, studentID, supervisorID)
	if err == nil {
		existing.Status = models.AssignmentStatusActive
		return s.saveSupervision(ctx, &existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	assignment := models.SupervisionAssignment{
		StudentID:    studentID,
		SupervisorID: supervisorID,
		Status:       models.AssignmentStatusActive,
	}
	return s.saveSupervision(ctx, &assignment)
}

func (s *assignmentService) assignSupervisor(ctx context.Context, assistantID, supervisorID uint) error {
	if _, err := s.assignments.ActiveAssistantForSupervisor(ctx, supervisorID); err == nil {
		return ErrAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	existing, err := s.assignments.FindAssistantAssignment(ctx, supervisorID, assistantID)
	if err == nil {
		existing.Status = models.AssignmentStatusActive
		return s.assignments.SaveAssistantAssignment(ctx, &existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	assignment := models.AssistantAssignment{
		SupervisorID: supervisorID,
		AssistantID:  assistantID,
		Status:       models.AssignmentStatusActive,
	}
	return s.assignments.SaveAssistantAssignment(ctx, &assignment)
}

func (s *assignmentService) assignAssistant(ctx context.Context, directorID, assistantID uint) error {
	if _, err := s.assignments.ActiveDirectorForAssistant(ctx, assistantID); err == nil {
		return ErrAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	existing, err := s.assignments.FindDirectorAssignment(ctx, assistantID, directorID)
	if err == nil {
		existing.Status = models.AssignmentStatusActive
		return s.assignments.SaveDirectorAssignment(ctx, &existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	assignment := models.DirectorAssignment{
		AssistantID: assistantID,
		DirectorID:  directorID,
		Status:      models.AssignmentStatusActive,
	}
	return s.assignments.SaveDirectorAssignment(ctx, &assignment)
}

func (s *assignmentService) saveSupervision(ctx context.Context, assignment *models.SupervisionAssignment) error {
	if err := s.assignments.SaveSupervision(ctx, assignment); err != nil {
		return err
	}
	s.logger.Info().Uint("student_id", assignment.StudentID).Uint("supervisor_id", assignment.SupervisorID).Msg("supervision assignment activated")
	return nil
}

func (s *assignmentService) notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAssignmentNotFound
	}
	return err
}
