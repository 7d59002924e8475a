package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/gradtrack/gradtrack-api/internal/models"
)

// AssignmentRepository defines data operations for the three oversight
// relationship tables. "Active" lookups only consider rows whose status is
// active; Find* lookups return the row regardless of status so a revoked
// relationship can be reactivated instead of duplicated.
type AssignmentRepository interface {
	ActiveSupervisionForStudent(ctx context.Context, studentID uint) (models.SupervisionAssignment, error)
	ActiveSupervisionsForSupervisor(ctx context.Context, supervisorID uint) ([]models.SupervisionAssignment, error)
	FindSupervision(ctx context.Context, studentID, supervisorID uint) (models.SupervisionAssignment, error)
	SaveSupervision(ctx context.Context, assignment *models.SupervisionAssignment) error
	ListUnassignedStudents(ctx context.Context) ([]models.Student, error)

	ActiveAssistantForSupervisor(ctx context.Context, supervisorID uint) (models.AssistantAssignment, error)
	ActiveAssistantAssignments(ctx context.Context, assistantID uint) ([]models.AssistantAssignment, error)
	FindAssistantAssignment(ctx context.Context, supervisorID, assistantID uint) (models.AssistantAssignment, error)
	SaveAssistantAssignment(ctx context.Context, assignment *models.AssistantAssignment) error
	ListUnassignedSupervisors(ctx context.Context) ([]models.Supervisor, error)

	ActiveDirectorForAssistant(ctx context.Context, assistantID uint) (models.DirectorAssignment, error)
	ActiveDirectorAssignments(ctx context.Context, directorID uint) ([]models.DirectorAssignment, error)
	FindDirectorAssignment(ctx context.Context, assistantID, directorID uint) (models.DirectorAssignment, error)
	SaveDirectorAssignment(ctx context.Context, assignment *models.DirectorAssignment) error
	ListUnassignedAssistants(ctx context.Context) ([]models.ProgramAssistant, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates the repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) ActiveSupervisionForStudent(ctx context.Context, studentID uint) (models.SupervisionAssignment, error) {
	var assignment models.SupervisionAssignment
	err := r.db.WithContext(ctx).
		Preload("Supervisor").Preload("Supervisor.User").
		Where("student_id = ? AND status = ?", studentID, models.AssignmentStatusActive).
		First(&assignment).Error
	if err != nil {
		return models.SupervisionAssignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) ActiveSupervisionsForSupervisor(ctx context.Context, supervisorID uint) ([]models.SupervisionAssignment, error) {
	var assignments []models.SupervisionAssignment
	err := r.db.WithContext(ctx).
		Preload("Student").Preload("Student.User").
		Where("supervisor_id = ? AND status = ?", supervisorID, models.AssignmentStatusActive).
		Order("created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) FindSupervision(ctx context.Context, studentID, supervisorID uint) (models.SupervisionAssignment, error) {
	var assignment models.SupervisionAssignment
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND supervisor_id = ?", studentID, supervisorID).
		First(&assignment).Error
	if err != nil {
		return models.SupervisionAssignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) SaveSupervision(ctx context.Context, assignment *models.SupervisionAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepository) ListUnassignedStudents(ctx context.Context) ([]models.Student, error) {
	assigned := r.db.Model(&models.SupervisionAssignment{}).
		Select("student_id").
		Where("status = ?", models.AssignmentStatusActive)

	var students []models.Student
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id NOT IN (?)", assigned).
		Order("created_at ASC").
		Find(&students).Error
	if err != nil {
		return nil, err
	}

	return students, nil
}

func (r *assignmentRepository) ActiveAssistantForSupervisor(ctx context.Context, supervisorID uint) (models.AssistantAssignment, error) {
	var assignment models.AssistantAssignment
	err := r.db.WithContext(ctx).
		Preload("Assistant").Preload("Assistant.User").
		Where("supervisor_id = ? AND status = ?", supervisorID, models.AssignmentStatusActive).
		First(&assignment).Error
	if err != nil {
		return models.AssistantAssignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) ActiveAssistantAssignments(ctx context.Context, assistantID uint) ([]models.AssistantAssignment, error) {
	var assignments []models.AssistantAssignment
	err := r.db.WithContext(ctx).
		Preload("Supervisor").Preload("Supervisor.User").
		Where("assistant_id = ? AND status = ?", assistantID, models.AssignmentStatusActive).
		Order("created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) FindAssistantAssignment(ctx context.Context, supervisorID, assistantID uint) (models.AssistantAssignment, error) {
	var assignment models.AssistantAssignment
	err := r.db.WithContext(ctx).
		Where("supervisor_id = ? AND assistant_id = ?", supervisorID, assistantID).
		First(&assignment).Error
	if err != nil {
		return models.AssistantAssignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) SaveAssistantAssignment(ctx context.Context, assignment *models.AssistantAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepository) ListUnassignedSupervisors(ctx context.Context) ([]models.Supervisor, error) {
	assigned := r.db.Model(&models.AssistantAssignment{}).
		Select("supervisor_id").
		Where("status = ?", models.AssignmentStatusActive)

	var supervisors []models.Supervisor
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id NOT IN (?)", assigned).
		Order("created_at ASC").
		Find(&supervisors).Error
	if err != nil {
		return nil, err
	}

	return supervisors, nil
}

func (r *assignmentRepository) ActiveDirectorForAssistant(ctx context.Context, assistantID uint) (models.DirectorAssignment, error) {
	var assignment models.DirectorAssignment
	err := r.db.WithContext(ctx).
		Preload("Director").Preload("Director.User").
		Where("assistant_id = ? AND status = ?", assistantID, models.AssignmentStatusActive).
		First(&assignment).Error
	if err != nil {
		return models.DirectorAssignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) ActiveDirectorAssignments(ctx context.Context, directorID uint) ([]models.DirectorAssignment, error) {
	var assignments []models.DirectorAssignment
	err := r.db.WithContext(ctx).
		Preload("Assistant").Preload("Assistant.User").
		Where("director_id = ? AND status = ?", directorID, models.AssignmentStatusActive).
		Order("created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) FindDirectorAssignment(ctx context.Context, assistantID, directorID uint) (models.DirectorAssignment, error) {
	var assignment models.DirectorAssignment
	err := r.db.WithContext(ctx).
		Where("assistant_id = ? AND director_id = ?", assistantID, directorID).
		First(&assignment).Error
	if err != nil {
		return models.DirectorAssignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) SaveDirectorAssignment(ctx context.Context, assignment *models.DirectorAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepository) ListUnassignedAssistants(ctx context.Context) ([]models.ProgramAssistant, error) {
	assigned := r.db.Model(&models.DirectorAssignment{}).
		Select("assistant_id").
		Where("status = ?", models.AssignmentStatusActive)

	var assistants []models.ProgramAssistant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id NOT IN (?)", assigned).
		Order("created_at ASC").
		Find(&assistants).Error
	if err != nil {
		return nil, err
	}

	return assistants, nil
}
