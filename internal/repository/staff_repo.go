package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/gradtrack/gradtrack-api/internal/models"
)

// StaffRepository defines data operations for the three staff profile tables.
type StaffRepository interface {
	CreateSupervisor(ctx context.Context, supervisor *models.Supervisor) error
	CreateAssistant(ctx context.Context, assistant *models.ProgramAssistant) error
	CreateDirector(ctx context.Context, director *models.ProgramDirector) error

	GetSupervisorByID(ctx context.Context, id uint) (models.Supervisor, error)
	GetAssistantByID(ctx context.Context, id uint) (models.ProgramAssistant, error)
	GetDirectorByID(ctx context.Context, id uint) (models.ProgramDirector, error)

	GetSupervisorByUserID(ctx context.Context, userID uint) (models.Supervisor, error)
	GetAssistantByUserID(ctx context.Context, userID uint) (models.ProgramAssistant, error)
	GetDirectorByUserID(ctx context.Context, userID uint) (models.ProgramDirector, error)
}

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) CreateSupervisor(ctx context.Context, supervisor *models.Supervisor) error {
	return r.db.WithContext(ctx).Create(supervisor).Error
}

func (r *staffRepository) CreateAssistant(ctx context.Context, assistant *models.ProgramAssistant) error {
	return r.db.WithContext(ctx).Create(assistant).Error
}

func (r *staffRepository) CreateDirector(ctx context.Context, director *models.ProgramDirector) error {
	return r.db.WithContext(ctx).Create(director).Error
}

func (r *staffRepository) GetSupervisorByID(ctx context.Context, id uint) (models.Supervisor, error) {
	var supervisor models.Supervisor
	if err := r.db.WithContext(ctx).Preload("User").First(&supervisor, id).Error; err != nil {
		return models.Supervisor{}, err
	}

	return supervisor, nil
}

func (r *staffRepository) GetAssistantByID(ctx context.Context, id uint) (models.ProgramAssistant, error) {
	var assistant models.ProgramAssistant
	if err := r.db.WithContext(ctx).Preload("User").First(&assistant, id).Error; err != nil {
		return models.ProgramAssistant{}, err
	}

	return assistant, nil
}

func (r *staffRepository) GetDirectorByID(ctx context.Context, id uint) (models.ProgramDirector, error) {
	var director models.ProgramDirector
	if err := r.db.WithContext(ctx).Preload("User").First(&director, id).Error; err != nil {
		return models.ProgramDirector{}, err
	}

	return director, nil
}

func (r *staffRepository) GetSupervisorByUserID(ctx context.Context, userID uint) (models.Supervisor, error) {
	var supervisor models.Supervisor
	if err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&supervisor).Error; err != nil {
		return models.Supervisor{}, err
	}

	return supervisor, nil
}

func (r *staffRepository) GetAssistantByUserID(ctx context.Context, userID uint) (models.ProgramAssistant, error) {
	var assistant models.ProgramAssistant
	if err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&assistant).Error; err != nil {
		return models.ProgramAssistant{}, err
	}

	return assistant, nil
}

func (r *staffRepository) GetDirectorByUserID(ctx context.Context, userID uint) (models.ProgramDirector, error) {
	var director models.ProgramDirector
	if err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&director).Error; err != nil {
		return models.ProgramDirector{}, err
	}

	return director, nil
}
