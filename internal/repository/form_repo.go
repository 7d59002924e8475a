package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/gradtrack/gradtrack-api/internal/models"
)

// FormFilter narrows progress form queries. SupervisorIDs scopes a listing
// to the supervisors a reviewer oversees; an empty slice matches nothing.
type FormFilter struct {
	StudentID     *uint
	SupervisorID  *uint
	SupervisorIDs []uint
	State         *models.FormState
	Term          *string
}

// FormRepository defines data operations for progress forms.
type FormRepository interface {
	Create(ctx context.Context, form *models.ProgressForm) error
	GetByID(ctx context.Context, id uint) (models.ProgressForm, error)
	List(ctx context.Context, filter FormFilter) ([]models.ProgressForm, error)
	Update(ctx context.Context, form *models.ProgressForm) error
}

type formRepository struct {
	db *gorm.DB
}

// NewFormRepository instantiates the repository.
func NewFormRepository(db *gorm.DB) FormRepository {
	return &formRepository{db: db}
}

func (r *formRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.ProgressForm{}).
		Preload("Student").
		Preload("Student.User").
		Preload("Supervisor").
		Preload("Supervisor.User")
}

func (r *formRepository) Create(ctx context.Context, form *models.ProgressForm) error {
	return r.db.WithContext(ctx).Create(form).Error
}

func (r *formRepository) GetByID(ctx context.Context, id uint) (models.ProgressForm, error) {
	var form models.ProgressForm
	if err := r.baseQuery(ctx).First(&form, id).Error; err != nil {
		return models.ProgressForm{}, err
	}

	return form, nil
}

func (r *formRepository) List(ctx context.Context, filter FormFilter) ([]models.ProgressForm, error) {
	query := r.baseQuery(ctx)

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	if filter.SupervisorID != nil {
		query = query.Where("supervisor_id = ?", *filter.SupervisorID)
	}

	if filter.SupervisorIDs != nil {
		if len(filter.SupervisorIDs) == 0 {
			return []models.ProgressForm{}, nil
		}
		query = query.Where("supervisor_id IN ?", filter.SupervisorIDs)
	}

	if filter.State != nil {
		query = query.Where("state = ?", *filter.State)
	}

	if filter.Term != nil {
		query = query.Where("term = ?", *filter.Term)
	}

	var forms []models.ProgressForm
	if err := query.Order("created_at DESC").Find(&forms).Error; err != nil {
		return nil, err
	}

	return forms, nil
}

func (r *formRepository) Update(ctx context.Context, form *models.ProgressForm) error {
	return r.db.WithContext(ctx).Save(form).Error
}
