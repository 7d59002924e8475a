package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gradtrack/gradtrack-api/internal/dto"
	"github.com/gradtrack/gradtrack-api/internal/models"
)

type memoryStudentRepo struct {
	students map[uint]models.Student
	nextID   uint
}

func newMemoryStudentRepo() *memoryStudentRepo {
	return &memoryStudentRepo{students: make(map[uint]models.Student), nextID: 1}
}

func (m *memoryStudentRepo) Create(_ context.Context, student *models.Student) error {
	student.ID = m.nextID
	m.students[student.ID] = *student
	m.nextID++
	return nil
}

func (m *memoryStudentRepo) GetByID(_ context.Context, id uint) (models.Student, error) {
	student, ok := m.students[id]
	if !ok {
		return models.Student{}, gorm.ErrRecordNotFound
	}
	return student, nil
}

func (m *memoryStudentRepo) GetByUserID(_ context.Context, userID uint) (models.Student, error) {
	for _, student := range m.students {
		if student.UserID == userID {
			return student, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

type memoryStaffRepo struct {
	supervisors map[uint]models.Supervisor
	assistants  map[uint]models.ProgramAssistant
	directors   map[uint]models.ProgramDirector
	nextID      uint
}

func newMemoryStaffRepo() *memoryStaffRepo {
	return &memoryStaffRepo{
		supervisors: make(map[uint]models.Supervisor),
		assistants:  make(map[uint]models.ProgramAssistant),
		directors:   make(map[uint]models.ProgramDirector),
		nextID:      1,
	}
}

func (m *memoryStaffRepo) CreateSupervisor(_ context.Context, supervisor *models.Supervisor) error {
	supervisor.ID = m.nextID
	m.supervisors[supervisor.ID] = *supervisor
	m.nextID++
	return nil
}

func (m *memoryStaffRepo) CreateAssistant(_ context.Context, assistant *models.ProgramAssistant) error {
	assistant.ID = m.nextID
	m.assistants[assistant.ID] = *assistant
	m.nextID++
	return nil
}

func (m *memoryStaffRepo) CreateDirector(_ context.Context, director *models.ProgramDirector) error {
	director.ID = m.nextID
	m.directors[director.ID] = *director
	m.nextID++
	return nil
}

func (m *memoryStaffRepo) GetSupervisorByID(_ context.Context, id uint) (models.Supervisor, error) {
	supervisor, ok := m.supervisors[id]
	if !ok {
		return models.Supervisor{}, gorm.ErrRecordNotFound
	}
	return supervisor, nil
}

func (m *memoryStaffRepo) GetAssistantByID(_ context.Context, id uint) (models.ProgramAssistant, error) {
	assistant, ok := m.assistants[id]
	if !ok {
		return models.ProgramAssistant{}, gorm.ErrRecordNotFound
	}
	return assistant, nil
}

func (m *memoryStaffRepo) GetDirectorByID(_ context.Context, id uint) (models.ProgramDirector, error) {
	director, ok := m.directors[id]
	if !ok {
		return models.ProgramDirector{}, gorm.ErrRecordNotFound
	}
	return director, nil
}

func (m *memoryStaffRepo) GetSupervisorByUserID(_ context.Context, userID uint) (models.Supervisor, error) {
	for _, supervisor := range m.supervisors {
		if supervisor.UserID == userID {
			return supervisor, nil
		}
	}
	return models.Supervisor{}, gorm.ErrRecordNotFound
}

func (m *memoryStaffRepo) GetAssistantByUserID(_ context.Context, userID uint) (models.ProgramAssistant, error) {
	for _, assistant := range m.assistants {
		if assistant.UserID == userID {
			return assistant, nil
		}
	}
	return models.ProgramAssistant{}, gorm.ErrRecordNotFound
}

func (m *memoryStaffRepo) GetDirectorByUserID(_ context.Context, userID uint) (models.ProgramDirector, error) {
	for _, director := range m.directors {
		if director.UserID == userID {
			return director, nil
		}
	}
	return models.ProgramDirector{}, gorm.ErrRecordNotFound
}

func TestResolveAttachesProfile(t *testing.T) {
	users := newMemoryUserRepo()
	students := newMemoryStudentRepo()
	staff := newMemoryStaffRepo()
	svc := NewRoleService(users, students, staff, zerolog.Nop())
	ctx := context.Background()

	studentUser := models.User{Name: "Ada", Email: "ada@example.edu", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, users.Create(ctx, &studentUser))
	student := models.Student{UserID: studentUser.ID, Program: "CS", Degree: "PhD", YearOfStudy: 2}
	require.NoError(t, students.Create(ctx, &student))

	assistantUser := models.User{Name: "Alex", Email: "alex@example.edu", PasswordHash: "x", Role: models.RoleAssistant}
	require.NoError(t, users.Create(ctx, &assistantUser))
	assistant := models.ProgramAssistant{UserID: assistantUser.ID, Department: "Computing"}
	require.NoError(t, staff.CreateAssistant(ctx, &assistant))

	rc, err := svc.Resolve(ctx, Identity{UserID: studentUser.ID, Email: "ada@example.edu"})
	require.NoError(t, err)
	require.Equal(t, models.RoleStudent, rc.Role)
	require.Equal(t, student.ID, rc.ProfileID)

	rc, err = svc.Resolve(ctx, Identity{UserID: assistantUser.ID, Email: "alex@example.edu"})
	require.NoError(t, err)
	require.Equal(t, models.RoleAssistant, rc.Role)
	require.Equal(t, assistant.ID, rc.ProfileID)
}

func TestResolveMissingAccountOrProfile(t *testing.T) {
	users := newMemoryUserRepo()
	svc := NewRoleService(users, newMemoryStudentRepo(), newMemoryStaffRepo(), zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Resolve(ctx, Identity{UserID: 1, Email: "ghost@example.edu"})
	require.ErrorIs(t, err, ErrUserNotFound)

	user := models.User{Name: "Sam", Email: "sam@example.edu", PasswordHash: "x", Role: models.RoleSupervisor}
	require.NoError(t, users.Create(ctx, &user))

	_, err = svc.Resolve(ctx, Identity{UserID: user.ID, Email: "sam@example.edu"})
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestAuthorizeUserRejectsCrossAccountAccess(t *testing.T) {
	users := newMemoryUserRepo()
	svc := NewRoleService(users, newMemoryStudentRepo(), newMemoryStaffRepo(), zerolog.Nop())
	ctx := context.Background()

	owner := models.User{Name: "Ada", Email: "ada@example.edu", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, users.Create(ctx, &owner))

	got, err := svc.AuthorizeUser(ctx, Identity{UserID: owner.ID, Email: "ada@example.edu"}, owner.ID)
	require.NoError(t, err)
	require.Equal(t, owner.ID, got.ID)

	_, err = svc.AuthorizeUser(ctx, Identity{UserID: 99, Email: "mallory@example.edu"}, owner.ID)
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestProfileCreationMatchesAccountRole(t *testing.T) {
	users := newMemoryUserRepo()
	students := newMemoryStudentRepo()
	staff := newMemoryStaffRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewProfileService(users, students, staff, validate, zerolog.Nop())
	ctx := context.Background()

	studentUser := models.User{Name: "Ada", Email: "ada@example.edu", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, users.Create(ctx, &studentUser))

	profile, err := svc.CreateStudentProfile(ctx, Identity{UserID: studentUser.ID, Email: studentUser.Email}, dto.StudentProfileCreateRequest{
		Program: "CS", Degree: "PhD", YearOfStudy: 2,
	})
	require.NoError(t, err)
	require.Equal(t, studentUser.ID, profile.UserID)

	_, err = svc.CreateStudentProfile(ctx, Identity{UserID: studentUser.ID, Email: studentUser.Email}, dto.StudentProfileCreateRequest{
		Program: "CS", Degree: "PhD", YearOfStudy: 2,
	})
	require.ErrorIs(t, err, ErrProfileExists)

	// A student account cannot receive a staff profile.
	_, err = svc.CreateStaffProfile(ctx, Identity{UserID: studentUser.ID, Email: studentUser.Email}, dto.StaffProfileCreateRequest{
		Department: "Computing", Role: "Supervisor",
	})
	require.ErrorIs(t, err, ErrRoleMismatch)

	directorUser := models.User{Name: "Dana", Email: "dana@example.edu", PasswordHash: "x", Role: models.RoleDirector}
	require.NoError(t, users.Create(ctx, &directorUser))

	staffProfile, err := svc.CreateStaffProfile(ctx, Identity{UserID: directorUser.ID, Email: directorUser.Email}, dto.StaffProfileCreateRequest{
		Department: "Computing", Role: "Graduate Program Director",
	})
	require.NoError(t, err)
	require.Equal(t, string(models.RoleDirector), staffProfile.Role)
}
