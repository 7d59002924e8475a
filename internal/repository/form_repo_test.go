package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gradtrack/gradtrack-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Supervisor{},
		&models.ProgramAssistant{},
		&models.ProgramDirector{},
		&models.SupervisionAssignment{},
		&models.AssistantAssignment{},
		&models.DirectorAssignment{},
		&models.ProgressForm{},
		&models.Notification{},
	))
	return db
}

func seedParty(t *testing.T, db *gorm.DB, name, email string, role models.Role) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedStudent(t *testing.T, db *gorm.DB, name, email string) models.Student {
	t.Helper()
	user := seedParty(t, db, name, email, models.RoleStudent)
	student := models.Student{UserID: user.ID, Program: "CS", Degree: "PhD", YearOfStudy: 2}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func seedSupervisor(t *testing.T, db *gorm.DB, name, email string) models.Supervisor {
	t.Helper()
	user := seedParty(t, db, name, email, models.RoleSupervisor)
	supervisor := models.Supervisor{UserID: user.ID, Department: "Computing"}
	require.NoError(t, db.Create(&supervisor).Error)
	return supervisor
}

func TestFormListScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFormRepository(db)
	ctx := context.Background()

	student := seedStudent(t, db, "Ada", "ada@example.edu")
	supA := seedSupervisor(t, db, "Sam", "sam@example.edu")
	supB := seedSupervisor(t, db, "Sue", "sue@example.edu")

	formA := models.ProgressForm{StudentID: student.ID, SupervisorID: supA.ID, Term: "Fall 2026", State: models.FormStatePending}
	formB := models.ProgressForm{StudentID: student.ID, SupervisorID: supB.ID, Term: "Winter 2027", State: models.FormStateSubmittedBySupervisor}
	require.NoError(t, repo.Create(ctx, &formA))
	require.NoError(t, repo.Create(ctx, &formB))

	forms, err := repo.List(ctx, FormFilter{SupervisorID: &supA.ID})
	require.NoError(t, err)
	require.Len(t, forms, 1)
	require.Equal(t, "Fall 2026", forms[0].Term)

	// nil slice means unscoped, empty slice means no visible supervisors.
	forms, err = repo.List(ctx, FormFilter{SupervisorIDs: []uint{supA.ID, supB.ID}})
	require.NoError(t, err)
	require.Len(t, forms, 2)

	forms, err = repo.List(ctx, FormFilter{SupervisorIDs: []uint{}})
	require.NoError(t, err)
	require.Empty(t, forms)

	state := models.FormStateSubmittedBySupervisor
	forms, err = repo.List(ctx, FormFilter{State: &state})
	require.NoError(t, err)
	require.Len(t, forms, 1)
	require.Equal(t, supB.ID, forms[0].SupervisorID)

	term := "Fall 2026"
	forms, err = repo.List(ctx, FormFilter{Term: &term})
	require.NoError(t, err)
	require.Len(t, forms, 1)
}

func TestFormGetPreloadsParties(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFormRepository(db)
	ctx := context.Background()

	student := seedStudent(t, db, "Ada", "ada@example.edu")
	supervisor := seedSupervisor(t, db, "Sam", "sam@example.edu")

	form := models.ProgressForm{StudentID: student.ID, SupervisorID: supervisor.ID, Term: "Fall 2026", State: models.FormStatePending}
	require.NoError(t, repo.Create(ctx, &form))

	loaded, err := repo.GetByID(ctx, form.ID)
	require.NoError(t, err)
	require.Equal(t, "ada@example.edu", loaded.Student.User.Email)
	require.Equal(t, "sam@example.edu", loaded.Supervisor.User.Email)
}

func TestFormUpdateRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFormRepository(db)
	ctx := context.Background()

	student := seedStudent(t, db, "Ada", "ada@example.edu")
	supervisor := seedSupervisor(t, db, "Sam", "sam@example.edu")

	form := models.ProgressForm{StudentID: student.ID, SupervisorID: supervisor.ID, Term: "Fall 2026", State: models.FormStatePending}
	require.NoError(t, repo.Create(ctx, &form))

	form.State = models.FormStateSubmittedBySupervisor
	form.SupervisorSignature = "Sam"
	require.NoError(t, repo.Update(ctx, &form))

	loaded, err := repo.GetByID(ctx, form.ID)
	require.NoError(t, err)
	require.Equal(t, models.FormStateSubmittedBySupervisor, loaded.State)
	require.Equal(t, "Sam", loaded.SupervisorSignature)
}

func TestFormGetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFormRepository(db)

	_, err := repo.GetByID(context.Background(), 12345)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
