package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gradtrack/gradtrack-api/internal/dto"
	"github.com/gradtrack/gradtrack-api/internal/models"
	"github.com/gradtrack/gradtrack-api/internal/repository"
)

type memoryFormRepo struct {
	forms       map[uint]models.ProgressForm
	nextID      uint
	students    map[uint]models.Student
	supervisors map[uint]models.Supervisor
}

func newMemoryFormRepo() *memoryFormRepo {
	return &memoryFormRepo{
		forms:       make(map[uint]models.ProgressForm),
		nextID:      1,
		students:    make(map[uint]models.Student),
		supervisors: make(map[uint]models.Supervisor),
	}
}

func (m *memoryFormRepo) Create(_ context.Context, form *models.ProgressForm) error {
	form.ID = m.nextID
	form.CreatedAt = time.Now()
	form.UpdatedAt = form.CreatedAt
	m.forms[form.ID] = *form
	m.nextID++
	return nil
}

func (m *memoryFormRepo) GetByID(_ context.Context, id uint) (models.ProgressForm, error) {
	form, ok := m.forms[id]
	if !ok {
		return models.ProgressForm{}, gorm.ErrRecordNotFound
	}
	return m.hydrate(form), nil
}

func (m *memoryFormRepo) List(_ context.Context, filter repository.FormFilter) ([]models.ProgressForm, error) {
	results := make([]models.ProgressForm, 0, len(m.forms))
	for _, form := range m.forms {
		if filter.StudentID != nil && form.StudentID != *filter.StudentID {
			continue
		}
		if filter.SupervisorID != nil && form.SupervisorID != *filter.SupervisorID {
			continue
		}
		if filter.SupervisorIDs != nil {
			matched := false
			for _, id := range filter.SupervisorIDs {
				if form.SupervisorID == id {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if filter.State != nil && form.State != *filter.State {
			continue
		}
		if filter.Term != nil && form.Term != *filter.Term {
			continue
		}
		results = append(results, m.hydrate(form))
	}
	return results, nil
}

func (m *memoryFormRepo) Update(_ context.Context, form *models.ProgressForm) error {
	if _, ok := m.forms[form.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	form.UpdatedAt = time.Now()
	m.forms[form.ID] = *form
	return nil
}

func (m *memoryFormRepo) hydrate(form models.ProgressForm) models.ProgressForm {
	if student, ok := m.students[form.StudentID]; ok {
		form.Student = student
	}
	if supervisor, ok := m.supervisors[form.SupervisorID]; ok {
		form.Supervisor = supervisor
	}
	return form
}

type recordingNotifier struct {
	events []FormEvent
}

func (r *recordingNotifier) NotifyFormEvent(_ context.Context, event FormEvent) {
	r.events = append(r.events, event)
}

func (r *recordingNotifier) last(t *testing.T) FormEvent {
	t.Helper()
	require.NotEmpty(t, r.events)
	return r.events[len(r.events)-1]
}

// workflowFixture wires a full hierarchy: student 1 under supervisor 10,
// supervisor 10 under assistant 20, assistant 20 under director 30.
type workflowFixture struct {
	forms     *memoryFormRepo
	hierarchy *memoryHierarchyRepo
	notifier  *recordingNotifier
	service   FormService

	student    RoleContext
	supervisor RoleContext
	assistant  RoleContext
	director   RoleContext
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	forms := newMemoryFormRepo()
	hierarchy := newMemoryHierarchyRepo()
	notifier := &recordingNotifier{}

	student := models.Student{ID: 1, UserID: 101, User: models.User{ID: 101, Name: "Ada Student", Email: "ada@example.edu"}}
	supervisor := models.Supervisor{ID: 10, UserID: 110, User: models.User{ID: 110, Name: "Sam Supervisor", Email: "sam@example.edu"}}
	assistant := models.ProgramAssistant{ID: 20, UserID: 120, User: models.User{ID: 120, Name: "Alex Assistant", Email: "alex@example.edu"}}
	director := models.ProgramDirector{ID: 30, UserID: 130, User: models.User{ID: 130, Name: "Dana Director", Email: "dana@example.edu"}}

	forms.students[student.ID] = student
	forms.supervisors[supervisor.ID] = supervisor

	hierarchy.students[student.ID] = student
	hierarchy.supervisors[supervisor.ID] = supervisor
	hierarchy.assistants[assistant.ID] = assistant
	hierarchy.directors[director.ID] = director

	hierarchy.supervisions = append(hierarchy.supervisions, models.SupervisionAssignment{
		ID: 1, StudentID: student.ID, SupervisorID: supervisor.ID, Status: models.AssignmentStatusActive,
	})
	hierarchy.assistantLinks = append(hierarchy.assistantLinks, models.AssistantAssignment{
		ID: 1, SupervisorID: supervisor.ID, AssistantID: assistant.ID, Status: models.AssignmentStatusActive,
	})
	hierarchy.directorLinks = append(hierarchy.directorLinks, models.DirectorAssignment{
		ID: 1, AssistantID: assistant.ID, DirectorID: director.ID, Status: models.AssignmentStatusActive,
	})

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewFormService(forms, hierarchy, validate, notifier, zerolog.Nop())

	return &workflowFixture{
		forms:      forms,
		hierarchy:  hierarchy,
		notifier:   notifier,
		service:    svc,
		student:    RoleContext{UserID: 101, Email: "ada@example.edu", Role: models.RoleStudent, ProfileID: 1},
		supervisor: RoleContext{UserID: 110, Email: "sam@example.edu", Role: models.RoleSupervisor, ProfileID: 10},
		assistant:  RoleContext{UserID: 120, Email: "alex@example.edu", Role: models.RoleAssistant, ProfileID: 20},
		director:   RoleContext{UserID: 130, Email: "dana@example.edu", Role: models.RoleDirector, ProfileID: 30},
	}
}

func submitPayload() dto.FormSubmitRequest {
	return dto.FormSubmitRequest{
		Term:             "Fall 2026",
		StartTerm:        "Fall 2024",
		Program:          "Computer Science",
		Degree:           "PhD",
		YearOfStudy:      2,
		SupervisorName:   "Sam Supervisor",
		ProgressToDate:   "Finished the literature review.",
		Coursework:       "CS 7001, CS 7002",
		StudentSignature: "Ada Student",
		SignatureDate:    "2026-08-28",
	}
}

func completeReview() dto.SupervisorReviewRequest {
	return dto.SupervisorReviewRequest{
		SelfMotivation:      "excellent",
		ResearchSkills:      "good",
		ResearchProgress:    "excellent",
		OverallPerformance:  "good",
		Comments:            "Solid term.",
		SupervisorSignature: "Sam Supervisor",
	}
}

func (f *workflowFixture) submit(t *testing.T) dto.FormResponse {
	t.Helper()
	form, err := f.service.Submit(context.Background(), f.student, submitPayload())
	require.NoError(t, err)
	return form
}

func TestSubmitWithoutSupervisorPersistsNothing(t *testing.T) {
	fixture := newWorkflowFixture(t)
	fixture.hierarchy.supervisions = nil

	_, err := fixture.service.Submit(context.Background(), fixture.student, submitPayload())
	require.ErrorIs(t, err, ErrNoSupervisorAssigned)
	require.Empty(t, fixture.forms.forms)
	require.Empty(t, fixture.notifier.events)
}

func TestSubmitCreatesPendingFormAndNotifiesSupervisor(t *testing.T) {
	fixture := newWorkflowFixture(t)

	form := fixture.submit(t)

	require.Equal(t, string(models.FormStatePending), form.State)
	require.Equal(t, uint(10), form.SupervisorID)
	require.False(t, form.SupervisorApproved)
	require.Equal(t, "in_progress", form.ReviewStatus)

	event := fixture.notifier.last(t)
	require.Equal(t, uint(110), event.RecipientUserID)
	require.Equal(t, "sam@example.edu", event.RecipientEmail)
	require.Equal(t, "form.submitted", event.Type)
}

func TestSubmitRejectsNonStudents(t *testing.T) {
	fixture := newWorkflowFixture(t)

	_, err := fixture.service.Submit(context.Background(), fixture.supervisor, submitPayload())
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestFullApprovalChain(t *testing.T) {
	fixture := newWorkflowFixture(t)
	ctx := context.Background()
	submitted := fixture.submit(t)

	form, err := fixture.service.SupervisorApprove(ctx, fixture.supervisor, submitted.ID, completeReview())
	require.NoError(t, err)
	require.Equal(t, string(models.FormStateSubmittedBySupervisor), form.State)
	require.True(t, form.SupervisorApproved)
	require.False(t, form.AssistantApproved)
	require.Equal(t, uint(120), fixture.notifier.last(t).RecipientUserID)

	form, err = fixture.service.AssistantApprove(ctx, fixture.assistant, submitted.ID, dto.AssistantReviewRequest{Comments: "Reviewed and endorsed."})
	require.NoError(t, err)
	require.Equal(t, string(models.FormStateApprovedByAssistant), form.State)
	require.True(t, form.AssistantApproved)
	require.Equal(t, uint(130), fixture.notifier.last(t).RecipientUserID)

	form, err = fixture.service.DirectorApprove(ctx, fixture.director, submitted.ID, dto.DirectorReviewRequest{Comment: "Approved.", Signature: "Dana Director"})
	require.NoError(t, err)
	require.Equal(t, string(models.FormStateApprovedByDirector), form.State)
	require.True(t, form.DirectorApproved)
	require.Equal(t, "completed", form.ReviewStatus)
	require.Equal(t, uint(101), fixture.notifier.last(t).RecipientUserID)
}

func TestTerminalFormRejectsFurtherActions(t *testing.T) {
	fixture := newWorkflowFixture(t)
	ctx := context.Background()
	submitted := fixture.submit(t)

	_, err := fixture.service.SupervisorApprove(ctx, fixture.supervisor, submitted.ID, completeReview())
	require.NoError(t, err)
	_, err = fixture.service.AssistantApprove(ctx, fixture.assistant, submitted.ID, dto.AssistantReviewRequest{Comments: "ok"})
	require.NoError(t, err)
	_, err = fixture.service.DirectorApprove(ctx, fixture.director, submitted.ID, dto.DirectorReviewRequest{Comment: "done", Signature: "Dana"})
	require.NoError(t, err)

	_, err = fixture.service.SupervisorApprove(ctx, fixture.supervisor, submitted.ID, completeReview())
	require.ErrorIs(t, err, ErrInvalidTransition)
	_, err = fixture.service.AssistantReject(ctx, fixture.assistant, submitted.ID, dto.RejectRequest{})
	require.ErrorIs(t, err, ErrInvalidTransition)
	_, err = fixture.service.DirectorReject(ctx, fixture.director, submitted.ID, dto.RejectRequest{})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSupervisorApproveRequiresCompleteReview(t *testing.T) {
	fixture := newWorkflowFixture(t)
	submitted := fixture.submit(t)

	partial := completeReview()
	partial.SupervisorSignature = ""

	_, err := fixture.service.SupervisorApprove(context.Background(), fixture.supervisor, submitted.ID, partial)
	require.ErrorIs(t, err, ErrIncompleteReview)

	stored, err := fixture.forms.GetByID(context.Background(), submitted.ID)
	require.NoError(t, err)
	require.Equal(t, models.FormStatePending, stored.State)
}

func TestSupervisorRejectFlagsFeedbackAndNotifiesStudent(t *testing.T) {
	fixture := newWorkflowFixture(t)
	submitted := fixture.submit(t)

	form, err := fixture.service.SupervisorReject(context.Background(), fixture.supervisor, submitted.ID, dto.RejectRequest{Note: "Please expand the progress section."})
	require.NoError(t, err)
	require.Equal(t, string(models.FormStatePending), form.State)
	require.Equal(t, string(models.RoleSupervisor), form.FeedbackFrom)
	require.Equal(t, "disapproved", form.ReviewStatus)
	require.Equal(t, "Ada Student", form.StudentSignature)

	event := fixture.notifier.last(t)
	require.Equal(t, uint(101), event.RecipientUserID)
	require.Equal(t, "form.feedback", event.Type)
}

func TestAssistantRejectReturnsFormToSupervisor(t *testing.T) {
	fixture := newWorkflowFixture(t)
	ctx := context.Background()
	submitted := fixture.submit(t)

	_, err := fixture.service.SupervisorApprove(ctx, fixture.supervisor, submitted.ID, completeReview())
	require.NoError(t, err)

	form, err := fixture.service.AssistantReject(ctx, fixture.assistant, submitted.ID, dto.RejectRequest{Note: "Grading scale missing."})
	require.NoError(t, err)
	require.Equal(t, string(models.FormStatePending), form.State)
	require.Equal(t, string(models.RoleAssistant), form.FeedbackFrom)
	require.Equal(t, "Sam Supervisor", form.SupervisorSignature)

	event := fixture.notifier.last(t)
	require.Equal(t, uint(110), event.RecipientUserID)
}

func TestDirectorRejectReturnsFormToSupervisor(t *testing.T) {
	fixture := newWorkflowFixture(t)
	ctx := context.Background()
	submitted := fixture.submit(t)

	_, err := fixture.service.SupervisorApprove(ctx, fixture.supervisor, submitted.ID, completeReview())
	require.NoError(t, err)
	_, err = fixture.service.AssistantApprove(ctx, fixture.assistant, submitted.ID, dto.AssistantReviewRequest{Comments: "ok"})
	require.NoError(t, err)

	form, err := fixture.service.DirectorReject(ctx, fixture.director, submitted.ID, dto.RejectRequest{Note: "Needs department sign-off."})
	require.NoError(t, err)
	require.Equal(t, string(models.FormStatePending), form.State)
	require.Equal(t, string(models.RoleDirector), form.FeedbackFrom)

	event := fixture.notifier.last(t)
	require.Equal(t, uint(110), event.RecipientUserID)
}

func TestApproveClearsFeedbackMarker(t *testing.T) {
	fixture := newWorkflowFixture(t)
	ctx := context.Background()
	submitted := fixture.submit(t)

	_, err := fixture.service.SupervisorReject(ctx, fixture.supervisor, submitted.ID, dto.RejectRequest{Note: "rework"})
	require.NoError(t, err)

	form, err := fixture.service.SupervisorApprove(ctx, fixture.supervisor, submitted.ID, completeReview())
	require.NoError(t, err)
	require.Empty(t, form.FeedbackFrom)
	require.Equal(t, "in_progress", form.ReviewStatus)
}

func TestReviewersCannotActOutOfTurn(t *testing.T) {
	fixture := newWorkflowFixture(t)
	ctx := context.Background()
	submitted := fixture.submit(t)

	_, err := fixture.service.AssistantApprove(ctx, fixture.assistant, submitted.ID, dto.AssistantReviewRequest{Comments: "early"})
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = fixture.service.DirectorApprove(ctx, fixture.director, submitted.ID, dto.DirectorReviewRequest{Comment: "early", Signature: "Dana"})
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = fixture.service.SupervisorApprove(ctx, fixture.supervisor, submitted.ID, completeReview())
	require.NoError(t, err)

	_, err = fixture.service.SupervisorApprove(ctx, fixture.supervisor, submitted.ID, completeReview())
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestForeignSupervisorCannotTouchForm(t *testing.T) {
	fixture := newWorkflowFixture(t)
	submitted := fixture.submit(t)

	other := RoleContext{UserID: 999, Email: "other@example.edu", Role: models.RoleSupervisor, ProfileID: 99}
	_, err := fixture.service.SupervisorApprove(context.Background(), other, submitted.ID, completeReview())
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestAssistantWithoutOversightCannotReadForm(t *testing.T) {
	fixture := newWorkflowFixture(t)
	submitted := fixture.submit(t)

	stranger := RoleContext{UserID: 888, Email: "stranger@example.edu", Role: models.RoleAssistant, ProfileID: 88}
	_, err := fixture.service.Get(context.Background(), stranger, submitted.ID)
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestGetUnknownForm(t *testing.T) {
	fixture := newWorkflowFixture(t)

	_, err := fixture.service.Get(context.Background(), fixture.student, 404)
	require.ErrorIs(t, err, ErrFormNotFound)
}

func TestListScopesByRole(t *testing.T) {
	fixture := newWorkflowFixture(t)
	ctx := context.Background()
	fixture.submit(t)

	// A second supervisor outside the fixture assistant's portfolio.
	otherSupervisor := models.Supervisor{ID: 11, UserID: 111, User: models.User{ID: 111, Name: "Olga Other", Email: "olga@example.edu"}}
	fixture.forms.supervisors[otherSupervisor.ID] = otherSupervisor
	require.NoError(t, fixture.forms.Create(ctx, &models.ProgressForm{
		StudentID: 2, SupervisorID: otherSupervisor.ID, Term: "Fall 2026", State: models.FormStatePending,
	}))

	forms, err := fixture.service.List(ctx, fixture.student, dto.FormFilter{})
	require.NoError(t, err)
	require.Len(t, forms, 1)

	forms, err = fixture.service.List(ctx, fixture.supervisor, dto.FormFilter{})
	require.NoError(t, err)
	require.Len(t, forms, 1)
	require.Equal(t, uint(10), forms[0].SupervisorID)

	forms, err = fixture.service.List(ctx, fixture.assistant, dto.FormFilter{})
	require.NoError(t, err)
	require.Len(t, forms, 1)
	require.Equal(t, uint(10), forms[0].SupervisorID)

	forms, err = fixture.service.List(ctx, fixture.director, dto.FormFilter{})
	require.NoError(t, err)
	require.Len(t, forms, 1)

	// An assistant with no supervisors sees nothing, not everything.
	lonely := RoleContext{UserID: 777, Email: "lonely@example.edu", Role: models.RoleAssistant, ProfileID: 77}
	forms, err = fixture.service.List(ctx, lonely, dto.FormFilter{})
	require.NoError(t, err)
	require.Empty(t, forms)
}

func TestSaveSupervisorReviewKeepsStatePending(t *testing.T) {
	fixture := newWorkflowFixture(t)
	submitted := fixture.submit(t)

	form, err := fixture.service.SaveSupervisorReview(context.Background(), fixture.supervisor, submitted.ID, dto.SupervisorReviewRequest{
		SelfMotivation: "good",
		Comments:       "Draft notes.",
	})
	require.NoError(t, err)
	require.Equal(t, string(models.FormStatePending), form.State)
	require.Equal(t, "good", form.SelfMotivation)
	require.False(t, form.SupervisorApproved)
}
