package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/gradtrack/gradtrack-api/internal/dto"
	"github.com/gradtrack/gradtrack-api/internal/models"
	"github.com/gradtrack/gradtrack-api/internal/observability"
	"github.com/gradtrack/gradtrack-api/internal/repository"
)

// ErrFormNotFound indicates the progress form could not be located.
var ErrFormNotFound = errors.New("progress form not found")

// ErrNoSupervisorAssigned indicates the student has no active supervisor and
// therefore cannot submit; nothing is persisted.
var ErrNoSupervisorAssigned = errors.New("no supervisor assigned")

// ErrIncompleteReview indicates an approval was attempted with required
// review fields still empty.
var ErrIncompleteReview = errors.New("review is incomplete")

// ErrInvalidTransition indicates the requested action is not legal from the
// form's current workflow state. Terminal forms reject every action.
var ErrInvalidTransition = errors.New("invalid workflow transition")

// FormEvent describes a workflow occurrence worth notifying someone about.
type FormEvent struct {
	RecipientUserID uint
	RecipientEmail  string
	Type            string
	Subject         string
	Message         string
	FormID          uint
	Term            string
	StudentID       uint
}

// Notifier delivers workflow events. Delivery is best effort; a failed
// notification never invalidates the state change that produced it.
type Notifier interface {
	NotifyFormEvent(ctx context.Context, event FormEvent)
}

// FormService is the progress form workflow engine. It owns the form
// lifecycle: creation, role-gated field mutation, and the sequential
// supervisor → assistant → director approval chain with rejection loops.
type FormService interface {
	Submit(ctx context.Context, actor RoleContext, payload dto.FormSubmitRequest) (dto.FormResponse, error)
	Get(ctx context.Context, actor RoleContext, formID uint) (dto.FormResponse, error)
	List(ctx context.Context, actor RoleContext, filter dto.FormFilter) ([]dto.FormResponse, error)

	SaveSupervisorReview(ctx context.Context, actor RoleContext, formID uint, payload dto.SupervisorReviewRequest) (dto.FormResponse, error)
	SupervisorApprove(ctx context.Context, actor RoleContext, formID uint, payload dto.SupervisorReviewRequest) (dto.FormResponse, error)
	SupervisorReject(ctx context.Context, actor RoleContext, formID uint, payload dto.RejectRequest) (dto.FormResponse, error)

	AssistantApprove(ctx context.Context, actor RoleContext, formID uint, payload dto.AssistantReviewRequest) (dto.FormResponse, error)
	AssistantReject(ctx context.Context, actor RoleContext, formID uint, payload dto.RejectRequest) (dto.FormResponse, error)

	DirectorApprove(ctx context.Context, actor RoleContext, formID uint, payload dto.DirectorReviewRequest) (dto.FormResponse, error)
	DirectorReject(ctx context.Context, actor RoleContext, formID uint, payload dto.RejectRequest) (dto.FormResponse, error)
}

type formService struct {
	forms       repository.FormRepository
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	notifier    Notifier
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewFormService constructs the workflow engine.
func NewFormService(forms repository.FormRepository, assignments repository.AssignmentRepository, validate *validator.Validate, notifier Notifier, logger zerolog.Logger) FormService {
	return &formService{
		forms:       forms,
		assignments: assignments,
		validator:   validate,
		notifier:    notifier,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "form_service").Logger(),
		tracer:      otel.Tracer("github.com/gradtrack/gradtrack-api/internal/service/form"),
		now:         time.Now,
	}
}

func (s *formService) Submit(ctx context.Context, actor RoleContext, payload dto.FormSubmitRequest) (dto.FormResponse, error) {
	ctx, span := s.tracer.Start(ctx, "forms.submit", trace.WithAttributes(
		attribute.Int64("form.student_id", int64(actor.ProfileID)),
	))
	defer span.End()

	if actor.Role != models.RoleStudent {
		return dto.FormResponse{}, ErrNotAuthorized
	}

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.FormResponse{}, err
	}

	// Precondition: an active supervisor must exist before anything is
	// persisted.
	supervision, err := s.assignments.ActiveSupervisionForStudent(ctx, actor.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "no_supervisor_assigned")
			return dto.FormResponse{}, ErrNoSupervisorAssigned
		}
		span.RecordError(err)
		return dto.FormResponse{}, err
	}

	form := models.ProgressForm{
		StudentID:          actor.ProfileID,
		SupervisorID:       supervision.SupervisorID,
		Term:               strings.TrimSpace(payload.Term),
		StartTerm:          strings.TrimSpace(payload.StartTerm),
		Program:            strings.TrimSpace(payload.Program),
		Degree:             strings.TrimSpace(payload.Degree),
		YearOfStudy:        payload.YearOfStudy,
		SupervisorName:     strings.TrimSpace(payload.SupervisorName),
		ExpectedCompletion: strings.TrimSpace(payload.ExpectedCompletion),
		ProgressToDate:     s.clean(payload.ProgressToDate),
		Coursework:         s.clean(payload.Coursework),
		ObjectiveNextTerm:  s.clean(payload.ObjectiveNextTerm),
		StudentComments:    s.clean(payload.StudentComments),
		StudentSignature:   strings.TrimSpace(payload.StudentSignature),
		SignatureDate:      strings.TrimSpace(payload.SignatureDate),
		State:              models.FormStatePending,
	}

	if err := s.forms.Create(ctx, &form); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "form_insert_failed")
		return dto.FormResponse{}, err
	}

	observability.FormsSubmitted().Inc()
	observability.FormTransitions().WithLabelValues("submit", string(models.RoleStudent)).Inc()
	s.logger.Info().Uint("form_id", form.ID).Str("term", form.Term).Uint("student_id", form.StudentID).Msg("progress form submitted")

	// The recipient is the assigned supervisor, resolved from their own
	// account. Delivery failure does not undo the insert.
	if s.notifier != nil {
		s.notifier.NotifyFormEvent(ctx, FormEvent{
			RecipientUserID: supervision.Supervisor.UserID,
			RecipientEmail:  supervision.Supervisor.User.Email,
			Type:            "form.submitted",
			Subject:         fmt.Sprintf("Progress form submitted for %s", form.Term),
			Message:         fmt.Sprintf("Student %d submitted a progress form for term %s.", form.StudentID, form.Term),
			FormID:          form.ID,
			Term:            form.Term,
			StudentID:       form.StudentID,
		})
	}

	created, err := s.forms.GetByID(ctx, form.ID)
	if err != nil {
		span.RecordError(err)
		return dto.FormResponse{}, err
	}

	return dto.NewFormResponse(created), nil
}

func (s *formService) Get(ctx context.Context, actor RoleContext, formID uint) (dto.FormResponse, error) {
	form, err := s.getForm(ctx, formID)
	if err != nil {
		return dto.FormResponse{}, err
	}

	if err := s.authorizeRead(ctx, actor, form); err != nil {
		return dto.FormResponse{}, err
	}

	return dto.NewFormResponse(form), nil
}

func (s *formService) List(ctx context.Context, actor RoleContext, filter dto.FormFilter) ([]dto.FormResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	repoFilter := repository.FormFilter{Term: filter.Term}
	if filter.State != nil {
		state := models.FormState(*filter.State)
		repoFilter.State = &state
	}

	switch actor.Role {
	case models.RoleStudent:
		repoFilter.StudentID = &actor.ProfileID
	case models.RoleSupervisor:
		repoFilter.SupervisorID = &actor.ProfileID
	case models.RoleAssistant:
		ids, err := s.supervisorsForAssistant(ctx, actor.ProfileID)
		if err != nil {
			return nil, err
		}
		repoFilter.SupervisorIDs = ids
	case models.RoleDirector:
		ids, err := s.supervisorsForDirector(ctx, actor.ProfileID)
		if err != nil {
			return nil, err
		}
		repoFilter.SupervisorIDs = ids
	default:
		return nil, ErrInvalidRole
	}

	forms, err := s.forms.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	return dto.NewFormResponseSlice(forms), nil
}

func (s *formService) SaveSupervisorReview(ctx context.Context, actor RoleContext, formID uint, payload dto.SupervisorReviewRequest) (dto.FormResponse, error) {
	ctx, span := s.startReviewSpan(ctx, "forms.supervisor_save", actor, formID)
	defer span.End()

	form, err := s.supervisorHeldForm(ctx, actor, formID)
	if err != nil {
		span.RecordError(err)
		return dto.FormResponse{}, err
	}

	s.applySupervisorFields(&form, payload)

	if err := s.forms.Update(ctx, &form); err != nil {
		span.RecordError(err)
		return dto.FormResponse{}, err
	}

	s.logger.Info().Uint("form_id", form.ID).Msg("supervisor annotations saved")

	return dto.NewFormResponse(form), nil
}

func (s *formService) SupervisorApprove(ctx context.Context, actor RoleContext, formID uint, payload dto.SupervisorReviewRequest) (dto.FormResponse, error) {
	ctx, span := s.startReviewSpan(ctx, "forms.supervisor_approve", actor, formID)
	defer span.End()

	form, err := s.supervisorHeldForm(ctx, actor, formID)
	if err != nil {
		span.RecordError(err)
		return dto.FormResponse{}, err
	}

	s.applySupervisorFields(&form, payload)

	if form.SelfMotivation == "" || form.ResearchSkills == "" || form.ResearchProgress == "" ||
		form.OverallPerformance == "" || form.SupervisorSignature == "" {
		span.SetStatus(codes.Error, "incomplete_review")
		return dto.FormResponse{}, ErrIncompleteReview
	}

	form.State = models.FormStateSubmittedBySupervisor
	form.FeedbackFrom = ""

	return s.commitTransition(ctx, span, &form, "approve", actor.Role, s.assistantEvent(ctx, form))
}

func (s *formService) SupervisorReject(ctx context.Context, actor RoleContext, formID uint, payload dto.RejectRequest) (dto.FormResponse, error) {
	ctx, span := s.startReviewSpan(ctx, "forms.supervisor_reject", actor, formID)
	defer span.End()

	form, err := s.supervisorHeldForm(ctx, actor, formID)
	if err != nil {
		span.RecordError(err)
		return dto.FormResponse{}, err
	}

	if note := s.clean(payload.Note); note != "" {
		form.Comments = note
	}
	form.FeedbackFrom = models.RoleSupervisor

	event := &FormEvent{
		RecipientUserID: form.Student.UserID,
		RecipientEmail:  form.Student.User.Email,
		Type:            "form.feedback",
		Subject:         fmt.Sprintf("Progress form for %s needs rework", form.Term),
		Message:         "Your supervisor returned your progress form with feedback.",
		FormID:          form.ID,
		Term:            form.Term,
		StudentID:       form.StudentID,
	}

	return s.commitTransition(ctx, span, &form, "reject", actor.Role, event)
}

func (s *formService) AssistantApprove(ctx context.Context, actor RoleContext, formID uint, payload dto.AssistantReviewRequest) (dto.FormResponse, error) {
	ctx, span := s.startReviewSpan(ctx, "forms.assistant_approve", actor, formID)
	defer span.End()

	form, err := s.assistantHeldForm(ctx, actor, formID)
	if err != nil {
		span.RecordError(err)
		return dto.FormResponse{}, err
	}

	comments := s.clean(payload.Comments)
	if comments == "" {
		span.SetStatus(codes.Error, "incomplete_review")
		return dto.FormResponse{}, ErrIncompleteReview
	}

	form.Comments = comments
	form.State = models.FormStateApprovedByAssistant
	form.FeedbackFrom = ""

	return s.commitTransition(ctx, span, &form, "approve", actor.Role, s.directorEvent(ctx, actor.ProfileID, form))
}

func (s *formService) AssistantReject(ctx context.Context, actor RoleContext, formID uint, payload dto.RejectRequest) (dto.FormResponse, error) {
	ctx, span := s.startReviewSpan(ctx, "forms.assistant_reject", actor, formID)
	defer span.End()

	form, err := s.assistantHeldForm(ctx, actor, formID)
	if err != nil {
		span.RecordError(err)
		return dto.FormResponse{}, err
	}

	if note := s.clean(payload.Note); note != "" {
		form.Comments = note
	}
	form.State = models.FormStatePending
	form.FeedbackFrom = models.RoleAssistant

	return s.commitTransition(ctx, span, &form, "reject", actor.Role, s.supervisorEvent(form, "The program assistant returned a progress form for rework."))
}

func (s *formService) DirectorApprove(ctx context.Context, actor RoleContext, formID uint, payload dto.DirectorReviewRequest) (dto.FormResponse, error) {
	ctx, span := s.startReviewSpan(ctx, "forms.director_approve", actor, formID)
	defer span.End()

	form, err := s.directorHeldForm(ctx, actor, formID)
	if err != nil {
		span.RecordError(err)
		return dto.FormResponse{}, err
	}

	comment := s.clean(payload.Comment)
	signature := strings.TrimSpace(payload.Signature)
	if comment == "" || signature == "" {
		span.SetStatus(codes.Error, "incomplete_review")
		return dto.FormResponse{}, ErrIncompleteReview
	}

	form.DirectorComment = comment
	form.DirectorSignature = signature
	form.State = models.FormStateApprovedByDirector
	form.FeedbackFrom = ""

	event := &FormEvent{
		RecipientUserID: form.Student.UserID,
		RecipientEmail:  form.Student.User.Email,
		Type:            "form.approved",
		Subject:         fmt.Sprintf("Progress form for %s fully approved", form.Term),
		Message:         "Your progress form has been approved by the program director.",
		FormID:          form.ID,
		Term:            form.Term,
		StudentID:       form.StudentID,
	}

	return s.commitTransition(ctx, span, &form, "approve", actor.Role, event)
}

func (s *formService) DirectorReject(ctx context.Context, actor RoleContext, formID uint, payload dto.RejectRequest) (dto.FormResponse, error) {
	ctx, span := s.startReviewSpan(ctx, "forms.director_reject", actor, formID)
	defer span.End()

	form, err := s.directorHeldForm(ctx, actor, formID)
	if err != nil {
		span.RecordError(err)
		return dto.FormResponse{}, err
	}

	if note := s.clean(payload.Note); note != "" {
		form.DirectorComment = note
	}
	form.State = models.FormStatePending
	form.FeedbackFrom = models.RoleDirector

	return s.commitTransition(ctx, span, &form, "reject", actor.Role, s.supervisorEvent(form, "The program director returned a progress form for rework."))
}

// supervisorHeldForm loads the form and verifies the caller is its
// supervisor and the form currently sits at first-stage review.
func (s *formService) supervisorHeldForm(ctx context.Context, actor RoleContext, formID uint) (models.ProgressForm, error) {
	if actor.Role != models.RoleSupervisor {
		return models.ProgressForm{}, ErrNotAuthorized
	}

	form, err := s.getForm(ctx, formID)
	if err != nil {
		return models.ProgressForm{}, err
	}

	if form.SupervisorID != actor.ProfileID {
		return models.ProgressForm{}, ErrNotAuthorized
	}

	if form.State != models.FormStatePending {
		return models.ProgressForm{}, ErrInvalidTransition
	}

	return form, nil
}

// assistantHeldForm loads the form and verifies the caller actively
// oversees the form's supervisor and the form awaits second-stage review.
func (s *formService) assistantHeldForm(ctx context.Context, actor RoleContext, formID uint) (models.ProgressForm, error) {
	if actor.Role != models.RoleAssistant {
		return models.ProgressForm{}, ErrNotAuthorized
	}

	form, err := s.getForm(ctx, formID)
	if err != nil {
		return models.ProgressForm{}, err
	}

	if err := s.requireAssistantOversight(ctx, actor.ProfileID, form.SupervisorID); err != nil {
		return models.ProgressForm{}, err
	}

	if form.State != models.FormStateSubmittedBySupervisor {
		return models.ProgressForm{}, ErrInvalidTransition
	}

	return form, nil
}

// directorHeldForm loads the form and verifies the caller actively oversees
// the assistant responsible for the form's supervisor, and that the form
// awaits final review.
func (s *formService) directorHeldForm(ctx context.Context, actor RoleContext, formID uint) (models.ProgressForm, error) {
	if actor.Role != models.RoleDirector {
		return models.ProgressForm{}, ErrNotAuthorized
	}

	form, err := s.getForm(ctx, formID)
	if err != nil {
		return models.ProgressForm{}, err
	}

	if err := s.requireDirectorOversight(ctx, actor.ProfileID, form.SupervisorID); err != nil {
		return models.ProgressForm{}, err
	}

	if form.State != models.FormStateApprovedByAssistant {
		return models.ProgressForm{}, ErrInvalidTransition
	}

	return form, nil
}

func (s *formService) authorizeRead(ctx context.Context, actor RoleContext, form models.ProgressForm) error {
	switch actor.Role {
	case models.RoleStudent:
		if form.StudentID != actor.ProfileID {
			return ErrNotAuthorized
		}
	case models.RoleSupervisor:
		if form.SupervisorID != actor.ProfileID {
			return ErrNotAuthorized
		}
	case models.RoleAssistant:
		return s.requireAssistantOversight(ctx, actor.ProfileID, form.SupervisorID)
	case models.RoleDirector:
		return s.requireDirectorOversight(ctx, actor.ProfileID, form.SupervisorID)
	default:
		return ErrInvalidRole
	}
	return nil
}

func (s *formService) requireAssistantOversight(ctx context.Context, assistantID, supervisorID uint) error {
	assignment, err := s.assignments.ActiveAssistantForSupervisor(ctx, supervisorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAuthorized
		}
		return err
	}
	if assignment.AssistantID != assistantID {
		return ErrNotAuthorized
	}
	return nil
}

func (s *formService) requireDirectorOversight(ctx context.Context, directorID, supervisorID uint) error {
	assistant, err := s.assignments.ActiveAssistantForSupervisor(ctx, supervisorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAuthorized
		}
		return err
	}

	assignment, err := s.assignments.ActiveDirectorForAssistant(ctx, assistant.AssistantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAuthorized
		}
		return err
	}
	if assignment.DirectorID != directorID {
		return ErrNotAuthorized
	}
	return nil
}

func (s *formService) supervisorsForAssistant(ctx context.Context, assistantID uint) ([]uint, error) {
	assignments, err := s.assignments.ActiveAssistantAssignments(ctx, assistantID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(assignments))
	for _, assignment := range assignments {
		ids = append(ids, assignment.SupervisorID)
	}
	return ids, nil
}

func (s *formService) supervisorsForDirector(ctx context.Context, directorID uint) ([]uint, error) {
	directorAssignments, err := s.assignments.ActiveDirectorAssignments(ctx, directorID)
	if err != nil {
		return nil, err
	}

	var ids []uint
	for _, da := range directorAssignments {
		supervisorIDs, err := s.supervisorsForAssistant(ctx, da.AssistantID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, supervisorIDs...)
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

func (s *formService) getForm(ctx context.Context, formID uint) (models.ProgressForm, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ProgressForm{}, ErrFormNotFound
		}
		return models.ProgressForm{}, err
	}
	return form, nil
}

func (s *formService) applySupervisorFields(form *models.ProgressForm, payload dto.SupervisorReviewRequest) {
	if payload.SelfMotivation != "" {
		form.SelfMotivation = strings.TrimSpace(payload.SelfMotivation)
	}
	if payload.ResearchSkills != "" {
		form.ResearchSkills = strings.TrimSpace(payload.ResearchSkills)
	}
	if payload.ResearchProgress != "" {
		form.ResearchProgress = strings.TrimSpace(payload.ResearchProgress)
	}
	if payload.OverallPerformance != "" {
		form.OverallPerformance = strings.TrimSpace(payload.OverallPerformance)
	}
	if payload.Comments != "" {
		form.Comments = s.clean(payload.Comments)
	}
	if payload.SupervisorSignature != "" {
		form.SupervisorSignature = strings.TrimSpace(payload.SupervisorSignature)
	}
}

// commitTransition persists the mutated form, records metrics, and emits the
// follow-up notification when one applies.
func (s *formService) commitTransition(ctx context.Context, span trace.Span, form *models.ProgressForm, action string, role models.Role, event *FormEvent) (dto.FormResponse, error) {
	if err := s.forms.Update(ctx, form); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "form_update_failed")
		return dto.FormResponse{}, err
	}

	observability.FormTransitions().WithLabelValues(action, string(role)).Inc()
	span.SetAttributes(
		attribute.String("form.state", string(form.State)),
		attribute.String("form.action", action),
	)
	s.logger.Info().
		Uint("form_id", form.ID).
		Str("action", action).
		Str("role", string(role)).
		Str("state", string(form.State)).
		Msg("workflow transition applied")

	if s.notifier != nil && event != nil {
		s.notifier.NotifyFormEvent(ctx, *event)
	}

	return dto.NewFormResponse(*form), nil
}

// assistantEvent resolves the next reviewer after supervisor approval. A
// missing assistant is not an error; the form simply waits unannounced.
func (s *formService) assistantEvent(ctx context.Context, form models.ProgressForm) *FormEvent {
	assignment, err := s.assignments.ActiveAssistantForSupervisor(ctx, form.SupervisorID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Err(err).Uint("form_id", form.ID).Msg("failed to resolve assistant for notification")
		}
		return nil
	}

	return &FormEvent{
		RecipientUserID: assignment.Assistant.UserID,
		RecipientEmail:  assignment.Assistant.User.Email,
		Type:            "form.awaiting_review",
		Subject:         fmt.Sprintf("Progress form for %s awaits your review", form.Term),
		Message:         "A supervisor approved a progress form; it now awaits program assistant review.",
		FormID:          form.ID,
		Term:            form.Term,
		StudentID:       form.StudentID,
	}
}

// directorEvent resolves the final reviewer after assistant approval.
func (s *formService) directorEvent(ctx context.Context, assistantID uint, form models.ProgressForm) *FormEvent {
	assignment, err := s.assignments.ActiveDirectorForAssistant(ctx, assistantID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Err(err).Uint("form_id", form.ID).Msg("failed to resolve director for notification")
		}
		return nil
	}

	return &FormEvent{
		RecipientUserID: assignment.Director.UserID,
		RecipientEmail:  assignment.Director.User.Email,
		Type:            "form.awaiting_review",
		Subject:         fmt.Sprintf("Progress form for %s awaits your sign-off", form.Term),
		Message:         "A program assistant approved a progress form; it now awaits director sign-off.",
		FormID:          form.ID,
		Term:            form.Term,
		StudentID:       form.StudentID,
	}
}

func (s *formService) supervisorEvent(form models.ProgressForm, message string) *FormEvent {
	return &FormEvent{
		RecipientUserID: form.Supervisor.UserID,
		RecipientEmail:  form.Supervisor.User.Email,
		Type:            "form.feedback",
		Subject:         fmt.Sprintf("Progress form for %s returned", form.Term),
		Message:         message,
		FormID:          form.ID,
		Term:            form.Term,
		StudentID:       form.StudentID,
	}
}

func (s *formService) startReviewSpan(ctx context.Context, name string, actor RoleContext, formID uint) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.Int64("form.id", int64(formID)),
		attribute.Int64("form.actor_profile_id", int64(actor.ProfileID)),
		attribute.String("form.actor_role", string(actor.Role)),
	))
}

func (s *formService) clean(value string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(value))
}
