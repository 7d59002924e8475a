package dto

import (
	"time"

	"github.com/gradtrack/gradtrack-api/internal/models"
)

// FormSubmitRequest is the student-authored progress report payload.
type FormSubmitRequest struct {
	Term               string `json:"term" validate:"required,max=64"`
	StartTerm          string `json:"start_term" validate:"required,max=64"`
	Program            string `json:"program" validate:"required,max=255"`
	Degree             string `json:"degree" validate:"required,max=64"`
	YearOfStudy        int    `json:"year_of_study" validate:"required,gte=1,lte=10"`
	SupervisorName     string `json:"supervisor_name" validate:"required,max=255"`
	ExpectedCompletion string `json:"expected_completion" validate:"omitempty,max=64"`
	ProgressToDate     string `json:"progress_to_date"`
	Coursework         string `json:"coursework" validate:"required"`
	ObjectiveNextTerm  string `json:"objective_next_term"`
	StudentComments    string `json:"student_comments"`
	StudentSignature   string `json:"student_signature" validate:"required,max=255"`
	SignatureDate      string `json:"signature_date" validate:"required,max=64"`
}

// SupervisorReviewRequest carries the supervisor's annotation fields. All
// fields are optional on save; approval requires them to be complete.
type SupervisorReviewRequest struct {
	SelfMotivation      string `json:"self_motivation" validate:"omitempty,max=64"`
	ResearchSkills      string `json:"research_skills" validate:"omitempty,max=64"`
	ResearchProgress    string `json:"research_progress" validate:"omitempty,max=64"`
	OverallPerformance  string `json:"overall_performance" validate:"omitempty,max=64"`
	Comments            string `json:"comments"`
	SupervisorSignature string `json:"supervisor_signature" validate:"omitempty,max=255"`
}

// AssistantReviewRequest carries the program assistant's approval payload.
type AssistantReviewRequest struct {
	Comments string `json:"comments" validate:"required"`
}

// DirectorReviewRequest carries the program director's sign-off payload.
type DirectorReviewRequest struct {
	Comment   string `json:"gpd_comment" validate:"required"`
	Signature string `json:"gpd_signature" validate:"required,max=255"`
}

// RejectRequest sends a form back down the chain with an optional note.
type RejectRequest struct {
	Note string `json:"note"`
}

// FormFilter narrows role-scoped form listings.
type FormFilter struct {
	State *string `query:"state" validate:"omitempty,oneof=pending submitted_by_supervisor approved_by_gpa approved_by_gpd"`
	Term  *string `query:"term"`
}

// FormResponse is the full progress form view returned to every role. The
// approval booleans and review status are projections of the workflow state.
type FormResponse struct {
	ID           uint `json:"id"`
	StudentID    uint `json:"student_id"`
	SupervisorID uint `json:"supervisor_id"`

	Term               string `json:"term"`
	StartTerm          string `json:"start_term"`
	Program            string `json:"program"`
	Degree             string `json:"degree"`
	YearOfStudy        int    `json:"year_of_study"`
	SupervisorName     string `json:"supervisor_name"`
	ExpectedCompletion string `json:"expected_completion"`
	ProgressToDate     string `json:"progress_to_date"`
	Coursework         string `json:"coursework"`
	ObjectiveNextTerm  string `json:"objective_next_term"`
	StudentComments    string `json:"student_comments"`
	StudentSignature   string `json:"student_signature"`
	SignatureDate      string `json:"signature_date"`

	SelfMotivation      string `json:"self_motivation"`
	ResearchSkills      string `json:"research_skills"`
	ResearchProgress    string `json:"research_progress"`
	OverallPerformance  string `json:"overall_performance"`
	Comments            string `json:"comments"`
	SupervisorSignature string `json:"supervisor_signature"`

	DirectorComment   string `json:"gpd_comment"`
	DirectorSignature string `json:"gpd_signature"`

	State              string `json:"state"`
	FeedbackFrom       string `json:"feedback_from"`
	ReviewStatus       string `json:"review_status"`
	SupervisorApproved bool   `json:"supervisor_approved"`
	AssistantApproved  bool   `json:"gpa_approved"`
	DirectorApproved   bool   `json:"gpd_approved"`

	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	Student    *PartyLite   `json:"student,omitempty"`
	Supervisor *PartyLite   `json:"supervisor,omitempty"`
}

// FormSummary is the compact listing view shown on dashboards.
type FormSummary struct {
	ID           uint      `json:"id"`
	Term         string    `json:"term"`
	State        string    `json:"state"`
	ReviewStatus string    `json:"review_status"`
	CreatedAt    time.Time `json:"created_at"`
}

// PartyLite identifies a person in form and assignment views without
// exposing their full profile.
type PartyLite struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
}

// NewFormResponse converts a ProgressForm model into a DTO.
func NewFormResponse(model models.ProgressForm) FormResponse {
	response := FormResponse{
		ID:                  model.ID,
		StudentID:           model.StudentID,
		SupervisorID:        model.SupervisorID,
		Term:                model.Term,
		StartTerm:           model.StartTerm,
		Program:             model.Program,
		Degree:              model.Degree,
		YearOfStudy:         model.YearOfStudy,
		SupervisorName:      model.SupervisorName,
		ExpectedCompletion:  model.ExpectedCompletion,
		ProgressToDate:      model.ProgressToDate,
		Coursework:          model.Coursework,
		ObjectiveNextTerm:   model.ObjectiveNextTerm,
		StudentComments:     model.StudentComments,
		StudentSignature:    model.StudentSignature,
		SignatureDate:       model.SignatureDate,
		SelfMotivation:      model.SelfMotivation,
		ResearchSkills:      model.ResearchSkills,
		ResearchProgress:    model.ResearchProgress,
		OverallPerformance:  model.OverallPerformance,
		Comments:            model.Comments,
		SupervisorSignature: model.SupervisorSignature,
		DirectorComment:     model.DirectorComment,
		DirectorSignature:   model.DirectorSignature,
		State:               string(model.State),
		FeedbackFrom:        string(model.FeedbackFrom),
		ReviewStatus:        model.ReviewStatus(),
		SupervisorApproved:  model.SupervisorApproved(),
		AssistantApproved:   model.AssistantApproved(),
		DirectorApproved:    model.DirectorApproved(),
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}

	if model.Student.ID != 0 {
		response.Student = &PartyLite{
			ID:    model.Student.ID,
			Name:  model.Student.User.Name,
			Email: model.Student.User.Email,
		}
	}

	if model.Supervisor.ID != 0 {
		response.Supervisor = &PartyLite{
			ID:         model.Supervisor.ID,
			Name:       model.Supervisor.User.Name,
			Email:      model.Supervisor.User.Email,
			Department: model.Supervisor.Department,
		}
	}

	return response
}

// NewFormResponseSlice converts a slice of models into DTOs.
func NewFormResponseSlice(forms []models.ProgressForm) []FormResponse {
	responses := make([]FormResponse, 0, len(forms))
	for _, form := range forms {
		responses = append(responses, NewFormResponse(form))
	}
	return responses
}

// NewFormSummary converts a ProgressForm into its listing view.
func NewFormSummary(model models.ProgressForm) FormSummary {
	return FormSummary{
		ID:           model.ID,
		Term:         model.Term,
		State:        string(model.State),
		ReviewStatus: model.ReviewStatus(),
		CreatedAt:    model.CreatedAt,
	}
}
