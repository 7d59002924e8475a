package models

import "time"

// FormState is the single source of truth for where a progress form sits in
// the supervisor → assistant → director approval chain. The historical
// per-role approval booleans and the secondary review status are derived
// from it, never stored.
type FormState string

const (
	// FormStatePending awaits the supervisor's first-stage review.
	FormStatePending FormState = "pending"
	// FormStateSubmittedBySupervisor awaits the program assistant.
	FormStateSubmittedBySupervisor FormState = "submitted_by_supervisor"
	// FormStateApprovedByAssistant awaits the program director.
	FormStateApprovedByAssistant FormState = "approved_by_gpa"
	// FormStateApprovedByDirector is terminal; the form is read-only.
	FormStateApprovedByDirector FormState = "approved_by_gpd"
)

// stage orders the states along the approval chain.
func (s FormState) stage() int {
	switch s {
	case FormStatePending:
		return 0
	case FormStateSubmittedBySupervisor:
		return 1
	case FormStateApprovedByAssistant:
		return 2
	case FormStateApprovedByDirector:
		return 3
	}
	return -1
}

// Valid reports whether the state is one of the four chain positions.
func (s FormState) Valid() bool { return s.stage() >= 0 }

const (
	ReviewStatusInProgress  = "in_progress"
	ReviewStatusDisapproved = "disapproved"
	ReviewStatusCompleted   = "completed"
)

// ProgressForm is the per-term academic progress report submitted by a
// student and reviewed sequentially by supervisor, program assistant and
// program director.
type ProgressForm struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	StudentID    uint `gorm:"index;not null" json:"student_id"`
	SupervisorID uint `gorm:"index;not null" json:"supervisor_id"`

	// Student-authored content.
	Term               string `gorm:"size:64;not null" json:"term"`
	StartTerm          string `gorm:"size:64;not null" json:"start_term"`
	Program            string `gorm:"size:255;not null" json:"program"`
	Degree             string `gorm:"size:64;not null" json:"degree"`
	YearOfStudy        int    `gorm:"not null" json:"year_of_study"`
	SupervisorName     string `gorm:"size:255;not null" json:"supervisor_name"`
	ExpectedCompletion string `gorm:"size:64" json:"expected_completion"`
	ProgressToDate     string `gorm:"type:text" json:"progress_to_date"`
	Coursework         string `gorm:"type:text;not null" json:"coursework"`
	ObjectiveNextTerm  string `gorm:"type:text" json:"objective_next_term"`
	StudentComments    string `gorm:"type:text" json:"student_comments"`
	StudentSignature   string `gorm:"size:255;not null" json:"student_signature"`
	SignatureDate      string `gorm:"size:64;not null" json:"signature_date"`

	// Supervisor-authored review.
	SelfMotivation      string `gorm:"size:64" json:"self_motivation"`
	ResearchSkills      string `gorm:"size:64" json:"research_skills"`
	ResearchProgress    string `gorm:"size:64" json:"research_progress"`
	OverallPerformance  string `gorm:"size:64" json:"overall_performance"`
	Comments            string `gorm:"type:text" json:"comments"`
	SupervisorSignature string `gorm:"size:255" json:"supervisor_signature"`

	// Director-authored sign-off.
	DirectorComment   string `gorm:"type:text" json:"gpd_comment"`
	DirectorSignature string `gorm:"size:255" json:"gpd_signature"`

	// Workflow position. FeedbackFrom records which role last sent the form
	// back; it is cleared on the next forward transition.
	State        FormState `gorm:"size:32;not null;default:pending" json:"state"`
	FeedbackFrom Role      `gorm:"size:32" json:"feedback_from"`

	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Student    Student    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
	Supervisor Supervisor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"supervisor"`
}

// SupervisorApproved reports whether the form has passed first-stage review.
func (f ProgressForm) SupervisorApproved() bool {
	return f.State.stage() >= FormStateSubmittedBySupervisor.stage()
}

// AssistantApproved reports whether the form has passed second-stage review.
func (f ProgressForm) AssistantApproved() bool {
	return f.State.stage() >= FormStateApprovedByAssistant.stage()
}

// DirectorApproved reports whether the form is fully approved.
func (f ProgressForm) DirectorApproved() bool {
	return f.State == FormStateApprovedByDirector
}

// Terminal reports whether the form accepts no further review actions.
func (f ProgressForm) Terminal() bool { return f.DirectorApproved() }

// ReviewStatus derives the coarse review marker shown on dashboards.
func (f ProgressForm) ReviewStatus() string {
	switch {
	case f.Terminal():
		return ReviewStatusCompleted
	case f.FeedbackFrom != "":
		return ReviewStatusDisapproved
	default:
		return ReviewStatusInProgress
	}
}
