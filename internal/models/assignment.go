package models

import "time"

const (
	// AssignmentStatusActive marks the relationship that currently carries
	// oversight responsibility.
	AssignmentStatusActive = "active"
	// AssignmentStatusInactive marks a relationship that has been revoked.
	// Rows are never deleted, only flipped inactive.
	AssignmentStatusInactive = "inactive"
)

// SupervisionAssignment links a student to the supervisor overseeing them.
// An assignee holds at most one active row per relationship level.
type SupervisionAssignment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	StudentID    uint       `gorm:"index;not null" json:"student_id"`
	SupervisorID uint       `gorm:"index;not null" json:"supervisor_id"`
	Status       string     `gorm:"size:16;not null;default:active" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Student      Student    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
	Supervisor   Supervisor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"supervisor"`
}

// AssistantAssignment links a supervisor to the graduate program assistant
// who reviews forms approved by that supervisor.
type AssistantAssignment struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	SupervisorID uint             `gorm:"index;not null" json:"supervisor_id"`
	AssistantID  uint             `gorm:"index;not null" json:"assistant_id"`
	Status       string           `gorm:"size:16;not null;default:active" json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Supervisor   Supervisor       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"supervisor"`
	Assistant    ProgramAssistant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assistant"`
}

// DirectorAssignment links a graduate program assistant to the program
// director who signs off on the forms that assistant has approved.
type DirectorAssignment struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	AssistantID uint             `gorm:"index;not null" json:"assistant_id"`
	DirectorID  uint             `gorm:"index;not null" json:"director_id"`
	Status      string           `gorm:"size:16;not null;default:active" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Assistant   ProgramAssistant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assistant"`
	Director    ProgramDirector  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"director"`
}

// Active reports whether the relationship currently carries oversight.
func (a SupervisionAssignment) Active() bool { return a.Status == AssignmentStatusActive }

// Active reports whether the relationship currently carries oversight.
func (a AssistantAssignment) Active() bool { return a.Status == AssignmentStatusActive }

// Active reports whether the relationship currently carries oversight.
func (a DirectorAssignment) Active() bool { return a.Status == AssignmentStatusActive }
