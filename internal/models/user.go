package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of actors in the review chain. Every branch on a
// Role switches exhaustively; an unknown value is a programming error.
type Role string

const (
	RoleStudent    Role = "student"
	RoleSupervisor Role = "supervisor"
	// RoleAssistant is the graduate program assistant, the second reviewer.
	RoleAssistant Role = "gpa"
	// RoleDirector is the graduate program director, the final signer.
	RoleDirector Role = "gpd"
)

// Valid reports whether the role is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleSupervisor, RoleAssistant, RoleDirector:
		return true
	default:
		return false
	}
}

// Staff reports whether the role reviews forms rather than submits them.
func (r Role) Staff() bool {
	switch r {
	case RoleSupervisor, RoleAssistant, RoleDirector:
		return true
	default:
		return false
	}
}

// Title returns the human-readable title shown on the registration form.
func (r Role) Title() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RoleSupervisor:
		return "Supervisor"
	case RoleAssistant:
		return "Graduate Program Assistant"
	case RoleDirector:
		return "Graduate Program Director"
	default:
		return string(r)
	}
}

// RoleFromTitle maps a registration-form title to its role. Matching is
// case-insensitive and accepts the short role value as well.
func RoleFromTitle(title string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(title)) {
	case "student":
		return RoleStudent, nil
	case "supervisor":
		return RoleSupervisor, nil
	case "graduate program assistant", "gpa":
		return RoleAssistant, nil
	case "graduate program director", "gpd":
		return RoleDirector, nil
	default:
		return "", fmt.Errorf("unknown role title %q", title)
	}
}

// User is an authenticated account. Role-specific data lives in the profile
// tables keyed by UserID.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"size:16;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
