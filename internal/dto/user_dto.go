package dto

import (
	"time"

	"github.com/gradtrack/gradtrack-api/internal/models"
)

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	RoleTitle string    `json:"role_title"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse converts a User model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Role:      string(model.Role),
		RoleTitle: model.Role.Title(),
		CreatedAt: model.CreatedAt,
	}
}

// StudentProfileCreateRequest completes a student account with academic data.
type StudentProfileCreateRequest struct {
	Program     string `json:"program" validate:"required,max=255"`
	Degree      string `json:"degree" validate:"required,max=64"`
	YearOfStudy int    `json:"year_of_study" validate:"required,gte=1,lte=10"`
}

// StaffProfileCreateRequest completes a staff account. Role is the
// registration-form title and selects which staff table receives the row.
type StaffProfileCreateRequest struct {
	Department string `json:"department" validate:"required,max=255"`
	Role       string `json:"role" validate:"required"`
}

// StudentProfileResponse is the student profile view.
type StudentProfileResponse struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	Program     string `json:"program"`
	Degree      string `json:"degree"`
	YearOfStudy int    `json:"year_of_study"`
}

// StaffProfileResponse is the staff profile view, shared by all three staff roles.
type StaffProfileResponse struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"user_id"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

// NewStudentProfileResponse converts a Student model into a DTO.
func NewStudentProfileResponse(model models.Student) StudentProfileResponse {
	return StudentProfileResponse{
		ID:          model.ID,
		UserID:      model.UserID,
		Program:     model.Program,
		Degree:      model.Degree,
		YearOfStudy: model.YearOfStudy,
	}
}
