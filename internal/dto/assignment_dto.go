package dto

// AssignRequest creates (or reactivates) an oversight relationship between
// the caller and a profile one level below their role.
type AssignRequest struct {
	TargetID uint `json:"target_id" validate:"required,gt=0"`
}

// SupervisorInfoResponse is the active supervisor resolved for a student.
type SupervisorInfoResponse struct {
	SupervisorID uint   `json:"supervisor_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
}
