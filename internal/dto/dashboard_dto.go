package dto

// StudentDashboardResponse aggregates everything the student landing page
// needs in a single round trip.
type StudentDashboardResponse struct {
	User        UserResponse            `json:"user"`
	Profile     *StudentProfileResponse `json:"profile"`
	Supervisor  *SupervisorInfoResponse `json:"supervisor"`
	Submissions []FormSummary           `json:"submissions"`
}
