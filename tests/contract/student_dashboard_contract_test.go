package contract_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gradtrack/gradtrack-api/internal/dto"
	"github.com/gradtrack/gradtrack-api/internal/handler"
	"github.com/gradtrack/gradtrack-api/internal/models"
	"github.com/gradtrack/gradtrack-api/internal/service"
)

func TestStudentDashboardContract(t *testing.T) {
	schema := compileSchema(t, "student_dashboard.schema.json")

	now := time.Now().UTC()
	response := dto.StudentDashboardResponse{
		User: dto.UserResponse{
			ID:        101,
			Name:      "Ada Umoh",
			Email:     "ada@example.edu",
			Role:      "student",
			RoleTitle: "Student",
			CreatedAt: now.Add(-30 * 24 * time.Hour),
		},
		Profile: &dto.StudentProfileResponse{
			ID:          1,
			UserID:      101,
			Program:     "Computer Science",
			Degree:      "PhD",
			YearOfStudy: 2,
		},
		Supervisor: &dto.SupervisorInfoResponse{
			SupervisorID: 10,
			Name:         "Sam Oduya",
			Email:        "sam@example.edu",
			Department:   "Computing",
		},
		Submissions: []dto.FormSummary{
			{
				ID:           12,
				Term:         "Fall 2026",
				State:        "approved_by_gpd",
				ReviewStatus: "completed",
				CreatedAt:    now.Add(-72 * time.Hour),
			},
			{
				ID:           14,
				Term:         "Winter 2027",
				State:        "pending",
				ReviewStatus: "in_progress",
				CreatedAt:    now,
			},
		},
	}

	actor := service.RoleContext{UserID: 101, Email: "ada@example.edu", Role: models.RoleStudent, ProfileID: 1}
	dashboardHandler := handler.NewDashboardHandler(stubDashboardService{response: response}, stubRoleService{actor: actor}, zerolog.Nop())

	app := fiber.New()
	group := app.Group("/api/v1/dashboard", authenticated(101, "ada@example.edu"))
	dashboardHandler.Register(group)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/student", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	validateBody(t, schema, resp)
}

func TestStudentDashboardContractWithoutOptionalSections(t *testing.T) {
	schema := compileSchema(t, "student_dashboard.schema.json")

	response := dto.StudentDashboardResponse{
		User: dto.UserResponse{
			ID:        102,
			Name:      "Ben Okafor",
			Email:     "ben@example.edu",
			Role:      "student",
			RoleTitle: "Student",
			CreatedAt: time.Now().UTC(),
		},
		Submissions: []dto.FormSummary{},
	}

	actor := service.RoleContext{UserID: 102, Email: "ben@example.edu", Role: models.RoleStudent, ProfileID: 2}
	dashboardHandler := handler.NewDashboardHandler(stubDashboardService{response: response}, stubRoleService{actor: actor}, zerolog.Nop())

	app := fiber.New()
	group := app.Group("/api/v1/dashboard", authenticated(102, "ben@example.edu"))
	dashboardHandler.Register(group)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/student", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	validateBody(t, schema, resp)
}
