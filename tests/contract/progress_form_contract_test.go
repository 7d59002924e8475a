package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/gradtrack/gradtrack-api/internal/dto"
	"github.com/gradtrack/gradtrack-api/internal/handler"
	"github.com/gradtrack/gradtrack-api/internal/models"
	"github.com/gradtrack/gradtrack-api/internal/service"
)

type stubRoleService struct {
	actor service.RoleContext
}

func (s stubRoleService) Resolve(context.Context, service.Identity) (service.RoleContext, error) {
	return s.actor, nil
}

func (s stubRoleService) AuthorizeUser(context.Context, service.Identity, uint) (models.User, error) {
	return models.User{ID: s.actor.UserID, Email: s.actor.Email, Role: s.actor.Role}, nil
}

type stubFormService struct {
	service.FormService
	response dto.FormResponse
}

func (s stubFormService) Get(context.Context, service.RoleContext, uint) (dto.FormResponse, error) {
	return s.response, nil
}

type stubDashboardService struct {
	response dto.StudentDashboardResponse
}

func (s stubDashboardService) GetStudentDashboard(context.Context, service.RoleContext) (dto.StudentDashboardResponse, error) {
	return s.response, nil
}

func (s stubDashboardService) InvalidateStudentDashboard(context.Context, uint) {}

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()

	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", name))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)
	return schema
}

func authenticated(userID uint, email string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("user_email", email)
		c.Locals("user_role", "student")
		return c.Next()
	}
}

func validateBody(t *testing.T, schema *jsonschema.Schema, resp *http.Response) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}

func TestProgressFormContract(t *testing.T) {
	schema := compileSchema(t, "progress_form.schema.json")

	now := time.Now().UTC()
	response := dto.FormResponse{
		ID:                  12,
		StudentID:           1,
		SupervisorID:        10,
		Term:                "Fall 2026",
		StartTerm:           "Fall 2024",
		Program:             "Computer Science",
		Degree:              "PhD",
		YearOfStudy:         2,
		SupervisorName:      "Dr. Sam Oduya",
		ExpectedCompletion:  "Spring 2028",
		ProgressToDate:      "Completed comprehensive exam",
		Coursework:          "CS 8803, CS 7641",
		ObjectiveNextTerm:   "Draft proposal chapter",
		StudentComments:     "On track",
		StudentSignature:    "Ada Umoh",
		SignatureDate:       "2026-08-20",
		SelfMotivation:      "excellent",
		ResearchSkills:      "good",
		ResearchProgress:    "good",
		OverallPerformance:  "excellent",
		Comments:            "Strong semester",
		SupervisorSignature: "Sam Oduya",
		State:               "submitted_by_supervisor",
		FeedbackFrom:        "",
		ReviewStatus:        "in_progress",
		SupervisorApproved:  true,
		CreatedAt:           now.Add(-72 * time.Hour),
		UpdatedAt:           now,
		Student: &dto.PartyLite{
			ID:    1,
			Name:  "Ada Umoh",
			Email: "ada@example.edu",
		},
		Supervisor: &dto.PartyLite{
			ID:         10,
			Name:       "Sam Oduya",
			Email:      "sam@example.edu",
			Department: "Computing",
		},
	}

	actor := service.RoleContext{UserID: 101, Email: "ada@example.edu", Role: models.RoleStudent, ProfileID: 1}
	forms := stubFormService{response: response}
	formHandler := handler.NewFormHandler(forms, stubRoleService{actor: actor}, stubDashboardService{}, zerolog.Nop())

	app := fiber.New()
	group := app.Group("/api/v1/forms", authenticated(101, "ada@example.edu"))
	formHandler.Register(group)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/forms/12", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	validateBody(t, schema, resp)
}
