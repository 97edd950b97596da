package condition

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func passthroughAuth(c *fiber.Ctx) error {
	c.Locals("user_id", "user-1")
	return c.Next()
}

func TestConditionHandlers(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM trail_conditions tc`).
		WithArgs("route-1").
		WillReturnRows(pgxmock.NewRows(conditionCols))
	mock.ExpectQuery(`INSERT INTO trail_conditions`).
		WithArgs(pgxmock.AnyArg(), "route-1", "user-1", "mudslide", "", "medium").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	app := fiber.New()
	RegisterRoutes(app.Group("/conditions"), NewService(mock), passthroughAuth)

	req := httptest.NewRequest(http.MethodGet, "/conditions/route/route-1", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}

	body, _ := json.Marshal(Condition{RouteID: "route-1", Type: "mudslide", Severity: "medium"})
	req = httptest.NewRequest(http.MethodPost, "/conditions/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("report status: %v %d", err, resp.StatusCode)
	}
}

func TestConditionHandlersValidation(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/conditions"), NewService(nil), passthroughAuth)

	req := httptest.NewRequest(http.MethodPost, "/conditions/", bytes.NewReader([]byte(`{"severity":"low"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request without route, got %d", resp.StatusCode)
	}
}
