package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/keerthireddymada/plan-her-new/internal/db"
	"github.com/keerthireddymada/plan-her-new/internal/services"
	"github.com/rs/zerolog"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "planher-api-test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	handler := NewHandler(database, "test-secret-key", time.UTC, services.RetrainConfig{
		Threshold:     10,
		AccuracyFloor: 0.7,
	}, zerolog.Nop())

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func jsonRequest(method string, path string, body string, token string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return request
}

func doRequest(t *testing.T, app *fiber.App, request *http.Request) (int, map[string]any) {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}

	payload := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("decode response %q: %v", string(raw), err)
		}
	}
	return response.StatusCode, payload
}

func registerAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	body := fmt.Sprintf(`{"email":%q,"password":"strongpass","name":"Test"}`, email)
	status, payload := doRequest(t, app, jsonRequest(http.MethodPost, "/api/auth/register", body, ""))
	if status != http.StatusCreated {
		t.Fatalf("register status = %d, payload %v", status, payload)
	}
	token, _ := payload["access_token"].(string)
	if token == "" {
		t.Fatal("register response missing access_token")
	}
	return token
}

func createTestProfile(t *testing.T, app *fiber.App, token string) {
	t.Helper()

	body := `{
		"height_cm": 165, "weight_kg": 60,
		"cycle_length": 28, "luteal_length": 14, "menses_length": 5,
		"number_of_peak": 1,
		"period_regularity": "regular", "period_description": "usual"
	}`
	status, payload := doRequest(t, app, jsonRequest(http.MethodPost, "/api/profiles/me", body, token))
	if status != http.StatusCreated {
		t.Fatalf("create profile status = %d, payload %v", status, payload)
	}
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)

	status, payload := doRequest(t, app, jsonRequest(http.MethodGet, "/healthz", "", ""))
	if status != http.StatusOK {
		t.Fatalf("healthz status = %d", status)
	}
	if payload["status"] != "ok" {
		t.Fatalf("healthz payload = %v", payload)
	}
}

func TestRegisterValidationAndDuplicates(t *testing.T) {
	app := newTestApp(t)

	status, _ := doRequest(t, app, jsonRequest(http.MethodPost, "/api/auth/register",
		`{"email":"not-an-email","password":"strongpass"}`, ""))
	if status != http.StatusBadRequest {
		t.Fatalf("bad email status = %d, want 400", status)
	}

	status, _ = doRequest(t, app, jsonRequest(http.MethodPost, "/api/auth/register",
		`{"email":"short@example.com","password":"tiny"}`, ""))
	if status != http.StatusBadRequest {
		t.Fatalf("short password status = %d, want 400", status)
	}

	registerAndLogin(t, app, "dup@example.com")
	status, _ = doRequest(t, app, jsonRequest(http.MethodPost, "/api/auth/register",
		`{"email":"dup@example.com","password":"strongpass"}`, ""))
	if status != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", status)
	}
}

func TestLoginAndMe(t *testing.T) {
	app := newTestApp(t)
	registerAndLogin(t, app, "login@example.com")

	status, payload := doRequest(t, app, jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"login@example.com","password":"strongpass"}`, ""))
	if status != http.StatusOK {
		t.Fatalf("login status = %d, payload %v", status, payload)
	}
	token, _ := payload["access_token"].(string)

	status, payload = doRequest(t, app, jsonRequest(http.MethodGet, "/api/auth/me", "", token))
	if status != http.StatusOK {
		t.Fatalf("me status = %d", status)
	}
	if payload["email"] != "login@example.com" {
		t.Fatalf("me payload = %v", payload)
	}

	status, _ = doRequest(t, app, jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"login@example.com","password":"wrongpass"}`, ""))
	if status != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", status)
	}
}

func TestAuthRequiredRejectsMissingAndBadTokens(t *testing.T) {
	app := newTestApp(t)

	status, _ := doRequest(t, app, jsonRequest(http.MethodGet, "/api/profiles/me", "", ""))
	if status != http.StatusUnauthorized {
		t.Fatalf("missing token status = %d, want 401", status)
	}

	status, _ = doRequest(t, app, jsonRequest(http.MethodGet, "/api/profiles/me", "", "not.a.token"))
	if status != http.StatusUnauthorized {
		t.Fatalf("garbage token status = %d, want 401", status)
	}
}

func TestProfileLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "profile@example.com")

	status, _ := doRequest(t, app, jsonRequest(http.MethodGet, "/api/profiles/me", "", token))
	if status != http.StatusNotFound {
		t.Fatalf("profile before create status = %d, want 404", status)
	}

	createTestProfile(t, app, token)

	status, _ = doRequest(t, app, jsonRequest(http.MethodPost, "/api/profiles/me", `{
		"height_cm": 165, "weight_kg": 60,
		"cycle_length": 28, "luteal_length": 14, "menses_length": 5,
		"number_of_peak": 1,
		"period_regularity": "regular", "period_description": "usual"
	}`, token))
	if status != http.StatusConflict {
		t.Fatalf("second create status = %d, want 409", status)
	}

	status, payload := doRequest(t, app, jsonRequest(http.MethodPut, "/api/profiles/me", `{
		"height_cm": 170, "weight_kg": 62,
		"cycle_length": 30, "luteal_length": 14, "menses_length": 5,
		"number_of_peak": 1,
		"period_regularity": "irregular", "period_description": "usual"
	}`, token))
	if status != http.StatusOK {
		t.Fatalf("update status = %d, payload %v", status, payload)
	}
	if payload["cycle_length"] != float64(30) {
		t.Fatalf("updated cycle_length = %v, want 30", payload["cycle_length"])
	}

	status, payload = doRequest(t, app, jsonRequest(http.MethodPut, "/api/profiles/me", `{
		"height_cm": 170, "weight_kg": 62,
		"cycle_length": 28, "luteal_length": 28, "menses_length": 5,
		"number_of_peak": 1,
		"period_regularity": "regular", "period_description": "usual"
	}`, token))
	if status != http.StatusBadRequest {
		t.Fatalf("invalid luteal length status = %d, payload %v", status, payload)
	}
}

func TestPeriodLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "period@example.com")

	status, payload := doRequest(t, app, jsonRequest(http.MethodPost, "/api/periods",
		`{"start_date":"2024-01-01","end_date":"2024-01-05"}`, token))
	if status != http.StatusCreated {
		t.Fatalf("create period status = %d, payload %v", status, payload)
	}
	recordID := int(payload["id"].(float64))

	status, _ = doRequest(t, app, jsonRequest(http.MethodPost, "/api/periods",
		`{"start_date":"2024-01-01"}`, token))
	if status != http.StatusConflict {
		t.Fatalf("duplicate start status = %d, want 409", status)
	}

	status, _ = doRequest(t, app, jsonRequest(http.MethodPost, "/api/periods",
		`{"start_date":"2024-01-10","end_date":"2024-01-08"}`, token))
	if status != http.StatusBadRequest {
		t.Fatalf("inverted range status = %d, want 400", status)
	}

	status, payload = doRequest(t, app, jsonRequest(http.MethodGet,
		fmt.Sprintf("/api/periods/%d", recordID), "", token))
	if status != http.StatusOK {
		t.Fatalf("get period status = %d", status)
	}
	if payload["start_date"] == nil {
		t.Fatalf("get period payload = %v", payload)
	}

	status, _ = doRequest(t, app, jsonRequest(http.MethodDelete,
		fmt.Sprintf("/api/periods/%d", recordID), "", token))
	if status != http.StatusNoContent {
		t.Fatalf("delete period status = %d, want 204", status)
	}

	status, _ = doRequest(t, app, jsonRequest(http.MethodGet,
		fmt.Sprintf("/api/periods/%d", recordID), "", token))
	if status != http.StatusNotFound {
		t.Fatalf("get deleted period status = %d, want 404", status)
	}
}

func TestMoodLifecycleCachesDayOfCycle(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "mood@example.com")
	createTestProfile(t, app, token)

	status, _ := doRequest(t, app, jsonRequest(http.MethodPost, "/api/periods",
		`{"start_date":"2024-01-01"}`, token))
	if status != http.StatusCreated {
		t.Fatalf("create period status = %d", status)
	}

	status, payload := doRequest(t, app, jsonRequest(http.MethodPost, "/api/moods",
		`{"date":"2024-01-03","energy_level":1,"mood":"Calm","symptoms":"Cramps"}`, token))
	if status != http.StatusCreated {
		t.Fatalf("create mood status = %d, payload %v", status, payload)
	}
	if payload["day_of_cycle"] != float64(3) {
		t.Fatalf("day_of_cycle = %v, want 3", payload["day_of_cycle"])
	}

	status, _ = doRequest(t, app, jsonRequest(http.MethodPost, "/api/moods",
		`{"date":"2024-01-03","energy_level":2}`, token))
	if status != http.StatusConflict {
		t.Fatalf("duplicate date status = %d, want 409", status)
	}

	status, _ = doRequest(t, app, jsonRequest(http.MethodPost, "/api/moods",
		`{"date":"2024-01-04","energy_level":7}`, token))
	if status != http.StatusBadRequest {
		t.Fatalf("invalid energy status = %d, want 400", status)
	}

	status, _ = doRequest(t, app, jsonRequest(http.MethodPost, "/api/moods",
		`{"date":"2024-01-04","energy_level":1,"mood":"Ecstatic"}`, token))
	if status != http.StatusBadRequest {
		t.Fatalf("unknown mood status = %d, want 400", status)
	}
}

func TestMoodWithoutCycleAnchorLeavesDayEmpty(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "gap@example.com")
	createTestProfile(t, app, token)

	status, payload := doRequest(t, app, jsonRequest(http.MethodPost, "/api/moods",
		`{"date":"2024-01-03","energy_level":1}`, token))
	if status != http.StatusCreated {
		t.Fatalf("create mood status = %d, payload %v", status, payload)
	}
	if payload["day_of_cycle"] != nil {
		t.Fatalf("day_of_cycle = %v, want null without any period", payload["day_of_cycle"])
	}
}

func TestCurrentPredictionFallsBackWithoutModels(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "predict@example.com")
	createTestProfile(t, app, token)

	status, _ := doRequest(t, app, jsonRequest(http.MethodPost, "/api/periods",
		`{"start_date":"2024-01-01"}`, token))
	if status != http.StatusCreated {
		t.Fatalf("create period status = %d", status)
	}

	status, payload := doRequest(t, app, jsonRequest(http.MethodGet,
		"/api/predictions/current?target_date=2024-01-03", "", token))
	if status != http.StatusOK {
		t.Fatalf("current prediction status = %d, payload %v", status, payload)
	}
	if payload["day_of_cycle"] != float64(3) {
		t.Fatalf("day_of_cycle = %v, want 3", payload["day_of_cycle"])
	}
	if payload["cycle_phase"] != "Menses" {
		t.Fatalf("cycle_phase = %v, want Menses", payload["cycle_phase"])
	}
	if payload["confidence_score"] != 0.5 {
		t.Fatalf("confidence_score = %v, want the fallback 0.5", payload["confidence_score"])
	}
}

func TestCurrentPredictionWithoutProfile(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "noprofile@example.com")

	status, _ := doRequest(t, app, jsonRequest(http.MethodGet, "/api/predictions/current", "", token))
	if status != http.StatusNotFound {
		t.Fatalf("prediction without profile status = %d, want 404", status)
	}
}

func TestRetrainWithoutDataReportsInsufficient(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "retrain@example.com")
	createTestProfile(t, app, token)

	status, payload := doRequest(t, app, jsonRequest(http.MethodPost, "/api/predictions/retrain", "", token))
	if status != http.StatusOK {
		t.Fatalf("retrain status = %d, payload %v", status, payload)
	}
	results, ok := payload["results"].(map[string]any)
	if !ok || len(results) != 3 {
		t.Fatalf("retrain results = %v, want 3 model outcomes", payload["results"])
	}
	for modelType, raw := range results {
		outcome := raw.(map[string]any)
		if outcome["trained"] != false || outcome["message"] != "insufficient data" {
			t.Fatalf("%s outcome = %v, want insufficient data", modelType, outcome)
		}
	}
}

func TestModelStatusWithoutModels(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "status@example.com")

	status, payload := doRequest(t, app, jsonRequest(http.MethodGet, "/api/predictions/model-status", "", token))
	if status != http.StatusOK {
		t.Fatalf("model status = %d", status)
	}
	statuses, ok := payload["models"].(map[string]any)
	if !ok {
		t.Fatalf("missing models block: %v", payload)
	}
	for _, modelType := range []string{"energy", "mood", "symptom"} {
		entry, ok := statuses[modelType].(map[string]any)
		if !ok {
			t.Fatalf("missing status for %q: %v", modelType, payload)
		}
		if entry["has_model"] != false {
			t.Fatalf("%s has_model = %v, want false", modelType, entry["has_model"])
		}
	}
	if payload["trained_versions"] != float64(0) {
		t.Fatalf("trained_versions = %v, want 0", payload["trained_versions"])
	}
}

func TestSevenDayPlanDegradesWithoutModels(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "plan@example.com")

	status, payload := doRequest(t, app, jsonRequest(http.MethodGet, "/api/predictions/7-day-plan", "", token))
	if status != http.StatusOK {
		t.Fatalf("plan status = %d, payload %v", status, payload)
	}
	plan, ok := payload["plan"].([]any)
	if !ok || len(plan) != 7 {
		t.Fatalf("plan = %v, want 7 entries", payload["plan"])
	}
	first := plan[0].(map[string]any)
	if first["predicted_energy_level"] != "N/A" || first["predicted_mood"] != "N/A" {
		t.Fatalf("degraded entry = %v, want N/A signals", first)
	}
}

func TestCycleStatisticsEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "stats@example.com")
	createTestProfile(t, app, token)

	for _, start := range []string{"2024-01-01", "2024-01-29", "2024-02-28"} {
		status, _ := doRequest(t, app, jsonRequest(http.MethodPost, "/api/periods",
			fmt.Sprintf(`{"start_date":%q}`, start), token))
		if status != http.StatusCreated {
			t.Fatalf("create period %s status = %d", start, status)
		}
	}

	status, payload := doRequest(t, app, jsonRequest(http.MethodGet, "/api/insights/cycle-statistics", "", token))
	if status != http.StatusOK {
		t.Fatalf("statistics status = %d, payload %v", status, payload)
	}
	if payload["total_periods"] != float64(3) {
		t.Fatalf("total_periods = %v, want 3", payload["total_periods"])
	}
	if payload["average_cycle_length"] != float64(29) {
		t.Fatalf("average_cycle_length = %v, want 29", payload["average_cycle_length"])
	}
}

func TestPredictionHistoryValidatesRange(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "history@example.com")

	status, _ := doRequest(t, app, jsonRequest(http.MethodGet,
		"/api/predictions/history?start_date=2024-02-01&end_date=2024-01-01", "", token))
	if status != http.StatusBadRequest {
		t.Fatalf("inverted history range status = %d, want 400", status)
	}

	status, payload := doRequest(t, app, jsonRequest(http.MethodGet,
		"/api/predictions/history?start_date=2024-01-01&end_date=2024-01-10", "", token))
	if status != http.StatusOK {
		t.Fatalf("history status = %d", status)
	}
	history, ok := payload["history"].([]any)
	if !ok {
		t.Fatalf("history payload = %v", payload)
	}
	// No models and no data: every day is skipped, never an error.
	if len(history) != 0 {
		t.Fatalf("history = %d entries, want 0", len(history))
	}
}
