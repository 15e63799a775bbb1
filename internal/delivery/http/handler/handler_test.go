package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"facility-registry/internal/delivery/http/handler"
	"facility-registry/internal/delivery/http/middleware"
	"facility-registry/internal/delivery/http/routes"
	"facility-registry/internal/domain/facility"
	"facility-registry/internal/pkg/jwt"
	"facility-registry/internal/pkg/metrics"
	"facility-registry/internal/usecase"
	ucauth "facility-registry/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAutocomplete struct {
	got usecase.AutocompleteParams
	res usecase.AutocompleteResult
	err error
}

func (f *fakeAutocomplete) Search(_ context.Context, p usecase.AutocompleteParams) (usecase.AutocompleteResult, error) {
	f.got = p
	return f.res, f.err
}

type fakeSuggestions struct {
	in        usecase.SubmitSuggestionInput
	err       error
	processID int64
	action    string
}

func (f *fakeSuggestions) Submit(_ context.Context, in usecase.SubmitSuggestionInput) (usecase.SubmitSuggestionResult, error) {
	f.in = in
	if f.err != nil {
		return usecase.SubmitSuggestionResult{}, f.err
	}
	return usecase.SubmitSuggestionResult{ID: 7, MasterID: "North Ranch"}, nil
}

func (f *fakeSuggestions) List(context.Context, string) ([]facility.SuggestedEdit, error) {
	payload := `{"operator":{"name":"A"}}`
	return []facility.SuggestedEdit{{ID: 1, MasterID: "m", EditedJSONData: &payload, Status: facility.StatusPending}}, nil
}

func (f *fakeSuggestions) Process(_ context.Context, id int64, action string) (string, error) {
	f.processID, f.action = id, action
	return "Submission approved and published", f.err
}

type fakeMaster struct{}

func (fakeMaster) ListProjects(context.Context) (map[string]usecase.MasterProject, error) {
	return map[string]usecase.MasterProject{
		"record-3": {Name: "record-3", Data: json.RawMessage(`{"a":1}`), Timestamp: json.RawMessage(`"2024-01-01"`), CurrentFacilityIndex: json.RawMessage("0")},
	}, nil
}

func (fakeMaster) Save(_ context.Context, name string, _ json.RawMessage) (string, error) {
	return fmt.Sprintf("Project '%s' saved to master database", name), nil
}

func (fakeMaster) Delete(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: %w", usecase.ErrNotFound, &usecase.MessageError{Kind: usecase.ErrNotFound, Message: "Project not found in master database"})
}

type fakeAuth struct{ jwt jwt.Service }

func (f fakeAuth) Login(_ context.Context, in ucauth.LoginInput) (usecase.AdminSession, error) {
	if in.Username != "admin" || in.Password != "pw" {
		return usecase.AdminSession{}, usecase.ErrUnauthorized
	}
	tok, exp, err := f.jwt.GenerateAdminToken("admin")
	return usecase.AdminSession{Username: "admin", AccessToken: tok, ExpiresAt: exp}, err
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type testEnv struct {
	app         *fiber.App
	auto        *fakeAutocomplete
	suggestions *fakeSuggestions
	jwt         jwt.Service
}

func newEnv(t *testing.T, production bool, dbErr error) *testEnv {
	t.Helper()
	env := &testEnv{
		auto:        &fakeAutocomplete{},
		suggestions: &fakeSuggestions{},
		jwt:         jwt.NewHMACService("test-secret", time.Hour, "test"),
	}

	errMw := middleware.NewErrorMiddleware(nil, production)
	app := fiber.New(fiber.Config{ErrorHandler: errMw.Handle})
	app.Use(errMw.Middleware())

	m := metrics.New(false)
	reg := &routes.Registry{
		Health:       handler.NewHealthHandler(pinger{err: dbErr}, nil),
		Autocomplete: handler.NewAutocompleteHandler(env.auto),
		Master:       handler.NewMasterHandler(fakeMaster{}),
		Suggestion:   handler.NewSuggestionHandler(env.suggestions),
		Auth:         handler.NewAuthHandler(fakeAuth{jwt: env.jwt}),
		AdminAuth:    middleware.NewAdminAuth(env.jwt),
		Metrics:      m,
	}
	reg.Register(app)
	env.app = app
	return env
}

func (e *testEnv) do(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &out), string(body))
	}
	return resp.StatusCode, out
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	tok, _, err := e.jwt.GenerateAdminToken("admin")
	require.NoError(t, err)
	return tok
}

func TestAutocomplete_Success(t *testing.T) {
	env := newEnv(t, false, nil)
	env.auto.res = usecase.AutocompleteResult{Values: []string{"Acme Group"}, Count: 1}

	status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/autocomplete?category=operator&q=acme&limit=7abc", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []any{"Acme Group"}, body["values"])
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, usecase.AutocompleteParams{Category: "operator", Query: "acme", Limit: 7}, env.auto.got)
}

func TestAutocomplete_LegacyPathAndEmptyValues(t *testing.T) {
	env := newEnv(t, false, nil)

	status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/get-autocomplete?category=role", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, body["values"])
	assert.EqualValues(t, 0, body["count"])
}

func TestAutocomplete_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		production bool
		status     int
		message    string
		details    any
	}{
		{usecase.ErrMissingCategory, false, 400, "Missing category parameter", nil},
		{fmt.Errorf("%w: %q", usecase.ErrUnsupportedCategory, "x"), false, 400, "Unsupported category parameter", nil},
		{fmt.Errorf("%w: read master payloads: %w", usecase.ErrStorage, errors.New("connection refused")), false, 500, "Database error occurred", "read master payloads: connection refused"},
		{fmt.Errorf("%w: read master payloads: %w", usecase.ErrStorage, errors.New("connection refused")), true, 500, "Database error occurred", "Check server logs"},
		{fmt.Errorf("%w: boom", usecase.ErrInternal), true, 500, "Server error occurred", "Check server logs"},
	}
	for _, tt := range tests {
		env := newEnv(t, tt.production, nil)
		env.auto.err = tt.err

		status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/autocomplete?category=x", nil))
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tt.message, body["error"])
		if tt.details == nil {
			assert.NotContains(t, body, "details")
		} else if tt.production {
			assert.Equal(t, tt.details, body["details"])
		} else {
			assert.Contains(t, body["details"], tt.details)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	env := newEnv(t, false, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/autocomplete", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", "GET")

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", resp.Header.Get("Access-Control-Allow-Headers"))
}

func TestAutocompleteAnswersAnyOptions(t *testing.T) {
	env := newEnv(t, false, nil)
	for _, path := range []string{"/api/autocomplete", "/api/get-autocomplete"} {
		resp, err := env.app.Test(httptest.NewRequest(http.MethodOptions, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode, path)

		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "https://example.org")
		resp, err = env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode, path)
	}
}

func TestWritableRoutesKeepFullCORS(t *testing.T) {
	env := newEnv(t, false, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/save-suggestion", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func TestMasterData(t *testing.T) {
	env := newEnv(t, false, nil)
	status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/master-data", nil))
	require.Equal(t, http.StatusOK, status)

	projects := body["projects"].(map[string]any)
	p := projects["record-3"].(map[string]any)
	assert.Equal(t, "record-3", p["name"])
	assert.Equal(t, map[string]any{"a": float64(1)}, p["data"])
	assert.EqualValues(t, 0, p["currentFacilityIndex"])
}

func TestSubmitSuggestion(t *testing.T) {
	env := newEnv(t, false, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/save-suggestion", strings.NewReader(`{"data":{},"reason":"r"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.1")
	req.Header.Set("X-Real-IP", "10.0.0.9")

	status, body := env.do(t, req)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Suggestion submitted successfully", body["message"])
	assert.EqualValues(t, 7, body["suggestion_id"])
	assert.Equal(t, "North Ranch", body["master_id"])
	assert.Equal(t, "198.51.100.4", env.suggestions.in.SubmitterIP)
	assert.JSONEq(t, `{"data":{},"reason":"r"}`, string(env.suggestions.in.Body))
}

func TestSubmitSuggestion_ValidationMessage(t *testing.T) {
	env := newEnv(t, false, nil)
	env.suggestions.err = fmt.Errorf("wrapped: %w", &usecase.MessageError{Kind: usecase.ErrInvalidInput, Message: "Reason is required"})

	status, body := env.do(t, httptest.NewRequest(http.MethodPost, "/api/suggestions", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Reason is required", body["error"])
}

func TestAdminLoginAndProtectedRoutes(t *testing.T) {
	env := newEnv(t, false, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"username":"admin","password":"bad"}`))
	req.Header.Set("Content-Type", "application/json")
	status, body := env.do(t, req)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid username or password", body["error"])

	req = httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"username":"admin","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	status, body = env.do(t, req)
	require.Equal(t, http.StatusOK, status)
	token := body["access_token"].(string)
	assert.NotEmpty(t, token)

	status, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/api/admin/suggestions", nil))
	assert.Equal(t, http.StatusUnauthorized, status)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/suggestions?status=all", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	status, body = env.do(t, req)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["count"])
	first := body["suggestions"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"operator": map[string]any{"name": "A"}}, first["edited_json_data"])
}

func TestProcessSuggestion_AcceptsStringID(t *testing.T) {
	env := newEnv(t, false, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/suggestions/process", strings.NewReader(`{"id":"12","action":"approve"}`))
	req.Header.Set("Authorization", "Bearer "+env.adminToken(t))

	status, body := env.do(t, req)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Submission approved and published", body["message"])
	assert.EqualValues(t, 12, env.suggestions.processID)
	assert.Equal(t, "approve", env.suggestions.action)
}

func TestAdminMaster(t *testing.T) {
	env := newEnv(t, false, nil)
	token := env.adminToken(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/master", strings.NewReader(`{"action":"save","projectName":"P","data":{"x":1}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	status, body := env.do(t, req)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Project 'P' saved to master database", body["message"])

	req = httptest.NewRequest(http.MethodPost, "/api/admin/master", strings.NewReader(`{"action":"delete","projectName":"P"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	status, body = env.do(t, req)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Project not found in master database", body["error"])

	req = httptest.NewRequest(http.MethodPost, "/api/admin/master", strings.NewReader(`{"action":"purge","projectName":"P"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	status, _ = env.do(t, req)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHealth(t *testing.T) {
	status, body := newEnv(t, false, nil).do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body = newEnv(t, true, errors.New("db down")).do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "Database unavailable", body["error"])
	assert.Equal(t, "Check server logs", body["details"])
}

func TestMetricsEndpoint(t *testing.T) {
	env := newEnv(t, false, nil)
	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
