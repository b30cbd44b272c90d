package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ms1708/academy-portal/internal/api/http/handlers"
	"github.com/ms1708/academy-portal/internal/backend"
	"github.com/ms1708/academy-portal/internal/config"
	"github.com/ms1708/academy-portal/internal/domain"
	"github.com/ms1708/academy-portal/internal/draft"
	"github.com/ms1708/academy-portal/internal/errorlog"
	"github.com/ms1708/academy-portal/internal/events"
	"github.com/ms1708/academy-portal/internal/observability"
	"github.com/ms1708/academy-portal/internal/session"
	"github.com/ms1708/academy-portal/internal/storage"
	"github.com/ms1708/academy-portal/internal/wizard"
)

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

// newPortalApp wires the full portal against a fake backend.
func newPortalApp(t *testing.T, backendHandler http.Handler) (*fiber.App, *errorlog.Log) {
	t.Helper()
	srv := httptest.NewServer(backendHandler)
	t.Cleanup(srv.Close)

	logger := zap.NewNop()
	store := storage.NewMemoryStore()
	dispatcher := events.NewInMemoryDispatcher()
	errs := errorlog.New(store, config.ErrorLogConfig{}, logger)
	gateway := backend.NewClient(config.BackendConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, logger)
	sessions := session.NewStore(gateway, store, dispatcher, errs, logger)

	applicationDrafts := draft.NewStore(storage.KeyApplicationData, store, logger)
	onboardingDrafts := draft.NewStore(storage.KeyOnboardingData, store, logger)
	application := wizard.NewApplication(applicationDrafts, gateway, dispatcher, errs)
	onboarding := wizard.NewOnboarding(onboardingDrafts, gateway, dispatcher, errs)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:      handlers.NewHealthHandler("academy-portal", "test"),
		Auth:        handlers.NewAuthHandler(sessions),
		Application: handlers.NewApplicationHandler(application),
		Onboarding:  handlers.NewOnboardingHandler(onboarding),
		Logs:        handlers.NewLogsHandler(errs),
	})
	return app, errs
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 && resp.Header.Get(fiber.HeaderContentType) != fiber.MIMETextPlainCharsetUTF8 {
		require.NoError(t, json.Unmarshal(data, &decoded), "body: %s", data)
	}
	return resp, decoded
}

func errorCode(body map[string]interface{}) string {
	errObj, _ := body["error"].(map[string]interface{})
	code, _ := errObj["code"].(string)
	return code
}

func TestHealthLive(t *testing.T) {
	app, _ := newPortalApp(t, http.NotFoundHandler())

	resp, body := doJSON(t, app, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])
}

func TestLoginValidatesPayload(t *testing.T) {
	app, _ := newPortalApp(t, http.NotFoundHandler())

	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", map[string]string{"email": "a@b.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BAD_REQUEST", errorCode(body))
}

func TestLoginRoundTrip(t *testing.T) {
	token := mintToken(t, time.Now().Add(time.Hour))
	backendHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		user := domain.User{ID: "u-1", Email: "a@b.com", Role: domain.UserRoleStudent}
		resp := map[string]interface{}{"data": map[string]interface{}{
			"user":         user,
			"token":        token,
			"refreshToken": "refresh-1",
		}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})
	app, _ := newPortalApp(t, backendHandler)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", map[string]string{
		"email": "a@b.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "a@b.com", user["email"])

	resp, body = doJSON(t, app, http.MethodGet, "/auth/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, true, data["authenticated"])
}

func TestLoginMapsAuthFailure(t *testing.T) {
	backendHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"invalid credentials"}`)
	})
	app, _ := newPortalApp(t, backendHandler)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", map[string]string{
		"email": "a@b.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "AUTH_BAD_CREDENTIALS", errorCode(body))
}

func TestLoginMapsBackendOutage(t *testing.T) {
	logger := zap.NewNop()
	store := storage.NewMemoryStore()
	gateway := backend.NewClient(config.BackendConfig{BaseURL: "http://127.0.0.1:1", TimeoutSeconds: 1}, logger)
	errs := errorlog.New(store, config.ErrorLogConfig{}, logger)
	sessions := session.NewStore(gateway, store, events.NewInMemoryDispatcher(), errs, logger)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:      handlers.NewHealthHandler("academy-portal", "test"),
		Auth:        handlers.NewAuthHandler(sessions),
		Application: handlers.NewApplicationHandler(newIdleApplication(t, store)),
		Onboarding:  handlers.NewOnboardingHandler(newIdleOnboarding(t, store)),
		Logs:        handlers.NewLogsHandler(errs),
	})

	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", map[string]string{
		"email": "a@b.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "BACKEND_UNAVAILABLE", errorCode(body))
}

func newIdleApplication(t *testing.T, store storage.Store) *wizard.Application {
	t.Helper()
	logger := zap.NewNop()
	gateway := backend.NewClient(config.BackendConfig{BaseURL: "http://127.0.0.1:1", TimeoutSeconds: 1}, logger)
	errs := errorlog.New(storage.NewMemoryStore(), config.ErrorLogConfig{}, logger)
	return wizard.NewApplication(draft.NewStore(storage.KeyApplicationData, store, logger), gateway, events.NewInMemoryDispatcher(), errs)
}

func newIdleOnboarding(t *testing.T, store storage.Store) *wizard.Onboarding {
	t.Helper()
	logger := zap.NewNop()
	gateway := backend.NewClient(config.BackendConfig{BaseURL: "http://127.0.0.1:1", TimeoutSeconds: 1}, logger)
	errs := errorlog.New(storage.NewMemoryStore(), config.ErrorLogConfig{}, logger)
	return wizard.NewOnboarding(draft.NewStore(storage.KeyOnboardingData, store, logger), gateway, events.NewInMemoryDispatcher(), errs)
}

func TestApplicationAdvanceValidation(t *testing.T) {
	app, _ := newPortalApp(t, http.NotFoundHandler())

	resp, body := doJSON(t, app, http.MethodPost, "/application/advance", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	errObj := body["error"].(map[string]interface{})
	details := errObj["details"].(map[string]interface{})
	assert.Equal(t, "additional-info", details["step"])
	assert.Equal(t, "maritalStatus", details["field"])
}

func TestApplicationUpdateThenAdvance(t *testing.T) {
	app, _ := newPortalApp(t, http.NotFoundHandler())

	resp, body := doJSON(t, app, http.MethodPut, "/application/", map[string]interface{}{
		"additionalInfo": map[string]string{"maritalStatus": "single"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["currentStep"])

	resp, body = doJSON(t, app, http.MethodPost, "/application/advance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["currentStep"])
	assert.Equal(t, "education-work", data["stepName"])

	resp, body = doJSON(t, app, http.MethodPost, "/application/retreat", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["currentStep"])
}

func TestOnboardingSubmitAndDuplicate(t *testing.T) {
	backendHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Student/CreateStudentDetails", r.URL.Path)
		w.Write([]byte(`{"success":true}`))
	})
	app, _ := newPortalApp(t, backendHandler)

	resp, _ := doJSON(t, app, http.MethodPut, "/onboarding/", map[string]interface{}{
		"student": map[string]string{
			"firstName": "Thandi", "lastName": "Dlovu", "idNumber": "9901015800087",
			"dateOfBirth": "1999-01-01", "contactNumber": "0820000000", "email": "a@b.com",
		},
		"studentAdditionalDetails": map[string]string{
			"homeLanguage": "isiZulu", "citizenship": "South African",
			"homeAddress": "12 Short St", "city": "Johannesburg", "provinceState": "Gauteng",
		},
		"studentNextOfKin": map[string]string{
			"fullName": "Sipho Dlovu", "relationship": "brother", "contactNumber": "0830000000",
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/onboarding/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["submitted"])
	assert.Equal(t, "submitted", data["stepName"])

	resp, body = doJSON(t, app, http.MethodPost, "/onboarding/submit", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_SUBMITTED", errorCode(body))
}

func TestLogsEndpoints(t *testing.T) {
	app, errs := newPortalApp(t, http.NotFoundHandler())
	errs.Record(errorlog.LevelError, "Course application submission failed", nil)

	resp, body := doJSON(t, app, http.MethodGet, "/logs/dates", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dates := body["data"].([]interface{})
	require.Len(t, dates, 1)
	date := dates[0].(string)

	resp, body = doJSON(t, app, http.MethodGet, "/logs/"+date, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	day := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), day["totalCount"])

	resp, _ = doJSON(t, app, http.MethodGet, "/logs/9999-01-01", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/logs/"+date, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/logs/dates", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["data"])
}
