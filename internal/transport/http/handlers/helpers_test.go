package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"hrpay/internal/app/server"
	"hrpay/internal/platform/config"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:          dbURL,
		JWTSecret:            "test-secret",
		JWTTTL:               time.Hour,
		DataEncryptionKey:    "0123456789abcdef0123456789abcdef",
		Environment:          "test",
		Timezone:             "Asia/Seoul",
		RunMigrations:        true,
		MigrationsDir:        "../../../../migrations",
		RunSeed:              true,
		SeedAdminUsername:    "admin",
		SeedAdminPassword:    "ChangeMe123!",
		EmailFrom:            "no-reply@test.local",
		MaxBodyBytes:         1048576,
		RateLimitPerMinute:   1000,
		MetricsEnabled:       true,
		WorkdayStart:         "09:00:00",
		OvertimeStart:        "18:00:00",
		OvertimeMonthlyHours: 209,
		OvertimeMultiplier:   1.5,
		PaymentDay:           25,
		RetentionDays:        90,
	}
}

// startApp skips the test unless TEST_DATABASE_URL points at a scratch database.
func startApp(t *testing.T) (*server.App, *httptest.Server, config.Config) {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	ts := httptest.NewServer(app.Router)
	t.Cleanup(func() {
		ts.Close()
		app.Close()
	})
	return app, ts, cfg
}

func login(t *testing.T, client *http.Client, baseURL, username, password string) string {
	t.Helper()
	resp := postJSONStatus(t, client, baseURL+"/api/v1/auth/login", "", map[string]any{
		"username": username,
		"password": password,
	}, http.StatusOK)
	payload := envelopeDataMap(t, resp)
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

// createEmployee registers a regular employee with a login and returns the
// generated employee id, which doubles as the username.
func createEmployee(t *testing.T, client *http.Client, baseURL, token, password string) string {
	t.Helper()
	resp := postJSONStatus(t, client, baseURL+"/api/v1/employees", token, map[string]any{
		"name":       "테스트",
		"department": "개발팀",
		"position":   "사원",
		"hireDate":   "2025-03-02",
		"gender":     "여",
		"email":      fmt.Sprintf("journey-%d@example.com", time.Now().UnixNano()),
		"role":       "user",
		"password":   password,
	}, http.StatusCreated)
	var created struct {
		Employee struct {
			ID string `json:"id"`
		} `json:"employee"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("failed to decode employee: %v", err)
	}
	if created.Employee.ID == "" || created.Username != created.Employee.ID {
		t.Fatalf("unexpected created employee: %+v", created)
	}
	return created.Employee.ID
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any, headers map[string]string) (int, envelope, http.Header) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response (%d): %s", resp.StatusCode, string(raw))
	}
	return resp.StatusCode, env, resp.Header
}

func postJSONStatus(t *testing.T, client *http.Client, url, token string, body any, want int) envelope {
	t.Helper()
	status, env, _ := doJSON(t, client, http.MethodPost, url, token, body, nil)
	if status != want {
		t.Fatalf("expected status %d, got %d: %+v", want, status, env.Error)
	}
	return env
}

func putJSONStatus(t *testing.T, client *http.Client, url, token string, body any, want int) envelope {
	t.Helper()
	status, env, _ := doJSON(t, client, http.MethodPut, url, token, body, nil)
	if status != want {
		t.Fatalf("expected status %d, got %d: %+v", want, status, env.Error)
	}
	return env
}

func getJSONStatus(t *testing.T, client *http.Client, url, token string, want int) envelope {
	t.Helper()
	status, env, _ := doJSON(t, client, http.MethodGet, url, token, nil, nil)
	if status != want {
		t.Fatalf("expected status %d, got %d: %+v", want, status, env.Error)
	}
	return env
}

func getJSONWithTotal(t *testing.T, client *http.Client, url, token string) (envelope, int) {
	t.Helper()
	status, env, header := doJSON(t, client, http.MethodGet, url, token, nil, nil)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %+v", status, env.Error)
	}
	total, err := strconv.Atoi(header.Get("X-Total-Count"))
	if err != nil {
		t.Fatalf("expected X-Total-Count header, got %q", header.Get("X-Total-Count"))
	}
	return env, total
}

func envelopeDataSlice(t *testing.T, env envelope) []map[string]any {
	t.Helper()
	var payload []map[string]any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("failed to decode array payload: %v", err)
	}
	return payload
}

func envelopeDataMap(t *testing.T, env envelope) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("failed to decode object payload: %v", err)
	}
	return payload
}

func envelopeErrorCode(env envelope) string {
	if m, ok := env.Error.(map[string]any); ok {
		if code, ok := m["code"].(string); ok {
			return code
		}
	}
	return ""
}

func assertValidationErrorField(t *testing.T, env envelope, field string) {
	t.Helper()
	if code := envelopeErrorCode(env); code != "validation_error" {
		t.Fatalf("expected validation_error, got %+v", env.Error)
	}
	errMap, _ := env.Error.(map[string]any)
	details, ok := errMap["details"].(map[string]any)
	if !ok {
		t.Fatalf("expected details object, got %+v", errMap["details"])
	}
	fieldsRaw, ok := details["fields"].([]any)
	if !ok {
		t.Fatalf("expected details.fields array, got %+v", details["fields"])
	}
	for _, item := range fieldsRaw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if value, _ := entry["field"].(string); value == field {
			return
		}
	}
	t.Fatalf("expected validation field %q in %+v", field, fieldsRaw)
}
