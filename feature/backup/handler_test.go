package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backup-manager/feature/backup/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(source *fakeSource, target *memTarget) *fiber.App {
	app := fiber.New()
	service := NewService(source, target, nil, time.Minute, zap.NewNop())
	NewHandler(service).RegisterRoutes(app)
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestHandleFullBackup(t *testing.T) {
	source := &fakeSource{
		builds: []models.Build{testBuild(1)},
		users:  []models.UserProfile{testUser("u1")},
	}
	app := setupTestApp(source, newMemTarget())

	req := httptest.NewRequest(http.MethodPost, "/backup/full", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "1 builds")
}

func TestHandleFullBackup_SourceUnreachable(t *testing.T) {
	source := &fakeSource{usersErr: fmt.Errorf("primary store unreachable")}
	app := setupTestApp(source, newMemTarget())

	req := httptest.NewRequest(http.MethodPost, "/backup/full", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "unreachable")
}

func TestHandleImmediateBackup(t *testing.T) {
	app := setupTestApp(&fakeSource{}, newMemTarget())

	req := httptest.NewRequest(http.MethodPost, "/backup/immediate", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
}

func TestHandleHealthCheck(t *testing.T) {
	source := &fakeSource{builds: []models.Build{testBuild(1)}}
	app := setupTestApp(source, newMemTarget())

	req := httptest.NewRequest(http.MethodGet, "/backup/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	health := body["health"].(map[string]any)
	assert.Equal(t, StatusHealthy, health["status"])
	// Primary has one build the fresh replica lacks: divergent, still healthy.
	assert.Equal(t, false, health["inSync"])
}

func TestHandleHealthCheck_StoreUnreachable(t *testing.T) {
	source := &fakeSource{countsErr: fmt.Errorf("primary store unreachable")}
	app := setupTestApp(source, newMemTarget())

	req := httptest.NewRequest(http.MethodGet, "/backup/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	health := body["health"].(map[string]any)
	assert.Equal(t, StatusUnhealthy, health["status"])
}

func TestHandleTimerStatus(t *testing.T) {
	app := setupTestApp(&fakeSource{}, newMemTarget())

	req := httptest.NewRequest(http.MethodGet, "/backup/timer", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	timer := body["timer"].(map[string]any)
	assert.Equal(t, float64(DefaultIntervalHours), timer["intervalHours"])
	assert.Equal(t, false, timer["isRunning"])
}

func TestHandleUpdateTimer(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "valid interval", body: `{"intervalHours": 12}`, wantStatus: fiber.StatusOK},
		{name: "below minimum", body: `{"intervalHours": 0}`, wantStatus: fiber.StatusBadRequest},
		{name: "above maximum", body: `{"intervalHours": 25}`, wantStatus: fiber.StatusBadRequest},
		{name: "malformed body", body: `{"intervalHours": `, wantStatus: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp(&fakeSource{}, newMemTarget())

			req := httptest.NewRequest(http.MethodPut, "/backup/timer", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decodeBody(t, resp)
			if tt.wantStatus == fiber.StatusOK {
				assert.Equal(t, true, body["success"])
				assert.Equal(t, float64(12), body["intervalHours"])
			} else {
				assert.Equal(t, false, body["success"])
			}
		})
	}
}

func TestHandleRestoreInfo(t *testing.T) {
	target := newMemTarget()
	target.builds["1"] = testBuild(1)
	app := setupTestApp(&fakeSource{}, target)

	req := httptest.NewRequest(http.MethodGet, "/backup/restore", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "1 builds")
	assert.Contains(t, body["message"], "execution is disabled")
}

func TestHandleExecuteRestore_AlwaysRefused(t *testing.T) {
	app := setupTestApp(&fakeSource{}, newMemTarget())

	req := httptest.NewRequest(http.MethodPost, "/backup/restore", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotImplemented, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "not implemented")
}
