package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestDesiredStateRequiresAPIKey(t *testing.T) {
	env := newTestEnv(t)
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodGet, "/api/project/home-appliances/desired-state", nil)
	env.devices.DesiredState(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "invalid_request", body["code"])
}

func TestDesiredStateUnknownKey(t *testing.T) {
	env := newTestEnv(t)
	env.seedBinding(t, "lab_good", "esp32-wroom")
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodGet, "/api/project/home-appliances/desired-state?apiKey=lab_bad", nil)
	env.devices.DesiredState(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "unauthorized", body["code"])
}

func TestDesiredStateTemplateMismatch(t *testing.T) {
	env := newTestEnv(t)
	env.seedBinding(t, "lab_good", "esp32-wroom")
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodGet, "/api/project/home-appliances/desired-state?apiKey=lab_good&templateId=esp32-s3", nil)
	env.devices.DesiredState(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "templateId mismatch.", body["error"])
}

func TestDesiredStateZeroValuesWithoutHistory(t *testing.T) {
	env := newTestEnv(t)
	env.seedBinding(t, "lab_good", "esp32-wroom")
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodGet, "/api/project/home-appliances/desired-state?apiKey=lab_good", nil)
	env.devices.DesiredState(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["led1"])
	assert.Equal(t, false, body["led2"])
	assert.Equal(t, false, body["fan1"])
}

func TestDesiredStateReflectsWebToggle(t *testing.T) {
	env := newTestEnv(t)
	env.seedBinding(t, "lab_good", "esp32-wroom")

	rec := httptest.NewRecorder()
	env.appliances.PostState(rec, env.sessionRequest(http.MethodPost,
		"/api/project/home-appliances/state",
		`{"led1":true,"led2":false,"fan1":true}`))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/project/home-appliances/desired-state?apiKey=lab_good&templateId=esp32-wroom", nil)
	env.devices.DesiredState(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["led1"])
	assert.Equal(t, false, body["led2"])
	assert.Equal(t, true, body["fan1"])
}

func TestDeviceStateRequiresAllBooleans(t *testing.T) {
	env := newTestEnv(t)
	env.seedBinding(t, "lab_good", "esp32-wroom")
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/api/project/home-appliances/device-state",
		strings.NewReader(`{"apiKey":"lab_good","led1":true}`))
	env.devices.DeviceState(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeviceStateAcceptsReportWithTimestamp(t *testing.T) {
	env := newTestEnv(t)
	env.seedBinding(t, "lab_good", "esp32-wroom")
	reported := time.Date(2025, 5, 1, 8, 30, 0, 0, time.UTC)
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/api/project/home-appliances/device-state",
		strings.NewReader(`{"apiKey":"lab_good","led1":true,"led2":false,"fan1":false,"timestamp":1746088200000}`))
	env.devices.DeviceState(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	rec = httptest.NewRecorder()
	env.appliances.GetState(rec, env.sessionRequest(http.MethodGet, "/api/project/home-appliances/state", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	get := decodeBody(t, rec)
	history := get["history"].([]interface{})
	require.Len(t, history, 1)
	entry := history[0].(map[string]interface{})
	assert.Equal(t, "DEVICE", entry["source"])
	createdAt, err := time.Parse(time.RFC3339, entry["createdAt"].(string))
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(reported))
}

func TestDeviceWaterLevelRejectsOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	env.seedBinding(t, "lab_good", "esp32-wroom")
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/api/project/water-level/device",
		strings.NewReader(`{"apiKey":"lab_good","levelPercent":130}`))
	env.devices.WaterLevel(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The rejected reading never reached the history.
	rec = httptest.NewRecorder()
	env.water.GetEntries(rec, env.sessionRequest(http.MethodGet, "/api/project/water-level/entries", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Empty(t, body["entries"])
}

func TestDeviceWaterLevelAcceptsReading(t *testing.T) {
	env := newTestEnv(t)
	env.seedBinding(t, "lab_good", "esp32-wroom")
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/api/project/water-level/device",
		strings.NewReader(`{"apiKey":"lab_good","levelPercent":42.5}`))
	env.devices.WaterLevel(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	env.water.GetEntries(rec, env.sessionRequest(http.MethodGet, "/api/project/water-level/entries", ""))
	body := decodeBody(t, rec)
	entries := body["entries"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, 42.5, entry["levelPercent"])
	assert.Equal(t, "DEVICE", entry["source"])
}
