package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplianceGetStateRequiresSession(t *testing.T) {
	env := newTestEnv(t)
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodGet, "/api/project/home-appliances/state", nil)
	env.appliances.GetState(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAppliancePostStateRejectsPartialBody(t *testing.T) {
	env := newTestEnv(t)
	rec := httptest.NewRecorder()

	env.appliances.PostState(rec, env.sessionRequest(http.MethodPost,
		"/api/project/home-appliances/state", `{"led1":true,"fan1":false}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "LED/Fan values must be boolean.", body["error"])
}

func TestAppliancePostThenGetRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.appliances.PostState(rec, env.sessionRequest(http.MethodPost,
		"/api/project/home-appliances/state", `{"led1":false,"led2":true,"fan1":false}`))
	require.Equal(t, http.StatusOK, rec.Code)
	posted := decodeBody(t, rec)
	require.Len(t, posted["history"].([]interface{}), 1)

	rec = httptest.NewRecorder()
	env.appliances.GetState(rec, env.sessionRequest(http.MethodGet,
		"/api/project/home-appliances/state", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)

	current := got["current"].(map[string]interface{})
	assert.Equal(t, false, current["led1"])
	assert.Equal(t, true, current["led2"])
	assert.Equal(t, false, current["fan1"])

	history := got["history"].([]interface{})
	require.Len(t, history, 1)
	assert.Equal(t, "WEB", history[0].(map[string]interface{})["source"])
}

func TestApplianceDeleteStateClearsHistory(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.appliances.PostState(rec, env.sessionRequest(http.MethodPost,
		"/api/project/home-appliances/state", `{"led1":true,"led2":true,"fan1":true}`))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	env.appliances.DeleteState(rec, env.sessionRequest(http.MethodDelete,
		"/api/project/home-appliances/state", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])

	rec = httptest.NewRecorder()
	env.appliances.GetState(rec, env.sessionRequest(http.MethodGet,
		"/api/project/home-appliances/state", ""))
	got := decodeBody(t, rec)
	assert.Empty(t, got["history"])
	current := got["current"].(map[string]interface{})
	assert.Equal(t, false, current["led1"])
}

func TestWaterLevelPostEntryValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.water.PostEntry(rec, env.sessionRequest(http.MethodPost,
		"/api/project/water-level/entries", `{}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	env.water.PostEntry(rec, env.sessionRequest(http.MethodPost,
		"/api/project/water-level/entries", `{"levelPercent":101}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWaterLevelPostEntryReturnsList(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.water.PostEntry(rec, env.sessionRequest(http.MethodPost,
		"/api/project/water-level/entries", `{"levelPercent":63}`))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	entries := body["entries"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, float64(63), entry["levelPercent"])
	assert.Equal(t, "MANUAL", entry["source"])
}
