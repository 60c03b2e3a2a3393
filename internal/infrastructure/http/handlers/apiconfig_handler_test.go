package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIConfigGetNullWhenUnbound(t *testing.T) {
	env := newTestEnv(t)
	rec := httptest.NewRecorder()

	env.apiConfig.Get(rec, env.sessionRequest(http.MethodGet, "/api/user/api-config", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Nil(t, body["config"])
}

func TestAPIConfigPostIssuesPlainKeyOnce(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.apiConfig.Post(rec, env.sessionRequest(http.MethodPost,
		"/api/user/api-config", `{"templateId":"esp32-wroom"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	config := body["config"].(map[string]interface{})
	plainKey := config["apiKey"].(string)
	assert.True(t, strings.HasPrefix(plainKey, "lab_"))
	assert.NotContains(t, plainKey, "*")
	assert.Equal(t, "esp32-wroom", config["templateId"])

	// Read-back only ever shows the masked form.
	rec = httptest.NewRecorder()
	env.apiConfig.Get(rec, env.sessionRequest(http.MethodGet, "/api/user/api-config", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	masked := got["config"].(map[string]interface{})["apiKey"].(string)
	assert.NotEqual(t, plainKey, masked)
	assert.Contains(t, masked, "*")
	assert.True(t, strings.HasSuffix(plainKey, masked[len(masked)-4:]))
}

func TestAPIConfigPostConflictsOnSecondIssue(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.apiConfig.Post(rec, env.sessionRequest(http.MethodPost,
		"/api/user/api-config", `{"templateId":"esp32-wroom"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	env.apiConfig.Post(rec, env.sessionRequest(http.MethodPost,
		"/api/user/api-config", `{"templateId":"esp32-s3"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "conflict", body["code"])
}

func TestAPIConfigPostRequiresTemplate(t *testing.T) {
	env := newTestEnv(t)
	rec := httptest.NewRecorder()

	env.apiConfig.Post(rec, env.sessionRequest(http.MethodPost,
		"/api/user/api-config", `{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIConfigPutUpdatesLabel(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.apiConfig.Post(rec, env.sessionRequest(http.MethodPost,
		"/api/user/api-config", `{"templateId":"esp32-wroom"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	env.apiConfig.Put(rec, env.sessionRequest(http.MethodPut,
		"/api/user/api-config", `{"templateId":"esp32-s3"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "esp32-s3", body["config"].(map[string]interface{})["templateId"])
}

func TestAPIConfigPutWithoutBinding(t *testing.T) {
	env := newTestEnv(t)
	rec := httptest.NewRecorder()

	env.apiConfig.Put(rec, env.sessionRequest(http.MethodPut,
		"/api/user/api-config", `{"templateId":"esp32-s3"}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "not_found", body["code"])
}
