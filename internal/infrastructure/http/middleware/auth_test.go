package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	userID string
	err    error
}

func (f fakeVerifier) VerifyAccessToken(tokenString string) (string, error) {
	return f.userID, f.err
}

func sessionHandler(t *testing.T, wantID uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantID, userID.UUID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionValidatorSetsUser(t *testing.T) {
	id := uuid.New()
	validator := NewSessionValidator(fakeVerifier{userID: id.String()})
	handler := validator.Handler(sessionHandler(t, id))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/api-config", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionValidatorRejectsMissingHeader(t *testing.T) {
	validator := NewSessionValidator(fakeVerifier{userID: uuid.NewString()})
	handler := validator.Handler(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/api-config", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
}

func TestSessionValidatorRejectsBadToken(t *testing.T) {
	validator := NewSessionValidator(fakeVerifier{err: errors.New("expired")})
	handler := validator.Handler(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/api-config", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionValidatorRejectsNonUUIDSubject(t *testing.T) {
	validator := NewSessionValidator(fakeVerifier{userID: "not-a-uuid"})
	handler := validator.Handler(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/api-config", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminSecret(t *testing.T) {
	handler := RequireAdminSecret("s3cret")(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/projects", nil)
	req.Header.Set("X-Admin-Secret", "s3cret")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/projects", nil)
	req.Header.Set("X-Admin-Secret", "wrong")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminSecretDisabledWhenEmpty(t *testing.T) {
	handler := RequireAdminSecret("")(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/projects", nil)
	req.Header.Set("X-Admin-Secret", "")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
