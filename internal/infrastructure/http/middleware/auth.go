package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
)

// SessionValidator resolves the browser session: it validates the bearer
// token and sets the user id in context (see UserFromContext). Token issuance
// happens outside this service.
type SessionValidator struct {
	verifier ports.TokenVerifier
}

func NewSessionValidator(verifier ports.TokenVerifier) *SessionValidator {
	return &SessionValidator{verifier: verifier}
}

func (m *SessionValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			writeMiddlewareErr(w, http.StatusUnauthorized, "unauthorized", "Unauthenticated")
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")
		userIDStr, err := m.verifier.VerifyAccessToken(tokenString)
		if err != nil {
			writeMiddlewareErr(w, http.StatusUnauthorized, "unauthorized", "Unauthenticated")
			return
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			writeMiddlewareErr(w, http.StatusUnauthorized, "unauthorized", "Unauthenticated")
			return
		}
		ctx := WithUser(r.Context(), domain.NewUserID(userID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdminSecret gates administrative routes on X-Admin-Secret. An empty
// configured secret disables the routes entirely.
func RequireAdminSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" || r.Header.Get("X-Admin-Secret") != secret {
				writeMiddlewareErr(w, http.StatusForbidden, "forbidden", "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeMiddlewareErr(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}
