package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	domerrors "github.com/amirhosseinghanipour/labcloud/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is empty, a default is used from code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimited
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainErr maps sentinel errors to the envelope. Unexpected errors are
// logged with detail and answered with a generic 500; internals never leak.
func writeDomainErr(w http.ResponseWriter, log zerolog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, domerrors.ErrInvalidInput):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	case errors.Is(err, domerrors.ErrTemplateMismatch):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "templateId mismatch.")
	case errors.Is(err, domerrors.ErrUnauthenticated):
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthenticated")
	case errors.Is(err, domerrors.ErrInvalidAPIKey):
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid apiKey.")
	case errors.Is(err, domerrors.ErrBindingExists):
		writeErr(w, http.StatusConflict, ErrCodeConflict, "API key already exists.")
	case errors.Is(err, domerrors.ErrBindingNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "API config not found. Generate a key first.")
	case errors.Is(err, domerrors.ErrProjectNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "Project not found.")
	case errors.Is(err, domerrors.ErrProgressNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "Project progress not found.")
	default:
		log.Error().Err(err).Msg(fallback)
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, fallback)
	}
}
