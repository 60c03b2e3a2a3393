package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/labcloud/internal/application/state"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/http/middleware"
)

// ProjectKeyAppliances is the catalog slug of the home-appliances lab.
const ProjectKeyAppliances = "home-appliances"

// ApplianceHandler serves the browser-facing appliance state endpoints.
// Requires the session middleware.
type ApplianceHandler struct {
	write *state.WriteState
	read  *state.ReadState
	clear *state.ClearHistory
	log   zerolog.Logger
}

func NewApplianceHandler(write *state.WriteState, read *state.ReadState, clear *state.ClearHistory, log zerolog.Logger) *ApplianceHandler {
	return &ApplianceHandler{write: write, read: read, clear: clear, log: log}
}

// GetState returns { current, history } for the session user.
func (h *ApplianceHandler) GetState(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthenticated")
		return
	}
	snap, err := h.read.Execute(r.Context(), userID, ProjectKeyAppliances)
	if err != nil {
		writeDomainErr(w, h.log, err, "Failed to fetch appliance state.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"current": toApplianceCurrent(snap.Current),
		"history": toApplianceViews(snap.History),
	})
}

type applianceStateRequest struct {
	LED1 *bool `json:"led1"`
	LED2 *bool `json:"led2"`
	Fan1 *bool `json:"fan1"`
}

// PostState appends a browser toggle and returns the refreshed history.
func (h *ApplianceHandler) PostState(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthenticated")
		return
	}
	var req applianceStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid JSON body.")
		return
	}
	if req.LED1 == nil || req.LED2 == nil || req.Fan1 == nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "LED/Fan values must be boolean.")
		return
	}
	_, err := h.write.Execute(r.Context(), state.WriteStateInput{
		UserID:     userID,
		ProjectKey: ProjectKeyAppliances,
		Payload:    domain.AppliancePayload{LED1: *req.LED1, LED2: *req.LED2, Fan1: *req.Fan1},
		Source:     domain.SourceWeb,
	})
	if err != nil {
		middleware.RecordStateWrite(ProjectKeyAppliances, string(domain.SourceWeb), "rejected")
		writeDomainErr(w, h.log, err, "Failed to update state.")
		return
	}
	middleware.RecordStateWrite(ProjectKeyAppliances, string(domain.SourceWeb), "accepted")

	snap, err := h.read.Execute(r.Context(), userID, ProjectKeyAppliances)
	if err != nil {
		writeDomainErr(w, h.log, err, "Failed to fetch appliance state.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": toApplianceViews(snap.History)})
}

// DeleteState clears the session user's appliance history.
func (h *ApplianceHandler) DeleteState(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthenticated")
		return
	}
	if _, err := h.clear.Execute(r.Context(), userID, ProjectKeyAppliances); err != nil {
		writeDomainErr(w, h.log, err, "Failed to delete history.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
