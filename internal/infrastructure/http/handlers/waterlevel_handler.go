package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/labcloud/internal/application/state"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/http/middleware"
)

// ProjectKeyWaterLevel is the catalog slug of the water-level lab.
const ProjectKeyWaterLevel = "water-level"

// WaterLevelHandler serves the browser-facing water-level entry endpoints.
// Requires the session middleware.
type WaterLevelHandler struct {
	write *state.WriteState
	read  *state.ReadState
	clear *state.ClearHistory
	log   zerolog.Logger
}

func NewWaterLevelHandler(write *state.WriteState, read *state.ReadState, clear *state.ClearHistory, log zerolog.Logger) *WaterLevelHandler {
	return &WaterLevelHandler{write: write, read: read, clear: clear, log: log}
}

// GetEntries returns the session user's readings, newest first.
func (h *WaterLevelHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthenticated")
		return
	}
	snap, err := h.read.Execute(r.Context(), userID, ProjectKeyWaterLevel)
	if err != nil {
		writeDomainErr(w, h.log, err, "Failed to fetch entries.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": toWaterLevelViews(snap.History)})
}

type waterLevelEntryRequest struct {
	LevelPercent *float64 `json:"levelPercent"`
}

// PostEntry appends a manual reading and returns the refreshed list.
func (h *WaterLevelHandler) PostEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthenticated")
		return
	}
	var req waterLevelEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid JSON body.")
		return
	}
	if req.LevelPercent == nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Level percent must be between 0 and 100.")
		return
	}
	_, err := h.write.Execute(r.Context(), state.WriteStateInput{
		UserID:     userID,
		ProjectKey: ProjectKeyWaterLevel,
		Payload:    domain.WaterLevelPayload{LevelPercent: *req.LevelPercent},
		Source:     domain.SourceManual,
	})
	if err != nil {
		middleware.RecordStateWrite(ProjectKeyWaterLevel, string(domain.SourceManual), "rejected")
		writeDomainErr(w, h.log, err, "Failed to create entry.")
		return
	}
	middleware.RecordStateWrite(ProjectKeyWaterLevel, string(domain.SourceManual), "accepted")

	snap, err := h.read.Execute(r.Context(), userID, ProjectKeyWaterLevel)
	if err != nil {
		writeDomainErr(w, h.log, err, "Failed to fetch entries.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": toWaterLevelViews(snap.History)})
}

// DeleteEntries clears the session user's reading history.
func (h *WaterLevelHandler) DeleteEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthenticated")
		return
	}
	if _, err := h.clear.Execute(r.Context(), userID, ProjectKeyWaterLevel); err != nil {
		writeDomainErr(w, h.log, err, "Failed to delete entries.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
