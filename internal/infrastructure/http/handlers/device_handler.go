package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/labcloud/internal/application/device"
	"github.com/amirhosseinghanipour/labcloud/internal/application/state"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/http/middleware"
)

// DeviceHandler serves the device-facing ingestion and poll endpoints. The
// bearer credential rides in the query string or body, not a header; identity
// comes from the binding store, never from a session.
type DeviceHandler struct {
	resolver *device.Resolver
	write    *state.WriteState
	read     *state.ReadState
	log      zerolog.Logger
}

func NewDeviceHandler(resolver *device.Resolver, write *state.WriteState, read *state.ReadState, log zerolog.Logger) *DeviceHandler {
	return &DeviceHandler{resolver: resolver, write: write, read: read, log: log}
}

// DesiredState answers GET desired-state?apiKey=&templateId= with the
// current actuator targets for the bound user, zero values when no history
// exists.
func (h *DeviceHandler) DesiredState(w http.ResponseWriter, r *http.Request) {
	apiKey := r.URL.Query().Get("apiKey")
	templateID := r.URL.Query().Get("templateId")
	if apiKey == "" {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "apiKey is required.")
		return
	}
	binding, err := h.resolver.Resolve(r.Context(), apiKey, templateID)
	if err != nil {
		writeDomainErr(w, h.log, err, "Failed to fetch desired state.")
		return
	}
	current, err := h.read.Desired(r.Context(), binding.UserID, ProjectKeyAppliances)
	if err != nil {
		writeDomainErr(w, h.log, err, "Failed to fetch desired state.")
		return
	}
	writeJSON(w, http.StatusOK, toApplianceCurrent(current))
}

type deviceStateRequest struct {
	APIKey     string `json:"apiKey"`
	TemplateID string `json:"templateId"`
	LED1       *bool  `json:"led1"`
	LED2       *bool  `json:"led2"`
	Fan1       *bool  `json:"fan1"`
	Timestamp  *int64 `json:"timestamp"`
}

// DeviceState records an appliance report from firmware.
func (h *DeviceHandler) DeviceState(w http.ResponseWriter, r *http.Request) {
	var req deviceStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid JSON body.")
		return
	}
	if req.APIKey == "" {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "apiKey is required.")
		return
	}
	binding, err := h.resolver.Resolve(r.Context(), req.APIKey, req.TemplateID)
	if err != nil {
		writeDomainErr(w, h.log, err, "Failed to record appliance state.")
		return
	}
	if req.LED1 == nil || req.LED2 == nil || req.Fan1 == nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "led1, led2 and fan1 must be booleans.")
		return
	}
	_, err = h.write.Execute(r.Context(), state.WriteStateInput{
		UserID:     binding.UserID,
		ProjectKey: ProjectKeyAppliances,
		Payload:    domain.AppliancePayload{LED1: *req.LED1, LED2: *req.LED2, Fan1: *req.Fan1},
		Source:     domain.SourceDevice,
		Timestamp:  parseTimestamp(req.Timestamp),
	})
	if err != nil {
		middleware.RecordStateWrite(ProjectKeyAppliances, string(domain.SourceDevice), "rejected")
		writeDomainErr(w, h.log, err, "Failed to record appliance state.")
		return
	}
	middleware.RecordStateWrite(ProjectKeyAppliances, string(domain.SourceDevice), "accepted")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type waterDeviceRequest struct {
	APIKey       string   `json:"apiKey"`
	TemplateID   string   `json:"templateId"`
	LevelPercent *float64 `json:"levelPercent"`
	Timestamp    *int64   `json:"timestamp"`
}

// WaterLevel records a tank reading from firmware.
func (h *DeviceHandler) WaterLevel(w http.ResponseWriter, r *http.Request) {
	var req waterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid JSON body.")
		return
	}
	if req.APIKey == "" || req.LevelPercent == nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "apiKey and levelPercent are required.")
		return
	}
	binding, err := h.resolver.Resolve(r.Context(), req.APIKey, req.TemplateID)
	if err != nil {
		writeDomainErr(w, h.log, err, "Failed to record water level.")
		return
	}
	_, err = h.write.Execute(r.Context(), state.WriteStateInput{
		UserID:     binding.UserID,
		ProjectKey: ProjectKeyWaterLevel,
		Payload:    domain.WaterLevelPayload{LevelPercent: *req.LevelPercent},
		Source:     domain.SourceDevice,
		Timestamp:  parseTimestamp(req.Timestamp),
	})
	if err != nil {
		middleware.RecordStateWrite(ProjectKeyWaterLevel, string(domain.SourceDevice), "rejected")
		writeDomainErr(w, h.log, err, "Failed to record water level.")
		return
	}
	middleware.RecordStateWrite(ProjectKeyWaterLevel, string(domain.SourceDevice), "accepted")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
