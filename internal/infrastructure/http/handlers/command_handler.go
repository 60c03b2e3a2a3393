package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/labcloud/internal/application/command"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/http/middleware"
)

// CommandHandler serves POST /device/send-command: validated push commands
// for a named device, delivered through the external channel. Requires the
// session middleware.
type CommandHandler struct {
	send *command.SendCommand
	log  zerolog.Logger
}

func NewCommandHandler(send *command.SendCommand, log zerolog.Logger) *CommandHandler {
	return &CommandHandler{send: send, log: log}
}

type sendCommandRequest struct {
	DeviceID string `json:"deviceId"`
	Command  string `json:"command"`
}

func (h *CommandHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthenticated")
		return
	}
	var req sendCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid JSON body.")
		return
	}
	err := h.send.Execute(r.Context(), command.SendCommandInput{
		UserID:   userID,
		DeviceID: req.DeviceID,
		Command:  req.Command,
	})
	if err != nil {
		writeDomainErr(w, h.log, err, "Failed to send command.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
