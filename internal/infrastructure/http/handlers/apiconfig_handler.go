package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/labcloud/internal/application/apiconfig"
	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/http/middleware"
)

// APIConfigHandler serves /user/api-config: issuing, reading back (masked)
// and relabeling the per-user device credential. Requires the session
// middleware.
type APIConfigHandler struct {
	create   *apiconfig.CreateBinding
	update   *apiconfig.UpdateTemplate
	bindings ports.BindingRepository
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAPIConfigHandler(create *apiconfig.CreateBinding, update *apiconfig.UpdateTemplate, bindings ports.BindingRepository, log zerolog.Logger) *APIConfigHandler {
	return &APIConfigHandler{
		create:   create,
		update:   update,
		bindings: bindings,
		validate: validator.New(),
		log:      log,
	}
}

// configView is the read-back shape: the key only ever appears masked here.
type configView struct {
	APIKey     string    `json:"apiKey"`
	TemplateID string    `json:"templateId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toConfigView(b *domain.Binding) configView {
	return configView{
		APIKey:     b.MaskedKey(),
		TemplateID: b.TemplateID,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// Get returns the session user's config with the key masked, or a null
// config when none exists.
func (h *APIConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthenticated")
		return
	}
	binding, err := h.bindings.GetByUserID(r.Context(), userID)
	if err != nil {
		writeDomainErr(w, h.log, err, "Failed to load API config.")
		return
	}
	if binding == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"config": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"config": toConfigView(binding)})
}

type apiConfigRequest struct {
	TemplateID string `json:"templateId" validate:"required,max=128"`
}

// Post issues the binding. The plain key appears in this response and
// nowhere else afterwards.
func (h *APIConfigHandler) Post(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthenticated")
		return
	}
	var req apiConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid JSON body.")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Template ID is required.")
		return
	}
	result, err := h.create.Execute(r.Context(), apiconfig.CreateBindingInput{
		UserID:     userID,
		TemplateID: req.TemplateID,
	})
	if err != nil {
		writeDomainErr(w, h.log, err, "Failed to create API config.")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"config": map[string]interface{}{
			"apiKey":     result.APIKey,
			"templateId": result.Binding.TemplateID,
			"createdAt":  result.Binding.CreatedAt,
			"updatedAt":  result.Binding.UpdatedAt,
		},
	})
}

// Put updates the template label only; the key never changes.
func (h *APIConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthenticated")
		return
	}
	var req apiConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid JSON body.")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Template ID is required.")
		return
	}
	binding, err := h.update.Execute(r.Context(), apiconfig.UpdateTemplateInput{
		UserID:     userID,
		TemplateID: req.TemplateID,
	})
	if err != nil {
		writeDomainErr(w, h.log, err, "Failed to update template ID.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"config": toConfigView(binding)})
}
