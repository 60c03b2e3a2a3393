package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/application/progress"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
)

// AdminHandler serves the secret-gated administrative routes: catalog
// provisioning and the progress override (the only path that may set
// COMPLETED).
type AdminHandler struct {
	projects  ports.ProjectRepository
	setStatus *progress.SetStatus
	validate  *validator.Validate
	log       zerolog.Logger
}

func NewAdminHandler(projects ports.ProjectRepository, setStatus *progress.SetStatus, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		projects:  projects,
		setStatus: setStatus,
		validate:  validator.New(),
		log:       log,
	}
}

type createProjectRequest struct {
	Key         string `json:"key" validate:"required,max=64"`
	Title       string `json:"title" validate:"required,max=128"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required,oneof=appliance water-level"`
}

// CreateProject provisions one catalog entry.
func (h *AdminHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid JSON body.")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "key, title and a valid type are required.")
		return
	}
	project := &domain.Project{
		ID:          domain.NewProjectID(uuid.New()),
		Key:         req.Key,
		Title:       req.Title,
		Description: req.Description,
		Type:        domain.PayloadKind(req.Type),
		CreatedAt:   time.Now(),
	}
	if err := h.projects.Create(r.Context(), project); err != nil {
		writeDomainErr(w, h.log, err, "Failed to create project.")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"project": toProjectView(project)})
}

type setStatusRequest struct {
	UserID    string `json:"userId" validate:"required,uuid"`
	ProjectID string `json:"projectId" validate:"required,uuid"`
	Status    string `json:"status" validate:"required"`
}

// SetProjectStatus forces a (user, project) progress status.
func (h *AdminHandler) SetProjectStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid JSON body.")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "userId, projectId and status are required.")
		return
	}
	userID, _ := uuid.Parse(req.UserID)
	projectID, _ := uuid.Parse(req.ProjectID)
	err := h.setStatus.Execute(r.Context(), progress.SetStatusInput{
		UserID:    domain.NewUserID(userID),
		ProjectID: domain.NewProjectID(projectID),
		Status:    domain.ProgressStatus(req.Status),
	})
	if err != nil {
		writeDomainErr(w, h.log, err, "Failed to update project status.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
