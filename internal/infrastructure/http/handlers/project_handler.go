package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
)

// ProjectHandler serves the public project catalog.
type ProjectHandler struct {
	projects ports.ProjectRepository
	log      zerolog.Logger
}

func NewProjectHandler(projects ports.ProjectRepository, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, log: log}
}

type projectView struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toProjectView(p *domain.Project) projectView {
	return projectView{
		ID:          p.ID.String(),
		Key:         p.Key,
		Title:       p.Title,
		Description: p.Description,
		Type:        string(p.Type),
		CreatedAt:   p.CreatedAt,
	}
}

// List returns the whole catalog.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		writeDomainErr(w, h.log, err, "Failed to fetch projects.")
		return
	}
	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, toProjectView(p))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"projects": views})
}

// Get returns one catalog entry by slug.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	project, err := h.projects.GetByKey(r.Context(), key)
	if err != nil {
		writeDomainErr(w, h.log, err, "Failed to fetch project.")
		return
	}
	if project == nil {
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "Project not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"project": toProjectView(project)})
}
