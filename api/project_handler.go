package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rohityadav-alpha/rohit-portfolio/errs"
	"github.com/rohityadav-alpha/rohit-portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type projectStore interface {
	FindAll() ([]*models.Project, error)
	FindBySlug(slug string) (*models.Project, error)
	Add(project *models.Project) error
	Update(project *models.Project) error
	DeleteBySlug(slug string) error
}

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     projectStore
}

func newProjectHandler(store projectStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

type projectRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
	GithubURL   string   `json:"githubUrl"`
	LiveURL     string   `json:"liveUrl"`
	Category    string   `json:"category"`
	ImageURLs   []string `json:"imageUrls"`
}

// getAllProjects retrieves all projects, newest first
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.store.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}
		if projects == nil {
			projects = []*models.Project{}
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{"projects": projects})
	}
}

// getProject retrieves a single project by slug
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		project, err := h.store.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{"project": project})
	}
}

// createProject creates a new project with a server-generated unique slug,
// suffixing -1, -2, ... on collision
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if req.Description == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("description"))
			return
		}
		if req.Category == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("category"))
			return
		}

		project := models.Project{
			Title:       req.Title,
			Description: req.Description,
			TechStack:   datatypes.NewJSONSlice(req.TechStack),
			GithubURL:   req.GithubURL,
			LiveURL:     req.LiveURL,
			Category:    req.Category,
			ImageURLs:   datatypes.NewJSONSlice(req.ImageURLs),
		}

		if err := allocateUniqueSlug(req.Title, func(slug string) error {
			project.Slug = slug
			return h.store.Add(&project)
		}); err != nil {
			var apiErr *errs.ApiErr
			if !errors.As(err, &apiErr) {
				err = wrapDatabaseError("create project", "project", err)
			}
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, map[string]any{"project": project})
	}
}

// updateProject replaces the mutable fields of a project; the slug stays
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		existing, err := h.store.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if req.Description == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("description"))
			return
		}
		if req.Category == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("category"))
			return
		}

		existing.Title = req.Title
		existing.Description = req.Description
		existing.TechStack = datatypes.NewJSONSlice(req.TechStack)
		existing.GithubURL = req.GithubURL
		existing.LiveURL = req.LiveURL
		existing.Category = req.Category
		existing.ImageURLs = datatypes.NewJSONSlice(req.ImageURLs)

		if err := h.store.Update(existing); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{"project": existing})
	}
}

// deleteProject deletes a project by slug
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		existing, err := h.store.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := h.store.DeleteBySlug(slug); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{
			"message": "Project deleted successfully",
		})
	}
}
