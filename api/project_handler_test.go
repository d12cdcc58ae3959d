package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectPayload(title string) map[string]any {
	return map[string]any{
		"title":       title,
		"description": "A description of " + title,
		"techStack":   []string{"go", "postgres"},
		"githubUrl":   "https://github.com/example/repo",
		"liveUrl":     "https://example.com",
		"category":    "web",
		"imageUrls":   []string{"https://example.com/shot.png"},
	}
}

func TestCreateProject(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	rr := server.request(t, http.MethodPost, "/api/projects", token, projectPayload("Portfolio Site"))
	require.Equal(t, http.StatusCreated, rr.Code)

	project := decodeBody(t, rr)["project"].(map[string]any)
	assert.Equal(t, "portfolio-site", project["slug"])
	assert.Equal(t, "Portfolio Site", project["title"])
	assert.NotEmpty(t, project["id"])
}

func TestCreateProjectSlugCollision(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	first := server.request(t, http.MethodPost, "/api/projects", token, projectPayload("Twin Project"))
	second := server.request(t, http.MethodPost, "/api/projects", token, projectPayload("Twin Project"))
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, http.StatusCreated, second.Code)

	assert.Equal(t, "twin-project", decodeBody(t, first)["project"].(map[string]any)["slug"])
	assert.Equal(t, "twin-project-1", decodeBody(t, second)["project"].(map[string]any)["slug"])
}

func TestCreateProjectValidation(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	for _, field := range []string{"title", "description", "category"} {
		payload := projectPayload("Valid Project")
		delete(payload, field)

		rr := server.request(t, http.MethodPost, "/api/projects", token, payload)
		require.Equal(t, http.StatusBadRequest, rr.Code, "missing %s", field)
		assert.Equal(t, field, decodeBody(t, rr)["field"])
	}
}

func TestGetProjects(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	server.request(t, http.MethodPost, "/api/projects", token, projectPayload("Old Project"))
	server.request(t, http.MethodPost, "/api/projects", token, projectPayload("New Project"))

	rr := server.request(t, http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	projects := decodeBody(t, rr)["projects"].([]any)
	require.Len(t, projects, 2)
	assert.Equal(t, "new-project", projects[0].(map[string]any)["slug"])
	assert.Equal(t, "old-project", projects[1].(map[string]any)["slug"])
}

func TestGetProjectBySlug(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	server.request(t, http.MethodPost, "/api/projects", token, projectPayload("Showcase"))

	rr := server.request(t, http.MethodGet, "/api/projects/showcase", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Showcase", decodeBody(t, rr)["project"].(map[string]any)["title"])

	missing := server.request(t, http.MethodGet, "/api/projects/nope", "", nil)
	require.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "project not found", decodeBody(t, missing)["error"])
}

func TestUpdateProjectKeepsSlug(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	server.request(t, http.MethodPost, "/api/projects", token, projectPayload("First Name"))

	update := projectPayload("Renamed Project")
	rr := server.request(t, http.MethodPut, "/api/projects/first-name", token, update)
	require.Equal(t, http.StatusOK, rr.Code)

	project := decodeBody(t, rr)["project"].(map[string]any)
	assert.Equal(t, "Renamed Project", project["title"])
	assert.Equal(t, "first-name", project["slug"])
}

func TestDeleteProject(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	server.request(t, http.MethodPost, "/api/projects", token, projectPayload("Short Lived"))

	rr := server.request(t, http.MethodDelete, "/api/projects/short-lived", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Project deleted successfully", decodeBody(t, rr)["message"])

	gone := server.request(t, http.MethodGet, "/api/projects/short-lived", "", nil)
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestProjectAdminRoutesRequireSession(t *testing.T) {
	server := newTestServer(t)

	rr := server.request(t, http.MethodPost, "/api/projects", "", projectPayload("Sneaky Project"))
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	del := server.request(t, http.MethodDelete, "/api/projects/anything", "", nil)
	assert.Equal(t, http.StatusUnauthorized, del.Code)
}
