package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-studio/vitrine/internal/cache"
	"github.com/vitrine-studio/vitrine/internal/services"
	"github.com/vitrine-studio/vitrine/pkg/response"
)

const projectsPath = "/api/projects"

// ProjectHandler serves portfolio projects.
type ProjectHandler struct {
	svc         *services.ProjectService
	invalidator *cache.Invalidator
}

func NewProjectHandler(svc *services.ProjectService, invalidator *cache.Invalidator) *ProjectHandler {
	return &ProjectHandler{svc: svc, invalidator: invalidator}
}

// GET /api/projects?category=
//
// The category "Tous" lists every project.
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.svc.List(requestContext(c), c.Query("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, projects, len(projects))
}

// GET /api/projects/:id
//
// The parameter accepts either the numeric id or the slug.
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, project)
}

// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var input services.ProjectInput
	if !bindJSON(c, &input) {
		return
	}

	project, err := h.svc.Create(requestContext(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.invalidator.Resource(projectsPath, project.ID, project.Slug)
	response.Success(c, http.StatusCreated, project)
}

// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input services.ProjectUpdate
	if !bindJSON(c, &input) {
		return
	}

	project, previousSlug, err := h.svc.Update(requestContext(c), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.invalidator.Resource(projectsPath, project.ID, project.Slug, previousSlug)
	response.Success(c, http.StatusOK, project)
}

// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	project, err := h.svc.Delete(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.invalidator.Resource(projectsPath, project.ID, project.Slug)
	response.NoContent(c)
}
