package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-studio/vitrine/internal/cache"
	"github.com/vitrine-studio/vitrine/internal/services"
	"github.com/vitrine-studio/vitrine/pkg/response"
)

const articlesPath = "/api/articles"

// ArticleHandler serves news articles.
type ArticleHandler struct {
	svc         *services.ArticleService
	invalidator *cache.Invalidator
}

func NewArticleHandler(svc *services.ArticleService, invalidator *cache.Invalidator) *ArticleHandler {
	return &ArticleHandler{svc: svc, invalidator: invalidator}
}

// GET /api/articles?published=&category=
func (h *ArticleHandler) List(c *gin.Context) {
	published, ok := boolQuery(c, "published")
	if !ok {
		return
	}

	articles, err := h.svc.List(requestContext(c), services.ArticleFilter{
		Published: published,
		Category:  c.Query("category"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, articles, len(articles))
}

// GET /api/articles/:id
//
// The parameter accepts either the numeric id or the slug.
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, article)
}

// POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var input services.ArticleInput
	if !bindJSON(c, &input) {
		return
	}

	article, err := h.svc.Create(requestContext(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.invalidator.Resource(articlesPath, article.ID, article.Slug)
	response.Success(c, http.StatusCreated, article)
}

// PUT /api/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input services.ArticleUpdate
	if !bindJSON(c, &input) {
		return
	}

	article, previousSlug, err := h.svc.Update(requestContext(c), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.invalidator.Resource(articlesPath, article.ID, article.Slug, previousSlug)
	response.Success(c, http.StatusOK, article)
}

// DELETE /api/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	article, err := h.svc.Delete(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.invalidator.Resource(articlesPath, article.ID, article.Slug)
	response.NoContent(c)
}
