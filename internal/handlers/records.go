package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-studio/vitrine/internal/cache"
	"github.com/vitrine-studio/vitrine/pkg/response"
)

type identified interface {
	RecordID() uint
}

// recordService is the CRUD surface shared by the id addressed resources.
type recordService[M identified, I any, U any] interface {
	List(ctx context.Context) ([]M, error)
	Get(ctx context.Context, id uint) (*M, error)
	Create(ctx context.Context, input I) (*M, error)
	Update(ctx context.Context, id uint, input U) (*M, error)
	Delete(ctx context.Context, id uint) (*M, error)
}

// RecordHandler serves a resource addressed by numeric id only. Writes purge
// the cached collection and item paths under path.
type RecordHandler[M identified, I any, U any] struct {
	svc         recordService[M, I, U]
	path        string
	invalidator *cache.Invalidator
}

func newRecordHandler[M identified, I any, U any](svc recordService[M, I, U], path string, invalidator *cache.Invalidator) *RecordHandler[M, I, U] {
	return &RecordHandler[M, I, U]{svc: svc, path: path, invalidator: invalidator}
}

// GET <path>
func (h *RecordHandler[M, I, U]) List(c *gin.Context) {
	records, err := h.svc.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, records, len(records))
}

// GET <path>/:id
func (h *RecordHandler[M, I, U]) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	record, err := h.svc.Get(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, record)
}

// POST <path>
func (h *RecordHandler[M, I, U]) Create(c *gin.Context) {
	var input I
	if !bindJSON(c, &input) {
		return
	}

	record, err := h.svc.Create(requestContext(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.invalidator.Resource(h.path, (*record).RecordID())
	response.Success(c, http.StatusCreated, record)
}

// PUT <path>/:id
func (h *RecordHandler[M, I, U]) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input U
	if !bindJSON(c, &input) {
		return
	}

	record, err := h.svc.Update(requestContext(c), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.invalidator.Resource(h.path, id)
	response.Success(c, http.StatusOK, record)
}

// DELETE <path>/:id
func (h *RecordHandler[M, I, U]) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if _, err := h.svc.Delete(requestContext(c), id); err != nil {
		response.Error(c, err)
		return
	}

	h.invalidator.Resource(h.path, id)
	response.NoContent(c)
}
