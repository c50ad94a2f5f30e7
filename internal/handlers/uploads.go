package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-studio/vitrine/internal/services"
	apperrors "github.com/vitrine-studio/vitrine/pkg/errors"
	"github.com/vitrine-studio/vitrine/pkg/response"
)

const (
	uploadField = "file"
	// multipartOverhead leaves room for boundaries and part headers on top of the file limit.
	multipartOverhead = 1 << 20
)

// UploadHandler accepts media uploads for the back office.
type UploadHandler struct {
	svc *services.UploadService
}

func NewUploadHandler(svc *services.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// POST /api/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	limit := h.svc.MaxBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	header, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			response.Error(c, apperrors.ErrPayloadTooLarge.WithMessage(fmt.Sprintf("file exceeds the %d MB limit", limit>>20)))
		case errors.Is(err, http.ErrMissingFile):
			response.Error(c, apperrors.NewBadRequest("no file uploaded"))
		default:
			response.Error(c, apperrors.NewBadRequest("invalid multipart payload"))
		}
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, apperrors.ErrInternalServer.WithInternal(err))
		return
	}
	defer file.Close()

	uploaded, err := h.svc.Save(requestContext(c), header.Filename, header.Size, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, uploaded)
}

// DELETE /api/upload/:filename
func (h *UploadHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(requestContext(c), c.Param("filename")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
