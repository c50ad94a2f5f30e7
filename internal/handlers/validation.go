package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/vitrine-studio/vitrine/pkg/errors"
	"github.com/vitrine-studio/vitrine/pkg/response"
	appValidator "github.com/vitrine-studio/vitrine/pkg/validator"
)

// bindJSON decodes the JSON payload into dest. Field rules are left to the
// services so every caller gets the same checks. When decoding fails an error
// response is written and false is returned.
func bindJSON[T any](c *gin.Context, dest *T) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid JSON payload"))
		return false
	}
	return true
}

// bindAndValidate binds the JSON payload into dest and runs struct validation rules.
// When validation fails, an error response is automatically written and false is returned.
func bindAndValidate[T any](c *gin.Context, dest *T) bool {
	if !bindJSON(c, dest) {
		return false
	}

	if err := appValidator.ValidateStruct(dest); err != nil {
		response.Error(c, apperrors.NewValidation(formatValidationError(err)))
		return false
	}

	return true
}

func formatValidationError(err error) string {
	var failures appValidator.ValidationErrors
	if errors.As(err, &failures) && len(failures) > 0 {
		return failures.Error()
	}
	return "invalid request payload"
}

// idParam parses the numeric :id path parameter, writing a 400 when it is malformed.
func idParam(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperrors.NewBadRequest("invalid id "+strconv.Quote(raw)))
		return 0, false
	}
	return uint(id), true
}

// boolQuery parses an optional boolean query parameter. ok is false when the
// parameter is malformed and a 400 has been written.
func boolQuery(c *gin.Context, key string) (value *bool, ok bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		response.Error(c, apperrors.NewBadRequest(key+" must be true or false"))
		return nil, false
	}
	return &parsed, true
}
