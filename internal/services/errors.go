package services

import (
	"errors"
	"fmt"

	"github.com/vitrine-studio/vitrine/pkg/slug"
	"github.com/vitrine-studio/vitrine/pkg/validator"

	apperrors "github.com/vitrine-studio/vitrine/pkg/errors"
)

var (
	ErrArticleNotFound     = apperrors.ErrNotFound.WithMessage("Article not found")
	ErrProjectNotFound     = apperrors.ErrNotFound.WithMessage("Project not found")
	ErrServiceNotFound     = apperrors.ErrNotFound.WithMessage("Service not found")
	ErrPartnerNotFound     = apperrors.ErrNotFound.WithMessage("Partner not found")
	ErrTestimonialNotFound = apperrors.ErrNotFound.WithMessage("Testimonial not found")
	ErrPromotionNotFound   = apperrors.ErrNotFound.WithMessage("Promotion not found")
	ErrConfigNotFound      = apperrors.ErrNotFound.WithMessage("Config key not found")
	ErrAdminNotFound       = apperrors.ErrNotFound.WithMessage("Admin not found")
	ErrFileNotFound        = apperrors.ErrNotFound.WithMessage("File not found")

	ErrPartnerNameTaken = apperrors.ErrConflict.WithMessage("A partner with this name already exists")
)

// validateInput runs struct validation and converts failures into a 400.
func validateInput(input any) error {
	err := validator.ValidateStruct(input)
	if err == nil {
		return nil
	}
	var failures validator.ValidationErrors
	if errors.As(err, &failures) {
		return apperrors.NewValidation(failures.Error())
	}
	return apperrors.NewValidation(err.Error())
}

// translateSlugError maps slug resolution failures onto API errors. Errors
// from the persistence layer itself are passed through.
func translateSlugError(scope string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, slug.ErrEmpty):
		return apperrors.NewValidation("title must contain at least one letter or digit to build a slug")
	case errors.Is(err, slug.ErrCheckFailed):
		return apperrors.ErrDependency.
			WithMessage("Could not verify slug uniqueness, please retry").
			WithInternal(fmt.Errorf("%s: %w", scope, err))
	case errors.Is(err, slug.ErrExhausted):
		return apperrors.NewConflict("Could not allocate a unique slug, please retry").WithInternal(err)
	default:
		return fmt.Errorf("%s: %w", scope, err)
	}
}
