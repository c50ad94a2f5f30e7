package handlers

import (
	"github.com/vitrine-studio/vitrine/internal/cache"
	"github.com/vitrine-studio/vitrine/internal/models"
	"github.com/vitrine-studio/vitrine/internal/services"
)

const (
	servicesPath     = "/api/services"
	partnersPath     = "/api/partners"
	testimonialsPath = "/api/testimonials"
)

type (
	// CatalogHandler serves the agency's service offerings.
	CatalogHandler = RecordHandler[models.Service, services.ServiceInput, services.ServiceUpdate]
	// PartnerHandler serves partner logos.
	PartnerHandler = RecordHandler[models.Partner, services.PartnerInput, services.PartnerUpdate]
	// TestimonialHandler serves client testimonials.
	TestimonialHandler = RecordHandler[models.Testimonial, services.TestimonialInput, services.TestimonialUpdate]
)

func NewCatalogHandler(svc *services.CatalogService, invalidator *cache.Invalidator) *CatalogHandler {
	return newRecordHandler[models.Service, services.ServiceInput, services.ServiceUpdate](svc, servicesPath, invalidator)
}

func NewPartnerHandler(svc *services.PartnerService, invalidator *cache.Invalidator) *PartnerHandler {
	return newRecordHandler[models.Partner, services.PartnerInput, services.PartnerUpdate](svc, partnersPath, invalidator)
}

func NewTestimonialHandler(svc *services.TestimonialService, invalidator *cache.Invalidator) *TestimonialHandler {
	return newRecordHandler[models.Testimonial, services.TestimonialInput, services.TestimonialUpdate](svc, testimonialsPath, invalidator)
}
