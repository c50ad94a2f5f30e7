package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/vitrine-studio/vitrine/internal/app"
	iauth "github.com/vitrine-studio/vitrine/internal/auth"
	"github.com/vitrine-studio/vitrine/internal/cache"
	"github.com/vitrine-studio/vitrine/internal/handlers"
	"github.com/vitrine-studio/vitrine/internal/middleware"
	"github.com/vitrine-studio/vitrine/internal/monitoring"
	"github.com/vitrine-studio/vitrine/internal/monitoring/checks"
	"github.com/vitrine-studio/vitrine/internal/services"
	"github.com/vitrine-studio/vitrine/internal/storage"
)

// Dependencies are the long-lived collaborators shared by every route.
type Dependencies struct {
	DB        *gorm.DB
	JWT       *iauth.JWTService
	Config    *app.Config
	Cache     *cache.ResponseCache
	Store     storage.ObjectStore
	RateStore middleware.RateStore
	// Health defaults to a manager probing the database and upload storage.
	Health *monitoring.HealthManager
}

func (d Dependencies) validate() error {
	switch {
	case d.DB == nil:
		return errors.New("database handle must be provided")
	case d.JWT == nil:
		return errors.New("jwt service must be provided")
	case d.Config == nil:
		return errors.New("config must be provided")
	case d.Cache == nil:
		return errors.New("response cache must be provided")
	case d.Store == nil:
		return errors.New("upload store must be provided")
	}
	return nil
}

// NewRouter builds the Gin engine, wires middleware and registers every route.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	cfg := deps.Config

	if deps.RateStore == nil {
		deps.RateStore = middleware.NewMemoryRateStore(nil)
	}
	if deps.Health == nil {
		deps.Health = monitoring.NewHealthManager()
		deps.Health.RegisterReadiness(checks.Database(deps.DB, 0))
		deps.Health.RegisterReadiness(checks.Storage(deps.Store, 0))
	}

	r := gin.New()

	// Global middleware. Compression wraps the cache buffer so stored bodies stay plain.
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.FrontendURL...))
	r.Use(middleware.Compression())

	svc, err := newServiceSet(deps)
	if err != nil {
		return nil, err
	}

	invalidator := cache.NewInvalidator(deps.Cache)
	requireAuth := middleware.Auth(deps.JWT, svc.admins)
	cached := func(resource string) gin.HandlerFunc {
		return middleware.ResponseCache(deps.Cache, middleware.CacheOptions{
			TTL:         cfg.Cache.TTLFor(resource),
			BypassParam: cfg.Cache.BypassParam,
		})
	}

	api := r.Group("/api")

	if cfg.Monitoring.Health.Enabled {
		registerHealthRoutes(api, handlers.NewHealthHandler(deps.Health))
	}

	loginRequests, loginWindow := cfg.Auth.LoginLimit()
	registerAuthRoutes(api, authRouteDeps{
		Handler:     handlers.NewAuthHandler(svc.admins),
		RequireAuth: requireAuth,
		LoginLimit:  middleware.RateLimit(deps.RateStore, loginRequests, loginWindow),
	})

	registerContentRoutes(api.Group("/articles"), cached("articles"), requireAuth, handlers.NewArticleHandler(svc.articles, invalidator))
	registerContentRoutes(api.Group("/projects"), cached("projects"), requireAuth, handlers.NewProjectHandler(svc.projects, invalidator))
	registerContentRoutes(api.Group("/services"), cached("services"), requireAuth, handlers.NewCatalogHandler(svc.catalog, invalidator))
	registerContentRoutes(api.Group("/partners"), cached("partners"), requireAuth, handlers.NewPartnerHandler(svc.partners, invalidator))
	registerContentRoutes(api.Group("/testimonials"), cached("testimonials"), requireAuth, handlers.NewTestimonialHandler(svc.testimonials, invalidator))
	registerPromotionRoutes(api.Group("/promotions"), cached("promotions"), requireAuth, handlers.NewPromotionHandler(svc.promotions, invalidator))
	registerConfigRoutes(api.Group("/config"), cached("config"), requireAuth, handlers.NewSiteConfigHandler(svc.siteConfig, invalidator))
	registerUploadRoutes(api.Group("/upload"), requireAuth, handlers.NewUploadHandler(svc.uploads))
	registerAdminRoutes(api.Group("/admin"), requireAuth, handlers.NewStatsHandler(svc.stats))

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := strings.TrimSpace(cfg.Monitoring.Prometheus.Endpoint)
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	registerStaticRoutes(r, cfg)

	return r, nil
}

type serviceSet struct {
	admins       *services.AdminService
	articles     *services.ArticleService
	projects     *services.ProjectService
	catalog      *services.CatalogService
	partners     *services.PartnerService
	testimonials *services.TestimonialService
	promotions   *services.PromotionService
	siteConfig   *services.SiteConfigService
	uploads      *services.UploadService
	stats        *services.StatsService
}

func newServiceSet(deps Dependencies) (*serviceSet, error) {
	set := &serviceSet{}
	var err error

	if set.admins, err = services.NewAdminService(deps.DB, deps.JWT); err != nil {
		return nil, err
	}
	if set.articles, err = services.NewArticleService(deps.DB); err != nil {
		return nil, err
	}
	if set.projects, err = services.NewProjectService(deps.DB); err != nil {
		return nil, err
	}
	if set.catalog, err = services.NewCatalogService(deps.DB); err != nil {
		return nil, err
	}
	if set.partners, err = services.NewPartnerService(deps.DB); err != nil {
		return nil, err
	}
	if set.testimonials, err = services.NewTestimonialService(deps.DB); err != nil {
		return nil, err
	}
	if set.promotions, err = services.NewPromotionService(deps.DB); err != nil {
		return nil, err
	}
	if set.siteConfig, err = services.NewSiteConfigService(deps.DB); err != nil {
		return nil, err
	}
	if set.uploads, err = services.NewUploadService(deps.Store, deps.Config.Storage.MaxUploadBytes()); err != nil {
		return nil, err
	}
	if set.stats, err = services.NewStatsService(deps.DB); err != nil {
		return nil, err
	}
	return set, nil
}
