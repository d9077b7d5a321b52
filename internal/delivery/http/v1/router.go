package v1

import (
	"net/http"
	"time"

	"go-landing-page/config"
	"go-landing-page/internal/delivery/http/middleware"
	"go-landing-page/internal/delivery/http/response"
	"go-landing-page/internal/domain"
	"go-landing-page/internal/usecase"
	"go-landing-page/internal/view"
	"go-landing-page/pkg/audit"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Site      SiteProvider
	Forms     *usecase.FormSessions
	Binder    *view.Binder
	Renderer  *view.Renderer
	ContactUC domain.ContactUsecase // nil when the relay is disabled
	Health    usecase.HealthUsecase
	Counter   middleware.WindowCounter
	Audit     *audit.Logger
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(deps.Renderer.Templates())

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	globalLimit := middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)
	globalLimit.Counter = deps.Counter
	globalLimit.Audit = deps.Audit

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins)) // CORS must be first
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.RateLimitMiddleware(globalLimit))
	r.Use(middleware.CSRFMiddleware(middleware.CSRFConfig{
		Secure:      deps.Config.IsProduction(),
		ExemptPaths: []string{"/v1/contact", "/v1/health"},
	}))
	r.Use(middleware.ErrorHandler())

	// Pages
	NewPageHandler(r, deps.Site, deps.Forms, deps.Binder)

	v1 := r.Group("/v1")

	// Health Check
	health := deps.Health
	if health == nil {
		health = usecase.NewHealthUsecase(deps.Site, deps.Forms, nil)
	}
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", health.Check(c.Request.Context()))
	})

	NewFormHandler(v1, deps.Site, deps.Forms)

	// Submission relay, stricter rate limit per client
	if deps.ContactUC != nil {
		contactLimit := middleware.ContactRateLimitConfig(deps.Config.RateLimitContactThreshold, window)
		contactLimit.Counter = deps.Counter
		contactLimit.Audit = deps.Audit
		NewContactHandler(v1, deps.ContactUC, middleware.RateLimitMiddleware(contactLimit))
	}

	return r
}
