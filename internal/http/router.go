// Package httpapi wires the Gin transport to the tracker's services,
// middleware and handlers. It owns middleware ordering, CORS and security
// posture, the operational endpoints (/health, /metrics, /swagger) and the
// versioned REST API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker/docs"
	"github.com/tbourn/go-jobtracker/internal/config"
	"github.com/tbourn/go-jobtracker/internal/http/handlers"
	"github.com/tbourn/go-jobtracker/internal/http/middleware"
	"github.com/tbourn/go-jobtracker/internal/repo"
	"github.com/tbourn/go-jobtracker/internal/services"
)

// NewHandlers builds the service graph over db and returns the HTTP handlers.
func NewHandlers(db *gorm.DB, cfg config.Config) *handlers.Handlers {
	m := services.NewManagers(db, repo.Gateway{}, cfg.List.Max)
	return handlers.New(handlers.Services{
		Users:            m.Users,
		Companies:        m.Companies,
		Jobs:             m.Jobs,
		Applications:     m.Applications,
		Activities:       m.Activities,
		Stats:            m.Stats,
		Idempotency:      handlers.DBIdempotency{DB: db, TTL: cfg.IdempotencyTTL},
		DefaultListLimit: cfg.List.Default,
	})
}

// RegisterRoutes attaches all middleware and endpoints to r.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: access logs with PII scrubbing, request-scoped logger
//  4. Recovery: capture panics after the logger
//  5. Body size limiter
//  6. Metrics
//  7. Idempotency validator (before the rate limiter so replays bypass it)
//  8. Rate limiter (per client IP)
//  9. CORS, security headers, optional gzip
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(1 << 20))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	idem := handlers.DBIdempotency{DB: db, TTL: cfg.IdempotencyTTL}
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, idem.Exists))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))
	if cfg.GzipEnabled {
		r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	}

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := NewHandlers(db, cfg)
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.POST("/users", h.CreateUser)
		api.GET("/users", h.ListUsers)
		api.GET("/users/:id", h.GetUser)
		api.PUT("/users/:id", h.UpdateUser)
		api.DELETE("/users/:id", h.DeleteUser)
		api.GET("/users/email/:email/exists", h.UserEmailExists)

		api.POST("/companies", h.CreateCompany)
		api.GET("/companies", h.ListCompanies)
		api.GET("/companies/:id", h.GetCompany)
		api.PUT("/companies/:id", h.UpdateCompany)
		api.DELETE("/companies/:id", h.DeleteCompany)
		api.GET("/companies/name/:name/exists", h.CompanyNameExists)

		api.POST("/jobs", h.CreateJob)
		api.GET("/jobs", h.ListJobs)
		api.GET("/jobs/:id", h.GetJob)
		api.PUT("/jobs/:id", h.UpdateJob)
		api.DELETE("/jobs/:id", h.DeleteJob)
		api.GET("/jobs/:id/exists", h.JobExists)

		api.POST("/applications", h.CreateApplication)
		api.GET("/applications", h.ListApplications)
		api.GET("/applications/:id", h.GetApplication)
		api.DELETE("/applications/:id", h.DeleteApplication)
		api.PUT("/applications/:id/status", h.UpdateApplicationStatus)
		api.PUT("/applications/:id/notes", h.UpdateApplicationNotes)
		api.PUT("/applications/:id/source", h.UpdateApplicationSource)
		api.GET("/applications/:id/exists", h.ApplicationExists)
		api.GET("/applications/:id/activities", h.ApplicationTimeline)
		api.GET("/applications/user/:user_id/job/:job_id/exists", h.UserJobApplicationExists)

		api.GET("/activities", h.ListActivities)
		api.GET("/activities/:id", h.GetActivity)
		api.PUT("/activities/:id/details", h.UpdateActivityDetails)

		api.GET("/stats", h.Stats)
	}
}

// corsMiddleware allows every origin when none are configured; otherwise
// it echoes allowlisted origins only.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	methods := []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	headers := []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey}
	expose := []string{"X-Request-ID", "Content-Length", middleware.HeaderReplayed}

	if len(origins) == 0 {
		return []gin.HandlerFunc{
			// ACAO even without an Origin header, for curl and health probes.
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(cors.Config{
				AllowAllOrigins: true,
				AllowMethods:    methods,
				AllowHeaders:    headers,
				ExposeHeaders:   expose,
				MaxAge:          12 * time.Hour,
			}),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  methods,
			AllowHeaders:  headers,
			ExposeHeaders: expose,
			MaxAge:        12 * time.Hour,
		}),
	}
}

// limitBody caps request bodies at maxBytes; larger bodies fail to decode.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
