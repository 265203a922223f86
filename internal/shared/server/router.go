package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stress-backend/internal/analyses"
	"stress-backend/internal/services/health"
	"stress-backend/internal/shared/config"
	"stress-backend/internal/shared/metrics"
	"stress-backend/internal/shared/server/middleware"
	"stress-backend/internal/shared/server/respond"
	"stress-backend/internal/users"
)

const captureRateGroup = "CAPTURE"

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config          config.Config
	Health          *health.Service
	UserHandler     *users.Handler
	AnalysisHandler *analyses.Handler
	RateLimiter     *middleware.RateLimiter
}

// publicPrefixes are reachable without a bearer token.
var publicPrefixes = []string{
	"/api/v1/health",
	"/api/v1/auth/",
	"/api/v1/recommendations/",
	"/metrics",
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(publicPrefixes...),
		middleware.RateLimit(middleware.RateLimitConfig{
			Limiter:  deps.RateLimiter,
			GroupFor: rateGroupFor,
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT":        {Rate: 10, Burst: 30},
				captureRateGroup: {Rate: 1, Burst: 5},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status := deps.Health.Check(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})

	if deps.UserHandler != nil {
		deps.UserHandler.RegisterPublicRoutes(api)
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterPublicRoutes(api)
		deps.AnalysisHandler.RegisterRoutes(api)
	}

	return r
}

func rateGroupFor(c *gin.Context) string {
	if c.FullPath() == "/api/v1/analyses/capture" {
		return captureRateGroup
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
