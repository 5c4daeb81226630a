package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"github.com/sujalbistaa/swipe/internal/config"
	"github.com/sujalbistaa/swipe/internal/logger"
	"github.com/sujalbistaa/swipe/internal/ws"
)

// SetupRoutes configures all application routes and middleware. The
// scheduler, when non-nil, receives the rate limiter sweep job.
func SetupRoutes(router *gin.Engine, env *Env, cfg *config.Config, scheduler *cron.Cron) {

	// --- Middleware ---
	router.Use(LogApi())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())
	router.Use(cors.New(corsConfig(cfg.CORSOrigin)))
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws"})))

	// --- Rate Limiter Setup ---
	limiter := NewIPRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
	if scheduler != nil {
		if _, err := scheduler.AddJob("@every 10m", limiter); err != nil {
			logger.Warningf("rate limiter sweep not scheduled: %v", err)
		}
	}
	limited := RateLimitMiddleware(limiter)
	requireAuth := RequireAuth(env.Auth)

	// --- API Routes ---
	api := router.Group("/api")
	{
		api.GET("/health", env.Health)
		api.POST("/seed", env.Seed)

		api.GET("/pitches", env.GetPitches)
		api.POST("/pitches", requireAuth, limited, env.CreatePitch)
		api.GET("/pitches/:id/votes", env.GetPitchVotes)
		api.POST("/vote", env.SubmitVote)

		authGroup := api.Group("/auth")
		authGroup.POST("/register", limited, env.Register)
		authGroup.POST("/jwt/login", limited, env.Login)
		authGroup.POST("/jwt/logout", requireAuth, env.Logout)

		users := api.Group("/users", requireAuth)
		users.GET("/me", env.GetMe)
		users.PATCH("/me", env.UpdateMe)
		users.GET("/:id", RequireSuperuser(), env.GetUser)
		users.PATCH("/:id", RequireSuperuser(), env.UpdateUser)
		users.DELETE("/:id", RequireSuperuser(), env.DeleteUser)
	}

	// --- WebSocket Route ---
	if env.Hub != nil {
		router.GET("/ws", func(c *gin.Context) {
			ws.ServeWs(env.Hub, c.Writer, c.Request)
		})
	}

	// --- Serve Frontend ---
	serveSPA(router, cfg.StaticDir)
}

func corsConfig(origin string) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if origin == "" || origin == "*" {
		cc.AllowAllOrigins = true
		return cc
	}
	for _, o := range strings.Split(origin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cc.AllowOrigins = append(cc.AllowOrigins, o)
		}
	}
	cc.AllowCredentials = true
	return cc
}

// serveSPA serves a built single-page app from dir when it has an index.html.
// Unknown /api paths always get a JSON 404.
func serveSPA(router *gin.Engine, dir string) {
	index := filepath.Join(dir, "index.html")
	hasApp := false
	if dir != "" {
		if _, err := os.Stat(index); err == nil {
			hasApp = true
			router.Static("/assets", filepath.Join(dir, "assets"))
		} else {
			logger.Warningf("STATIC_DIR %s has no index.html, frontend disabled", dir)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		if hasApp && c.Request.Method == http.MethodGet {
			c.File(index)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"message": "Run 'npm run dev' to see the frontend"})
	})
}
