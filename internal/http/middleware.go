package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sujalbistaa/swipe/internal/apperr"
	"github.com/sujalbistaa/swipe/internal/auth"
	"github.com/sujalbistaa/swipe/internal/logger"
	"github.com/sujalbistaa/swipe/internal/models"
)

const (
	ctxUserKey  = "user"
	ctxTokenKey = "token"
)

// bearerToken extracts the credential from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) string {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth resolves the bearer token to an active user and stores it in
// the context.
func RequireAuth(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		user, err := svc.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(ctxUserKey, user)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

// RequireSuperuser must run after RequireAuth.
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !user.IsSuperuser {
			respondError(c, apperr.Forbidden())
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// SecurityHeadersMiddleware adds basic, sensible security headers.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "same-origin")
		c.Next()
	}
}

// LogApi writes one access log line per request through the app logger.
func LogApi() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Output: logger.Writer{},
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s | %d | %s | %s | %s | %s\n",
				param.ClientIP,
				param.StatusCode,
				param.Method,
				param.Path,
				param.Latency,
				param.ErrorMessage,
			)
		},
	})
}

// notFound is the /api fallback.
func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": apperr.CodeNotFound})
}
