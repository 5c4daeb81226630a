package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sujalbistaa/swipe/internal/apperr"
	"github.com/sujalbistaa/swipe/internal/logger"
)

// respondError writes the {"detail": ...} envelope for err.
func respondError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindConflict:
		c.JSON(http.StatusBadRequest, gin.H{"detail": apperr.CodeOf(err)})
	case apperr.KindUnauthorized:
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"detail": apperr.CodeOf(err)})
	case apperr.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"detail": apperr.CodeForbidden})
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"detail": apperr.CodeNotFound})
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
	}
}

// respondBindError reports a request body that does not match the schema.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid input: " + err.Error()})
}
