package controllers

import (
	"Connect4/logger"
	"Connect4/services/coordinator"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError writes err with the status matching its kind
func respondError(c *gin.Context, err error) {
	kind := coordinator.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case coordinator.KindValidation:
		status = http.StatusBadRequest
	case coordinator.KindPrecondition:
		status = http.StatusConflict
	case coordinator.KindNotFound:
		status = http.StatusNotFound
	default:
		logger.Errorf("[HTTP-ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "Internal server error", "kind": kind})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}
