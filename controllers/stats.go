package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Player stats
// @Description Returns the rating and counters of a player
// @Tags stats
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param username path string true "Username"
// @Success 200 {object} models.Stats
// @Failure 404 {object} object{error=string}
// @Router /auth/stats/{username} [get]
// @Security ApiKeyAuth
func GetStats(accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := accounts.LoadStats(c.Request.Context(), c.Param("username"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
