package controllers

import (
	"Connect4/middleware"
	"Connect4/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Get a match
// @Description Returns the current state of a match
// @Tags matches
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path string true "Match id"
// @Success 200 {object} models.Match
// @Failure 404 {object} object{error=string}
// @Router /auth/matches/{id} [get]
// @Security ApiKeyAuth
func GetMatch(matches Matches) gin.HandlerFunc {
	return func(c *gin.Context) {
		match, err := matches.GetMatch(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, match)
	}
}

// @Summary List the user's matches
// @Description Returns the user's matches, newest first, optionally by status
// @Tags matches
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param status query string false "IN_PROGRESS, NORMALLY_TERMINATED or FORFAIT"
// @Success 200 {array} models.Match
// @Failure 400 {object} object{error=string}
// @Router /auth/matches [get]
// @Security ApiKeyAuth
func ListMatches(accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := models.MatchStatus(c.Query("status"))
		switch status {
		case "", models.IN_PROGRESS, models.NORMALLY_TERMINATED, models.FORFAIT:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
			return
		}
		found, err := accounts.FindMatches(c.Request.Context(), models.MatchFilter{
			Username: middleware.CurrentUser(c),
			Status:   status,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
	}
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

// @Summary Play a move
// @Description Drops a disc in a column of the match
// @Tags matches
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path string true "Match id"
// @Param body body moveRequest true "Column, 0 to 6"
// @Success 200 {object} models.Match
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/matches/{id}/moves [post]
// @Security ApiKeyAuth
func AddMove(matches Matches) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req moveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Column is required"})
			return
		}
		matchID := c.Param("id")
		if err := matches.ApplyMove(c.Request.Context(), matchID, middleware.CurrentUser(c), *req.Column); err != nil {
			respondError(c, err)
			return
		}
		respondMatch(c, matches, matchID)
	}
}

// @Summary Forfeit a match
// @Description The user gives up the match and the opponent wins
// @Tags matches
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path string true "Match id"
// @Success 200 {object} models.Match
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/matches/{id}/forfeit [post]
// @Security ApiKeyAuth
func ForfeitMatch(matches Matches) gin.HandlerFunc {
	return func(c *gin.Context) {
		matchID := c.Param("id")
		if err := matches.Forfeit(c.Request.Context(), matchID, middleware.CurrentUser(c)); err != nil {
			respondError(c, err)
			return
		}
		respondMatch(c, matches, matchID)
	}
}

// @Summary Observe a match
// @Description Every connection of the user starts receiving the match events
// @Tags matches
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path string true "Match id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/matches/{id}/observers [post]
// @Security ApiKeyAuth
func JoinObservers(matches Matches) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := matches.JoinObservers(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Observing match"})
	}
}

// @Summary Stop observing a match
// @Tags matches
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path string true "Match id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/matches/{id}/observers [delete]
// @Security ApiKeyAuth
func LeaveObservers(matches Matches) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := matches.LeaveObservers(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Stopped observing match"})
	}
}

func respondMatch(c *gin.Context, matches Matches, matchID string) {
	match, err := matches.GetMatch(c.Request.Context(), matchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}
