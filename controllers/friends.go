package controllers

import (
	"Connect4/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Get a list of a user friends
// @Description Returns the usernames of the user's friends
// @Tags friends
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} string
// @Failure 500 {object} object{error=string}
// @Router /auth/friends [get]
// @Security ApiKeyAuth
func ListFriends(accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		friends, err := accounts.FriendsOf(c.Request.Context(), middleware.CurrentUser(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, friends)
	}
}

type addFriendRequest struct {
	Username string `json:"username" binding:"required"`
}

// @Summary Add a friend
// @Description Makes the user and the given player friends
// @Tags friends
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param body body addFriendRequest true "Friend"
// @Success 201 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/friends [post]
// @Security ApiKeyAuth
func AddFriend(accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := middleware.CurrentUser(c)
		var req addFriendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
			return
		}
		if req.Username == username {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You can't befriend yourself"})
			return
		}
		if _, err := accounts.LoadPlayer(c.Request.Context(), req.Username); err != nil {
			respondError(c, err)
			return
		}
		if err := accounts.AddFriendship(c.Request.Context(), username, req.Username); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Friend added"})
	}
}
