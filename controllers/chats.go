package controllers

import (
	"Connect4/middleware"
	"Connect4/services/coordinator"
	"context"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

// @Summary Chat history with a friend
// @Description Returns the chat lines exchanged with a friend, oldest first
// @Tags chats
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param friend path string true "Friend username"
// @Success 200 {array} models.FriendChat
// @Failure 400 {object} object{error=string}
// @Router /auth/chats/{friend} [get]
// @Security ApiKeyAuth
func GetChatHistory(accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, friend := middleware.CurrentUser(c), c.Param("friend")
		if err := checkFriends(c.Request.Context(), accounts, username, friend); err != nil {
			respondError(c, err)
			return
		}
		chats, err := accounts.ChatHistory(c.Request.Context(), username, friend)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, chats)
	}
}

func checkFriends(ctx context.Context, accounts Accounts, username, friend string) error {
	friends, err := accounts.FriendsOf(ctx, username)
	if err != nil {
		return err
	}
	if !slices.Contains(friends, friend) {
		return coordinator.ErrNotFriends
	}
	return nil
}
