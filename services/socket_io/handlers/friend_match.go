package handlers

import (
	"Connect4/logger"
	"Connect4/services/coordinator"
	socketio_utils "Connect4/services/socket_io/utils"
	"context"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleFriendMatchRequest expects the friend's username as first argument
func HandleFriendMatchRequest(coord *coordinator.Coordinator, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		friend, ok := socketio_utils.StringArg(args, 0)
		if !ok || friend == "" {
			client.Emit("error", gin.H{"event": "friendMatchRequest", "error": "Missing friend username"})
			return
		}
		logger.Debugf("[FRIEND-MATCH] %s -> %s via %s", username, friend, client.Id())
		if err := coord.SendFriendMatchRequest(context.Background(), username, friend); err != nil {
			emitError(client, "friendMatchRequest", err)
		}
	}
}

// HandleDeleteFriendMatchRequest expects the friend's username as first argument
func HandleDeleteFriendMatchRequest(coord *coordinator.Coordinator, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		friend, ok := socketio_utils.StringArg(args, 0)
		if !ok || friend == "" {
			client.Emit("error", gin.H{"event": "deleteFriendMatchRequest", "error": "Missing friend username"})
			return
		}
		coord.CancelFriendMatchRequest(context.Background(), username, friend)
	}
}
