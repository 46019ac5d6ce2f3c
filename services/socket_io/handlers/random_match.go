package handlers

import (
	"Connect4/services/coordinator"
	"context"

	"github.com/zishang520/socket.io/v2/socket"
)

func HandleRandomMatchRequest(coord *coordinator.Coordinator, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if err := coord.SendRandomMatchRequest(context.Background(), username); err != nil {
			emitError(client, "randomMatchRequest", err)
		}
	}
}

func HandleCancelRandomMatchRequest(coord *coordinator.Coordinator, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		coord.CancelRandomMatchRequest(context.Background(), username)
	}
}
