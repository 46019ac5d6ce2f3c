package handlers

import (
	"Connect4/services/coordinator"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// emitError reports a rejected client event back to the sending connection
func emitError(client *socket.Socket, event string, err error) {
	client.Emit("error", gin.H{
		"event": event,
		"error": err.Error(),
		"kind":  coordinator.KindOf(err),
	})
}
