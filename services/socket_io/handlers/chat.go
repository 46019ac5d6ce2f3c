package handlers

import (
	"Connect4/services/coordinator"
	"context"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleFriendChat expects {"to": <friend>, "text": <message>}
func HandleFriendChat(coord *coordinator.Coordinator, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) == 0 {
			client.Emit("error", gin.H{"event": "friendChat", "error": "Missing message"})
			return
		}
		data, ok := args[0].(map[string]interface{})
		if !ok {
			client.Emit("error", gin.H{"event": "friendChat", "error": "Invalid message format"})
			return
		}
		to, _ := data["to"].(string)
		text, _ := data["text"].(string)
		if err := coord.FriendChat(context.Background(), username, to, text); err != nil {
			emitError(client, "friendChat", err)
		}
	}
}
