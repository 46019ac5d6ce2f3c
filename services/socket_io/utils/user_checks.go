package socketio_utils

import (
	"Connect4/logger"
	"Connect4/middleware"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// VerifyUserConnection authenticates a socket.io client from the JWT sent in
// the handshake auth data, under "authorization".
func VerifyUserConnection(client *socket.Socket, jwtManager *middleware.JWTManager) (success bool, username string) {
	// Checks if we have auth data in the connection
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		return false, ""
	}
	token, exists := authData["authorization"].(string)
	if !exists {
		return false, ""
	}
	return VerifyToken(client, jwtManager, token)
}

// VerifyToken checks a bearer token sent by client, with or without the
// "Bearer " prefix, and reports the failure to the client.
func VerifyToken(client *socket.Socket, jwtManager *middleware.JWTManager, token string) (success bool, username string) {
	username, err := jwtManager.Verify(strings.TrimPrefix(token, "Bearer "))
	if err != nil {
		logger.Warnf("[AUTH] Socket %s sent an invalid token: %v", client.Id(), err)
		client.Emit("error", gin.H{"error": "Authentication failed: invalid JWT"})
		return false, ""
	}
	return true, username
}

// StringArg returns args[i] when it is a string
func StringArg(args []interface{}, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	value, ok := args[i].(string)
	return value, ok
}
