package handlers

import (
	"Connect4/services/coordinator"
	socketio_types "Connect4/services/socket_io/types"
	"context"
)

// HandleDisconnecting unregisters the connection. The coordinator forfeits any
// match in progress once the user's last connection is gone.
func HandleDisconnecting(coord *coordinator.Coordinator, sio *socketio_types.SocketServer, connID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		sio.RemoveConnection(connID)
		coord.Disconnect(context.Background(), connID)
	}
}
