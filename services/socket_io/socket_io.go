package socket_io

import (
	"Connect4/logger"
	"Connect4/middleware"
	"Connect4/services/coordinator"
	"Connect4/services/socket_io/handlers"
	socketio_types "Connect4/services/socket_io/types"
	socketio_utils "Connect4/services/socket_io/utils"
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer struct {
	*socketio_types.SocketServer
}

func New() *MySocketServer {
	return &MySocketServer{SocketServer: socketio_types.NewSocketServer()}
}

// Start mounts the socket.io endpoint on router. Clients authenticate with the
// JWT in the handshake auth data, or later through an "online" event carrying
// the token.
func (sio *MySocketServer) Start(router *gin.Engine, coord *coordinator.Coordinator, jwtManager *middleware.JWTManager) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		var once sync.Once
		register := func(username string) {
			once.Do(func() { sio.register(client, coord, username) })
		}

		if success, username := socketio_utils.VerifyUserConnection(client, jwtManager); success {
			register(username)
			return
		}

		client.On("online", func(args ...interface{}) {
			token, ok := socketio_utils.StringArg(args, 0)
			if !ok {
				client.Emit("error", gin.H{"error": "Authentication failed: missing authorization token"})
				return
			}
			if success, username := socketio_utils.VerifyToken(client, jwtManager, token); success {
				register(username)
			}
		})
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	logger.Infof("[SOCKET] Socket server started")
}

// register binds an authenticated connection to username
func (sio *MySocketServer) register(client *socket.Socket, coord *coordinator.Coordinator, username string) {
	connID := sio.AddConnection(client)

	client.On("friendMatchRequest", handlers.HandleFriendMatchRequest(coord, client, username))
	client.On("deleteFriendMatchRequest", handlers.HandleDeleteFriendMatchRequest(coord, client, username))
	client.On("randomMatchRequest", handlers.HandleRandomMatchRequest(coord, client, username))
	client.On("cancelRandomMatchRequest", handlers.HandleCancelRandomMatchRequest(coord, client, username))
	client.On("friendChat", handlers.HandleFriendChat(coord, client, username))

	// NOTE: will remove sio connection from map
	client.On("disconnect", handlers.HandleDisconnecting(coord, sio.SocketServer, connID))

	coord.Connect(context.Background(), username, connID)
}

// Close disconnects every client
func (sio *MySocketServer) Close() {
	if sio.Sio_server != nil {
		sio.Sio_server.Close(nil)
	}
}
