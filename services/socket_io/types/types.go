package socketio_types

import (
	"Connect4/logger"
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and a map of socket connections.
// Connections are tracked by socket id, since a user may hold several at once.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track socket id -> socket connections
	connections map[string]*socket.Socket
	mutex       sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		connections: make(map[string]*socket.Socket),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(client *socket.Socket) string {
	connID := string(client.Id())
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.connections[connID] = client
	return connID
}

func (s *SocketServer) RemoveConnection(connID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.connections, connID)
}

func (s *SocketServer) GetConnection(connID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.connections[connID]
	return client, exists
}

// Emit sends event to one connection. Unknown connections are skipped.
func (s *SocketServer) Emit(connID string, event string, payload ...interface{}) {
	client, exists := s.GetConnection(connID)
	if !exists {
		logger.Debugf("[SOCKET] Dropping %s for closed connection %s", event, connID)
		return
	}
	if err := client.Emit(event, payload...); err != nil {
		logger.Warnf("[SOCKET-ERROR] Could not emit %s to %s: %v", event, connID, err)
	}
}

func (s *SocketServer) JoinGroup(connID string, group string) {
	if client, exists := s.GetConnection(connID); exists {
		client.Join(socket.Room(group))
	}
}

func (s *SocketServer) LeaveGroup(connID string, group string) {
	if client, exists := s.GetConnection(connID); exists {
		client.Leave(socket.Room(group))
	}
}

func (s *SocketServer) EmitToGroup(group string, event string, payload ...interface{}) {
	if err := s.Sio_server.To(socket.Room(group)).Emit(event, payload...); err != nil {
		logger.Warnf("[SOCKET-ERROR] Could not emit %s to group %s: %v", event, group, err)
	}
}

func (s *SocketServer) DisbandGroup(group string) {
	s.Sio_server.In(socket.Room(group)).SocketsLeave(socket.Room(group))
}
