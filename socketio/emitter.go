package socketio

import (
	"realtime-service/realtime"

	"github.com/zishang520/socket.io/v2/socket"
)

// ServerEmitter is the live realtime.Emitter. Channels map one-to-one onto
// Socket.IO rooms; the Redis adapter carries emissions across processes.
type ServerEmitter struct {
	server *socket.Server
}

func NewEmitter(server *socket.Server) *ServerEmitter {
	return &ServerEmitter{server: server}
}

func (e *ServerEmitter) Emit(ch realtime.Channel, event string, payload any) {
	e.server.To(socket.Room(ch)).Emit(event, payload)
}

func (e *ServerEmitter) Broadcast(event string, payload any) {
	e.server.FetchSockets()(func(sockets []*socket.RemoteSocket, _ error) {
		for _, s := range sockets {
			s.Emit(event, payload)
		}
	})
}
