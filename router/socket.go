package router

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"realtime-service/model"
	"realtime-service/realtime"
	"realtime-service/utils"

	"github.com/zishang520/socket.io/v2/socket"
)

const handlerTimeout = 10 * time.Second

type SocketDeps struct {
	Registry *realtime.Registry
	Relay    *realtime.Relay
	Calls    *realtime.Calls
	Notifier *realtime.Notifier
	Audit    realtime.AuditPublisher
}

// Inbound payloads. Clients send plain objects; a JSON round-trip turns the
// decoded map back into the typed form.
type sendMessagePayload struct {
	RoomID     string `json:"roomId"`
	Content    string `json:"content"`
	ReceiverID string `json:"receiverId"`
	Type       string `json:"type"`
}

type initiateCallPayload struct {
	RoomID string `json:"roomId"`
	To     string `json:"to"`
}

type callSignalPayload struct {
	RoomID string `json:"roomId"`
	Signal any    `json:"signal"`
	To     string `json:"to"`
}

type endCallPayload struct {
	RoomID string `json:"roomId"`
}

type rejectCallPayload struct {
	RoomID string `json:"roomId"`
	To     string `json:"to"`
}

// connState holds the user association of one socket connection. Handlers and
// the disconnect callback run on separate goroutines, so the binding is
// mutex-guarded rather than a bare closure variable.
type connState struct {
	mu     sync.Mutex
	userID string
}

func (s *connState) bind(id string) {
	s.mu.Lock()
	s.userID = id
	s.mu.Unlock()
}

func (s *connState) user() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Socket binds the event dispatch table to each incoming connection. The
// userId handshake query parameter associates the session; without it the
// socket stays connected in a degraded mode with no personal-channel routing.
func Socket(server *socket.Server, deps SocketDeps) {
	server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		sessionID := string(client.Id())
		state := &connState{}

		register := func(id string) {
			if id == "" {
				return
			}
			state.bind(id)
			deps.Registry.RegisterSession(id, sessionID)
			client.Join(socket.Room(realtime.UserChannel(id)))
		}

		if id, ok := client.Conn().Request().Query().Get("userId"); ok {
			register(id)
		}

		handlers := map[string]func(args ...interface{}){
			"register": func(args ...interface{}) {
				register(stringArg(args, 0))
			},

			"register-admin": func(args ...interface{}) {
				if !isAdmin(client) {
					emitError(client, "admin access required")
					return
				}
				register(stringArg(args, 0))
				client.Join(socket.Room(realtime.AdminChannel))
			},

			"join_room": func(args ...interface{}) {
				roomID, userID := stringArg(args, 0), state.user()
				if roomID == "" || userID == "" {
					emitError(client, realtime.ErrMissingFields.Error())
					return
				}
				ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
				defer cancel()
				if !deps.Relay.CanJoin(ctx, roomID, userID) {
					emitError(client, realtime.ErrNotParticipant.Error())
					return
				}
				client.Join(socket.Room(realtime.ConversationChannel(roomID)))
				deps.Registry.RecordRoomJoin(userID, roomID)
			},

			"leave_room": func(args ...interface{}) {
				roomID, userID := stringArg(args, 0), state.user()
				if roomID == "" || userID == "" {
					return
				}
				client.Leave(socket.Room(realtime.ConversationChannel(roomID)))
				deps.Registry.RecordRoomLeave(userID, roomID)
			},

			"send_message": func(args ...interface{}) {
				payload := sendMessagePayload{}
				if err := decodeArg(args, 0, &payload); err != nil {
					emitError(client, "malformed payload")
					return
				}
				ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
				defer cancel()
				_, err := deps.Relay.SendMessage(ctx, realtime.SendMessageInput{
					RoomID:     payload.RoomID,
					SenderID:   state.user(),
					ReceiverID: payload.ReceiverID,
					Content:    payload.Content,
					Type:       payload.Type,
				})
				if err != nil {
					emitError(client, clientMessage(err))
				}
			},

			"initiate_video_call": func(args ...interface{}) {
				payload := initiateCallPayload{}
				if err := decodeArg(args, 0, &payload); err != nil {
					emitError(client, "malformed payload")
					return
				}
				ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
				defer cancel()
				if err := deps.Calls.Initiate(ctx, payload.RoomID, state.user(), payload.To); err != nil {
					emitError(client, clientMessage(err))
				}
			},

			"video_call_signal": func(args ...interface{}) {
				payload := callSignalPayload{}
				if err := decodeArg(args, 0, &payload); err != nil {
					return // late or garbled signals are dropped silently
				}
				deps.Calls.Signal(payload.RoomID, state.user(), payload.Signal)
			},

			"end_video_call": func(args ...interface{}) {
				payload := endCallPayload{}
				if err := decodeArg(args, 0, &payload); err != nil {
					return
				}
				deps.Calls.End(payload.RoomID, state.user())
			},

			"reject_video_call": func(args ...interface{}) {
				payload := rejectCallPayload{}
				if err := decodeArg(args, 0, &payload); err != nil {
					return
				}
				deps.Calls.Reject(payload.RoomID, state.user())
			},

			"block-user": func(args ...interface{}) {
				if !isAdmin(client) {
					emitError(client, "admin access required")
					return
				}
				target := stringArg(args, 0)
				if target == "" {
					emitError(client, realtime.ErrMissingFields.Error())
					return
				}
				deps.Notifier.ForceLogout(target, "account blocked by moderation")
				if deps.Audit != nil {
					deps.Audit.Publish("user.blocked", map[string]string{"userId": target, "by": state.user()})
				}
			},

			"broadcast-message": func(args ...interface{}) {
				if !isAdmin(client) {
					emitError(client, "admin access required")
					return
				}
				message := stringArg(args, 0)
				if message == "" {
					emitError(client, realtime.ErrMissingFields.Error())
					return
				}
				deps.Notifier.BroadcastSystem(&model.Notification{
					Type:    model.NotificationTypeGeneral,
					Message: message,
				})
			},
		}

		for event, handler := range handlers {
			client.On(event, handler)
		}

		client.On("disconnect", func(...interface{}) {
			userID := state.user()
			if userID == "" {
				return
			}
			deps.Registry.RemoveSession(userID, sessionID)
			if deps.Registry.SessionCount(userID) == 0 {
				deps.Calls.DropUser(userID)
			}
		})
	})
}

func isAdmin(client *socket.Socket) bool {
	claims, ok := client.Data().(*utils.TokenMetadata)
	return ok && claims.IsAdmin()
}

func emitError(client *socket.Socket, message string) {
	client.Emit(realtime.EventError, realtime.ErrorPayload{Message: message})
}

// clientMessage keeps collaborator failures opaque toward the client.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, realtime.ErrMissingFields),
		errors.Is(err, realtime.ErrNotParticipant),
		errors.Is(err, realtime.ErrParticipantBusy),
		errors.Is(err, realtime.ErrUnknownType):
		return err.Error()
	}
	return "internal error"
}

func stringArg(args []interface{}, i int) string {
	if len(args) > i {
		if s, ok := args[i].(string); ok {
			return s
		}
	}
	return ""
}

func decodeArg(args []interface{}, i int, v any) error {
	if len(args) <= i {
		return errors.New("missing argument")
	}
	raw, err := json.Marshal(args[i])
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
