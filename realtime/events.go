package realtime

import "time"

// Events emitted to clients.
const (
	EventReceiveMessage         = "receive_message"
	EventNewMessageNotification = "new_message_notification"
	EventIncomingVideoCall      = "incoming_video_call"
	EventVideoCallSignal        = "video_call_signal"
	EventEndVideoCall           = "end_video_call"
	EventVideoCallRejected      = "video_call_rejected"
	EventError                  = "error"
	EventAdminNotification      = "admin:notification"
	EventUserNotification       = "user:notification"
	EventForceLogout            = "force-logout"
	EventBroadcast              = "broadcast"
)

type ErrorPayload struct {
	Message string `json:"message"`
}

type MessageNotificationPayload struct {
	RoomID   string    `json:"roomId"`
	SenderID string    `json:"senderId"`
	Preview  string    `json:"preview"`
	SentAt   time.Time `json:"sentAt"`
}

type IncomingCallPayload struct {
	RoomID string `json:"roomId"`
	From   string `json:"from"`
}

type CallSignalPayload struct {
	RoomID string `json:"roomId"`
	From   string `json:"from"`
	Signal any    `json:"signal"`
}

type CallEndedPayload struct {
	RoomID          string `json:"roomId"`
	EndedBy         string `json:"endedBy"`
	DurationSeconds int64  `json:"durationSeconds"`
}

type CallRejectedPayload struct {
	RoomID string `json:"roomId"`
	By     string `json:"by"`
}

type ForceLogoutPayload struct {
	Reason string `json:"reason"`
}
