package realtime

// Channel is an addressable delivery target on the transport. Personal
// channels and conversation channels share the transport's room namespace, so
// both carry a prefix to keep a user id from colliding with a conversation id.
type Channel string

const AdminChannel Channel = "admins"

func UserChannel(userID string) Channel {
	return Channel("user:" + userID)
}

func ConversationChannel(roomID string) Channel {
	return Channel("conv:" + roomID)
}

// Emitter is the outbound seam to the transport. The live implementation maps
// channels onto Socket.IO rooms; tests substitute a recorder.
type Emitter interface {
	Emit(ch Channel, event string, payload any)
	Broadcast(event string, payload any)
}
