package realtime

import (
	"realtime-service/model"

	"go.uber.org/zap"
)

// Notifier pushes collaborator notifications to connected sessions. It only
// forwards: persistence of missed notifications belongs to the notification
// store, which clients drain over REST on their next poll. No delivery
// confirmation, no offline queueing.
type Notifier struct {
	emitter Emitter
	log     *zap.SugaredLogger
}

func NewNotifier(emitter Emitter, log *zap.SugaredLogger) *Notifier {
	return &Notifier{emitter: emitter, log: log}
}

// BroadcastSystem emits to every connected session, registered or not.
func (n *Notifier) BroadcastSystem(note *model.Notification) {
	n.emitter.Broadcast(EventBroadcast, note)
}

func (n *Notifier) NotifyUser(userID string, note *model.Notification) {
	if userID == "" {
		return
	}
	n.emitter.Emit(UserChannel(userID), EventUserNotification, note)
}

func (n *Notifier) NotifyAdmins(note *model.Notification) {
	n.emitter.Emit(AdminChannel, EventAdminNotification, note)
}

func (n *Notifier) ForceLogout(userID, reason string) {
	if userID == "" {
		return
	}
	n.emitter.Emit(UserChannel(userID), EventForceLogout, ForceLogoutPayload{Reason: reason})
	n.log.Infow("forced logout", "user", userID, "reason", reason)
}
