package realtime

import (
	"testing"

	"realtime-service/model"
)

func TestNotifier_NotifyUser(t *testing.T) {
	emitter := &fakeEmitter{}
	n := NewNotifier(emitter, testLogger())

	note := &model.Notification{Type: model.NotificationTypeLike, ReceiverID: "bob", Message: "alice liked your post"}
	n.NotifyUser("bob", note)

	got := emitter.sent(UserChannel("bob"), EventUserNotification)
	if len(got) != 1 {
		t.Fatalf("user:notification emissions = %d, want 1", len(got))
	}
	if got[0].Payload.(*model.Notification).Type != model.NotificationTypeLike {
		t.Errorf("notification type = %q, want like", got[0].Payload.(*model.Notification).Type)
	}

	// Degraded sessions have no personal channel to target
	n.NotifyUser("", note)
	if len(emitter.emissions) != 1 {
		t.Error("notification emitted for empty user id")
	}
}

func TestNotifier_BroadcastSystem(t *testing.T) {
	emitter := &fakeEmitter{}
	n := NewNotifier(emitter, testLogger())

	n.BroadcastSystem(&model.Notification{Type: model.NotificationTypeGeneral, Message: "maintenance at midnight"})

	if len(emitter.broadcasts) != 1 {
		t.Fatalf("broadcasts = %d, want 1", len(emitter.broadcasts))
	}
	if emitter.broadcasts[0].Event != EventBroadcast {
		t.Errorf("broadcast event = %q, want %q", emitter.broadcasts[0].Event, EventBroadcast)
	}
}

func TestNotifier_NotifyAdmins(t *testing.T) {
	emitter := &fakeEmitter{}
	n := NewNotifier(emitter, testLogger())

	n.NotifyAdmins(&model.Notification{Message: "report queue growing"})

	if len(emitter.sent(AdminChannel, EventAdminNotification)) != 1 {
		t.Error("admin channel did not receive the notification")
	}
}

func TestNotifier_ForceLogout(t *testing.T) {
	emitter := &fakeEmitter{}
	n := NewNotifier(emitter, testLogger())

	n.ForceLogout("mallory", "account blocked by moderation")

	got := emitter.sent(UserChannel("mallory"), EventForceLogout)
	if len(got) != 1 {
		t.Fatalf("force-logout emissions = %d, want 1", len(got))
	}
	if payload := got[0].Payload.(ForceLogoutPayload); payload.Reason == "" {
		t.Error("force-logout carries no reason")
	}

	n.ForceLogout("", "x")
	if len(emitter.emissions) != 1 {
		t.Error("force-logout emitted for empty user id")
	}
}

func TestChannelAddressing(t *testing.T) {
	// User and conversation namespaces must never collide, even for equal ids
	if UserChannel("42") == ConversationChannel("42") {
		t.Error("user and conversation channels collide for identical ids")
	}
	if UserChannel("admins") == AdminChannel {
		t.Error("user channel collides with the admin channel")
	}
}
