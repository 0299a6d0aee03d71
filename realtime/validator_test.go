package realtime

import (
	"context"
	"testing"

	"realtime-service/model"
)

func TestValidator_ValidateMembership(t *testing.T) {
	ctx := context.Background()
	_, roomID, lister := conversationFixture("alice", "bob")

	tests := []struct {
		name    string
		roomID  string
		userIDs []string
		want    bool
	}{
		{
			name:    "all on roster",
			roomID:  roomID,
			userIDs: []string{"alice", "bob"},
			want:    true,
		},
		{
			name:    "single member",
			roomID:  roomID,
			userIDs: []string{"bob"},
			want:    true,
		},
		{
			name:    "outsider in list",
			roomID:  roomID,
			userIDs: []string{"alice", "mallory"},
			want:    false,
		},
		{
			name:    "unknown room",
			roomID:  "bad-room",
			userIDs: []string{"alice"},
			want:    false,
		},
		{
			name:    "empty room id",
			roomID:  "",
			userIDs: []string{"alice"},
			want:    false,
		},
		{
			name:    "no candidates",
			roomID:  roomID,
			userIDs: nil,
			want:    false,
		},
	}

	v := NewValidator(lister, testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.ValidateMembership(ctx, tt.roomID, tt.userIDs); got != tt.want {
				t.Errorf("ValidateMembership() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidator_LookupFailureReportsFalse(t *testing.T) {
	v := NewValidator(&fakeLister{err: errStore}, testLogger())

	if v.ValidateMembership(context.Background(), "room", []string{"alice"}) {
		t.Error("ValidateMembership() = true on lookup failure, want false")
	}
}

func TestValidator_RoomNotInFirstCandidatesListing(t *testing.T) {
	// The roster is resolved through the first candidate's listing only, so
	// a room visible to bob but not alice fails when alice leads the list.
	conv, roomID, _ := conversationFixture("alice", "bob")
	lister := &fakeLister{byUser: map[string][]model.Conversation{"bob": {conv}}}

	v := NewValidator(lister, testLogger())
	if v.ValidateMembership(context.Background(), roomID, []string{"alice", "bob"}) {
		t.Error("ValidateMembership() = true, want false when room absent from first candidate's listing")
	}
	if !v.ValidateMembership(context.Background(), roomID, []string{"bob", "alice"}) {
		t.Error("ValidateMembership() = false, want true when first candidate lists the room")
	}
}
