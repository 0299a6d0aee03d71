package realtime

import (
	"context"

	"realtime-service/model"

	"go.uber.org/zap"
)

// ConversationLister is the slice of the conversation-storage collaborator the
// validator needs. Listings are scoped per user, which is how the store
// exposes them.
type ConversationLister interface {
	ListByUser(ctx context.Context, userID string) ([]model.Conversation, error)
}

// Validator confirms room membership before joins, sends and call setup.
type Validator struct {
	store ConversationLister
	log   *zap.SugaredLogger
}

func NewValidator(store ConversationLister, log *zap.SugaredLogger) *Validator {
	return &Validator{store: store, log: log}
}

// ValidateMembership reports whether every id in userIDs is on the roster of
// roomID. The room is resolved through the first candidate's listing. It
// never returns an error: lookup failures, unknown rooms and missing members
// all come back false, and the caller rejects the action toward the acting
// session only.
func (v *Validator) ValidateMembership(ctx context.Context, roomID string, userIDs []string) bool {
	if roomID == "" || len(userIDs) == 0 {
		return false
	}

	conversations, err := v.store.ListByUser(ctx, userIDs[0])
	if err != nil {
		v.log.Warnw("membership lookup failed", "room", roomID, "error", err)
		return false
	}

	for i := range conversations {
		if conversations[i].ID.Hex() != roomID {
			continue
		}
		for _, id := range userIDs {
			if !conversations[i].HasParticipant(id) {
				return false
			}
		}
		return true
	}
	return false
}
