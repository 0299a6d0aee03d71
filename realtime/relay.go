package realtime

import (
	"context"
	"fmt"

	"realtime-service/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const previewRunes = 50

// MessageCreator is the durable-write slice of the conversation store.
type MessageCreator interface {
	CreateMessage(ctx context.Context, m *model.Message) (*model.Message, error)
}

// AuditPublisher forwards relay activity to the analytics collaborator. A nil
// publisher disables auditing.
type AuditPublisher interface {
	Publish(action string, data any)
}

// Relay persists an inbound message and fans it out to the conversation
// channel. The durable write always precedes the broadcast, so no session
// ever observes an unpersisted message. Delivery itself is best effort and
// never retried.
type Relay struct {
	store     MessageCreator
	validator *Validator
	registry  *Registry
	emitter   Emitter
	audit     AuditPublisher
	log       *zap.SugaredLogger
}

func NewRelay(store MessageCreator, validator *Validator, registry *Registry, emitter Emitter, audit AuditPublisher, log *zap.SugaredLogger) *Relay {
	return &Relay{
		store:     store,
		validator: validator,
		registry:  registry,
		emitter:   emitter,
		audit:     audit,
		log:       log,
	}
}

type SendMessageInput struct {
	RoomID     string
	SenderID   string
	ReceiverID string
	Content    string
	Type       string
}

// SendMessage validates, persists and fans out one message. Membership is
// re-validated on every send, not only at join time, so a sender removed from
// a conversation after joining is rejected here. A returned error goes back
// to the sending session only.
func (r *Relay) SendMessage(ctx context.Context, in SendMessageInput) (*model.Message, error) {
	if in.RoomID == "" || in.SenderID == "" || in.Content == "" {
		return nil, ErrMissingFields
	}
	if in.Type == "" {
		in.Type = model.MessageTypeText
	}
	if !model.ValidMessageType(in.Type) {
		return nil, ErrUnknownType
	}

	members := []string{in.SenderID}
	if in.ReceiverID != "" {
		members = append(members, in.ReceiverID)
	}
	if !r.validator.ValidateMembership(ctx, in.RoomID, members) {
		return nil, ErrNotParticipant
	}

	oid, err := primitive.ObjectIDFromHex(in.RoomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room id: %w", err)
	}

	msg, err := r.store.CreateMessage(ctx, &model.Message{
		ConversationID: oid,
		SenderID:       in.SenderID,
		Content:        in.Content,
		Type:           in.Type,
	})
	if err != nil {
		r.log.Errorw("message persist failed", "room", in.RoomID, "sender", in.SenderID, "error", err)
		return nil, fmt.Errorf("persist message: %w", err)
	}

	r.emitter.Emit(ConversationChannel(in.RoomID), EventReceiveMessage, msg)

	// Receivers not currently viewing the room get a lightweight preview on
	// their personal channel instead of relying on the room broadcast.
	if in.ReceiverID != "" && !r.registry.IsUserInRoom(in.ReceiverID, in.RoomID) {
		r.emitter.Emit(UserChannel(in.ReceiverID), EventNewMessageNotification, MessageNotificationPayload{
			RoomID:   in.RoomID,
			SenderID: in.SenderID,
			Preview:  preview(msg.Content),
			SentAt:   msg.CreatedAt,
		})
	}

	if r.audit != nil {
		r.audit.Publish("message.sent", msg)
	}
	return msg, nil
}

// CanJoin gates room joins on the conversation roster.
func (r *Relay) CanJoin(ctx context.Context, roomID, userID string) bool {
	if roomID == "" || userID == "" {
		return false
	}
	return r.validator.ValidateMembership(ctx, roomID, []string{userID})
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewRunes {
		return content
	}
	return string(runes[:previewRunes])
}
