package repository

import (
	"context"
	"fmt"
	"time"

	"realtime-service/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConversationRepository is the conversation-storage collaborator consumed by
// the realtime layer. The relay reads rosters and appends messages; it never
// creates or deletes conversations.
type ConversationRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.Conversation, error)
	CreateMessage(ctx context.Context, m *model.Message) (*model.Message, error)
	ListMessages(ctx context.Context, conversationID string, limit int64) ([]model.Message, error)
	MarkRead(ctx context.Context, conversationID, userID string) error
}

type conversationRepo struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

func NewConversationRepository(conversations, messages *mongo.Collection) ConversationRepository {
	return &conversationRepo{conversations: conversations, messages: messages}
}

func (r *conversationRepo) ListByUser(ctx context.Context, userID string) ([]model.Conversation, error) {
	cur, err := r.conversations.Find(ctx,
		bson.M{"participants": userID},
		options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer cur.Close(ctx)

	var out []model.Conversation
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode conversations: %w", err)
	}
	return out, nil
}

func (r *conversationRepo) CreateMessage(ctx context.Context, m *model.Message) (*model.Message, error) {
	if m.Type == "" {
		m.Type = model.MessageTypeText
	}
	m.CreatedAt = time.Now().UTC()
	if m.ReadBy == nil {
		// The sender has read their own message
		m.ReadBy = []string{m.SenderID}
	}

	res, err := r.messages.InsertOne(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	m.ID = res.InsertedID.(primitive.ObjectID)

	_, err = r.conversations.UpdateOne(ctx,
		bson.M{"_id": m.ConversationID},
		bson.M{"$set": bson.M{"last_message": m, "updated_at": m.CreatedAt}},
	)
	if err != nil {
		return nil, fmt.Errorf("update last message: %w", err)
	}
	return m, nil
}

func (r *conversationRepo) ListMessages(ctx context.Context, conversationID string, limit int64) ([]model.Message, error) {
	oid, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return nil, fmt.Errorf("invalid conversation id: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.messages.Find(ctx, bson.M{"conversation_id": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cur.Close(ctx)

	var out []model.Message
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return out, nil
}

func (r *conversationRepo) MarkRead(ctx context.Context, conversationID, userID string) error {
	oid, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return fmt.Errorf("invalid conversation id: %w", err)
	}

	_, err = r.messages.UpdateMany(ctx,
		bson.M{"conversation_id": oid},
		bson.M{"$addToSet": bson.M{"read_by": userID}},
	)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}
