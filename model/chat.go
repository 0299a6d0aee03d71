package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message types accepted by the relay.
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeFile  = "file"
)

// ValidMessageType reports whether t is one of the accepted message types.
func ValidMessageType(t string) bool {
	switch t {
	case MessageTypeText, MessageTypeImage, MessageTypeFile:
		return true
	}
	return false
}

type Conversation struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Participants []string           `bson:"participants" json:"participants"`
	LastMessage  *Message           `bson:"last_message,omitempty" json:"last_message,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// HasParticipant reports whether userID is on the conversation roster.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID primitive.ObjectID `bson:"conversation_id" json:"conversation_id"`
	SenderID       string             `bson:"sender_id" json:"sender_id"`
	Content        string             `bson:"content" json:"content"`
	Type           string             `bson:"type" json:"type"`
	ReadBy         []string           `bson:"read_by" json:"read_by"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
