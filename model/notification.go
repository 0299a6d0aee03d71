package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types produced by the collaborator services.
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
	NotificationTypeMessage = "message"
	NotificationTypeGeneral = "general"
)

type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type       string             `bson:"type" json:"type"`
	SenderID   string             `bson:"sender_id,omitempty" json:"sender_id,omitempty"`
	ReceiverID string             `bson:"receiver_id,omitempty" json:"receiver_id,omitempty"`
	PostID     string             `bson:"post_id,omitempty" json:"post_id,omitempty"`
	Message    string             `bson:"message" json:"message"`
	Seen       bool               `bson:"seen" json:"seen"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
