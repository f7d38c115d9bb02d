package message

import (
	"time"

	"go-fieldops/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is one entry in the append-only pair log. Immutable once created
// except for the read flag.
type Message struct {
	ID          primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	SenderID    string                  `bson:"sender_id" json:"senderId"`
	SenderName  string                  `bson:"sender_name" json:"senderName"`
	ReceiverID  string                  `bson:"receiver_id" json:"receiverId"`
	Content     string                  `bson:"content" json:"content"`
	Attachments []models.FileAttachment `bson:"attachments" json:"attachments"`
	Read        bool                    `bson:"read" json:"read"`
	CreatedAt   time.Time               `bson:"created_at" json:"createdAt"`
}

// Conversation is a derived view: the most recent message exchanged with one
// counterpart. Never persisted; recomputed from the message log.
type Conversation struct {
	UserID      string  `json:"userId"`
	LastMessage Message `json:"lastMessage"`
	Unread      int     `json:"unread"`
}

type SendMessageInput struct {
	ReceiverID  string                  `json:"receiverId"`
	Content     string                  `json:"content"`
	Attachments []models.FileAttachment `json:"attachments"`
}
