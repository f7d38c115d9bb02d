package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationTypeTask    NotificationType = "task"
	NotificationTypeProject NotificationType = "project"
	NotificationTypeFile    NotificationType = "file"
	NotificationTypeSystem  NotificationType = "system"
	NotificationTypeMessage NotificationType = "message"
	NotificationTypeReport  NotificationType = "report"
)

// Notification is an append-only event record; only the read flag mutates
// after creation. The feed is shared by all users of the workspace.
type Notification struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Message string             `bson:"message" json:"message"`
	Type    NotificationType   `bson:"type" json:"type"`
	// RelatedID points at the task, project or stock item the event is
	// about, when there is one.
	RelatedID string    `bson:"related_id,omitempty" json:"relatedId,omitempty"`
	SenderID  string    `bson:"sender_id,omitempty" json:"senderId,omitempty"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

type AddNotificationInput struct {
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	RelatedID string           `json:"relatedId"`
	SenderID  string           `json:"senderId"`
}
