package automation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Domain events rules can subscribe to.
const (
	EventStockUpdated      = "stock.updated"
	EventTaskStatusChanged = "task.status_changed"
	EventProjectLaunched   = "project.launched"
)

// KnownEvents guards rule creation against typos in the event name.
var KnownEvents = []string{
	EventStockUpdated,
	EventTaskStatusChanged,
	EventProjectLaunched,
}

// Rule binds a Tengo script to a domain event. The script receives the
// event name and payload as globals and may set notify_title /
// notify_message to emit a notification.
type Rule struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Event  string             `bson:"event" json:"event"`
	Script string             `bson:"script" json:"script"`
	Active bool               `bson:"active" json:"active"`
	// LastError holds the most recent execution failure for the admin UI.
	LastError string    `bson:"last_error,omitempty" json:"lastError,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

type RuleInput struct {
	Name   string `json:"name"`
	Event  string `json:"event"`
	Script string `json:"script"`
	Active bool   `json:"active"`
}
