package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Notification length bounds.
const (
	MaxNotificationTitleLength   = 200
	MaxNotificationMessageLength = 1000
)

// Notification a workforce announcement pushed to target users' personal
// rooms and kept for later retrieval.
type Notification struct {
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Message     string    `bson:"message" json:"message"`
	SenderID    string    `bson:"sender_id" json:"senderId"`
	TargetUsers []string  `bson:"target_users" json:"targetUsers"`
	ReadBy      []string  `bson:"read_by,omitempty" json:"readBy,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// NewNotification builds a notification. Targets must already be resolved;
// at least one is required.
func NewNotification(senderID, title, message string, targets []string) (*Notification, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if senderID == "" || title == "" || message == "" {
		return nil, ErrValidation
	}
	if len(title) > MaxNotificationTitleLength || len(message) > MaxNotificationMessageLength {
		return nil, ErrValidation
	}

	targets = lo.Uniq(lo.Filter(targets, func(id string, _ int) bool { return id != "" }))
	if len(targets) == 0 {
		return nil, ErrValidation
	}

	return &Notification{
		ID:          uuid.New().String(),
		Title:       title,
		Message:     message,
		SenderID:    senderID,
		TargetUsers: targets,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// IsReadBy reports whether userID already read the notification.
func (n *Notification) IsReadBy(userID string) bool {
	return lo.Contains(n.ReadBy, userID)
}

// Event builds the push event delivered to each target's personal room.
func (n *Notification) Event() WSEvent {
	return WSEvent{
		Event: EventNotification,
		Payload: map[string]interface{}{
			"id":        n.ID,
			"title":     n.Title,
			"message":   n.Message,
			"senderId":  n.SenderID,
			"createdAt": n.CreatedAt,
		},
	}
}
