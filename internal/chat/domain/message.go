package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxContentLength message content length bound
const MaxContentLength = 5000

// MessageKind direct or group message
type MessageKind string

const (
	// KindDirect message addressed to exactly one recipient user
	KindDirect MessageKind = "direct"
	// KindGroup message addressed to a chat group's room
	KindGroup MessageKind = "group"
)

// MessageStatus delivery lifecycle state
type MessageStatus string

const (
	// StatusSent message persisted, not yet delivered to a live session
	StatusSent MessageStatus = "sent"
	// StatusDelivered message pushed to a registered recipient session
	StatusDelivered MessageStatus = "delivered"
	// StatusRead recipient acknowledged the message
	StatusRead MessageStatus = "read"
)

var statusRank = map[MessageStatus]int{
	StatusSent:      0,
	StatusDelivered: 1,
	StatusRead:      2,
}

// Valid reports whether s is a known lifecycle state.
func (s MessageStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvance reports whether moving to next keeps the lifecycle monotonic.
// Equal states are allowed so repeated updates stay idempotent.
func (s MessageStatus) CanAdvance(next MessageStatus) bool {
	return statusRank[next] >= statusRank[s]
}

// Destination the target of a message: exactly one of ReceiverID / GroupID.
type Destination struct {
	ReceiverID string
	GroupID    string
}

// Validate enforces the receiver XOR group invariant.
func (d Destination) Validate() error {
	if (d.ReceiverID == "") == (d.GroupID == "") {
		return ErrValidation
	}
	return nil
}

// Kind returns the message kind implied by the destination.
func (d Destination) Kind() MessageKind {
	if d.GroupID != "" {
		return KindGroup
	}
	return KindDirect
}

// Message a chat message between users or in a group. Content is immutable
// after creation, Status only advances sent -> delivered -> read.
type Message struct {
	ID         string        `bson:"_id" json:"id"`
	SenderID   string        `bson:"sender_id" json:"senderId"`
	ReceiverID string        `bson:"receiver_id,omitempty" json:"receiverId,omitempty"`
	GroupID    string        `bson:"group_id,omitempty" json:"groupId,omitempty"`
	Content    string        `bson:"content" json:"content"`
	Kind       MessageKind   `bson:"kind" json:"kind"`
	Status     MessageStatus `bson:"status" json:"status"`
	CreatedAt  time.Time     `bson:"created_at" json:"createdAt"`
}

// NewMessage builds a message with status=sent, validating content and
// destination shape. Destination reachability is the caller's concern.
func NewMessage(senderID string, dest Destination, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if senderID == "" || content == "" || len(content) > MaxContentLength {
		return nil, ErrValidation
	}
	if err := dest.Validate(); err != nil {
		return nil, err
	}

	return &Message{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: dest.ReceiverID,
		GroupID:    dest.GroupID,
		Content:    content,
		Kind:       dest.Kind(),
		Status:     StatusSent,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Destination reconstructs the message's destination.
func (m *Message) Destination() Destination {
	return Destination{ReceiverID: m.ReceiverID, GroupID: m.GroupID}
}

// HistoryFilter selects either a direct pair (matched symmetrically) or a
// group timeline.
type HistoryFilter struct {
	UserID        string
	CounterpartID string
	GroupID       string
}

// Validate checks that exactly one history scope is selected.
func (f HistoryFilter) Validate() error {
	if f.GroupID != "" {
		return nil
	}
	if f.UserID == "" || f.CounterpartID == "" {
		return ErrValidation
	}
	return nil
}

// ReadScope a bulk mark-read target: every unread message addressed to
// ReaderID from counterpart X, or every unread group message in G not sent
// by ReaderID.
type ReadScope struct {
	ReaderID      string
	CounterpartID string
	GroupID       string
}

// Validate checks the scope shape.
func (s ReadScope) Validate() error {
	if s.ReaderID == "" {
		return ErrValidation
	}
	if (s.CounterpartID == "") == (s.GroupID == "") {
		return ErrValidation
	}
	return nil
}
