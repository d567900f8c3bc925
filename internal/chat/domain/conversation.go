package domain

import "time"

// ConversationSummary the derived, non-persisted view of one direct
// counterpart-pair's exchange. Group messages never contribute.
type ConversationSummary struct {
	CounterpartID    string    `bson:"_id" json:"counterpartId"`
	CounterpartName  string    `bson:"-" json:"counterpartName,omitempty"`
	CounterpartEmail string    `bson:"-" json:"counterpartEmail,omitempty"`
	LastMessage      string    `bson:"last_message" json:"lastMessage"`
	LastMessageTime  time.Time `bson:"last_message_time" json:"lastMessageTime"`
	UnreadCount      int       `bson:"unread_count" json:"unreadCount"`
}
