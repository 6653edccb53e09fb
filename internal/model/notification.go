package model

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeFollow  EventType = "FOLLOW"
	EventTypeComment EventType = "COMMENT"
	EventTypeReply   EventType = "REPLY"
)

// Event is a static catalog row mapping an event type to its
// notification text template.
type Event struct {
	ID   int32     `json:"id"`
	Type EventType `json:"type"`
	Text string    `json:"text"`
}

type Notification struct {
	ID            uuid.UUID `json:"id"`
	RecipientID   uuid.UUID `json:"recipient_id"`
	ActorUsername string    `json:"actor_username"`
	EventID       int32     `json:"event_id"`
	SeenByUser    bool      `json:"seen_by_user"`
	CreatedAt     time.Time `json:"created_at"`
}
