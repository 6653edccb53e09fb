package dto

import (
	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/google/uuid"
)

type EventDto struct {
	Type model.EventType `json:"type"`
	Text string          `json:"text"`
}

type NotificationDto struct {
	RecipientID   uuid.UUID `json:"recipient_id"`
	ActorUsername string    `json:"actor_username"`
	Event         EventDto  `json:"event"`
}
