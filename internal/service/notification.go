package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/CoinLift/backend-coinlift/internal/dto"
	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/CoinLift/backend-coinlift/internal/rabbitmq"
	"github.com/CoinLift/backend-coinlift/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Pusher is the live push channel (the websocket hub in production).
type Pusher interface {
	Push(recipientID uuid.UUID, payload interface{})
}

// Publisher is the broker sink for offline consumers.
type Publisher interface {
	Publish(queue string, body []byte) error
}

// PreparedNotification pairs the durable row (persisted inside the
// triggering engine's transaction) with the payload pushed after commit.
type PreparedNotification struct {
	Row     *model.Notification
	Payload dto.NotificationDto
}

type notificationService struct {
	logger *zap.Logger
	repo *repository.Repository
	mq Publisher
	hub Pusher

	mu      sync.RWMutex
	catalog map[model.EventType]*model.Event
}

func newNotificationService(logger *zap.Logger, repo *repository.Repository, mq Publisher, hub Pusher) Notification {
	return &notificationService{
		logger: logger,
		repo: repo,
		mq: mq,
		hub: hub,
		catalog: make(map[model.EventType]*model.Event),
	}
}

func (s *notificationService) Prepare(ctx context.Context, actorUsername string, recipientID uuid.UUID, eventType model.EventType) (*PreparedNotification, error) {
	event, err := s.event(ctx, eventType)
	if err != nil {
		return nil, err
	}

	row := &model.Notification{
		ID: uuid.New(),
		RecipientID: recipientID,
		ActorUsername: actorUsername,
		EventID: event.ID,
		SeenByUser: false,
		CreatedAt: time.Now(),
	}
	return &PreparedNotification{
		Row: row,
		Payload: dto.NotificationDto{
			RecipientID: recipientID,
			ActorUsername: actorUsername,
			Event: dto.EventDto{Type: event.Type, Text: event.Text},
		},
	}, nil
}

// Dispatch is fire-and-forget: the row is already committed, so a dead
// socket or broker only costs the live delivery, never the record.
func (s *notificationService) Dispatch(pn *PreparedNotification) {
	s.hub.Push(pn.Row.RecipientID, pn.Payload)

	body, err := json.Marshal(pn.Payload)
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal notification payload: %s", err.Error())
		return
	}
	if err := s.mq.Publish(rabbitmq.NOTIFICATION_EVENTS_QUEUE, body); err != nil {
		s.logger.Sugar().Errorf("failed to publish to rabbitmq queue(%s): %s", rabbitmq.NOTIFICATION_EVENTS_QUEUE, err.Error())
	}
}

// event resolves the static catalog row, caching hits for the process
// lifetime. A missing row is a deployment error, not a user error.
func (s *notificationService) event(ctx context.Context, eventType model.EventType) (*model.Event, error) {
	s.mu.RLock()
	event, ok := s.catalog[eventType]
	s.mu.RUnlock()
	if ok {
		return event, nil
	}

	event, err := s.repo.Postgres.Notification.FindEventByType(ctx, eventType)
	if err != nil {
		if err == pgx.ErrNoRows {
			s.logger.Sugar().Errorf("event catalog has no row for type(%s)", eventType)
			return nil, ErrEventCatalogIncomplete
		}

		s.logger.Sugar().Errorf("failed to find event by type(%s): %s", eventType, err.Error())
		return nil, ErrInternal
	}

	s.mu.Lock()
	s.catalog[eventType] = event
	s.mu.Unlock()

	return event, nil
}
