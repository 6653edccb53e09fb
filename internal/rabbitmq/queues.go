package rabbitmq

const (
	NOTIFICATION_EVENTS_QUEUE = "notifications.events"
)
