package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-mediagen-be/internal/constant"
	"ai-mediagen-be/internal/entity"
	"ai-mediagen-be/internal/pkg/logger"
	"ai-mediagen-be/internal/pkg/mailer"
	"ai-mediagen-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// NotificationDelivery pushes real-time updates to connected users.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(ctx context.Context, userID uuid.UUID, notification *entity.Notification) error
}

type INotificationService interface {
	// Notify queues a notification. It never blocks on delivery and never fails
	// the caller.
	Notify(ctx context.Context, notification *entity.Notification)
	// Start consumes the queue until ctx is cancelled.
	Start(ctx context.Context) error
	// Errors reports delivery failures.
	Errors() <-chan error
}

type NotificationSinks struct {
	Delivery    NotificationDelivery
	Events      events.Publisher
	Email       mailer.IEmailService
	SendTimeout time.Duration
}

type notificationService struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	topic      string
	sinks      NotificationSinks
	errs       chan error
	logger     logger.ILogger
}

func NewNotificationService(publisher message.Publisher, subscriber message.Subscriber, sinks NotificationSinks, log logger.ILogger) INotificationService {
	if sinks.SendTimeout <= 0 {
		sinks.SendTimeout = 30 * time.Second
	}
	return &notificationService{
		publisher:  publisher,
		subscriber: subscriber,
		topic:      constant.JobSendNotification,
		sinks:      sinks,
		errs:       make(chan error, 64),
		logger:     log,
	}
}

func (s *notificationService) Notify(ctx context.Context, notification *entity.Notification) {
	if notification.Id == uuid.Nil {
		notification.Id = uuid.New()
	}
	if notification.OccurredAt.IsZero() {
		notification.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		s.report(fmt.Errorf("marshal notification: %w", err), notification)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.publisher.Publish(s.topic, msg); err != nil {
		s.report(fmt.Errorf("queue notification: %w", err), notification)
	}
}

func (s *notificationService) Start(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	s.logger.Info("NotificationService", "Notification consumer started", map[string]interface{}{"topic": s.topic})
	return nil
}

func (s *notificationService) Errors() <-chan error {
	return s.errs
}

func (s *notificationService) processMessage(ctx context.Context, msg *message.Message) {
	// delivery is best effort; every message is acked so nothing is redelivered
	defer msg.Ack()

	var notification entity.Notification
	if err := json.Unmarshal(msg.Payload, &notification); err != nil {
		s.report(fmt.Errorf("unmarshal notification: %w", err), nil)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sinks.SendTimeout)
	defer cancel()

	if s.sinks.Delivery != nil {
		if err := s.sinks.Delivery.Send(sendCtx, notification.UserId, &notification); err != nil {
			s.report(fmt.Errorf("websocket delivery: %w", err), &notification)
		}
	}

	if s.sinks.Events != nil {
		if err := s.sinks.Events.Publish(sendCtx, toEvent(&notification)); err != nil {
			s.report(fmt.Errorf("event publish: %w", err), &notification)
		}
	}

	if s.sinks.Email != nil && notification.Recipient != "" {
		if err := s.sinks.Email.SendNotification(notification.Recipient, &notification); err != nil {
			s.report(fmt.Errorf("email delivery: %w", err), &notification)
		}
	}

	s.logger.Info("NotificationService", "Notification processed", map[string]interface{}{
		"id":      notification.Id,
		"type":    notification.Type,
		"user_id": notification.UserId,
	})
}

func (s *notificationService) report(err error, notification *entity.Notification) {
	details := map[string]interface{}{"error": err}
	if notification != nil {
		details["type"] = notification.Type
		details["user_id"] = notification.UserId
	}
	s.logger.Error("NotificationService", "Notification delivery failed", details)

	select {
	case s.errs <- err:
	default:
		// reader is behind; the log entry above is enough
	}
}

func toEvent(n *entity.Notification) events.Event {
	data := map[string]interface{}{
		"id":          n.Id.String(),
		"user_id":     n.UserId.String(),
		"entity_type": n.EntityType,
		"title":       n.Title,
		"message":     n.Message,
	}
	if n.EntityId != nil {
		data["entity_id"] = n.EntityId.String()
	}
	for k, v := range n.Metadata {
		data[k] = v
	}
	return events.BaseEvent{
		Type:       n.Type,
		Data:       data,
		OccurredAt: n.OccurredAt,
	}
}
