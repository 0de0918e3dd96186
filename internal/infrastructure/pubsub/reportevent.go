// Package pubsub fans report events out across instances over Redis Pub/Sub.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/civictrack/civictrack/internal/domain/report"
	"github.com/civictrack/civictrack/internal/shared/goroutine"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

const reportEventChannel = "civictrack:report:events"

// ReportEventMessage is the wire form of a recorded report event.
type ReportEventMessage struct {
	EventID    string         `json:"event_id"`
	ReportID   string         `json:"report_id"`
	Type       string         `json:"type"`
	ActorID    string         `json:"actor_id"`
	Note       string         `json:"note,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	InstanceID string         `json:"instance_id"`
}

func NewReportEventMessage(e *report.Event, instanceID string) ReportEventMessage {
	return ReportEventMessage{
		EventID:    e.ID(),
		ReportID:   e.ReportID(),
		Type:       e.Type().String(),
		ActorID:    e.ActorID(),
		Note:       e.Note(),
		Payload:    e.Payload(),
		CreatedAt:  e.CreatedAt(),
		InstanceID: instanceID,
	}
}

// RedisReportEventBus publishes recorded report events and lets live
// dashboards subscribe to them.
type RedisReportEventBus struct {
	client     *redis.Client
	logger     logger.Interface
	instanceID string
}

func NewRedisReportEventBus(client *redis.Client, logger logger.Interface) *RedisReportEventBus {
	return &RedisReportEventBus{
		client:     client,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

func (b *RedisReportEventBus) InstanceID() string {
	return b.instanceID
}

func (b *RedisReportEventBus) Publish(ctx context.Context, e *report.Event) error {
	data, err := json.Marshal(NewReportEventMessage(e, b.instanceID))
	if err != nil {
		return fmt.Errorf("failed to marshal report event: %w", err)
	}

	if err := b.client.Publish(ctx, reportEventChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish report event",
			"report_id", e.ReportID(),
			"event_type", e.Type(),
			"error", err,
		)
		return fmt.Errorf("failed to publish report event: %w", err)
	}

	b.logger.Debugw("report event published to Redis",
		"report_id", e.ReportID(),
		"event_type", e.Type(),
	)
	return nil
}

// Subscribe delivers every report event to handler until ctx is cancelled,
// reconnecting with exponential backoff when the subscription drops.
func (b *RedisReportEventBus) Subscribe(ctx context.Context, handler func(msg ReportEventMessage)) error {
	return b.subscribeWithReconnect(ctx, reportEventChannel, func(payload string) {
		msg, err := DecodeReportEventMessage(payload)
		if err != nil {
			b.logger.Warnw("failed to unmarshal report event",
				"payload", payload,
				"error", err,
			)
			return
		}
		handler(msg)
	})
}

func DecodeReportEventMessage(payload string) (ReportEventMessage, error) {
	var msg ReportEventMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return ReportEventMessage{}, err
	}
	return msg, nil
}

func (b *RedisReportEventBus) subscribeWithReconnect(ctx context.Context, channel string, handler func(payload string)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, channel, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("report event subscription disconnected, reconnecting",
			"channel", channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisReportEventBus) subscribe(ctx context.Context, channel string, handler func(payload string)) error {
	sub := b.client.Subscribe(ctx, channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	b.logger.Infow("subscribed to report event channel", "channel", channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("report event subscriber stopped",
				"channel", channel,
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("report event channel closed", "channel", channel)
				return nil
			}
			goroutine.Run(b.logger, "report-event-handler", func() {
				handler(msg.Payload)
			})
		}
	}
}
