package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"autocrm/internal/shared/biztime"
	"autocrm/internal/shared/goroutine"
	"autocrm/internal/shared/logger"
)

const ticketFeedChannel = "autocrm:feed:tickets"

// ChangeType labels what happened to a row.
type ChangeType string

const (
	ChangeInsert ChangeType = "insert"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

// ChangeTable names the logical table a change belongs to.
type ChangeTable string

const (
	TableTickets  ChangeTable = "tickets"
	TableMessages ChangeTable = "ticket_messages"
)

// TicketChangeEvent is the wire format of the ticket change feed. Row carries
// the full serialized row after the change (nil for deletes); Version is the
// aggregate version counter used to discard stale updates on the consumer
// side. OrganizationID and CustomerID scope fan-out.
type TicketChangeEvent struct {
	Type           ChangeType      `json:"type"`
	Table          ChangeTable     `json:"table"`
	RowID          uint            `json:"row_id"`
	TicketID       uint            `json:"ticket_id"`
	Row            json.RawMessage `json:"row,omitempty"`
	Version        int             `json:"version"`
	OrganizationID uint            `json:"organization_id"`
	CustomerID     uint            `json:"customer_id"`
	Internal       bool            `json:"internal,omitempty"`
	Timestamp      int64           `json:"timestamp"`
	InstanceID     string          `json:"instance_id,omitempty"`
}

// TicketFeedPublisher publishes ticket changes for cross-instance delivery.
type TicketFeedPublisher interface {
	PublishChange(ctx context.Context, event TicketChangeEvent) error
}

// TicketFeedSubscriber delivers ticket changes published by any instance,
// including this one: every instance has its own SSE clients to feed.
type TicketFeedSubscriber interface {
	SubscribeChanges(ctx context.Context, handler func(event TicketChangeEvent)) error
}

// TicketFeedBus combines publisher and subscriber interfaces.
type TicketFeedBus interface {
	TicketFeedPublisher
	TicketFeedSubscriber
}

// RedisTicketFeedBus implements TicketFeedBus over Redis Pub/Sub.
type RedisTicketFeedBus struct {
	client     *redis.Client
	logger     logger.Interface
	instanceID string
}

func NewRedisTicketFeedBus(client *redis.Client, logger logger.Interface) *RedisTicketFeedBus {
	return &RedisTicketFeedBus{
		client:     client,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

func (b *RedisTicketFeedBus) PublishChange(ctx context.Context, event TicketChangeEvent) error {
	if event.Timestamp == 0 {
		event.Timestamp = biztime.NowUTC().UnixMilli()
	}
	event.InstanceID = b.instanceID

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket change event: %w", err)
	}

	if err := b.client.Publish(ctx, ticketFeedChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish ticket change",
			"table", event.Table,
			"row_id", event.RowID,
			"error", err,
		)
		return fmt.Errorf("failed to publish ticket change: %w", err)
	}

	b.logger.Debugw("ticket change published",
		"type", event.Type,
		"table", event.Table,
		"row_id", event.RowID,
		"version", event.Version,
	)
	return nil
}

func (b *RedisTicketFeedBus) SubscribeChanges(ctx context.Context, handler func(event TicketChangeEvent)) error {
	return b.subscribeWithReconnect(ctx, ticketFeedChannel, func(payload string) {
		var event TicketChangeEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			b.logger.Warnw("failed to unmarshal ticket change event",
				"payload", payload,
				"error", err,
			)
			return
		}

		handler(event)
	})
}

// subscribeWithReconnect wraps subscribe with automatic reconnection and exponential backoff.
func (b *RedisTicketFeedBus) subscribeWithReconnect(ctx context.Context, channel string, handler func(payload string)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, channel, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("ticket feed subscription disconnected, reconnecting",
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

func (b *RedisTicketFeedBus) subscribe(ctx context.Context, channel string, handler func(payload string)) error {
	pubsub := b.client.Subscribe(ctx, channel)
	defer pubsub.Close()

	_, err := pubsub.Receive(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	b.logger.Infow("subscribed to ticket feed channel",
		"channel", channel,
	)

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("ticket feed subscriber stopped",
				"channel", channel,
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("ticket feed channel closed",
					"channel", channel,
				)
				return nil
			}

			goroutine.SafeGo(b.logger, "ticket-feed-handler", func() {
				handler(msg.Payload)
			})
		}
	}
}
