package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/nevta-digital/nevta-api/models"
	"github.com/nevta-digital/nevta-api/utils"
)

// ChangeFeed publishes every change event to a topic exchange, routed by
// event type (occasion.created, contribution.deleted, ...).
type ChangeFeed struct {
	mu           sync.Mutex
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
}

type changeMessage struct {
	models.LiveEvent
	OwnerID    string    `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewChangeFeed(url, exchangeName string) (*ChangeFeed, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &ChangeFeed{conn: conn, channel: channel, exchangeName: exchangeName}, nil
}

// Publish never fails the caller; delivery problems are logged.
func (f *ChangeFeed) Publish(ctx context.Context, event models.LiveEvent) {
	body, err := json.Marshal(changeMessage{LiveEvent: event, OwnerID: event.UserID, OccurredAt: time.Now().UTC()})
	if err != nil {
		utils.SafeError("❌ Change feed marshal failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	f.mu.Lock()
	defer f.mu.Unlock()

	err = f.channel.PublishWithContext(
		ctx,
		f.exchangeName, // exchange
		event.Type,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		utils.SafeError("❌ Change feed publish %s failed: %v", event.Type, err)
		return
	}
	utils.SafeDebug("📤 Published %s for occasion %s", event.Type, utils.MaskID(event.OccasionID))
}

func (f *ChangeFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.channel != nil {
		f.channel.Close()
	}
	if f.conn != nil {
		return f.conn.Close()
	}
	return nil
}
