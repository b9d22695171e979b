// Package events publishes ledger activity to a message broker so downstream
// consumers (notifications, analytics) can react without coupling to the
// engine. Publishing is fire-and-forget from the ledger's point of view: a
// failed publish never rolls back a committed mutation.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/api-sage/account-ledger/internal/logger"
	"github.com/rabbitmq/amqp091-go"
)

// TransactionEvent is the payload published for every committed transaction
// record.
type TransactionEvent struct {
	AccountID      string    `json:"accountId"`
	TransactionID  string    `json:"transactionId"`
	Kind           string    `json:"kind"`
	Amount         string    `json:"amount"`
	BalanceAfter   string    `json:"balanceAfter"`
	CounterpartyID string    `json:"counterpartyId,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Publisher is implemented by anything able to emit transaction events.
type Publisher interface {
	PublishTransaction(ctx context.Context, event TransactionEvent) error
	Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishTransaction(context.Context, TransactionEvent) error { return nil }

func (NoopPublisher) Close() {}

// EventProducer publishes to a durable topic exchange over AMQP.
type EventProducer struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

// NewEventProducer dials the broker and declares the exchange up front so a
// misconfigured URL fails at startup, not on the first transaction.
func NewEventProducer(amqpURL, exchange string) (*EventProducer, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp091.DialConfig(cleanURL, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &EventProducer{conn: conn, channel: ch, exchange: exchange}, nil
}

// PublishTransaction emits the event with routing key
// "transaction.<kind lowercased>", e.g. transaction.deposit.
func (p *EventProducer) PublishTransaction(ctx context.Context, event TransactionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	routingKey := "transaction." + strings.ToLower(event.Kind)
	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false,
		false,
		amqp091.Publishing{
			ContentType: "application/json",
			Timestamp:   event.Timestamp,
			Body:        body,
		},
	)
	if err == nil {
		return nil
	}

	logger.Error("event producer publish failed, reopening channel", err, logger.Fields{
		"exchange":   p.exchange,
		"routingKey": routingKey,
	})

	// One-shot retry on a fresh channel; broker hiccups are common enough
	// that a single reconnect is worth it before giving up.
	ch, chErr := p.conn.Channel()
	if chErr != nil {
		return err
	}
	p.channel = ch
	if exErr := p.channel.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); exErr != nil {
		return err
	}
	return p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Timestamp:   event.Timestamp,
		Body:        body,
	})
}

// Close shuts down the channel and connection.
func (p *EventProducer) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}
