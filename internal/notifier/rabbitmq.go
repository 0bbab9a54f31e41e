package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// channel is the part of *amqp.Channel the presenter publishes through.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQ forwards interruptions to a direct exchange so that other agents
// (desktop notifiers, phones) can render them.
type RabbitMQ struct {
	conn       *amqp.Connection
	channel    channel
	exchange   string
	routingKey string
	host       string
	logger     *slog.Logger
}

// Config describes where notices go. QueueName is optional: when set, a
// durable queue is bound to the exchange so notices are kept for consumers
// that are not connected yet.
type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareNoticeRoute(ch, cfg); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger.Info("notice presenter connected",
		"exchange", cfg.Exchange,
		"routing_key", cfg.RoutingKey,
		"queue", cfg.QueueName,
	)

	r := newRabbitMQ(ch, cfg, logger)
	r.conn = conn
	return r, nil
}

// declareNoticeRoute makes sure the durable direct exchange exists and, if a
// queue is configured, that it receives the notice routing key.
func declareNoticeRoute(ch *amqp.Channel, cfg Config) error {
	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare notice exchange %q: %w", cfg.Exchange, err)
	}

	if cfg.QueueName == "" {
		return nil
	}

	if _, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare notice queue %q: %w", cfg.QueueName, err)
	}
	if err := ch.QueueBind(cfg.QueueName, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind notice queue %q: %w", cfg.QueueName, err)
	}

	return nil
}

func newRabbitMQ(ch channel, cfg Config, logger *slog.Logger) *RabbitMQ {
	host, _ := os.Hostname()
	return &RabbitMQ{
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		host:       host,
		logger:     logger.With("component", "rabbitmq"),
	}
}

type NoticeMessage struct {
	Message   string    `json:"message"`
	Host      string    `json:"host,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Present publishes message. Failures are logged and dropped.
func (r *RabbitMQ) Present(message string) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := r.Publish(ctx, message); err != nil {
		r.logger.Warn("publish notice failed", "error", err)
	}
}

func (r *RabbitMQ) Publish(ctx context.Context, message string) error {
	msg := NoticeMessage{
		Message:   message,
		Host:      r.host,
		Timestamp: time.Now().UTC(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Transient,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	r.logger.Debug("published notice", "routing_key", r.routingKey)

	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
