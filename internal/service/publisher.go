package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/civil-registry/internal/queue"
)

// AMQPPublisher publishes audit events to RabbitMQ, dialing per publish.
type AMQPPublisher struct {
	URL    string
	logger *slog.Logger
}

type PublisherOption func(p *AMQPPublisher)

func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *AMQPPublisher) { p.logger = logger }
}

func NewAMQPPublisher(url string, opts ...PublisherOption) *AMQPPublisher {
	p := &AMQPPublisher{URL: url, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *AMQPPublisher) fail(step string, ev q.AuditEvent, err error) error {
	p.logger.Warn("rabbitmq "+step+" failed", slog.Uint64("audit_id", ev.AuditID), slog.Any("error", err))
	return err
}

// PublishAudit publishes ev to the durable audit.recorded queue. Errors are
// logged and returned so the caller can choose to ignore them. Messages are
// marked as persistent.
func (p *AMQPPublisher) PublishAudit(ctx context.Context, ev q.AuditEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return p.fail("dial", ev, err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return p.fail("channel open", ev, err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		q.AuditQueueName, // name
		true,             // durable
		false,            // autoDelete
		false,            // exclusive
		false,            // noWait
		nil,              // args
	); err != nil {
		return p.fail("queue declare", ev, err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return p.fail("marshal", ev, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",               // default exchange
		q.AuditQueueName, // routing key = queue name
		false,            // mandatory
		false,            // immediate
		pub,
	); err != nil {
		return p.fail("publish", ev, err)
	}
	return nil
}
