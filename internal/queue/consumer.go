// Package queue also contains the background consumer that listens to the
// audit.recorded queue and appends one line per event to logs/audit.log.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartAuditConsumer connects to RabbitMQ, declares the audit.recorded queue
// (durable) and consumes it until ctx is cancelled. Each message is appended
// to logDir/audit.log. Broker failures are retried with exponential backoff
// so the server keeps running while the broker is away.
func StartAuditConsumer(ctx context.Context, url, logDir string) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("audit-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, logDir)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("audit-consumer: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, logDir string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("audit-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(AuditQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(AuditQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := appendEvent(logDir, d.Body); err != nil {
				log.Printf("audit-consumer: handle message failed: %v", err)
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func appendEvent(logDir string, body []byte) error {
	var ev AuditEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(logDir, "audit.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	return WriteLine(f, ev)
}

// WriteLine renders one event as a single log line.
func WriteLine(w io.Writer, ev AuditEvent) error {
	line := fmt.Sprintf("[%s] %s %s | audit_id=%d | entity_id=%s | user_id=%s | mairie_id=%s | ip=%s | client=\"%s/%s\" | %s\n",
		ev.RecordedAt, ev.Action, ev.EntityType, ev.AuditID,
		optID(ev.EntityID), optID(ev.UserID), optID(ev.MairieID),
		orDash(ev.IPAddress), orDash(ev.Browser), orDash(ev.OS), ev.Description)
	if _, err := io.WriteString(w, line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func optID(id *uint64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprint(*id)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
