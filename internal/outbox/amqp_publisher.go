package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Message is the JSON body published for every effect.
type Message struct {
	ID         string    `json:"id"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
}

// AMQPPublisher publishes effects to a durable topic exchange. The routing key is
// derived from the recipient, e.g. "effect.member.7" or "effect.role.akunting".
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	now      func() time.Time
}

// NewAMQPPublisher dials the broker and declares the exchange.
func NewAMQPPublisher(amqpURL, exchange string) (*AMQPPublisher, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}
	conn, err := amqp.DialConfig(cleanURL, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("failed to dial broker: %w", err)
	}
	p := &AMQPPublisher{conn: conn, exchange: exchange, now: time.Now}
	if err := p.openChannel(); err != nil {
		conn.Close()
		return nil, err
	}
	return p, nil
}

func (p *AMQPPublisher) openChannel() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		return fmt.Errorf("failed to declare exchange %s: %w", p.exchange, err)
	}
	p.channel = ch
	return nil
}

// Publish sends one effect. A failed publish reopens the channel and retries once.
func (p *AMQPPublisher) Publish(ctx context.Context, effect domain.Effect) error {
	msg := newMessage(effect, p.now())
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal effect: %w", err)
	}
	publishing := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Timestamp:    msg.OccurredAt,
		Body:         body,
	}
	key := routingKey(effect.Recipient)

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(ctx, p.exchange, key, false, false, publishing)
	if err == nil {
		return nil
	}
	slog.Warn("Publish failed, reopening channel", slog.String("routing_key", key), slog.String("error", err.Error()))
	if reopenErr := p.openChannel(); reopenErr != nil {
		return errors.Join(err, reopenErr)
	}
	return p.channel.PublishWithContext(ctx, p.exchange, key, false, false, publishing)
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}

func newMessage(effect domain.Effect, now time.Time) Message {
	return Message{
		ID:         uuid.NewString(),
		Recipient:  effect.Recipient,
		Subject:    effect.Subject,
		Message:    effect.Message,
		OccurredAt: now.UTC(),
	}
}

// routingKey turns "member:7" into "effect.member.7".
func routingKey(recipient string) string {
	kind, id, ok := strings.Cut(recipient, ":")
	if !ok || kind == "" || id == "" {
		return "effect.unknown"
	}
	return "effect." + kind + "." + strings.ReplaceAll(id, ".", "_")
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", fmt.Errorf("invalid AMQP URL: %w", err)
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}
