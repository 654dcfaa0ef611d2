package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/profile-service/internal/metrics"
	"github.com/magabrotheeeer/profile-service/internal/models"
)

// EventUserCreated — тип события о регистрации пользователя.
const EventUserCreated = "user.created"

// Channel — часть amqp.Channel, нужная издателю.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// UserCreated — тело события user.created. Пароль в событие не попадает.
type UserCreated struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Mobile     string    `json:"mobile,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher отправляет события в exchange. amqp.Channel не безопасен для
// конкурентной публикации, поэтому вызовы сериализуются.
type Publisher struct {
	mu         sync.Mutex
	ch         Channel
	exchange   string
	routingKey string
	now        func() time.Time
}

// NewPublisher создает Publisher поверх открытого канала.
func NewPublisher(ch Channel, exchange, routingKey string) *Publisher {
	if routingKey == "" {
		routingKey = EventUserCreated
	}
	return &Publisher{
		ch:         ch,
		exchange:   exchange,
		routingKey: routingKey,
		now:        time.Now,
	}
}

// PublishUserCreated публикует событие о новом пользователе.
func (p *Publisher) PublishUserCreated(ctx context.Context, user models.PublicUser) error {
	const op = "rabbitmq.PublishUserCreated"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	event := UserCreated{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Mobile:     user.Mobile,
		OccurredAt: p.now().UTC(),
	}
	if err := p.publish(EventUserCreated, event); err != nil {
		metrics.EventsPublished.WithLabelValues(EventUserCreated, "error").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	metrics.EventsPublished.WithLabelValues(EventUserCreated, "ok").Inc()
	return nil
}

func (p *Publisher) publish(eventType string, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ch.Publish(
		p.exchange,
		p.routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         eventType,
			MessageId:    uuid.NewString(),
			Timestamp:    p.now().UTC(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
}
