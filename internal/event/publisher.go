package event

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const defaultExchange = "quiz.events"

// Publisher emits domain events (quiz.completed, achievement.unlocked,
// level.up, streak.updated) to a RabbitMQ topic exchange. The event type is
// the routing key. With an empty URI the publisher is disabled and every
// Publish is a no-op, so callers never branch on configuration.
type Publisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	enabled  bool
}

func NewPublisher(amqpURI, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = defaultExchange
	}
	if amqpURI == "" {
		log.Println("amqp uri empty, event publishing disabled")
		return &Publisher{exchange: exchange}, nil
	}

	conn, err := amqp091.Dial(amqpURI)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	log.Printf("event publisher initialized with exchange %s", exchange)

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		enabled:  true,
	}, nil
}

func (p *Publisher) Publish(eventType string, payload interface{}) error {
	if !p.enabled {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.channel.Publish(
		p.exchange,
		eventType, // routing key
		false,     // mandatory
		false,     // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
			Headers: amqp091.Table{
				"event_type": eventType,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if !p.enabled {
		return nil
	}
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			log.Printf("close rabbitmq channel: %v", err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}
	return nil
}

// Recorder collects events in memory for tests.
type Recorder struct {
	Events []Recorded
}

type Recorded struct {
	Type    string
	Payload interface{}
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(eventType string, payload interface{}) error {
	r.Events = append(r.Events, Recorded{Type: eventType, Payload: payload})
	return nil
}

func (r *Recorder) Types() []string {
	types := make([]string, len(r.Events))
	for i, e := range r.Events {
		types[i] = e.Type
	}
	return types
}
