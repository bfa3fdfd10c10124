package event

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"
)

// Publisher emits quiz lifecycle events (signup, quiz created, attempt
// submitted, result saved) on a topic exchange, with the event type as the
// routing key.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewPublisher(amqpURL, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish is best-effort: a broker hiccup is logged, never surfaced to the
// request that triggered the event.
func (p *Publisher) Publish(eventType string, payload any) {
	body, err := json.Marshal(map[string]any{
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		log.Printf("Failed to encode %s event: %v", eventType, err)
		return
	}
	err = p.channel.Publish(p.exchange, eventType, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}

func (p *Publisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
