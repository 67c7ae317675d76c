// Package events публикует уведомления реестра в RabbitMQ.
// Сейчас единственный вид уведомлений — смена состояния минтинга
// (pause/unpause) с указанием действующего администратора.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/Memetic-Block/membership-nfts/internal/models"
)

const (
	// ExchangeName — exchange для событий реестра.
	ExchangeName = "membership.events"
	// PauseRoutingKey — ключ маршрутизации уведомлений о паузе.
	PauseRoutingKey = "minting.pause"
)

// Publisher отправляет события реестра через канал AMQP.
type Publisher struct {
	ch *amqp.Channel
}

// New подключается к брокеру, объявляет exchange и возвращает Publisher.
func New(amqpURL string) (*Publisher, error) {
	const op = "events.New"

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Publisher{ch: ch}, nil
}

// PublishPauseChanged отправляет уведомление о смене состояния минтинга.
func (p *Publisher) PublishPauseChanged(event models.PauseEvent) error {
	const op = "events.PublishPauseChanged"

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		ExchangeName,
		PauseRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
