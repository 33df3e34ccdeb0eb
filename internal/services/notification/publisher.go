// Package notification публикует и отправляет приветственные уведомления.
package notification

import (
	"github.com/magabrotheeeer/catering-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/streadway/amqp"
)

// Publisher публикует приветственные уведомления в RabbitMQ.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher создает новый экземпляр Publisher.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// PublishWelcome отправляет приветственное сообщение в очередь уведомлений.
func (p *Publisher) PublishWelcome(email, fullName string) error {
	return rabbitmq.PublishMessage(p.ch, rabbitmq.ExchangeName, "welcome", models.WelcomeMessage{
		Email:    email,
		FullName: fullName,
	})
}
