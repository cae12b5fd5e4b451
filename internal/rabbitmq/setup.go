package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// EmailsExchange é o exchange direto por onde passam os e-mails
// transacionais da aplicação.
const EmailsExchange = "emails"

// QueueConfig relaciona uma fila à sua routing key no exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetEmailQueues devolve as filas de e-mail da aplicação.
func GetEmailQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "emails.reset", RoutingKey: "email.reset"},
		{QueueName: "emails.welcome", RoutingKey: "email.welcome"},
	}
}

// SetupChannel abre um canal, declara o exchange e vincula as filas.
func SetupChannel(conn *amqp.Connection, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	err = ch.ExchangeDeclare(
		EmailsExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			q.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}

		err = ch.QueueBind(
			q.QueueName,
			q.RoutingKey,
			EmailsExchange,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
