package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Producer публикует события уведомлений в RabbitMQ topic exchange
// Ядро не занимается доставкой - оно только отдает события
// notification-коллаборатору через брокер
type Producer struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	log      Logger
}

// NewProducer создает producer и объявляет durable topic exchange
func NewProducer(amqpURL, exchange string, log Logger) (*Producer, error) {
	conn, err := amqp091.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	if err := channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("%w: declare exchange: %v", ErrConnect, err)
	}

	return &Producer{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		log:      log,
	}, nil
}

// PublishExpirationWarning публикует предупреждение об истечении договора
// Routing key включает срочность, чтобы потребители могли подписываться
// на критичные предупреждения отдельно
func (p *Producer) PublishExpirationWarning(ctx context.Context, event ExpirationWarning) error {
	routingKey := fmt.Sprintf("contracts.expiration.%s", event.Urgency)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.log.Info("Published expiration warning: contract_id=%d, days=%d, urgency=%s",
		event.ContractID, event.DaysUntilExpiration, event.Urgency)
	return nil
}

// Close закрывает канал и соединение с брокером
func (p *Producer) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
