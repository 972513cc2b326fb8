package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler обрабатывает одно событие с уже декодированным payload типа T.
// non-nil error означает, что обработка не удалась и сообщение вернётся
// в очередь на retry.
type Handler[T any] func(ctx context.Context, msg *Message, payload T) error

// Consumer читает события одного типа из очереди и раздаёт их handler'у.
//
// Политика подтверждений:
//   - payload декодировался, handler вернул nil → ack
//   - handler вернул ошибку → nack с requeue (transient-ошибка)
//   - сообщение не декодируется или имеет чужой Type → nack без requeue,
//     RabbitMQ уводит его в DLQ
type Consumer[T any] struct {
	conn        *Connection
	logger      *slog.Logger
	queue       Queue
	expect      MessageType
	handler     Handler[T]
	parallelism int

	cancelFunc context.CancelFunc
}

// ConsumerConfig — конфигурация Consumer.
type ConsumerConfig[T any] struct {
	// Queue — очередь, из которой читаем.
	Queue Queue

	// Type — единственный тип сообщений, который ожидает эта очередь.
	// Сообщения других типов уходят в DLQ.
	Type MessageType

	// Handler — обработчик декодированных событий.
	Handler Handler[T]

	// Parallelism — prefetch канала; для runner'а это фактический
	// предел одновременно выполняемых jobs.
	Parallelism int
}

// NewConsumer создаёт Consumer для очереди событий типа T.
func NewConsumer[T any](conn *Connection, logger *slog.Logger, cfg ConsumerConfig[T]) *Consumer[T] {
	parallelism := cfg.Parallelism
	if parallelism <= 0 {
		parallelism = 1
	}

	return &Consumer[T]{
		conn:        conn,
		logger:      logger,
		queue:       cfg.Queue,
		expect:      cfg.Type,
		handler:     cfg.Handler,
		parallelism: parallelism,
	}
}

// Start запускает цикл потребления. Блокирует до отмены контекста,
// переживая реконнекты соединения.
func (c *Consumer[T]) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	c.cancelFunc = cancel

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		stream, err := c.open()
		if err != nil {
			c.logger.Error("failed to open consume stream", "queue", c.queue, "error", err)
			if err := c.awaitReconnect(ctx); err != nil {
				return err
			}
			continue
		}

		c.logger.Info("consuming", "queue", c.queue, "type", c.expect, "parallelism", c.parallelism)

		if err := c.drain(ctx, stream); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn("consume stream closed, waiting for reconnect", "queue", c.queue)
			if err := c.awaitReconnect(ctx); err != nil {
				return err
			}
		}
	}
}

// Stop останавливает consumer.
func (c *Consumer[T]) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
}

func (c *Consumer[T]) awaitReconnect(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.conn.ReconnectNotify():
		return nil
	}
}

// open настраивает Qos и открывает поток доставок.
func (c *Consumer[T]) open() (<-chan amqp.Delivery, error) {
	ch := c.conn.Channel()
	if ch == nil {
		return nil, fmt.Errorf("no channel available")
	}

	if err := ch.Qos(c.parallelism, 0, false); err != nil {
		return nil, fmt.Errorf("set qos: %w", err)
	}

	stream, err := ch.Consume(
		string(c.queue), // queue
		"",              // consumer tag (auto-generated)
		false,           // auto-ack (мы ack вручную)
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		return nil, fmt.Errorf("consume: %w", err)
	}

	return stream, nil
}

// drain читает поток до его закрытия или отмены контекста.
func (c *Consumer[T]) drain(ctx context.Context, stream <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case raw, ok := <-stream:
			if !ok {
				return fmt.Errorf("stream closed")
			}
			c.dispatch(ctx, raw)
		}
	}
}

// dispatch декодирует доставку и применяет политику подтверждений.
func (c *Consumer[T]) dispatch(ctx context.Context, raw amqp.Delivery) {
	msg, payload, err := decode[T](raw.Body)
	if err != nil {
		c.logger.Error("dropping undecodable message",
			"queue", c.queue,
			"error", err,
			"body", string(raw.Body),
		)
		raw.Nack(false, false)
		return
	}

	if msg.Type != c.expect {
		c.logger.Warn("dropping message of unexpected type",
			"queue", c.queue,
			"message_id", msg.ID,
			"type", msg.Type,
		)
		raw.Nack(false, false)
		return
	}

	c.logger.Debug("received message",
		"queue", c.queue,
		"message_id", msg.ID,
		"type", msg.Type,
	)

	if err := c.handler(ctx, msg, payload); err != nil {
		c.logger.Error("handler failed, requeueing",
			"queue", c.queue,
			"message_id", msg.ID,
			"error", err,
		)
		raw.Nack(false, true)
		return
	}

	raw.Ack(false)
}

// decode разбирает тело сообщения: конверт целиком плюс payload
// сразу в целевой тип, минуя map[string]any.
func decode[T any](body []byte) (*Message, T, error) {
	var payload T

	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, payload, fmt.Errorf("unmarshal envelope: %w", err)
	}

	var typed struct {
		Payload T `json:"payload"`
	}
	if err := json.Unmarshal(body, &typed); err != nil {
		return nil, payload, fmt.Errorf("unmarshal payload: %w", err)
	}

	return &msg, typed.Payload, nil
}
