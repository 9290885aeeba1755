package queue

import (
    "log"

    "github.com/streadway/amqp"
)

// maxRedeliveries bounds how often a failed automation job is retried
// before it is dropped, matching the in-memory queue.
const maxRedeliveries = 3

// AMQPQueue is the RabbitMQ-backed Queue. Topics map to durable queues.
type AMQPQueue struct {
    conn *amqp.Connection
    ch   *amqp.Channel
}

func NewAMQPQueue(url string) (*AMQPQueue, error) {
    conn, err := amqp.Dial(url)
    if err != nil {
        return nil, err
    }
    ch, err := conn.Channel()
    if err != nil {
        conn.Close()
        return nil, err
    }
    return &AMQPQueue{conn: conn, ch: ch}, nil
}

func (q *AMQPQueue) declare(topic string) (amqp.Queue, error) {
    return q.ch.QueueDeclare(
        topic,
        true,  // durable
        false, // delete when unused
        false, // exclusive
        false, // no-wait
        nil,   // arguments
    )
}

func (q *AMQPQueue) Publish(topic string, body []byte) error {
    decl, err := q.declare(topic)
    if err != nil {
        return err
    }
    return q.publish(decl.Name, body, nil)
}

func (q *AMQPQueue) publish(queueName string, body []byte, headers amqp.Table) error {
    return q.ch.Publish(
        "",
        queueName,
        false,
        false,
        amqp.Publishing{
            ContentType: "application/json",
            Headers:     headers,
            Body:        body,
        },
    )
}

// redeliveryCount reads the x-retry-count header. Brokers hand numeric
// header values back in varying widths, so accept the common ones.
func redeliveryCount(headers amqp.Table) int32 {
    switch v := headers["x-retry-count"].(type) {
    case int32:
        return v
    case int64:
        return int32(v)
    case int:
        return int32(v)
    }
    return 0
}

// handleDelivery acks the delivery and, when the handler failed, either
// republishes the body with an incremented x-retry-count header or
// drops it once the redelivery bound is spent. A plain Nack requeue
// would keep the original headers and retry forever.
func handleDelivery(d amqp.Delivery, topic string, handler func(body []byte) error, republish func(body []byte, headers amqp.Table) error) {
    err := handler(d.Body)
    if err == nil {
        d.Ack(false)
        return
    }

    count := redeliveryCount(d.Headers)
    log.Printf("⚠️ handler failed for %s job (attempt %d/%d): %v", topic, count+1, maxRedeliveries+1, err)

    if count < maxRedeliveries {
        if pubErr := republish(d.Body, amqp.Table{"x-retry-count": count + 1}); pubErr != nil {
            log.Println("⚠️ failed to requeue", topic, "job:", pubErr)
            d.Nack(false, true) // fall back to broker redelivery
            return
        }
    } else {
        log.Printf("⚠️ %s job permanently failed after %d attempts, dropping", topic, maxRedeliveries+1)
    }
    d.Ack(false)
}

// Subscribe consumes the topic with manual acks. Failed handlers are
// re-enqueued up to 3 times, then dropped.
func (q *AMQPQueue) Subscribe(topic string, handler func(body []byte) error) error {
    decl, err := q.declare(topic)
    if err != nil {
        return err
    }

    msgs, err := q.ch.Consume(
        decl.Name,
        "",
        false, // autoAck = false for reliability
        false,
        false,
        false,
        nil,
    )
    if err != nil {
        return err
    }

    go func() {
        for d := range msgs {
            handleDelivery(d, topic, handler, func(body []byte, headers amqp.Table) error {
                return q.publish(decl.Name, body, headers)
            })
        }
    }()

    return nil
}

func (q *AMQPQueue) Close() error {
    if err := q.ch.Close(); err != nil {
        q.conn.Close()
        return err
    }
    return q.conn.Close()
}
