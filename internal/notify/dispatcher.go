// Package notify publishes notification events to the message broker.
// Dispatch is fire-and-forget: the triggering request never waits on the
// broker and never observes a publish failure.
package notify

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    "github.com/mekbib/stayfinder/internal/queue"
)

// Dispatcher enqueues outbound notifications.  Handlers depend on this
// interface so tests can record dispatches without a broker.
type Dispatcher interface {
    Dispatch(kind, recipientEmail string, bookingID uint64)
}

// AMQPDispatcher publishes events to the durable booking.notifications
// queue on RabbitMQ.  The broker URL comes from injected configuration.
type AMQPDispatcher struct {
    url string
    log *zap.Logger
}

// NewAMQPDispatcher returns a dispatcher bound to the given broker URL.
func NewAMQPDispatcher(url string, log *zap.Logger) *AMQPDispatcher {
    return &AMQPDispatcher{url: url, log: log}
}

// Dispatch enqueues one notification event in a background goroutine and
// returns immediately.  Publish errors are logged and dropped; notification
// delivery must never affect the outcome of the request that triggered it.
func (d *AMQPDispatcher) Dispatch(kind, recipientEmail string, bookingID uint64) {
    ev := queue.NotificationEvent{
        Kind:           kind,
        RecipientEmail: recipientEmail,
        BookingID:      bookingID,
        EnqueuedAt:     time.Now().UTC(),
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if err := d.publish(ctx, ev); err != nil {
            d.log.Warn("notification publish failed",
                zap.String("kind", kind), zap.Uint64("booking_id", bookingID), zap.Error(err))
        }
    }()
}

// publish dials the broker, declares the queue (idempotent, durable) and
// publishes one persistent message.  A connection per publish keeps the
// dispatcher stateless; notification volume does not justify a channel pool.
func (d *AMQPDispatcher) publish(ctx context.Context, ev queue.NotificationEvent) error {
    conn, err := amqp.Dial(d.url)
    if err != nil {
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return err
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(
        "booking.notifications", // name
        true,                    // durable
        false,                   // autoDelete
        false,                   // exclusive
        false,                   // noWait
        nil,                     // args
    ); err != nil {
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }

    return ch.PublishWithContext(ctx,
        "",                      // default exchange
        "booking.notifications", // routing key = queue name
        false,                   // mandatory
        false,                   // immediate
        amqp.Publishing{
            ContentType:  "application/json",
            DeliveryMode: amqp.Persistent, // store on disk
            Timestamp:    time.Now().UTC(),
            Body:         body,
        },
    )
}
