package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"
)

// Sender delivers a single message to a recipient.  The SMTP mailer
// implements it in production; tests substitute a recording fake.
type Sender interface {
    Send(to, subject, body string) error
}

// StartNotificationConsumer connects to the broker, declares the durable
// booking.notifications queue, and consumes events until the process exits.
// Each event is rendered into an email and handed to the Sender.  The
// function runs a reconnect loop with exponential backoff and keeps running
// through broker restarts; processing errors are logged and the offending
// message is rejected without requeue so the worker never spins on a bad
// payload.  Delivery failures are never reported back to the request path.
func StartNotificationConsumer(url string, sender Sender, log *zap.Logger) {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Warn("notification-consumer: dial broker failed",
                zap.Error(err), zap.Duration("retry_in", backoff))
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        if err := consumeLoop(conn, sender, log); err != nil {
            log.Warn("notification-consumer: consume loop ended, reconnecting", zap.Error(err))
            time.Sleep(2 * time.Second)
        }
    }
}

func consumeLoop(conn *amqp.Connection, sender Sender, log *zap.Logger) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Warn("notification-consumer: set QoS failed", zap.Error(err))
    }

    if _, err = ch.QueueDeclare(notificationQueueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(notificationQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := handleEvent(d.Body, sender); err != nil {
            log.Warn("notification-consumer: handle event failed", zap.Error(err))
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

// handleEvent unmarshals one event and delivers the corresponding email.
func handleEvent(body []byte, sender Sender) error {
    var ev NotificationEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.RecipientEmail == "" {
        return errors.New("event has no recipient")
    }
    subject, text, err := renderEmail(ev)
    if err != nil {
        return err
    }
    if err := sender.Send(ev.RecipientEmail, subject, text); err != nil {
        return fmt.Errorf("send mail: %w", err)
    }
    return nil
}

// renderEmail maps an event kind to its subject and body text.
func renderEmail(ev NotificationEvent) (subject, body string, err error) {
    switch ev.Kind {
    case KindPaymentConfirmed:
        return "Booking Payment Confirmed",
            fmt.Sprintf("Your booking %d has been successfully paid.", ev.BookingID), nil
    case KindBookingConfirmed:
        return "Booking Confirmation",
            fmt.Sprintf("Dear customer, your booking (ID: %d) has been confirmed. Thank you for choosing us!", ev.BookingID), nil
    default:
        return "", "", fmt.Errorf("unknown notification kind %q", ev.Kind)
    }
}
