package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"schedly/cmd/internal/monitoring"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

const emailQueueName = "notify.email"

// AMQPDispatcher publishes messages to a durable broker queue instead of
// sending in-process. Deployments running several API instances point them
// all at the same queue and run one consumer.
type AMQPDispatcher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func DialAMQP(url string) (*AMQPDispatcher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(emailQueueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &AMQPDispatcher{conn: conn, ch: ch}, nil
}

func (d *AMQPDispatcher) Dispatch(msg Message) {
	monitoring.NotificationsDispatched.Inc()

	body, err := json.Marshal(msg)
	if err != nil {
		monitoring.NotificationFailures.Inc()
		log.Errorf("notify: failed to marshal message %s: %v", msg.ID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = d.ch.PublishWithContext(ctx, "", emailQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Body:         body,
	})
	if err != nil {
		monitoring.NotificationFailures.Inc()
		log.Errorf("notify: failed to publish message %s: %v", msg.ID, err)
	}
}

func (d *AMQPDispatcher) Close() {
	_ = d.ch.Close()
	_ = d.conn.Close()
}

// StartEmailConsumer drains the notify.email queue, rendering and sending
// each message. It reconnects with backoff and never gives up; failed
// messages are rejected without requeue so a poison message cannot loop.
func StartEmailConsumer(url string, sender Sender) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Errorf("email-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeEmails(conn, sender); err != nil {
			log.Errorf("email-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeEmails(conn *amqp.Connection, sender Sender) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(emailQueueName, true, false, false, false, nil); err != nil {
		return err
	}

	deliveries, err := ch.Consume(emailQueueName, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for d := range deliveries {
		if err := handleEmail(d.Body, sender); err != nil {
			monitoring.NotificationFailures.Inc()
			log.Errorf("email-consumer: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleEmail(body []byte, sender Sender) error {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return err
	}

	html, err := Render(msg.Template, msg.Context)
	if err != nil {
		return err
	}
	return sender.Send(msg.Recipient, msg.Subject, html)
}
