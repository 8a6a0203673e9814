package notify

import (
	"schedly/cmd/internal/monitoring"

	"github.com/labstack/gommon/log"
)

// Mailer is the in-process Dispatcher: messages go onto a buffered channel
// and a single worker renders and sends them in the background. When the
// buffer is full the message is dropped and logged; delivery is best-effort.
type Mailer struct {
	queue  chan Message
	sender Sender
	done   chan struct{}
}

func NewMailer(sender Sender, buffer int) *Mailer {
	if buffer < 1 {
		buffer = 64
	}
	m := &Mailer{
		queue:  make(chan Message, buffer),
		sender: sender,
		done:   make(chan struct{}),
	}
	go m.run()
	return m
}

func (m *Mailer) Dispatch(msg Message) {
	monitoring.NotificationsDispatched.Inc()
	select {
	case m.queue <- msg:
	default:
		monitoring.NotificationFailures.Inc()
		log.Warnf("mailer: queue full, dropping message %s for %s", msg.ID, msg.Recipient)
	}
}

// Close stops the worker after draining queued messages.
func (m *Mailer) Close() {
	close(m.queue)
	<-m.done
}

func (m *Mailer) run() {
	defer close(m.done)
	for msg := range m.queue {
		m.deliver(msg)
	}
}

func (m *Mailer) deliver(msg Message) {
	body, err := Render(msg.Template, msg.Context)
	if err != nil {
		monitoring.NotificationFailures.Inc()
		log.Errorf("mailer: failed to render message %s: %v", msg.ID, err)
		return
	}

	if err := m.sender.Send(msg.Recipient, msg.Subject, body); err != nil {
		monitoring.NotificationFailures.Inc()
		log.Errorf("mailer: failed to send message %s to %s: %v", msg.ID, msg.Recipient, err)
	}
}
