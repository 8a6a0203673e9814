package notify

import (
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/labstack/gommon/log"
)

// SMTPSender sends HTML mail through a plain-auth SMTP relay.
type SMTPSender struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	headers := []string{
		"From: " + s.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	addr := net.JoinHostPort(s.Host, s.Port)
	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	if err := smtp.SendMail(addr, auth, s.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// LogSender is the transport used when no SMTP relay is configured. It only
// logs the delivery, which keeps local development working without a mailbox.
type LogSender struct{}

func (LogSender) Send(to, subject, _ string) error {
	log.Infof("mail (log only): to=%s subject=%q", to, subject)
	return nil
}
