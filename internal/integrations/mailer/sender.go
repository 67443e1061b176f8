package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

const defaultFrom = "no-reply@bbva.com"

// SMTPSender отправляет письма через SMTP без аутентификации (Mailpit и внутренние релеи)
type SMTPSender struct {
	addr string
	from string
}

// NewSMTPSender создает отправителя SMTP
func NewSMTPSender(host string, port string, from string) *SMTPSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = defaultFrom
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
	}
}

// Send отправляет HTML письмо одному адресату
func (s *SMTPSender) Send(to string, subject string, body string) error {
	msg := buildMessage(s.from, to, subject, body)
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}

func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}

// LogSender пишет письма в лог вместо отправки. Используется, когда SMTP не настроен
type LogSender struct {
	log Logger
}

// NewLogSender создает отправителя в лог
func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

// Send логирует адресата и тему письма
func (s *LogSender) Send(to string, subject string, body string) error {
	s.log.Info("Mailer: smtp disabled, email to=%s subject=%q (%d bytes) not sent", to, subject, len(body))
	return nil
}
