// Package mailer sends the daily follow-up reminder email.
package mailer

import (
	"fmt"
	"net/smtp"

	"andhara-backend/internal/config"
)

// Provider sends one HTML email. The SMTP implementation is used in
// production; tests swap in a recording fake.
type Provider interface {
	Send(to []string, subject, htmlBody string) error
}

// SMTPMailer delivers through a plain SMTP relay with AUTH PLAIN.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Email.Host,
		port:     cfg.Email.Port,
		username: cfg.Email.Username,
		password: cfg.Email.Password,
	}
}

func (m *SMTPMailer) Send(to []string, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	var msg []byte
	msg = append(msg, []byte(fmt.Sprintf("From: %s\r\n", m.username))...)
	for _, rcpt := range to {
		msg = append(msg, []byte(fmt.Sprintf("To: %s\r\n", rcpt))...)
	}
	msg = append(msg, []byte(fmt.Sprintf("Subject: %s\r\n", subject))...)
	msg = append(msg, []byte("MIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n")...)
	msg = append(msg, []byte(htmlBody)...)

	if err := smtp.SendMail(addr, auth, m.username, to, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
