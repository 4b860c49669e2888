// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mailer sends best-effort notification emails to subscribers.
// Delivery is always dispatched off the request path and failures are
// logged, never surfaced to the caller.
package mailer

import (
	"log/slog"

	"github.com/wneessen/go-mail"
)

// Notifier delivers one message to a list of recipients.
type Notifier interface {
	Notify(recipients []string, subject, body string) error
}

// SMTP is a Notifier backed by an SMTP relay.
type SMTP struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTP creates an SMTP notifier. Returns nil when host is empty so the
// app runs without outbound email.
func NewSMTP(host string, port int, username, password, from string) *SMTP {
	if host == "" {
		return nil
	}
	return &SMTP{host: host, port: port, username: username, password: password, from: from}
}

// Notify sends one message to all recipients. Recipients go on the BCC
// line so subscribers do not see each other's addresses.
func (s *SMTP) Notify(recipients []string, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return err
	}
	if err := msg.Bcc(recipients...); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{mail.WithPort(s.port)}
	if s.username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.username),
			mail.WithPassword(s.password),
		)
	}
	client, err := mail.NewClient(s.host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSend(msg)
}

// Dispatch runs Notify in a goroutine and logs any failure. It is the
// only way handlers send mail; nothing ever waits on delivery.
func Dispatch(n Notifier, recipients []string, subject, body string) {
	if len(recipients) == 0 {
		return
	}
	if n == nil || isNilSMTP(n) {
		slog.Info("mailer disabled, skipping notification",
			"recipients", len(recipients), "subject", subject)
		return
	}
	go func() {
		if err := n.Notify(recipients, subject, body); err != nil {
			slog.Error("notification send failed",
				"recipients", len(recipients), "subject", subject, "error", err)
			return
		}
		slog.Info("notification sent", "recipients", len(recipients), "subject", subject)
	}()
}

// isNilSMTP guards against a typed-nil *SMTP stored in the interface.
func isNilSMTP(n Notifier) bool {
	s, ok := n.(*SMTP)
	return ok && s == nil
}
