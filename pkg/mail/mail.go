// Package mail is a small fluent SMTP mailer.
//
//	err := mail.New().
//	    To("member@example.com").
//	    Subject("Order confirmed").
//	    HTML(body).
//	    Send()
package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/shashiranjanraj/repwear/config"
	"github.com/shashiranjanraj/repwear/pkg/logger"
)

// Message is a mail message under construction.
type Message struct {
	from    string
	to      []string
	subject string
	body    string
	html    bool
}

// New starts a message with the configured default sender.
func New() *Message {
	return &Message{from: config.Get("MAIL_FROM", "noreply@repwear.com")}
}

// From overrides the sender address.
func (m *Message) From(addr string) *Message { m.from = addr; return m }

// To adds recipient addresses.
func (m *Message) To(addrs ...string) *Message { m.to = append(m.to, addrs...); return m }

// Subject sets the subject line.
func (m *Message) Subject(s string) *Message { m.subject = s; return m }

// Text sets a plain-text body.
func (m *Message) Text(body string) *Message { m.body = body; m.html = false; return m }

// HTML sets an HTML body.
func (m *Message) HTML(body string) *Message { m.body = body; m.html = true; return m }

// Send delivers the message via the configured SMTP host.
// When MAIL_HOST is unset the message is logged instead of sent, so
// development environments work without a mail server.
func (m *Message) Send() error {
	if len(m.to) == 0 {
		return fmt.Errorf("mail: no recipients")
	}

	host := config.Get("MAIL_HOST", "")
	if host == "" {
		logger.Info("mail: no MAIL_HOST configured, skipping delivery",
			"to", strings.Join(m.to, ","), "subject", m.subject)
		return nil
	}

	port := config.Get("MAIL_PORT", "587")
	user := config.Get("MAIL_USERNAME", "")
	pass := config.Get("MAIL_PASSWORD", "")

	contentType := "text/plain; charset=UTF-8"
	if m.html {
		contentType = "text/html; charset=UTF-8"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(m.to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", m.subject)
	fmt.Fprintf(&b, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s\r\n", contentType)
	fmt.Fprintf(&b, "\r\n%s\r\n", m.body)

	addr := host + ":" + port

	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}

	if err := smtp.SendMail(addr, auth, m.from, m.to, []byte(b.String())); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}

	logger.Info("mail: sent", "to", strings.Join(m.to, ","), "subject", m.subject)
	return nil
}
