package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPTransport delivers mail through an authenticated SMTP relay
type SMTPTransport struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	sendMail  func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPTransport creates a transport for host:port using PLAIN auth
func NewSMTPTransport(host, port, username, password, fromEmail string) *SMTPTransport {
	return &SMTPTransport{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
		sendMail:  smtp.SendMail,
	}
}

// IsConfigured checks if the transport has valid SMTP configuration
func (t *SMTPTransport) IsConfigured() bool {
	return t.host != "" && t.username != "" && t.password != "" && t.fromEmail != ""
}

// Deliver sends msg as a single-part HTML message
func (t *SMTPTransport) Deliver(_ context.Context, msg Message) error {
	auth := smtp.PlainAuth("", t.username, t.password, t.host)
	addr := fmt.Sprintf("%s:%s", t.host, t.port)

	if err := t.sendMail(addr, auth, t.fromEmail, msg.To, t.buildMIME(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (t *SMTPTransport) buildMIME(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", t.fromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}
