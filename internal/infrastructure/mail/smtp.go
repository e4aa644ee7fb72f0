package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/recetario/recipe-book/internal/core/ports"
)

// SMTPMailer delivers mail through a plain SMTP relay. No auth is attempted;
// the relay address is expected to be an internal submission endpoint.
type SMTPMailer struct {
	addr string
	from string
}

func NewSMTPMailer(addr, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from}
}

var _ ports.Mailer = (*SMTPMailer)(nil)

func (m *SMTPMailer) Send(_ context.Context, job ports.MailJob) error {
	msg := buildMessage(m.from, job)
	if err := smtp.SendMail(m.addr, nil, m.from, []string{job.Recipient}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", job.Recipient, err)
	}
	return nil
}

func buildMessage(from string, job ports.MailJob) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", job.Recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", job.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(job.Body)
	return []byte(b.String())
}
