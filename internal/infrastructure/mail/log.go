package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/recetario/recipe-book/internal/core/ports"
)

// LogMailer writes mail to the log instead of delivering it. Used in local
// development when no SMTP relay is configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

var _ ports.Mailer = (*LogMailer)(nil)

func (m *LogMailer) Send(_ context.Context, job ports.MailJob) error {
	m.log.Info().
		Str("recipient", job.Recipient).
		Str("subject", job.Subject).
		Int("body_bytes", len(job.Body)).
		Msg("mail delivery skipped, no relay configured")
	return nil
}
