package mail

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/apostaesportiva/bolao/internal/core/ports"
	"github.com/apostaesportiva/bolao/internal/i18n"
)

var _ ports.Mailer = (*LogMailer)(nil)

// LogMailer writes outgoing mail to the log instead of delivering it. It is
// the only transport until an SMTP relay is provisioned.
type LogMailer struct {
	log zerolog.Logger
	tag language.Tag
}

func NewLogMailer(log zerolog.Logger, tag language.Tag) *LogMailer {
	return &LogMailer{log: log, tag: tag}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, email, link string) error {
	m.log.Info().
		Str("to", email).
		Str("subject", i18n.T(m.tag, i18n.KeyResetMailSubj)).
		Str("body", i18n.T(m.tag, i18n.KeyResetMailBody, link)).
		Msg("password reset mail")
	return nil
}
