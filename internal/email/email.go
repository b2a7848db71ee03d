package email

import (
	"context"

	"go.uber.org/zap"
)

type Message struct {
	To      []string
	Subject string
	Body    string
}

// Sender delivers a single message. Delivery retries and bounce handling are
// the provider's problem, not this service's.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ConsoleSender logs messages instead of delivering them. Used in development
// and whenever no Sendgrid key is configured.
type ConsoleSender struct {
	log *zap.Logger
}

func NewConsoleSender(log *zap.Logger) *ConsoleSender {
	return &ConsoleSender{log: log}
}

func (s *ConsoleSender) Send(_ context.Context, msg Message) error {
	s.log.Info("email (console)",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}

var _ Sender = (*ConsoleSender)(nil)
