package mail

import (
	"context"

	domainMail "event_planner/internal/domain/mail"

	"github.com/sirupsen/logrus"
)

// LogSender writes messages to the log instead of delivering them. Used for local development.
type LogSender struct {
	logger *logrus.Entry
}

func NewLogSender(logger *logrus.Entry) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg domainMail.Message) error {
	if msg.To == "" {
		return ErrEmptyRecipient
	}
	s.logger.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("Email not delivered (log driver)")
	s.logger.Debug(msg.Body)
	return nil
}
