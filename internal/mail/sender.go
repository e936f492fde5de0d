package mail

import "log/slog"

type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}

type MailSender interface {
	Send(message *Message) error
}

// LogMailSender writes messages to the log instead of delivering them.
type LogMailSender struct{}

func (s *LogMailSender) Send(message *Message) error {
	slog.Info("Mail not delivered, no SMTP server configured", "to", message.To, "subject", message.Subject)
	slog.Debug("Mail body", "body", message.Body)
	return nil
}
