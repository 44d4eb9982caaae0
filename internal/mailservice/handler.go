package mailservice

import (
	"log/slog"
)

func NewMailService(host, username, password, sender string, port int, logger *slog.Logger) *MailService {
	return &MailService{
		m:      NewMailer(host, port, username, password, sender, NewTemplate()),
		logger: logger,
	}
}

// SendWelcomeEmail sends the post-registration welcome mail. Sending is
// best-effort: a failure is logged and must not fail the registration.
func (s *MailService) SendWelcomeEmail(email, firstName string) {
	payload := struct {
		FirstName string
	}{
		FirstName: firstName,
	}

	err := s.m.send(email, payload, "welcome_email.html")
	if err != nil {
		s.logger.Error("could not send welcome email", slog.String("email", email), slog.String("error", err.Error()))
		return
	}

	s.logger.Info("welcome email sent", slog.String("email", email))
}
