package email

import (
	"context"
	"fmt"

	"confcentral/internal/domain"
)

type emailService struct {
	mailer domain.Mailer
}

// NewEmailService returns an EmailService that renders and sends
// conference-related emails through the given mailer.
func NewEmailService(mailer domain.Mailer) domain.EmailService {
	return &emailService{mailer: mailer}
}

func (s *emailService) SendConferenceConfirmation(ctx context.Context, data *domain.ConferenceConfirmationEmailData) error {
	subject := "You created a new conference!"
	text := fmt.Sprintf("Hi, you have created the following conference:\n\n%s", data.ConferenceName)
	html := fmt.Sprintf(
		"<p>Hi, you have created the following conference:</p><p><strong>%s</strong></p>",
		data.ConferenceName,
	)
	if err := s.mailer.Send(data.Email, subject, html, text); err != nil {
		return fmt.Errorf("send conference confirmation: %w", err)
	}
	return nil
}
