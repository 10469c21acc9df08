package notify

import (
	"context"
	"fmt"

	"github.com/jakechorley/volunteer-matching/pkg/db"
)

const emailSubject = "Volunteer match update"

// Mailer sends a plain text email
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// EmailSender delivers notifications by email to the volunteer's registered address
type EmailSender struct {
	volunteers db.VolunteerStore
	mailer     Mailer
}

func NewEmailSender(volunteers db.VolunteerStore, mailer Mailer) *EmailSender {
	return &EmailSender{volunteers: volunteers, mailer: mailer}
}

func (s *EmailSender) Send(ctx context.Context, volunteerID, message string) error {
	volunteer, err := s.volunteers.GetVolunteer(ctx, volunteerID)
	if err != nil {
		return fmt.Errorf("failed to look up volunteer %s: %w", volunteerID, err)
	}
	if volunteer.Email == "" {
		return fmt.Errorf("volunteer %s has no email address", volunteerID)
	}

	body := fmt.Sprintf("Hi %s,\r\n\r\n%s.\r\n", volunteer.Name, message)
	if err := s.mailer.SendEmail(ctx, volunteer.Email, emailSubject, body); err != nil {
		return fmt.Errorf("failed to email volunteer %s: %w", volunteerID, err)
	}
	return nil
}
