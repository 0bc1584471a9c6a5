package service

import (
	"context"
	"fmt"
	"time"

	"carpool-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	disabled  bool
}

func NewEmailService(apiKey, fromEmail, fromName string, disabled bool) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		disabled:  disabled,
	}
}

func (s *emailService) send(to, subject, body string) error {
	if s.disabled {
		logger.Debug("Email disabled, skipping send", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendSeatRequestNotification(ctx context.Context, ownerEmail, requesterName, origin, destination string) error {
	subject := "New seat request on your ride"
	body := fmt.Sprintf("%s requested a seat on your ride from %s to %s.\n\nOpen the app to accept or decline the request.", requesterName, origin, destination)
	return s.send(ownerEmail, subject, body)
}

func (s *emailService) SendRequestAcceptedNotification(ctx context.Context, requesterEmail, ownerName, origin, destination string, departure time.Time) error {
	subject := "Your seat request was accepted"
	body := fmt.Sprintf("%s accepted your seat request for the ride from %s to %s, departing %s.", ownerName, origin, destination, departure.Format("Mon, 02 Jan 2006 15:04"))
	return s.send(requesterEmail, subject, body)
}

func (s *emailService) SendRequestDeclinedNotification(ctx context.Context, requesterEmail, origin, destination string) error {
	subject := "Your seat request was declined"
	body := fmt.Sprintf("Your seat request for the ride from %s to %s was declined. Search for other rides on the board.", origin, destination)
	return s.send(requesterEmail, subject, body)
}

func (s *emailService) SendRideCancelledNotification(ctx context.Context, requesterEmail, origin, destination string, departure time.Time) error {
	subject := "A ride you requested was cancelled"
	body := fmt.Sprintf("The ride from %s to %s departing %s was cancelled by its owner. Your seat request was declined automatically.", origin, destination, departure.Format("Mon, 02 Jan 2006 15:04"))
	return s.send(requesterEmail, subject, body)
}

func (s *emailService) SendDepartureReminder(ctx context.Context, memberEmail, origin, destination string, departure time.Time) error {
	subject := "Ride reminder"
	body := fmt.Sprintf("Reminder: your ride from %s to %s departs %s.", origin, destination, departure.Format("Mon, 02 Jan 2006 15:04"))
	return s.send(memberEmail, subject, body)
}
