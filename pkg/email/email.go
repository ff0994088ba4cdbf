package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// IsConfigured reports whether SMTP delivery is set up. Confirmation mail is
// best effort and skipped entirely when it is not.
func (s *EmailService) IsConfigured() bool {
	return s.config.SMTPHost != "" && s.config.FromEmail != ""
}

// ReservationDetails carries the fields rendered into a confirmation email.
type ReservationDetails struct {
	GuestName       string
	RestaurantName  string
	TableNumber     int
	PartySize       int
	ReservationTime time.Time
}

var reservationTemplate = template.Must(template.New("reservation").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Reservation confirmed</h2>
	<p>Hi {{.GuestName}},</p>
	<p>Your table at {{.RestaurantName}} is booked.</p>
	<ul>
		<li>Date: {{.ReservationTime.Format "Monday, 2 January 2006"}}</li>
		<li>Time: {{.ReservationTime.Format "15:04"}}</li>
		<li>Table: {{.TableNumber}}</li>
		<li>Party size: {{.PartySize}}</li>
	</ul>
	<p>See you soon!</p>
</body>
</html>
`))

// SendReservationConfirmation sends a confirmation email for an assigned reservation.
func (s *EmailService) SendReservationConfirmation(toEmail string, details ReservationDetails) error {
	var body bytes.Buffer
	if err := reservationTemplate.Execute(&body, details); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Reservation confirmed - %s", details.RestaurantName)
	message := s.buildHTMLEmail(toEmail, subject, body.String())

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail assembles the MIME headers and HTML body
func (s *EmailService) buildHTMLEmail(to, subject, htmlContent string) []byte {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlContent)
	return msg.Bytes()
}
