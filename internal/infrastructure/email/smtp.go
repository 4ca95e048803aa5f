package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Service is the notification surface the application layer depends on.
type Service interface {
	SendInviteEmail(to, orgName, role, token string, expiryHours int) error
	SendTicketAssignedEmail(to, ticketNumber, ticketTitle string) error
	SendSLAOverdueEmail(to, ticketNumber, ticketTitle string) error
}

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // base URL for links embedded in emails
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

// SendInviteEmail delivers the raw invite token. The token appears only in
// this email; the server keeps just its hash.
func (s *SMTPEmailService) SendInviteEmail(to, orgName, role, token string, expiryHours int) error {
	inviteURL := fmt.Sprintf("%s/invite?token=%s", s.config.BaseURL, token)

	subject := fmt.Sprintf("You've been invited to join %s", orgName)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>You're invited!</h2>
			<p>You have been invited to join <strong>%s</strong> as a %s.</p>
			<p><a href="%s">Accept Invitation</a></p>
			<p>Or copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>This invitation can be used once and expires in %d hours.</p>
			<p>If you weren't expecting this invitation, please ignore this email.</p>
		</body>
		</html>
	`, orgName, role, inviteURL, inviteURL, expiryHours)

	plainBody := fmt.Sprintf(`
You're invited!

You have been invited to join %s as a %s. Visit the following URL to accept:
%s

This invitation can be used once and expires in %d hours.

If you weren't expecting this invitation, please ignore this email.
	`, orgName, role, inviteURL, expiryHours)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendTicketAssignedEmail(to, ticketNumber, ticketTitle string) error {
	ticketURL := fmt.Sprintf("%s/tickets/%s", s.config.BaseURL, ticketNumber)

	subject := fmt.Sprintf("Ticket %s assigned to you", ticketNumber)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Ticket Assigned</h2>
			<p>Ticket <strong>%s</strong> has been assigned to you:</p>
			<p>%s</p>
			<p><a href="%s">View Ticket</a></p>
		</body>
		</html>
	`, ticketNumber, ticketTitle, ticketURL)

	plainBody := fmt.Sprintf(`
Ticket Assigned

Ticket %s has been assigned to you:
%s

View it at:
%s
	`, ticketNumber, ticketTitle, ticketURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendSLAOverdueEmail(to, ticketNumber, ticketTitle string) error {
	ticketURL := fmt.Sprintf("%s/tickets/%s", s.config.BaseURL, ticketNumber)

	subject := fmt.Sprintf("SLA breached on ticket %s", ticketNumber)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>SLA Breached</h2>
			<p>Ticket <strong>%s</strong> is past its SLA due time:</p>
			<p>%s</p>
			<p><a href="%s">View Ticket</a></p>
		</body>
		</html>
	`, ticketNumber, ticketTitle, ticketURL)

	plainBody := fmt.Sprintf(`
SLA Breached

Ticket %s is past its SLA due time:
%s

View it at:
%s
	`, ticketNumber, ticketTitle, ticketURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromAddress)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
