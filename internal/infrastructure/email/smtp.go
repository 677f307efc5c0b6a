package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for ticket links (e.g., "http://localhost:8081")
}

// Notifier sends ticket lifecycle notifications. The no-op implementation
// is used when email is disabled in configuration.
type Notifier interface {
	SendTicketCreatedEmail(to, ticketNumber, title string) error
	SendTicketAssignedEmail(to, ticketNumber, title string) error
	SendCommentAddedEmail(to, ticketNumber, authorName string) error
	SendTicketResolvedEmail(to, ticketNumber, title string) error
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

var _ Notifier = (*SMTPEmailService)(nil)

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

func (s *SMTPEmailService) ticketURL(ticketNumber string) string {
	return fmt.Sprintf("%s/tickets/%s", s.config.BaseURL, ticketNumber)
}

func (s *SMTPEmailService) SendTicketCreatedEmail(to, ticketNumber, title string) error {
	url := s.ticketURL(ticketNumber)

	subject := fmt.Sprintf("[%s] Ticket received: %s", ticketNumber, title)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>We received your ticket</h2>
			<p>Your ticket <strong>%s</strong> has been created:</p>
			<p>%s</p>
			<p><a href="%s">View ticket</a></p>
			<p>A support agent will follow up shortly. Replies to the ticket will appear on this page.</p>
		</body>
		</html>
	`, ticketNumber, title, url)

	plainBody := fmt.Sprintf(`
We received your ticket

Your ticket %s has been created:
%s

View it at:
%s

A support agent will follow up shortly.
	`, ticketNumber, title, url)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendTicketAssignedEmail(to, ticketNumber, title string) error {
	url := s.ticketURL(ticketNumber)

	subject := fmt.Sprintf("[%s] Ticket assigned to you", ticketNumber)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Ticket assigned</h2>
			<p>Ticket <strong>%s</strong> has been assigned to you:</p>
			<p>%s</p>
			<p><a href="%s">Open ticket</a></p>
		</body>
		</html>
	`, ticketNumber, title, url)

	plainBody := fmt.Sprintf(`
Ticket assigned

Ticket %s has been assigned to you:
%s

Open it at:
%s
	`, ticketNumber, title, url)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendCommentAddedEmail(to, ticketNumber, authorName string) error {
	url := s.ticketURL(ticketNumber)

	subject := fmt.Sprintf("[%s] New comment from %s", ticketNumber, authorName)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>New comment</h2>
			<p>%s commented on ticket <strong>%s</strong>.</p>
			<p><a href="%s">Read the comment</a></p>
		</body>
		</html>
	`, authorName, ticketNumber, url)

	plainBody := fmt.Sprintf(`
New comment

%s commented on ticket %s.

Read it at:
%s
	`, authorName, ticketNumber, url)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendTicketResolvedEmail(to, ticketNumber, title string) error {
	url := s.ticketURL(ticketNumber)

	subject := fmt.Sprintf("[%s] Ticket resolved", ticketNumber)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Ticket resolved</h2>
			<p>Your ticket <strong>%s</strong> has been resolved:</p>
			<p>%s</p>
			<p><a href="%s">View resolution</a></p>
			<p>If the issue is not fixed, reply on the ticket to reopen it.</p>
		</body>
		</html>
	`, ticketNumber, title, url)

	plainBody := fmt.Sprintf(`
Ticket resolved

Your ticket %s has been resolved:
%s

View it at:
%s

If the issue is not fixed, reply on the ticket to reopen it.
	`, ticketNumber, title, url)

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

// NoopNotifier drops every notification. Used when email is disabled.
type NoopNotifier struct{}

var _ Notifier = (*NoopNotifier)(nil)

func (NoopNotifier) SendTicketCreatedEmail(string, string, string) error  { return nil }
func (NoopNotifier) SendTicketAssignedEmail(string, string, string) error { return nil }
func (NoopNotifier) SendCommentAddedEmail(string, string, string) error   { return nil }
func (NoopNotifier) SendTicketResolvedEmail(string, string, string) error { return nil }
