package mailer

import (
	"fmt"
	"html"

	"ai-mediagen-be/internal/entity"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendNotification(toEmail string, notification *entity.Notification) error
}

// sender is the part of *gomail.Dialer the service uses.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	dialer      sender
	senderEmail string
	senderName  string
	appBaseURL  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName, appBaseURL string) IEmailService {
	return newEmailService(gomail.NewDialer(host, port, username, password), senderEmail, senderName, appBaseURL)
}

func newEmailService(dialer sender, senderEmail, senderName, appBaseURL string) *emailService {
	return &emailService{
		dialer:      dialer,
		senderEmail: senderEmail,
		senderName:  senderName,
		appBaseURL:  appBaseURL,
	}
}

func (s *emailService) SendNotification(toEmail string, notification *entity.Notification) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", notification.Title)

	m.SetBody("text/html", s.renderBody(notification))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send notification mail to %s: %w", toEmail, err)
	}
	return nil
}

func (s *emailService) renderBody(notification *entity.Notification) string {
	link := ""
	if url, ok := notification.Metadata["url"].(string); ok && url != "" {
		link = fmt.Sprintf(`<p><a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open</a></p>`, html.EscapeString(url))
	}

	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<p>%s</p>
			%s
			<p style="font-size: 12px; color: #888;">You can find all your generations at %s</p>
		</div>
	`, html.EscapeString(notification.Title), html.EscapeString(notification.Message), link, html.EscapeString(s.appBaseURL))
}
