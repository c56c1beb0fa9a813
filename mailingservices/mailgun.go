package mailingservices

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/haulmatch/loadboard/config"
	"github.com/mailgun/mailgun-go/v4"
)

// Mailgun sends transactional mail. When no API key is configured the
// client stays nil and every send is a logged no-op, so local setups
// run without mail.
type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

func (m *Mailgun) Init(c *config.Config) {
	if c.MailgunApiKey == "" || c.MgDomain == "" {
		log.Println("mailgun not configured, mail disabled")
		return
	}
	m.Client = mailgun.NewMailgun(c.MgDomain, c.MailgunApiKey)
	m.From = c.MgEmailFrom
}

func (m *Mailgun) send(toEmail, subject, body string) error {
	if m.Client == nil {
		log.Printf("mail disabled, skipping %q to %s", subject, toEmail)
		return nil
	}

	message := m.Client.NewMessage(m.From, subject, body, toEmail)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	_, _, err := m.Client.Send(ctx, message)
	return err
}

// SendAccountApproved notifies a user their account passed admin review.
func (m *Mailgun) SendAccountApproved(toEmail, fullname string) error {
	subject := "Your load board account has been approved"
	body := fmt.Sprintf("Hi %s,\n\nYour account has been approved. You can now post on the board.\n", fullname)
	return m.send(toEmail, subject, body)
}

// SendApplicationDecision notifies a driver their application was
// accepted or rejected.
func (m *Mailgun) SendApplicationDecision(toEmail, driverName, origin, destination, status string) error {
	subject := fmt.Sprintf("Your application was %s", status)
	body := fmt.Sprintf("Hi %s,\n\nYour application for the load %s -> %s was %s.\n",
		driverName, origin, destination, status)
	return m.send(toEmail, subject, body)
}
