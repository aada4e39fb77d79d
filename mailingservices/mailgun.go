package mailingservices

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

type Mailgun struct {
	Client *mailgun.MailgunImpl
}

func (m *Mailgun) Init() {
	domain := os.Getenv("EARNBYAPPS_MG_DOMAIN")
	apiKey := os.Getenv("EARNBYAPPS_MG_API_KEY")
	if domain == "" || apiKey == "" {
		log.Println("mailgun credentials not set, outgoing mail disabled")
		return
	}
	m.Client = mailgun.NewMailgun(domain, apiKey)
}

func (m *Mailgun) sender() string {
	from := os.Getenv("EARNBYAPPS_EMAIL_FROM")
	if from == "" {
		from = "EarnByApps <no-reply@earnbyapps.in>"
	}
	return from
}

// SendWelcomeMessage mails a signup greeting. Failures are the caller's to
// log; signup never fails because of mail.
func (m *Mailgun) SendWelcomeMessage(recipient string, subject string) (string, error) {
	if m.Client == nil {
		return "", fmt.Errorf("mail service not configured")
	}
	body := "Welcome to EarnByApps! Browse tasks, complete them and watch your wallet grow."
	message := m.Client.NewMessage(m.sender(), subject, body, recipient)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	resp, _, err := m.Client.Send(ctx, message)
	return resp, err
}

// SendResetPassword mails the password reset link.
func (m *Mailgun) SendResetPassword(recipient string, resetLink string) (string, error) {
	if m.Client == nil {
		return "", fmt.Errorf("mail service not configured")
	}
	body := fmt.Sprintf("We received a request to reset your password.\n\nReset it here: %s\n\nThe link expires in 30 minutes. If you didn't ask for this, ignore this mail.", resetLink)
	message := m.Client.NewMessage(m.sender(), "Reset your EarnByApps password", body, recipient)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	resp, _, err := m.Client.Send(ctx, message)
	return resp, err
}
