package mail

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGrid is the API-key-based transactional provider
type SendGrid struct {
	client *sendgrid.Client
}

// NewSendGrid creates a SendGrid sender from an API key
func NewSendGrid(apiKey string) *SendGrid {
	return &SendGrid{
		client: sendgrid.NewSendClient(apiKey),
	}
}

// Send delivers the message through the SendGrid v3 mail API. A non-2xx
// API response is a send error.
func (s *SendGrid) Send(ctx context.Context, msg *Message) error {
	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail("", msg.From))
	m.Subject = msg.Subject

	p := sgmail.NewPersonalization()
	for _, addr := range msg.To {
		p.AddTos(sgmail.NewEmail("", addr))
	}
	m.AddPersonalizations(p)

	m.AddContent(
		sgmail.NewContent("text/plain", msg.Text),
		sgmail.NewContent("text/html", msg.HTML),
	)

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return goerr.Wrap(err, "sendgrid request failed")
	}
	if resp.StatusCode >= 300 {
		return goerr.New("sendgrid rejected message",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", resp.Body),
		)
	}

	return nil
}
