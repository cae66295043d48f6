// Package notify renders and sends the due-reminder e-mail through SES.
package notify

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"text/template"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/sidathasiri/medical-convo-summarizer/pkg/reminder"
)

const subject = "📅 CuddleScribe Reminder"

// SESAPI defines the interface for SES operations
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Mailer sends reminder notifications. Send failures propagate so the fire
// invocation fails and the scheduler's retry policy re-delivers.
type Mailer struct {
	client SESAPI
	sender string
}

// New creates a mailer sending from the given verified address.
func New(cfg aws.Config, sender string) *Mailer {
	return &Mailer{client: ses.NewFromConfig(cfg), sender: sender}
}

// NewWithClient creates a mailer with an explicit client, for tests.
func NewWithClient(client SESAPI, sender string) *Mailer {
	return &Mailer{client: client, sender: sender}
}

type emailData struct {
	Description string
	DueAt       string
	Year        int
}

var textBody = template.Must(template.New("text").Parse(`Hello from CuddleScribe!

Here's your friendly reminder about: {{.Description}}

This was scheduled for: {{.DueAt}}

We hope this reminder helps you stay on top of your healthcare journey!

Best regards,
Your CuddleScribe Team
`))

var htmlBody = htmltemplate.Must(htmltemplate.New("html").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: 'Helvetica Neue', Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { text-align: center; margin-bottom: 30px; }
      .logo { font-size: 24px; color: #4a90e2; font-weight: bold; margin-bottom: 10px; }
      .reminder-box { background-color: #f8f9fa; border-left: 4px solid #4a90e2; padding: 20px; margin: 20px 0; border-radius: 4px; }
      .footer { text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #666; }
    </style>
  </head>
  <body>
    <div class="header">
      <div class="logo">CuddleScribe</div>
      <div>Your Trusted Health Companion</div>
    </div>
    <div class="reminder-box">
      <h2>👋 Hello!</h2>
      <p style="font-size: 16px;">Here's your friendly reminder about:</p>
      <p style="font-size: 18px; color: #4a90e2; margin: 15px 0;">{{.Description}}</p>
      <p style="font-size: 14px; color: #666;">This was scheduled for: {{.DueAt}}</p>
      <p style="font-size: 14px; margin-top: 15px;">We hope this reminder helps you stay on top of your healthcare journey!</p>
    </div>
    <div class="footer">
      <p>This reminder was sent by CuddleScribe - Making healthcare management easier.</p>
      <p>© {{.Year}} CuddleScribe. All rights reserved.</p>
    </div>
  </body>
</html>
`))

// formatDueAt presents the due time in the offset the user supplied in the
// original request; a value that does not parse is shown verbatim.
func formatDueAt(dateTime string) string {
	t, err := time.Parse(time.RFC3339, dateTime)
	if err != nil {
		return dateTime
	}
	return t.Format("Monday, 2 January 2006 at 3:04 PM MST")
}

// Send renders the reminder message and delivers it to the recipient.
func (m *Mailer) Send(ctx context.Context, recipient, description, dateTime string) error {
	data := emailData{
		Description: description,
		DueAt:       formatDueAt(dateTime),
		Year:        time.Now().Year(),
	}

	var text, html bytes.Buffer
	if err := textBody.Execute(&text, data); err != nil {
		return fmt.Errorf("%w: render text body: %v", reminder.ErrDispatch, err)
	}
	if err := htmlBody.Execute(&html, data); err != nil {
		return fmt.Errorf("%w: render html body: %v", reminder.ErrDispatch, err)
	}

	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(m.sender),
		Destination: &sestypes.Destination{
			ToAddresses: []string{recipient},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(text.String())},
				Html: &sestypes.Content{Data: aws.String(html.String())},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: send to %s: %v", reminder.ErrDispatch, recipient, err)
	}

	return nil
}
