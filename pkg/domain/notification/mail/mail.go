package mail

import (
	"context"
	"fmt"
	"html"
	"strings"

	gomail "github.com/wneessen/go-mail"

	"github.com/sklowrylaw/website/pkg/domain/consultation"
	"github.com/sklowrylaw/website/pkg/domain/notification"
)

// Config is the SMTP side of the server configuration.
type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// From is the envelope sender of notification mails.
	From string `yaml:"from"`

	// To receives intake notifications; Cc optionally keeps the
	// attorney's own mailbox in the loop.
	To string `yaml:"to"`
	Cc string `yaml:"cc"`

	// FirmName appears in subjects and the mail footer.
	FirmName string `yaml:"firmName"`
}

type mailer struct {
	conf Config
}

// New builds a Notifier sending consultation notifications over SMTP.
func New(conf Config) notification.Interface {
	return &mailer{conf: conf}
}

func (m *mailer) NotifyConsultation(ctx context.Context, rec consultation.Record) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.conf.From); err != nil {
		return err
	}
	if err := msg.To(m.conf.To); err != nil {
		return err
	}
	if m.conf.Cc != "" {
		if err := msg.Cc(m.conf.Cc); err != nil {
			return err
		}
	}

	formType := notification.FormTypeDescription(rec.LegalService)
	msg.Subject(fmt.Sprintf("New %s Request - %s", formType, m.conf.FirmName))
	msg.SetBodyString(gomail.TypeTextHTML, Body(rec, formType, m.conf.FirmName))

	client, err := gomail.NewClient(
		m.conf.Host,
		gomail.WithPort(m.conf.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.conf.Username),
		gomail.WithPassword(m.conf.Password),
	)
	if err != nil {
		return err
	}

	return client.DialAndSendWithContext(ctx, msg)
}

// Body renders the notification HTML for one consultation request.
func Body(rec consultation.Record, formType string, firmName string) string {
	phone := "Not provided"
	if rec.Phone != nil {
		phone = *rec.Phone
	}
	service := rec.LegalService
	if service == "" {
		service = "Not specified"
	}
	message := rec.Message
	if message == "" {
		message = "No details provided"
	}

	b := &strings.Builder{}
	fmt.Fprintf(b, `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	fmt.Fprintf(b, `<h2>New %s Request</h2>`, html.EscapeString(formType))

	fmt.Fprintf(b, `<h3>Client Information</h3>`)
	fmt.Fprintf(b, `<p><strong>Name:</strong> %s</p>`, html.EscapeString(rec.Name))
	fmt.Fprintf(b, `<p><strong>Email:</strong> %s</p>`, html.EscapeString(rec.Email))
	fmt.Fprintf(b, `<p><strong>Phone:</strong> %s</p>`, html.EscapeString(phone))
	fmt.Fprintf(b, `<p><strong>Service Type:</strong> %s</p>`, html.EscapeString(service))

	fmt.Fprintf(b, `<h3>Message Details</h3>`)
	fmt.Fprintf(
		b, `<div style="line-height: 1.6;">%s</div>`,
		strings.ReplaceAll(html.EscapeString(message), "\n", "<br>"),
	)

	fmt.Fprintf(
		b, `<p><strong>Submitted:</strong> %s</p>`,
		rec.CreatedAt.Format("Jan 2, 2006 3:04 PM MST"),
	)
	fmt.Fprintf(b, `<p>Please review this request and contact the client directly.</p>`)
	fmt.Fprintf(
		b, `<p style="font-size: 12px;">This is an automated notification from the %s website consultation system.</p>`,
		html.EscapeString(firmName),
	)
	fmt.Fprintf(b, `</div>`)
	return b.String()
}
