package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"
)

// Dialer sends composed messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPConfig holds the mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTP sends notifications through an SMTP server.
type SMTP struct {
	dialer Dialer
	from   string
	event  string
}

// NewSMTP creates an SMTP notifier for cfg.
func NewSMTP(cfg SMTPConfig, event string) *SMTP {
	return NewSMTPWithDialer(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From, event)
}

// NewSMTPWithDialer creates an SMTP notifier sending through d.
func NewSMTPWithDialer(d Dialer, from, event string) *SMTP {
	return &SMTP{dialer: d, from: from, event: event}
}

var connectionTemplate = template.Must(template.New("connection").Parse(`<h2>Someone wants to team up with you!</h2>
<p>Hello {{.ToName}},</p>
<p><strong>{{.From.Name}}</strong> is interested in teaming up with you for {{.Event}}.</p>
<h3>Their details</h3>
<ul>
  <li><strong>Name:</strong> {{.From.Name}}</li>
  <li><strong>Email:</strong> {{.From.Email}}</li>
  <li><strong>Department:</strong> {{or .From.Department "N/A"}}</li>
  <li><strong>Year:</strong> {{or .From.Year "N/A"}}</li>
  <li><strong>Phone:</strong> {{or .From.Phone "N/A"}}</li>
  {{- if .Skills}}
  <li><strong>Skills:</strong> {{.Skills}}</li>
  {{- end}}
</ul>
<p>If you are interested, reach out to them directly using the contact information above.</p>
<p>Teams need exactly 6 members with at least 1 female member.</p>
<hr>
<p><em>This is an automated message from the {{.Event}} team discovery system.</em></p>
`))

// send returns when the message is delivered or ctx is done, whichever
// comes first. gomail has no context support, so a session abandoned on
// timeout finishes in its own goroutine and its result is dropped.
func (s *SMTP) send(ctx context.Context, m *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.SetHeader("From", s.from)

	result := make(chan error, 1)
	go func() { result <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-result:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send: %w", ctx.Err())
	}
}

// RegistrationConfirmed implements Notifier.
func (s *SMTP) RegistrationConfirmed(ctx context.Context, to, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("To", to)
	m.SetHeader("Subject", s.event+" - Registration Confirmed")
	m.SetBody("text/plain", fmt.Sprintf(`Hi %s,

Your registration for %s is confirmed.

We will share updates and announcements via email.
Thank you and good luck!

Organizing Team`, name, s.event))
	return s.send(ctx, m)
}

// ConnectionRequested implements Notifier.
func (s *SMTP) ConnectionRequested(ctx context.Context, to, toName string, from Profile) error {
	var body bytes.Buffer
	err := connectionTemplate.Execute(&body, map[string]interface{}{
		"ToName": toName,
		"From":   from,
		"Event":  s.event,
		"Skills": strings.Join(from.Skills, ", "),
	})
	if err != nil {
		return fmt.Errorf("render connection email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Team-up request from %s - %s", from.Name, s.event))
	m.SetBody("text/html", body.String())
	return s.send(ctx, m)
}

// Broadcast implements Notifier. Recipients are placed in Bcc.
func (s *SMTP) Broadcast(ctx context.Context, to []string, subject, message string) error {
	if len(to) == 0 {
		return nil
	}
	m := gomail.NewMessage()
	m.SetHeader("Bcc", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", message)
	return s.send(ctx, m)
}
