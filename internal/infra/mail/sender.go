package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"
)

//go:embed templates/outreach.html
var templatesFS embed.FS

var outreachTmpl = template.Must(template.ParseFS(templatesFS, "templates/outreach.html"))

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// SendOutreach sends a rendered template as plain text with an HTML
// alternative.
func (s *EmailSender) SendOutreach(to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("missing recipient")
	}

	m, err := s.buildMessage(to, subject, body)
	if err != nil {
		return err
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) buildMessage(to, subject, body string) (*gomail.Message, error) {
	var html bytes.Buffer
	data := outreachEmailData{Subject: subject, Paragraphs: paragraphs(body)}
	if err := outreachTmpl.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.AddAlternative("text/html", html.String())
	return m, nil
}

func paragraphs(body string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
