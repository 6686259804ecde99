// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/russross/blackfriday/v2"
	"gopkg.in/gomail.v2"
)

// ErrNotConfigured reports missing sender credentials. Surfaced before any
// network dial is attempted.
var ErrNotConfigured = errors.New("mail sender credentials not configured")

type IEmailService interface {
	SendSummary(toEmail, subject, markdownBody string) error
	SendSummaryFile(toEmail, subject, artifactPath string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	password    string
}

func NewEmailService(host string, port int, senderEmail, password string) IEmailService {
	d := gomail.NewDialer(host, port, senderEmail, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		password:    password,
	}
}

// SendSummaryFile reads the markdown artifact and delivers it.
func (s *emailService) SendSummaryFile(toEmail, subject, artifactPath string) error {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return fmt.Errorf("read summary artifact: %w", err)
	}
	return s.SendSummary(toEmail, subject, string(data))
}

// SendSummary delivers the report as a multipart email: plain markdown text
// plus a rendered HTML alternative.
func (s *emailService) SendSummary(toEmail, subject, markdownBody string) error {
	if s.senderEmail == "" || s.password == "" {
		return ErrNotConfigured
	}

	body := StripCodeFence(markdownBody)
	htmlBody := string(blackfriday.Run([]byte(body)))

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send summary to %s: %w", toEmail, err)
	}
	return nil
}

// StripCodeFence removes a single leading and single trailing code fence.
// The pipeline occasionally wraps the whole report in one.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		} else {
			return ""
		}
	}
	if strings.HasSuffix(s, "```") {
		if idx := strings.LastIndex(s, "\n"); idx >= 0 {
			s = s[:idx]
		} else {
			return ""
		}
	}
	return strings.TrimSpace(s)
}
