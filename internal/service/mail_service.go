package service

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/brijnamkeen/store_api/internal/config"
)

// contactSubjects maps the contact-form subject codes to display labels.
var contactSubjects = map[string]string{
	"general":  "General Inquiry",
	"order":    "Order Request",
	"bulk":     "Bulk Order Inquiry",
	"feedback": "Feedback",
	"other":    "Other",
}

// ValidContactSubject reports whether s is an accepted subject code.
func ValidContactSubject(s string) bool {
	_, ok := contactSubjects[s]
	return ok
}

// ContactMessage is a validated contact-form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// MailService sends owner notifications over SMTP. When the SMTP config is
// incomplete, sending is disabled and Send calls are no-ops.
type MailService struct {
	cfg config.SMTPConfig
}

// NewMailService constructs a MailService.
func NewMailService(cfg config.SMTPConfig) *MailService {
	if cfg.Host == "" || cfg.User == "" || cfg.Password == "" {
		log.Warn().Msg("SMTP configuration incomplete, email notifications disabled")
	}
	return &MailService{cfg: cfg}
}

// Enabled reports whether the service has a usable SMTP configuration.
func (s *MailService) Enabled() bool {
	return s.cfg.Host != "" && s.cfg.User != "" && s.cfg.Password != ""
}

// SendContactNotification mails a contact-form submission to the owner.
// Callers treat failures as non-fatal; the form submission still succeeds.
func (s *MailService) SendContactNotification(msg *ContactMessage) error {
	if !s.Enabled() {
		log.Debug().Msg("email not configured, skipping contact notification")
		return nil
	}

	phone := msg.Phone
	if phone == "" {
		phone = "Not provided"
	}
	label := contactSubjects[msg.Subject]
	if label == "" {
		label = msg.Subject
	}

	subject := fmt.Sprintf("Contact Form: %s - from %s", label, msg.Name)
	body := fmt.Sprintf(`<h2>New contact form submission</h2>
<table>
<tr><td><strong>Name</strong></td><td>%s</td></tr>
<tr><td><strong>Email</strong></td><td>%s</td></tr>
<tr><td><strong>Phone</strong></td><td>%s</td></tr>
<tr><td><strong>Subject</strong></td><td>%s</td></tr>
</table>
<h3>Message</h3>
<p>%s</p>`,
		htmlEscape(msg.Name), htmlEscape(msg.Email), htmlEscape(phone),
		htmlEscape(label), htmlEscape(msg.Message))

	return s.send(s.cfg.OwnerEmail, subject, body)
}

// send delivers a single HTML email via SMTP with PLAIN auth.
func (s *MailService) send(to, subject, bodyHTML string) error {
	from := s.cfg.User
	headers := strings.Join([]string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="utf-8"`,
	}, "\r\n")
	payload := []byte(headers + "\r\n\r\n" + bodyHTML)

	addr := s.cfg.Host + ":" + s.cfg.Port
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	if err := smtp.SendMail(addr, auth, from, []string{to}, payload); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// htmlEscape neutralizes user input embedded in the notification body.
func htmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}
