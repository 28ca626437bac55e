package mail

import (
	"fmt"
	"strings"
	"time"

	"github.com/osa911/contactrelay/internal/config"
	"github.com/osa911/contactrelay/internal/contact"

	"gopkg.in/gomail.v2"
)

var headerCleaner = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Compose renders a submission as the plain-text email sent to the inbox
func Compose(cfg config.SMTPConfig, sub contact.Submission, now time.Time) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", cfg.To)
	m.SetHeader("Reply-To", m.FormatAddress(sub.Email, headerCleaner.Replace(sub.Name)))
	m.SetHeader("Subject", headerCleaner.Replace(sub.MailSubject()))
	m.SetDateHeader("Date", now)
	m.SetBody("text/plain", Body(sub))
	return m
}

// Body is the fixed plain-text layout of a contact message
func Body(sub contact.Submission) string {
	return fmt.Sprintf(
		"Name: %s\n"+
			"Email: %s\n"+
			"Subject: %s\n\n"+
			"Message:\n%s\n",
		sub.Name,
		sub.Email,
		sub.Subject,
		sub.Message,
	)
}
