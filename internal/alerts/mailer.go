package alerts

import (
	"fmt"
	"net/smtp"
	"strings"
)

type Config struct {
	From         string
	To           string
	SMTPServer   string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	AuthDisabled bool
	Immediate    bool
}

type Mailer interface {
	Send(subject, contentType, body string) error
}

type SMTPMailer struct {
	cfg Config
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(subject, contentType, body string) error {
	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + m.cfg.To,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: " + contentType + "; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", m.cfg.SMTPServer, m.cfg.SMTPPort)
	var auth smtp.Auth
	if !m.cfg.AuthDisabled {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPServer)
	}

	return smtp.SendMail(addr, auth, m.cfg.From, []string{m.cfg.To}, []byte(msg))
}
