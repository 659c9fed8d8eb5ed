package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
	"shipstack.backend/pkg/logger"
)

// Mailer sends account notifications. Delivery is fire-and-forget:
// failures are logged and never propagated to the caller.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

var smtpSendMail = smtp.SendMail

// New creates a Mailer
func New(host string, port int, username, password, from string) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password, from: from}
}

// SendCredentials notifies a new client of their generated password
func (m *Mailer) SendCredentials(ctx context.Context, to, name, password string) {
	subject := "Your shipping account is ready"
	body := fmt.Sprintf("Hi %s,\r\n\r\nYour account has been created. Temporary password: %s\r\nPlease change it after your first login.\r\n", name, password)
	m.send(ctx, to, subject, body)
}

// SendOTP delivers a password-reset one-time code
func (m *Mailer) SendOTP(ctx context.Context, to, otp string) {
	subject := "Password reset code"
	body := fmt.Sprintf("Your password reset code is %s. It expires in 10 minutes.\r\n", otp)
	m.send(ctx, to, subject, body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) {
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body))
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtpSendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		logger.Warn(ctx, "mail delivery failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
