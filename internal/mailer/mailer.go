package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends transactional mail over SMTP. Delivery is best-effort: the
// caller dispatches in a goroutine and only logs failures.
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// New returns nil when no SMTP host is configured; a nil mailer drops every
// message.
func New(host, port, username, password, from string) *Mailer {
	if host == "" {
		return nil
	}
	return &Mailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
	}
}

func (m *Mailer) SendWelcome(to, username string) error {
	if m == nil {
		return nil
	}

	subject := "Welcome to InventoryPro!"
	body := fmt.Sprintf("Hi %s,\r\n\r\nYour account is ready. Happy stocking!\r\n", username)
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	var msg strings.Builder
	msg.WriteString("From: " + m.From + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := m.Host + ":" + m.Port
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	if err := smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
