package deliver

import (
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/google/uuid"

	"coldreach/internal/config"
	"coldreach/internal/email"
	"coldreach/internal/prospect"
)

// Mailer submits generated emails through a plain SMTP submission
// endpoint. Credentials are optional for relays that trust the host.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewMailer(cfg *config.Config) (*Mailer, error) {
	if cfg.SMTP.Host == "" || cfg.SMTP.From == "" {
		return nil, errors.New("smtp is not configured: set smtp host and from address")
	}
	if _, err := mail.ParseAddress(cfg.SMTP.From); err != nil {
		return nil, fmt.Errorf("invalid smtp from address %q: %w", cfg.SMTP.From, err)
	}
	return &Mailer{
		host:     cfg.SMTP.Host,
		port:     cfg.SMTP.Port,
		username: cfg.SMTP.Username,
		password: cfg.SMTP.Password,
		from:     cfg.SMTP.From,
	}, nil
}

// Send delivers the email to the prospect's address.
func (m *Mailer) Send(p *prospect.Prospect, e *email.Email) error {
	if p.Email == "" {
		return errors.New("prospect has no email address")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", p.Email, err)
	}

	msg := m.buildMessage(p.Email, e)

	var auth sasl.Client
	if m.username != "" {
		auth = sasl.NewPlainClient("", m.username, m.password)
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.from, []string{p.Email}, strings.NewReader(msg)); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	log.Printf("[Deliver] ✓ sent %q to %s via %s", e.Subject, p.Email, addr)
	return nil
}

func (m *Mailer) buildMessage(to string, e *email.Email) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", e.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s@%s>\r\n", uuid.New().String(), m.host)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(e.Body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return b.String()
}
