package deliver

import (
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-smtp"

	"coldreach/internal/config"
	"coldreach/internal/email"
	"coldreach/internal/prospect"
)

func testMailerConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SMTP.Host = "mail.example.com"
	cfg.SMTP.Port = 587
	cfg.SMTP.From = "sender@example.com"
	return cfg
}

func TestNewMailer_RequiresHostAndFrom(t *testing.T) {
	cfg := &config.Config{}
	if _, err := NewMailer(cfg); err == nil {
		t.Errorf("expected error for empty smtp config")
	}

	cfg.SMTP.Host = "mail.example.com"
	cfg.SMTP.From = "not-an-address"
	if _, err := NewMailer(cfg); err == nil {
		t.Errorf("expected error for invalid from address")
	}
}

func TestSend_InvalidRecipient(t *testing.T) {
	m, err := NewMailer(testMailerConfig())
	if err != nil {
		t.Fatalf("NewMailer: %v", err)
	}

	p := &prospect.Prospect{Name: "Jane", Company: "Acme", Email: "nope"}
	e := &email.Email{Subject: "s", Body: "b"}
	if err := m.Send(p, e); err == nil {
		t.Errorf("expected error for invalid recipient")
	}

	p.Email = ""
	if err := m.Send(p, e); err == nil {
		t.Errorf("expected error for missing recipient")
	}
}

func TestBuildMessage_Headers(t *testing.T) {
	m, err := NewMailer(testMailerConfig())
	if err != nil {
		t.Fatalf("NewMailer: %v", err)
	}

	e := &email.Email{Subject: "Quick question", Body: "Hi Jane,\nShort pitch."}
	msg := m.buildMessage("jane@acme.com", e)

	headerEnd := strings.Index(msg, "\r\n\r\n")
	if headerEnd < 0 {
		t.Fatalf("no blank line between headers and body:\n%s", msg)
	}
	headers := msg[:headerEnd]
	body := msg[headerEnd+4:]

	for _, want := range []string{
		"From: sender@example.com",
		"To: jane@acme.com",
		"Subject: Quick question",
		"Message-ID: <",
		"Content-Type: text/plain; charset=utf-8",
	} {
		if !strings.Contains(headers, want) {
			t.Errorf("headers missing %q:\n%s", want, headers)
		}
	}
	if !strings.Contains(headers, "@mail.example.com>") {
		t.Errorf("Message-ID not scoped to host:\n%s", headers)
	}
	if !strings.Contains(body, "Hi Jane,\r\nShort pitch.") {
		t.Errorf("body not CRLF-normalized:\n%q", body)
	}
}

// capture backend records the one message the test sends
type captureBackend struct {
	from string
	to   []string
	data []byte
}

func (b *captureBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &captureSession{backend: b}, nil
}

type captureSession struct {
	backend *captureBackend
}

func (s *captureSession) AuthPlain(username, password string) error { return nil }

func (s *captureSession) Mail(from string, opts *smtp.MailOptions) error {
	s.backend.from = from
	return nil
}

func (s *captureSession) Rcpt(to string, opts *smtp.RcptOptions) error {
	s.backend.to = append(s.backend.to, to)
	return nil
}

func (s *captureSession) Data(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.backend.data = data
	return nil
}

func (s *captureSession) Reset() {}

func (s *captureSession) Logout() error { return nil }

func TestSend_DeliversToLocalServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	backend := &captureBackend{}
	server := smtp.NewServer(backend)
	server.Domain = "localhost"
	server.ReadTimeout = 5 * time.Second
	server.WriteTimeout = 5 * time.Second
	go server.Serve(ln)
	defer server.Close()

	addr := ln.Addr().(*net.TCPAddr)
	cfg := &config.Config{}
	cfg.SMTP.Host = addr.IP.String()
	cfg.SMTP.Port = addr.Port
	cfg.SMTP.From = "sender@example.com"

	m, err := NewMailer(cfg)
	if err != nil {
		t.Fatalf("NewMailer: %v", err)
	}

	p := &prospect.Prospect{Name: "Jane", Company: "Acme", Email: "jane@acme.com"}
	e := &email.Email{Subject: "Quick question", Body: "Hi Jane,\nShort pitch."}
	if err := m.Send(p, e); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if backend.from != "sender@example.com" {
		t.Errorf("unexpected envelope from: %q", backend.from)
	}
	if len(backend.to) != 1 || backend.to[0] != "jane@acme.com" {
		t.Errorf("unexpected envelope to: %v", backend.to)
	}
	if !strings.Contains(string(backend.data), "Subject: Quick question") {
		t.Errorf("message data missing subject:\n%s", backend.data)
	}
}
