package mailer

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/cvan-em/artsnetwork/internal/config"
	"github.com/cvan-em/artsnetwork/internal/logger"
)

// SMTPSender delivers mail through the configured relay. Port 465 means
// implicit TLS; anything else upgrades via STARTTLS.
type SMTPSender struct {
	config *config.Smtp
	auth   smtp.Auth
}

func NewSMTPSender(cfg *config.Smtp) *SMTPSender {
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Server)
	return &SMTPSender{
		config: cfg,
		auth:   auth,
	}
}

func (s *SMTPSender) Send(fromName, fromEmail, recipient, subject, htmlBody string) error {
	msg := s.buildMessage(fromName, fromEmail, recipient, subject, htmlBody)
	address := fmt.Sprintf("%s:%d", s.config.Server, s.config.Port)

	if s.config.Port == 465 {
		return s.sendImplicitTLS(address, fromEmail, recipient, msg)
	}
	return s.sendSTARTTLS(address, fromEmail, recipient, msg)
}

func (s *SMTPSender) timeout() time.Duration {
	timeout := time.Duration(s.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return timeout
}

func (s *SMTPSender) sendImplicitTLS(address, fromEmail, recipient string, msg []byte) error {
	tlsConfig := &tls.Config{ServerName: s.config.Server}

	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: s.timeout()}, "tcp", address, tlsConfig)
	if err != nil {
		logger.Log.Error("failed to connect to SMTP server (implicit TLS)", "address", address, "error", err)
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Server)
	if err != nil {
		logger.Log.Error("failed to create SMTP client", "error", err)
		return err
	}
	defer client.Close()

	return s.sendViaClient(client, fromEmail, recipient, msg)
}

func (s *SMTPSender) sendSTARTTLS(address, fromEmail, recipient string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", address, s.timeout())
	if err != nil {
		logger.Log.Error("failed to connect to SMTP server", "address", address, "error", err)
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Server)
	if err != nil {
		logger.Log.Error("failed to create SMTP client", "error", err)
		return err
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: s.config.Server}
	if err = client.StartTLS(tlsConfig); err != nil {
		logger.Log.Error("failed to start TLS", "error", err)
		return err
	}

	return s.sendViaClient(client, fromEmail, recipient, msg)
}

func (s *SMTPSender) sendViaClient(client *smtp.Client, fromEmail, recipient string, msg []byte) error {
	if err := client.Auth(s.auth); err != nil {
		logger.Log.Error("SMTP authentication failed", "error", err)
		return err
	}

	if err := client.Mail(fromEmail); err != nil {
		logger.Log.Error("failed to set sender", "error", err)
		return err
	}

	if err := client.Rcpt(recipient); err != nil {
		logger.Log.Error("failed to set recipient", "recipient", recipient, "error", err)
		return err
	}

	w, err := client.Data()
	if err != nil {
		logger.Log.Error("failed to get data writer", "error", err)
		return err
	}

	if _, err = w.Write(msg); err != nil {
		logger.Log.Error("failed to write message", "error", err)
		return err
	}

	if err = w.Close(); err != nil {
		logger.Log.Error("failed to close data writer", "error", err)
		return err
	}

	return client.Quit()
}

func (s *SMTPSender) buildMessage(fromName, fromEmail, recipient, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", fromName), fromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&b, "Message-ID: %s\r\n", generateMessageID(domainOf(fromEmail)))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

func generateMessageID(domain string) string {
	return fmt.Sprintf("<%d.%d@%s>", time.Now().UnixNano(), rand.Int63(), domain)
}

func domainOf(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 {
		return email[i+1:]
	}
	return "localhost"
}
