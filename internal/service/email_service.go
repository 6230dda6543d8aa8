package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/giftgalore/api/internal/config"
	"github.com/giftgalore/api/internal/constants"
	"github.com/giftgalore/api/internal/models"
)

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService builds an email service.
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// OrderStatusEmailInput describes one status notification.
type OrderStatusEmailInput struct {
	OrderNo       string
	Status        string
	StatusDisplay string
	Amount        models.Money
	Currency      string
	CustomerName  string
	Message       string
}

// SendOrderStatusEmail notifies the customer of a status change.
func (s *EmailService) SendOrderStatusEmail(toEmail string, input OrderStatusEmailInput) error {
	subject, body := buildOrderStatusContent(input)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendOrderPlacedEmail confirms a freshly placed order.
func (s *EmailService) SendOrderPlacedEmail(toEmail string, input OrderStatusEmailInput) error {
	subject := fmt.Sprintf("Order %s received", input.OrderNo)
	body := fmt.Sprintf("Hi %s,\n\nThanks for shopping with us. Your order %s has been received and is awaiting confirmation.\n\nOrder total: %s %s\n\nYou can follow its progress anytime using your order number.",
		fallbackName(input.CustomerName), input.OrderNo, input.Amount.String(), strings.TrimSpace(input.Currency))
	return s.sendTextEmail(toEmail, subject, body)
}

func buildOrderStatusContent(input OrderStatusEmailInput) (string, string) {
	statusLabel := strings.TrimSpace(input.StatusDisplay)
	if statusLabel == "" {
		statusLabel = input.Status
	}
	subject := fmt.Sprintf("Order %s is now %s", input.OrderNo, statusLabel)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nYour order %s has moved to: %s.\n\nOrder total: %s %s",
		fallbackName(input.CustomerName), input.OrderNo, statusLabel, input.Amount.String(), strings.TrimSpace(input.Currency))

	status := strings.ToLower(strings.TrimSpace(input.Status))
	switch status {
	case constants.OrderStatusShipped:
		b.WriteString("\n\nYour package is on its way.")
	case constants.OrderStatusDelivered:
		b.WriteString("\n\nYour package has been delivered. We hope the gift brings a smile.")
	case constants.OrderStatusCancelled:
		b.WriteString("\n\nThis order has been cancelled. If that is unexpected, please contact support.")
	}
	if message := strings.TrimSpace(input.Message); message != "" {
		fmt.Fprintf(&b, "\n\nNote from our team: %s", message)
	}
	return subject, b.String()
}

func fallbackName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "there"
	}
	return name
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	if s.cfg.UseTLS {
		return sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	return sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
