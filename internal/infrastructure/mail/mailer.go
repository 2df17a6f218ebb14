package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/NenadVrtue/webshop-triangle/internal/config"
	"github.com/NenadVrtue/webshop-triangle/internal/infrastructure/encoding/avro"
	"github.com/NenadVrtue/webshop-triangle/pkg/logger"
)

// sendFunc matches smtp.SendMail, swappable in tests.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends the order-created notification to the operations
// mailbox as a plain text email.
type SMTPMailer struct {
	cfg  config.SMTPConfig
	log  logger.Logger
	send sendFunc
}

func NewSMTPMailer(cfg config.SMTPConfig, log logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:  cfg,
		log:  log,
		send: smtp.SendMail,
	}
}

func (m *SMTPMailer) SendOrderCreated(ctx context.Context, event *avro.OrderCreatedEvent) error {
	if event == nil {
		return fmt.Errorf("event is nil")
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := buildMessage(m.cfg.From, m.cfg.AdminEmail, event)
	if err := m.send(m.cfg.Address(), auth, m.cfg.From, []string{m.cfg.AdminEmail}, msg); err != nil {
		return fmt.Errorf("send order email: %w", err)
	}
	return nil
}

func buildMessage(from, to string, event *avro.OrderCreatedEvent) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: New order #%d\r\n", event.OrderID)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "A new order was placed on %s.\r\n\r\n", event.OrderDate.Format("02.01.2006 15:04"))

	fmt.Fprintf(&b, "Customer: %s <%s>\r\n", event.CustomerName, event.CustomerEmail)
	fmt.Fprintf(&b, "Phone: %s\r\n", event.CustomerPhone)
	if event.CompanyName != "" {
		fmt.Fprintf(&b, "Company: %s\r\n", event.CompanyName)
	}
	fmt.Fprintf(&b, "Address: %s, %s %s\r\n", event.Address, event.PostalCode, event.City)
	if event.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\r\n", event.Notes)
	}

	b.WriteString("\r\nItems:\r\n")
	for _, item := range event.Items {
		name := item.TireName
		if name == "" {
			name = fmt.Sprintf("tire #%d", item.TireID)
		}
		fmt.Fprintf(&b, "  %d x %s @ %s = %s\r\n",
			item.Quantity, name, item.UnitPrice.StringFixed(2), item.TotalPrice.StringFixed(2))
	}

	fmt.Fprintf(&b, "\r\nSubtotal: %s\r\n", event.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Discount: %s\r\n", event.DiscountAmount.StringFixed(2))
	fmt.Fprintf(&b, "Total:    %s\r\n", event.Total.StringFixed(2))

	return []byte(b.String())
}
