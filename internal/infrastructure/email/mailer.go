// Package email sends transactional mail for the store.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/lewisgroup/storefront/internal/domain/order"
	infraconfig "github.com/lewisgroup/storefront/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SMTPMailer sends order confirmation mail over plain SMTP
type SMTPMailer struct {
	addr     string
	from     string
	fromName string
	logger   *zap.Logger
}

// NewSMTPMailer creates a mailer from email configuration
func NewSMTPMailer(cfg *infraconfig.EmailConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from:     cfg.From,
		fromName: cfg.FromName,
		logger:   logger.Named("mailer"),
	}
}

// SendOrderConfirmation sends the purchase thank-you mail for a placed order
func (m *SMTPMailer) SendOrderConfirmation(ctx context.Context, to string, o *order.Order) error {
	if to == "" {
		return nil
	}

	subject := fmt.Sprintf("Order confirmation #%s", o.ID)
	body := m.confirmationBody(o)
	msg := m.buildMessage(to, subject, body)

	if err := smtp.SendMail(m.addr, nil, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}

	m.logger.Info("Order confirmation sent",
		zap.String("order_id", o.ID.String()),
		zap.String("to", to))
	return nil
}

func (m *SMTPMailer) confirmationBody(o *order.Order) string {
	var b strings.Builder
	b.WriteString("Thank you for your purchase\r\n\r\n")
	fmt.Fprintf(&b, "Order: %s\r\n", o.ID)
	fmt.Fprintf(&b, "Placed: %s\r\n\r\n", o.OrderDate.Format("2 Jan 2006 15:04 MST"))
	for _, item := range o.Items {
		fmt.Fprintf(&b, "  %d x %s - %s\r\n", item.Quantity, item.ProductName, formatCents(item.Price*item.Quantity))
	}
	fmt.Fprintf(&b, "\r\nSubtotal: %s\r\n", formatCents(o.Subtotal))
	fmt.Fprintf(&b, "Delivery: %s\r\n", formatCents(o.DeliveryFee))
	fmt.Fprintf(&b, "Total: %s\r\n", formatCents(o.Total()))
	return b.String()
}

func (m *SMTPMailer) buildMessage(to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", m.fromName, m.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// NoopMailer drops mail on the floor. Used when email is disabled.
type NoopMailer struct {
	logger *zap.Logger
}

// NewNoopMailer creates a mailer that only logs
func NewNoopMailer(logger *zap.Logger) *NoopMailer {
	return &NoopMailer{logger: logger.Named("mailer")}
}

// SendOrderConfirmation logs the would-be mail and succeeds
func (m *NoopMailer) SendOrderConfirmation(ctx context.Context, to string, o *order.Order) error {
	m.logger.Debug("Email disabled, skipping order confirmation",
		zap.String("order_id", o.ID.String()),
		zap.String("to", to))
	return nil
}
