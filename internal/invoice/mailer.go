package invoice

import (
	"context"
	"fmt"
	"io"
	"time"

	"amalkitchen-be/internal/config"
	"amalkitchen-be/internal/logger"
	"amalkitchen-be/internal/order"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Gateway abstracts the SMTP dialer so tests can capture outgoing mail.
type Gateway interface {
	DialAndSend(m ...*gomail.Message) error
}

// Sender renders and emails proforma invoices. It implements
// order.InvoiceSender.
type Sender struct {
	gateway       Gateway
	from          string
	ordersInbox   string
	storefrontURL string
	logoPath      string
	sendTimeout   time.Duration
}

func NewSender(cfg *config.Config) *Sender {
	return &Sender{
		gateway:       gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:          cfg.MailFrom,
		ordersInbox:   cfg.OrdersInbox,
		storefrontURL: cfg.StorefrontURL,
		logoPath:      cfg.LogoPath,
		sendTimeout:   8 * time.Second,
	}
}

// Send mails the invoice to the customer with a copy to the orders inbox.
// A hung SMTP connection is abandoned after the send timeout so the
// goroutine dispatching invoices never piles up behind it.
func (s *Sender) Send(ctx context.Context, o *order.Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "invoice"),
		zap.String("order_number", o.OrderNumber),
	)

	if o.Email == "" {
		return ErrNoRecipient
	}

	pdfBytes, err := RenderPDF(o, s.logoPath)
	if err != nil {
		return err
	}

	body, err := renderBody(o, s.storefrontURL)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	recipients := []string{o.Email}
	if s.ordersInbox != "" {
		recipients = append(recipients, s.ordersInbox)
	}
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", fmt.Sprintf("Your Amal's Kitchen order %s", o.OrderNumber))
	m.SetBody("text/html", body)
	m.Attach(fmt.Sprintf("%s.pdf", o.OrderNumber), gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdfBytes)
		return err
	}))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.gateway.DialAndSend(m)
	}()

	timer := time.NewTimer(s.sendTimeout)
	defer timer.Stop()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("failed to send invoice email", zap.Error(err))
			return err
		}
		log.Info("invoice email sent", zap.Strings("to", recipients))
		return nil
	case <-timer.C:
		log.Error("invoice email send timed out")
		return ErrSendTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}
