package smtpmail

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// dialer отправка готового письма (реализуется *gomail.Dialer)
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Client отправляет письма через SMTP
type Client struct {
	dialer   dialer
	from     string
	fromName string
	log      Logger
}

// NewClient создает новый экземпляр SMTP клиента
func NewClient(cfg Config, log Logger) *Client {
	return &Client{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
		log:      log,
	}
}

// Send отправляет текстовое письмо одному получателю
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return ErrInvalidRecipient
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.from, c.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	// gomail не принимает контекст: ждем либо отправку, либо отмену
	done := make(chan error, 1)
	go func() {
		done <- c.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: to=%s: %v", ErrSend, to, err)
		}
	case <-ctx.Done():
		return fmt.Errorf("%w: to=%s: %v", ErrSend, to, ctx.Err())
	}

	c.log.Info("Email sent via SMTP to=%s subject=%q", to, subject)
	return nil
}
